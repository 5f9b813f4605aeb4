package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhn78/framework/pkg/validator"
)

// ruleBuilder compiles the parameters of one rule type.
type ruleBuilder func(p params) (validator.Rule, error)

var builders = map[string]ruleBuilder{
	"not_null": func(params) (validator.Rule, error) {
		return validator.NotNull(), nil
	},
	"string_length": func(p params) (validator.Rule, error) {
		lo, err := p.optionalInt("min", validator.Unset)
		if err != nil {
			return nil, err
		}
		hi, err := p.optionalInt("max", validator.Unset)
		if err != nil {
			return nil, err
		}
		allowNulls, err := p.optionalBool("allow_nulls")
		if err != nil {
			return nil, err
		}
		return validator.StringLength(lo, hi, allowNulls), nil
	},
	"regex": func(p params) (validator.Rule, error) {
		pattern, err := p.stringValue("pattern")
		if err != nil {
			return nil, err
		}
		format, err := p.optionalString("format")
		if err != nil {
			return nil, err
		}
		return validator.Regex(pattern, format), nil
	},
	"email":     func(params) (validator.Rule, error) { return validator.Email(), nil },
	"telephone": func(params) (validator.Rule, error) { return validator.Telephone(), nil },
	"url":       func(params) (validator.Rule, error) { return validator.URL(), nil },
	"file_name": func(params) (validator.Rule, error) { return validator.FileName(), nil },
	"decimals": func(p params) (validator.Rule, error) {
		places, err := p.intValue("places")
		if err != nil {
			return nil, err
		}
		return validator.Decimals(places), nil
	},
	"number_is": func(p params) (validator.Rule, error) {
		c, err := p.comparison("comparison")
		if err != nil {
			return nil, err
		}
		value, err := p.number("value")
		if err != nil {
			return nil, err
		}
		return validator.NumberIs(c, value), nil
	},
	"number_between": func(p params) (validator.Rule, error) {
		lo, err := p.number("min")
		if err != nil {
			return nil, err
		}
		hi, err := p.number("max")
		if err != nil {
			return nil, err
		}
		return validator.NumberBetween(lo, hi), nil
	},
	"no_repeat": func(params) (validator.Rule, error) {
		return validator.NoRepeat(), nil
	},
	"count_is": func(p params) (validator.Rule, error) {
		c, err := p.comparison("comparison")
		if err != nil {
			return nil, err
		}
		n, err := p.intValue("value")
		if err != nil {
			return nil, err
		}
		return validator.CountIs(c, n), nil
	},
	"date_only": func(params) (validator.Rule, error) {
		return validator.DateOnly(), nil
	},
	"string_case": func(p params) (validator.Rule, error) {
		name, err := p.stringValue("case")
		if err != nil {
			return nil, err
		}
		kind, err := validator.ParseCase(name)
		if err != nil {
			return nil, err
		}
		return validator.StringCase(kind), nil
	},
}

// RuleTypes returns the rule types a schema may use, sorted.
func RuleTypes() []string {
	types := make([]string, 0, len(builders))
	for t := range builders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// buildConstraint compiles def into a constraint. Rule constructor panics
// on bad parameters are turned into errors.
func buildConstraint(def RuleDef) (c validator.Constraint, err error) {
	build, ok := builders[strings.ToLower(def.Type)]
	if !ok {
		return c, fmt.Errorf("unknown rule type %q", def.Type)
	}

	defer func() {
		if r := recover(); r != nil {
			perr, isErr := r.(error)
			if !isErr || !errors.Is(perr, validator.ErrInvalidRule) {
				panic(r)
			}
			err = perr
		}
	}()

	p := newParams(def.Params)
	rule, err := build(p)
	if err != nil {
		return c, err
	}
	if err := p.unknown(); err != nil {
		return c, err
	}
	var opts []validator.ConstraintOption
	if def.DisableOnCorrupt {
		opts = append(opts, validator.DisableOnCorrupt())
	}
	if def.Message != "" {
		opts = append(opts, validator.WithMessage(def.Message))
	}
	return validator.Use(rule, opts...), nil
}

// params are the raw rule parameters as decoded from YAML. Every key a
// builder reads is recorded so leftovers can be reported.
type params struct {
	values map[string]any
	read   map[string]bool
}

func newParams(values map[string]any) params {
	return params{values: values, read: make(map[string]bool, len(values))}
}

func (p params) get(key string) (any, bool) {
	p.read[key] = true
	v, ok := p.values[key]
	return v, ok
}

// unknown reports keys no builder read, e.g. a misspelled "mni".
func (p params) unknown() error {
	var extra []string
	for key := range p.values {
		if !p.read[key] {
			extra = append(extra, key)
		}
	}
	if len(extra) == 0 {
		return nil
	}
	sort.Strings(extra)
	return fmt.Errorf("unknown parameter %q", strings.Join(extra, `", "`))
}

func (p params) intValue(key string) (int, error) {
	v, ok := p.get(key)
	if !ok {
		return 0, fmt.Errorf("missing parameter %q", key)
	}
	n, err := toInt(v)
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %w", key, err)
	}
	return int(n), nil
}

func (p params) optionalInt(key string, fallback int) (int, error) {
	if _, ok := p.get(key); !ok {
		return fallback, nil
	}
	return p.intValue(key)
}

func (p params) optionalBool(key string) (bool, error) {
	v, ok := p.get(key)
	if !ok {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("parameter %q must be a boolean, got %T", key, v)
	}
	return b, nil
}

func (p params) stringValue(key string) (string, error) {
	v, ok := p.get(key)
	if !ok {
		return "", fmt.Errorf("missing parameter %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q must be a string, got %T", key, v)
	}
	return s, nil
}

func (p params) optionalString(key string) (string, error) {
	if _, ok := p.get(key); !ok {
		return "", nil
	}
	return p.stringValue(key)
}

func (p params) comparison(key string) (validator.Comparison, error) {
	s, err := p.stringValue(key)
	if err != nil {
		return 0, err
	}
	return validator.ParseComparison(s)
}

// number returns a numeric bound. Quoted numbers become decimals so that
// amounts like "19.99" keep their exact value.
func (p params) number(key string) (any, error) {
	v, ok := p.get(key)
	if !ok {
		return nil, fmt.Errorf("missing parameter %q", key)
	}
	switch n := v.(type) {
	case int, int64, uint64, float64:
		return n, nil
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", key, err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("parameter %q must be a number, got %T", key, v)
	}
}
