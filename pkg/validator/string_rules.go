package validator

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type notNullRule struct{}

// NotNull rejects nil values, including typed nil pointers, slices and maps.
// An empty string is a value and passes.
func NotNull() Rule {
	return notNullRule{}
}

func (notNullRule) Check(value any) *Violation {
	if !isNil(value) {
		return nil
	}
	return violation("validation.required", FieldPlaceholder+" is not set", map[string]any{})
}

func (notNullRule) Requirement() string {
	return "mandatory"
}

// Unset marks an absent StringLength bound.
const Unset = -1

type stringLengthRule struct {
	min        int
	max        int
	allowNulls bool
}

// StringLength bounds the number of characters of a string. Pass Unset for
// an open end. Empty and nil strings fail unless allowNulls is set.
func StringLength(min, max int, allowNulls bool) Rule {
	if min < Unset || max < Unset {
		panic(invalidRule("StringLength bounds must be %d or positive, got %d and %d", Unset, min, max))
	}
	if min != Unset && max != Unset && min > max {
		panic(invalidRule("StringLength min %d is greater than max %d", min, max))
	}
	return stringLengthRule{min: min, max: max, allowNulls: allowNulls}
}

func (r stringLengthRule) Check(value any) *Violation {
	s, _ := stringOf("StringLength", value)
	if s == "" {
		if r.allowNulls {
			return nil
		}
		return violation("validation.required", FieldPlaceholder+" is not set", map[string]any{})
	}

	n := utf8.RuneCountInString(s)
	switch {
	case r.min == r.max && r.min != Unset && n != r.min:
		return violation("validation.exact_length",
			fmt.Sprintf("The length of %s has to be equal to %d", FieldPlaceholder, r.min),
			map[string]any{"length": r.min},
		)
	case r.min != Unset && n < r.min:
		return violation("validation.min_length",
			fmt.Sprintf("The length of %s has to be greater than or equal to %d", FieldPlaceholder, r.min),
			map[string]any{"min": r.min},
		)
	case r.max != Unset && n > r.max:
		return violation("validation.max_length",
			fmt.Sprintf("The length of %s has to be less than or equal to %d", FieldPlaceholder, r.max),
			map[string]any{"max": r.max},
		)
	}
	return nil
}

func (r stringLengthRule) Requirement() string {
	switch {
	case r.min == r.max && r.min != Unset:
		return fmt.Sprintf("exactly %d characters", r.min)
	case r.min != Unset && r.max != Unset:
		return fmt.Sprintf("between %d and %d characters", r.min, r.max)
	case r.min != Unset:
		return fmt.Sprintf("at least %d characters", r.min)
	case r.max != Unset:
		return fmt.Sprintf("up to %d characters", r.max)
	default:
		return "any length"
	}
}

// Case selects the letter case required by StringCase.
type Case int

const (
	Uppercase Case = iota
	Lowercase
)

func (c Case) String() string {
	switch c {
	case Uppercase:
		return "uppercase"
	case Lowercase:
		return "lowercase"
	default:
		return fmt.Sprintf("Case(%d)", int(c))
	}
}

// ParseCase accepts "uppercase"/"upper" and "lowercase"/"lower".
func ParseCase(s string) (Case, error) {
	switch s {
	case "uppercase", "upper":
		return Uppercase, nil
	case "lowercase", "lower":
		return Lowercase, nil
	default:
		return 0, invalidRule("unknown case %q", s)
	}
}

type stringCaseRule struct {
	kind Case
}

// StringCase requires the whole string to already be in the given case.
// Empty and nil strings pass.
func StringCase(kind Case) Rule {
	if kind != Uppercase && kind != Lowercase {
		panic(invalidRule("unknown case %d", int(kind)))
	}
	return stringCaseRule{kind: kind}
}

func (r stringCaseRule) Check(value any) *Violation {
	s, _ := stringOf("StringCase", value)
	if s == "" {
		return nil
	}

	// Casers keep state between calls and must not be shared across goroutines.
	var caser cases.Caser
	if r.kind == Uppercase {
		caser = cases.Upper(language.Und)
	} else {
		caser = cases.Lower(language.Und)
	}
	if caser.String(s) == s {
		return nil
	}

	return violation("validation.string_case",
		fmt.Sprintf("%s has to be %s", FieldPlaceholder, r.kind),
		map[string]any{"case": r.kind.String()},
	)
}

func (r stringCaseRule) Requirement() string {
	return "in " + r.kind.String()
}
