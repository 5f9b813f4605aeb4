package validator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type decimalsRule struct {
	places int
}

// Decimals limits float and decimal.Decimal values to the given number of
// decimal places. Other value types are not inspected.
func Decimals(places int) Rule {
	if places < 0 {
		panic(invalidRule("decimal places must not be negative, got %d", places))
	}
	return decimalsRule{places: places}
}

func (r decimalsRule) Check(value any) *Violation {
	v, ok := deref(value)
	if !ok {
		return nil
	}

	var fits bool
	switch n := v.(type) {
	case decimal.Decimal:
		fits = n.Round(int32(r.places)).Equal(n)
	default:
		rv := reflect.ValueOf(v)
		if !rv.CanFloat() {
			return nil
		}
		fits = decimalPlaces(rv.Float(), rv.Type().Bits()) <= r.places
	}
	if fits {
		return nil
	}

	return violation("validation.decimals",
		fmt.Sprintf("%s has more than %d decimal places", FieldPlaceholder, r.places),
		map[string]any{"places": r.places},
	)
}

func (r decimalsRule) Requirement() string {
	return fmt.Sprintf("with up to %d decimal places", r.places)
}

// decimalPlaces counts the digits after the point in the shortest
// representation that round-trips to f.
func decimalPlaces(f float64, bits int) int {
	s := strconv.FormatFloat(f, 'f', -1, bits)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

type numberIsRule struct {
	comparison Comparison
	bound      *bound
}

// NumberIs compares numeric values against bound. The bound is converted to
// the type of the checked value on first use and cached.
func NumberIs(comparison Comparison, bound any) Rule {
	if !comparison.valid() {
		panic(invalidRule("unknown comparison %d", int(comparison)))
	}
	return &numberIsRule{comparison: comparison, bound: newBound("NumberIs", bound)}
}

func (r *numberIsRule) Check(value any) *Violation {
	v, typ, ok := numberOf("NumberIs", value)
	if !ok {
		return nil
	}
	if r.comparison.holds(compareNumbers(v, r.bound.to(typ))) {
		return nil
	}

	return violation("validation.number_is",
		fmt.Sprintf("%s has to be %s %s", FieldPlaceholder, r.comparison, r.bound),
		map[string]any{"comparison": r.comparison.String(), "value": r.bound.raw},
	)
}

func (r *numberIsRule) Requirement() string {
	return fmt.Sprintf("%s %s", r.comparison, r.bound)
}

type numberBetweenRule struct {
	min *bound
	max *bound
}

// NumberBetween requires min <= value <= max. Both ends are inclusive.
func NumberBetween(min, max any) Rule {
	lo, hi := newBound("NumberBetween", min), newBound("NumberBetween", max)
	if toFloat(lo.raw, reflect.ValueOf(lo.raw)) > toFloat(hi.raw, reflect.ValueOf(hi.raw)) {
		panic(invalidRule("NumberBetween min %v is greater than max %v", lo.raw, hi.raw))
	}
	return &numberBetweenRule{min: lo, max: hi}
}

func (r *numberBetweenRule) Check(value any) *Violation {
	v, typ, ok := numberOf("NumberBetween", value)
	if !ok {
		return nil
	}
	if compareNumbers(v, r.min.to(typ)) >= 0 && compareNumbers(v, r.max.to(typ)) <= 0 {
		return nil
	}

	return violation("validation.number_between",
		fmt.Sprintf("%s has to be between %s and %s", FieldPlaceholder, r.min, r.max),
		map[string]any{"min": r.min.raw, "max": r.max.raw},
	)
}

func (r *numberBetweenRule) Requirement() string {
	return fmt.Sprintf("between %s and %s", r.min, r.max)
}
