package validator

import (
	"cmp"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/shopspring/decimal"
)

// Comparison is one of the six ways a value can be compared against a bound.
type Comparison int

const (
	EqualTo Comparison = iota
	DistinctTo
	GreaterThan
	GreaterThanOrEqualTo
	LessThan
	LessThanOrEqualTo
)

var comparisonNames = map[Comparison]string{
	EqualTo:              "equal to",
	DistinctTo:           "distinct to",
	GreaterThan:          "greater than",
	GreaterThanOrEqualTo: "greater than or equal to",
	LessThan:             "less than",
	LessThanOrEqualTo:    "less than or equal to",
}

func (c Comparison) String() string {
	if name, ok := comparisonNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Comparison(%d)", int(c))
}

// ParseComparison accepts the human form ("greater than") as well as the
// snake case form ("greater_than").
func ParseComparison(s string) (Comparison, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", " ")
	for c, name := range comparisonNames {
		if name == normalized {
			return c, nil
		}
	}
	return 0, invalidRule("unknown comparison %q", s)
}

// holds applies the comparison to the result of cmp.Compare(value, bound).
func (c Comparison) holds(result int) bool {
	switch c {
	case EqualTo:
		return result == 0
	case DistinctTo:
		return result != 0
	case GreaterThan:
		return result > 0
	case GreaterThanOrEqualTo:
		return result >= 0
	case LessThan:
		return result < 0
	case LessThanOrEqualTo:
		return result <= 0
	default:
		panic(invalidRule("unknown comparison %d", int(c)))
	}
}

func (c Comparison) valid() bool {
	_, ok := comparisonNames[c]
	return ok
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// bound is a comparison bound whose concrete numeric type is only known once
// a value is checked. The coerced form is cached per value type and published
// atomically, so concurrent first use is safe.
type bound struct {
	raw   any
	cache atomic.Pointer[coercedBound]
}

type coercedBound struct {
	typ   reflect.Type
	value any
}

func newBound(rule string, value any) *bound {
	v, ok := deref(value)
	if !ok || !isNumericType(reflect.TypeOf(v)) {
		panic(invalidRule("%s bound must be a number, got %T", rule, value))
	}
	b := &bound{raw: v}
	b.cache.Store(&coercedBound{typ: reflect.TypeOf(v), value: v})
	return b
}

// to returns the bound converted to typ, coercing at most once per type change.
func (b *bound) to(typ reflect.Type) any {
	current := b.cache.Load()
	if current.typ == typ {
		return current.value
	}
	next := &coercedBound{typ: typ, value: coerce(b.raw, typ)}
	b.cache.CompareAndSwap(current, next)
	return next.value
}

func (b *bound) String() string {
	return fmt.Sprint(b.raw)
}

// numberOf returns the number behind value and its type. ok is false for nil.
func numberOf(rule string, value any) (any, reflect.Type, bool) {
	v, ok := deref(value)
	if !ok {
		return nil, nil, false
	}
	typ := reflect.TypeOf(v)
	if !isNumericType(typ) {
		panic(unsupported(rule, value))
	}
	return v, typ, true
}

func isNumericType(typ reflect.Type) bool {
	if typ == nil {
		return false
	}
	if typ == decimalType {
		return true
	}
	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// compareNumbers compares two numbers of the same type.
func compareNumbers(a, b any) int {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() || ra.Type() == decimalType {
		return toDecimal(a, ra).Cmp(toDecimal(b, rb))
	}
	switch {
	case ra.CanInt():
		return cmp.Compare(ra.Int(), rb.Int())
	case ra.CanUint():
		return cmp.Compare(ra.Uint(), rb.Uint())
	default:
		return cmp.Compare(ra.Float(), rb.Float())
	}
}

// coerce converts a numeric value to typ. A fractional bound for an integer
// type stays an exact decimal. Overflow panics with ErrCoercion.
func coerce(value any, typ reflect.Type) any {
	src := reflect.ValueOf(value)
	if typ == decimalType {
		return toDecimal(value, src)
	}

	out := reflect.New(typ).Elem()
	switch {
	case out.CanInt():
		i, ok := toBigInt(value, src)
		if !ok {
			return toDecimal(value, src)
		}
		if !i.IsInt64() || out.OverflowInt(i.Int64()) {
			panic(coercionFault(value, typ))
		}
		out.SetInt(i.Int64())
	case out.CanUint():
		i, ok := toBigInt(value, src)
		if !ok {
			return toDecimal(value, src)
		}
		if !i.IsUint64() || out.OverflowUint(i.Uint64()) {
			panic(coercionFault(value, typ))
		}
		out.SetUint(i.Uint64())
	case out.CanFloat():
		f := toFloat(value, src)
		if math.IsInf(f, 0) || out.OverflowFloat(f) {
			panic(coercionFault(value, typ))
		}
		out.SetFloat(f)
	default:
		panic(coercionFault(value, typ))
	}
	return out.Interface()
}

func coercionFault(value any, typ reflect.Type) error {
	return fmt.Errorf("%w: %v (%T) to %s", ErrCoercion, value, value, typ)
}

// toBigInt returns the integral value of a number. ok is false when the number has a fraction.
func toBigInt(value any, src reflect.Value) (*big.Int, bool) {
	if d, isDecimal := value.(decimal.Decimal); isDecimal {
		if !d.IsInteger() {
			return nil, false
		}
		return d.BigInt(), true
	}
	switch {
	case src.CanInt():
		return big.NewInt(src.Int()), true
	case src.CanUint():
		return new(big.Int).SetUint64(src.Uint()), true
	default:
		f := src.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return nil, false
		}
		i, _ := big.NewFloat(f).Int(nil)
		return i, true
	}
}

func toFloat(value any, src reflect.Value) float64 {
	if d, isDecimal := value.(decimal.Decimal); isDecimal {
		f, _ := d.Float64()
		return f
	}
	switch {
	case src.CanInt():
		return float64(src.Int())
	case src.CanUint():
		return float64(src.Uint())
	default:
		return src.Float()
	}
}

func toDecimal(value any, src reflect.Value) decimal.Decimal {
	if d, isDecimal := value.(decimal.Decimal); isDecimal {
		return d
	}
	switch {
	case src.CanInt():
		return decimal.NewFromInt(src.Int())
	case src.CanUint():
		return decimal.NewFromBigInt(new(big.Int).SetUint64(src.Uint()), 0)
	default:
		f := src.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			panic(coercionFault(value, decimalType))
		}
		if src.Kind() == reflect.Float32 {
			return decimal.NewFromFloat32(float32(f))
		}
		return decimal.NewFromFloat(f)
	}
}
