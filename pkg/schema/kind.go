package schema

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Kind tells the schema how to normalize a decoded record value before the
// rules see it. YAML decoding yields int, float64, string, bool and lists;
// rules comparing numbers or inspecting dates need a common type.
type Kind string

const (
	// KindAny passes the decoded value through.
	KindAny Kind = ""
	// KindInteger converts integral numbers and numeric strings to int64.
	KindInteger Kind = "integer"
	// KindFloat converts numbers and numeric strings to float64.
	KindFloat Kind = "float"
	// KindDecimal converts numbers and numeric strings to decimal.Decimal.
	KindDecimal Kind = "decimal"
	// KindTime parses RFC 3339 timestamps and YYYY-MM-DD dates.
	KindTime Kind = "time"
)

func (k Kind) valid() bool {
	switch k {
	case KindAny, KindInteger, KindFloat, KindDecimal, KindTime:
		return true
	default:
		return false
	}
}

// normalize converts value to k. nil stays nil.
func (k Kind) normalize(value any) (any, error) {
	if value == nil || k == KindAny {
		return value, nil
	}
	switch k {
	case KindInteger:
		return toInt(value)
	case KindFloat:
		d, err := toDecimal(value)
		if err != nil {
			return nil, err
		}
		return d.InexactFloat64(), nil
	case KindDecimal:
		return toDecimal(value)
	case KindTime:
		return toTime(value)
	default:
		return value, nil
	}
}

func toInt(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int64", v)
		}
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt64 || v < math.MinInt64 {
			return 0, fmt.Errorf("%v is not an integer", v)
		}
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("%T is not an integer", value)
	}
}

func toDecimal(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		return decimal.NewFromString(v)
	case decimal.Decimal:
		return v, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%T is not a number", value)
	}
}

var timeLayouts = []string{time.RFC3339Nano, time.DateTime, time.DateOnly}

func toTime(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("%q is not a timestamp", v)
	default:
		return time.Time{}, fmt.Errorf("%T is not a timestamp", value)
	}
}
