package validator

import (
	"errors"
	"fmt"
)

// Configuration faults. They are raised as panics wrapping these errors:
// a rule applied to the wrong kind of value or built with impossible
// parameters is a schema bug, not bad input data.
var (
	// ErrInvalidRule is raised when a rule is constructed with invalid parameters.
	ErrInvalidRule = errors.New("invalid rule definition")

	// ErrUnsupportedValue is raised when a rule receives a value type it cannot inspect.
	ErrUnsupportedValue = errors.New("unsupported value type for rule")

	// ErrCoercion is raised when a comparison bound cannot be converted to the value's type.
	ErrCoercion = errors.New("cannot coerce comparison bound")
)

func invalidRule(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRule, fmt.Sprintf(format, args...))
}

func unsupported(rule string, value any) error {
	return fmt.Errorf("%w: %s cannot check %T", ErrUnsupportedValue, rule, value)
}
