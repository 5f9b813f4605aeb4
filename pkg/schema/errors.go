package schema

import "errors"

var (
	// ErrInvalidSchema is returned when a schema document cannot be compiled.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrReadingSchema is returned when a schema file cannot be read.
	ErrReadingSchema = errors.New("failed to read schema file")

	// ErrIncompatibleRecord is returned by Schema.Check when a record value
	// has a type the declared rules cannot inspect.
	ErrIncompatibleRecord = errors.New("record is incompatible with schema")
)
