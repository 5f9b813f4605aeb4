// Package validator provides the per-property rule engine used before an
// entity is persisted.
//
// A Rule is a small immutable value built once, typically when a property is
// declared, and reused for every validation call. Rules are pure: Check
// inspects a value and returns nil or a Violation whose message is a template
// with a %{field} placeholder, because the rule never knows the name of the
// property it is attached to.
//
// # Architecture
//
// Each source file groups a family of rules (`string_rules.go`,
// `numeric_rules.go`, `pattern_rules.go`, `collection_rules.go`,
// `date_rules.go`). `comparable.go` holds the six-way Comparison and the
// bound coercion used by NumberIs and NumberBetween: a bound configured as an
// int can be compared against a float64, int16, uint or decimal.Decimal
// property; it is converted once per value type and cached atomically.
//
// Core building blocks:
//   - Rule             – Check(value) *Violation plus a Requirement help text
//   - Constraint       – a Rule as declared on a property, with the
//     DisableOnCorrupt escape hatch and an optional message override
//   - Config           – the strict flag threaded into every call
//   - ValidationError  – a formatted failure with translation metadata
//   - ValidationErrors – slice type that implements the error interface
//
// # Usage
//
//	email := validator.Use(validator.Email(), validator.DisableOnCorrupt())
//	name := validator.Use(validator.StringLength(3, 50, false))
//
//	var errs validator.ValidationErrors
//	errs.AddIf(email.Validate("E-mail", user.Email, cfg))
//	errs.AddIf(name.Validate("Name", user.Name, cfg))
//	return errs.Err()
//
// # Nil values
//
// Every rule except NotNull and StringLength without allowNulls treats nil
// (and, for string rules, the empty string) as valid. Compose NotNull
// explicitly when absence must be rejected.
//
// # Configuration faults
//
// Building a rule with impossible parameters, applying a rule to a value type
// it cannot inspect, or a bound that cannot be converted to the value type
// panics with an error wrapping ErrInvalidRule, ErrUnsupportedValue or
// ErrCoercion. These are schema bugs and must surface in tests, never as
// validation messages.
package validator
