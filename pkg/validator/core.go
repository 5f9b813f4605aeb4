package validator

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

// FieldPlaceholder is replaced with the property display name when a
// violation is formatted.
const FieldPlaceholder = "%{field}"

// Rule is a single reusable validation policy for one property value.
// Implementations must not mutate the inspected value.
type Rule interface {
	// Check returns nil when value satisfies the rule.
	Check(value any) *Violation
	// Requirement describes what the rule demands, for help texts.
	Requirement() string
}

// Violation is a failed check before the property display name is known.
// Message is a template containing FieldPlaceholder.
type Violation struct {
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// Format substitutes the property display name into the message template.
func (v *Violation) Format(field string) string {
	if v == nil {
		return ""
	}
	return strings.ReplaceAll(v.Message, FieldPlaceholder, field)
}

func violation(key, message string, values map[string]any) *Violation {
	return &Violation{
		Message:           message,
		TranslationKey:    key,
		TranslationValues: values,
	}
}

// ValidationError represents a single validation error with translation support.
type ValidationError struct {
	Field             string         `json:"field"`
	Message           string         `json:"message"`
	TranslationKey    string         `json:"translation_key,omitempty"`
	TranslationValues map[string]any `json:"translation_values,omitempty"`
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

// AddIf appends err when it is not nil.
func (ve *ValidationErrors) AddIf(err *ValidationError) {
	if err != nil {
		*ve = append(*ve, *err)
	}
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Err returns ve as an error, or nil when there is nothing to report.
func (ve ValidationErrors) Err() error {
	if ve.IsEmpty() {
		return nil
	}
	return ve
}

// Check runs every constraint against one property value and collects the failures.
// field is the property name used as ValidationError.Field, label its display name.
func Check(cfg Config, field, label string, value any, constraints ...Constraint) ValidationErrors {
	var errs ValidationErrors
	for _, c := range constraints {
		if err := c.validate(field, label, value, cfg); err != nil {
			errs.Add(*err)
		}
	}
	return errs
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}

func withField(values map[string]any, field string) map[string]any {
	out := make(map[string]any, len(values)+1)
	maps.Copy(out, values)
	out["field"] = field
	return out
}
