package validator

// Config carries the process-wide validation settings into every call.
type Config struct {
	// Lenient skips rules declared with DisableOnCorrupt so legacy data can
	// still be saved. The zero Config enforces every rule.
	Lenient bool
}

// StrictConfig enforces every rule. It equals the zero Config.
var StrictConfig = Config{}

// Constraint is a Rule as declared on a property: the rule itself plus the
// corruption escape hatch and an optional message override.
type Constraint struct {
	rule             Rule
	disableOnCorrupt bool
	message          string
}

// ConstraintOption configures a Constraint.
type ConstraintOption func(*Constraint)

// DisableOnCorrupt skips the rule when Config.Lenient is set.
func DisableOnCorrupt() ConstraintOption {
	return func(c *Constraint) {
		c.disableOnCorrupt = true
	}
}

// WithMessage replaces the rule's generated message verbatim.
// The override may contain FieldPlaceholder.
func WithMessage(message string) ConstraintOption {
	return func(c *Constraint) {
		c.message = message
	}
}

// Use declares rule on a property. Panics on a nil rule.
func Use(rule Rule, opts ...ConstraintOption) Constraint {
	if rule == nil {
		panic(ErrInvalidRule)
	}
	c := Constraint{rule: rule}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Rule returns the wrapped rule.
func (c Constraint) Rule() Rule {
	return c.rule
}

// DisabledOnCorrupt reports whether the constraint is skipped in lenient mode.
func (c Constraint) DisabledOnCorrupt() bool {
	return c.disableOnCorrupt
}

// Error returns the message template for value and true, or false when the
// value is valid or the constraint is disabled by cfg.
func (c Constraint) Error(value any, cfg Config) (string, bool) {
	v := c.violation(value, cfg)
	if v == nil {
		return "", false
	}
	return v.Message, true
}

// Validate checks value and returns the failure with field substituted into
// the message, or nil.
func (c Constraint) Validate(field string, value any, cfg Config) *ValidationError {
	return c.validate(field, field, value, cfg)
}

// Requirement returns the help text of the wrapped rule.
func (c Constraint) Requirement() string {
	return c.rule.Requirement()
}

func (c Constraint) violation(value any, cfg Config) *Violation {
	if c.disableOnCorrupt && cfg.Lenient {
		return nil
	}
	v := c.rule.Check(value)
	if v == nil {
		return nil
	}
	if c.message != "" {
		// No translation key: catalogs must not replace an explicit override.
		return &Violation{
			Message:           c.message,
			TranslationValues: v.TranslationValues,
		}
	}
	return v
}

func (c Constraint) validate(field, label string, value any, cfg Config) *ValidationError {
	v := c.violation(value, cfg)
	if v == nil {
		return nil
	}
	return &ValidationError{
		Field:             field,
		Message:           v.Format(label),
		TranslationKey:    v.TranslationKey,
		TranslationValues: withField(v.TranslationValues, field),
	}
}
