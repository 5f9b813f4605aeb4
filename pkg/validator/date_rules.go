package validator

import "time"

type dateOnlyRule struct{}

// DateOnly rejects time values with a time-of-day component.
func DateOnly() Rule {
	return dateOnlyRule{}
}

func (dateOnlyRule) Check(value any) *Violation {
	t, ok := timeOf("DateOnly", value)
	if !ok {
		return nil
	}
	y, m, d := t.Date()
	if time.Date(y, m, d, 0, 0, 0, 0, t.Location()).Equal(t) {
		return nil
	}
	return violation("validation.date_only", FieldPlaceholder+" has a time part", map[string]any{})
}

func (dateOnlyRule) Requirement() string {
	return "without time part"
}
