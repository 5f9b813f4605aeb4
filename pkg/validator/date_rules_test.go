package validator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhn78/framework/pkg/validator"
)

func TestDateOnly(t *testing.T) {
	t.Parallel()

	rule := validator.DateOnly()

	t.Run("fails with a time component", func(t *testing.T) {
		v := rule.Check(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC))
		require.NotNil(t, v)
		assert.Equal(t, "Birthday has a time part", v.Format("Birthday"))
		assert.Equal(t, "validation.date_only", v.TranslationKey)

		assert.NotNil(t, rule.Check(time.Date(2024, 3, 1, 0, 0, 0, 1, time.UTC)))
	})

	t.Run("passes at midnight", func(t *testing.T) {
		assert.Nil(t, rule.Check(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("midnight is taken in the value's location", func(t *testing.T) {
		loc := time.FixedZone("UTC+2", 2*60*60)
		local := time.Date(2024, 3, 1, 0, 0, 0, 0, loc)
		assert.Nil(t, rule.Check(local))
		assert.NotNil(t, rule.Check(local.UTC()))
	})

	t.Run("pointers and nil", func(t *testing.T) {
		d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		var missing *time.Time
		assert.Nil(t, rule.Check(&d))
		assert.Nil(t, rule.Check(missing))
		assert.Nil(t, rule.Check(nil))
	})

	t.Run("non time value panics", func(t *testing.T) {
		assert.ErrorIs(t, panicErr(t, func() { rule.Check("2024-03-01") }), validator.ErrUnsupportedValue)
	})

	t.Run("requirement", func(t *testing.T) {
		assert.Equal(t, "without time part", rule.Requirement())
	})
}
