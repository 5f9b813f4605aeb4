package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhn78/framework/pkg/validator"
)

func TestNoRepeat(t *testing.T) {
	t.Parallel()

	rule := validator.NoRepeat()

	t.Run("reports every repeated group", func(t *testing.T) {
		v := rule.Check([]int{1, 2, 2, 3, 3, 3})
		require.NotNil(t, v)
		msg := v.Format("Tags")
		assert.Contains(t, msg, "2 × 2")
		assert.Contains(t, msg, "3 × 3")
		assert.Equal(t, "Tags has some repeated elements: 2 × 2, 3 × 3", msg)
		assert.Equal(t, "2 × 2, 3 × 3", v.TranslationValues["elements"])
	})

	t.Run("keeps first appearance order", func(t *testing.T) {
		v := rule.Check([]string{"b", "a", "b", "a"})
		require.NotNil(t, v)
		assert.Equal(t, "X has some repeated elements: b × 2, a × 2", v.Format("X"))
	})

	t.Run("passes without repetitions", func(t *testing.T) {
		assert.Nil(t, rule.Check([]int{1, 2, 3}))
		assert.Nil(t, rule.Check([]int{}))
	})

	t.Run("nil list is not inspected", func(t *testing.T) {
		var list []int
		assert.Nil(t, rule.Check(list))
		assert.Nil(t, rule.Check(nil))
	})

	t.Run("heterogeneous and non comparable elements", func(t *testing.T) {
		assert.NotNil(t, rule.Check([]any{1, "1", 1}))
		assert.Nil(t, rule.Check([]any{1, "1"}))
		assert.NotNil(t, rule.Check([][]int{{1}, {1}}))
		assert.Nil(t, rule.Check([][]int{{1}, {2}}))
	})

	t.Run("arrays and pointers to slices", func(t *testing.T) {
		list := []int{4, 4}
		assert.NotNil(t, rule.Check([2]int{7, 7}))
		assert.NotNil(t, rule.Check(&list))
	})

	t.Run("non list value panics", func(t *testing.T) {
		assert.ErrorIs(t, panicErr(t, func() { rule.Check(42) }), validator.ErrUnsupportedValue)
	})

	t.Run("requirement", func(t *testing.T) {
		assert.Equal(t, "without repeated elements", rule.Requirement())
	})
}

func TestCountIs(t *testing.T) {
	t.Parallel()

	t.Run("compares length", func(t *testing.T) {
		rule := validator.CountIs(validator.GreaterThanOrEqualTo, 2)
		assert.Nil(t, rule.Check([]string{"a", "b"}))
		assert.Nil(t, rule.Check([]string{"a", "b", "c"}))

		v := rule.Check([]string{"a"})
		require.NotNil(t, v)
		assert.Equal(t, "Lines should have greater than or equal to 2 elements", v.Format("Lines"))
		assert.Equal(t, map[string]any{"comparison": "greater than or equal to", "count": 2}, v.TranslationValues)
	})

	t.Run("empty list is checked", func(t *testing.T) {
		assert.NotNil(t, validator.CountIs(validator.GreaterThan, 0).Check([]int{}))
		assert.Nil(t, validator.CountIs(validator.EqualTo, 0).Check([]int{}))
	})

	t.Run("nil list is not inspected", func(t *testing.T) {
		var list []int
		assert.Nil(t, validator.CountIs(validator.GreaterThan, 0).Check(list))
		assert.Nil(t, validator.CountIs(validator.GreaterThan, 0).Check(nil))
	})

	t.Run("every comparison", func(t *testing.T) {
		list := []int{1, 2, 3}
		assert.Nil(t, validator.CountIs(validator.EqualTo, 3).Check(list))
		assert.Nil(t, validator.CountIs(validator.DistinctTo, 2).Check(list))
		assert.Nil(t, validator.CountIs(validator.LessThan, 4).Check(list))
		assert.Nil(t, validator.CountIs(validator.LessThanOrEqualTo, 3).Check(list))
		assert.NotNil(t, validator.CountIs(validator.LessThan, 3).Check(list))
		assert.NotNil(t, validator.CountIs(validator.DistinctTo, 3).Check(list))
	})

	t.Run("requirement", func(t *testing.T) {
		assert.Equal(t, "with less than 10 elements", validator.CountIs(validator.LessThan, 10).Requirement())
	})
}
