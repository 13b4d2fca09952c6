package tracking

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/spenso/spenso/pkg/plan"
)

func TestStillToPay(t *testing.T) {
	t.Run("should sum incomplete fixed items and unconsumed non-fixed budget", func(t *testing.T) {
		// given
		items := []plan.PlanItem{
			{Id: 1, CategoryId: 7, Amount: decimal.NewFromInt(100), IsFixedPayment: true, IsCompleted: false},
			{Id: 2, CategoryId: 7, Amount: decimal.NewFromInt(50), IsFixedPayment: true, IsCompleted: true},
			{Id: 3, CategoryId: 7, Amount: decimal.NewFromInt(30), IsFixedPayment: false},
		}

		// when
		result := StillToPay(7, items, decimal.NewFromInt(20))

		// then
		assert.True(t, decimal.NewFromInt(110).Equal(result), "expected 110, got %s", result)
	})

	t.Run("should not go below zero when expenses exceed the non-fixed budget", func(t *testing.T) {
		// given
		items := []plan.PlanItem{
			{Id: 1, CategoryId: 7, Amount: decimal.NewFromInt(30), IsFixedPayment: false},
		}

		// when
		result := StillToPay(7, items, decimal.NewFromInt(80))

		// then
		assert.True(t, result.IsZero(), "expected 0, got %s", result)
	})

	t.Run("should ignore items of other categories", func(t *testing.T) {
		// given
		items := []plan.PlanItem{
			{Id: 1, CategoryId: 7, Amount: decimal.NewFromInt(40), IsFixedPayment: true},
			{Id: 2, CategoryId: 8, Amount: decimal.NewFromInt(500), IsFixedPayment: true},
		}

		// when
		result := StillToPay(7, items, decimal.Zero)

		// then
		assert.True(t, decimal.NewFromInt(40).Equal(result), "expected 40, got %s", result)
	})

	t.Run("should return zero for category with only completed fixed items and no spending", func(t *testing.T) {
		// given
		items := []plan.PlanItem{
			{Id: 1, CategoryId: 7, Amount: decimal.NewFromInt(40), IsFixedPayment: true, IsCompleted: true},
		}

		// when
		result := StillToPay(7, items, decimal.Zero)

		// then
		assert.True(t, result.IsZero())
	})
}

func TestUsagePercent(t *testing.T) {
	t.Run("should return zero for zero budget", func(t *testing.T) {
		result := UsagePercent(decimal.NewFromInt(500), decimal.Zero)

		assert.Equal(t, float64(0), result)
	})

	t.Run("should return exact percentage", func(t *testing.T) {
		result := UsagePercent(decimal.NewFromInt(25), decimal.NewFromInt(100))

		assert.Equal(t, float64(25), result)
	})

	t.Run("should return one hundred for full usage", func(t *testing.T) {
		result := UsagePercent(decimal.NewFromInt(100), decimal.NewFromInt(100))

		assert.Equal(t, float64(100), result)
	})

	t.Run("should cap extreme overspending", func(t *testing.T) {
		result := UsagePercent(decimal.NewFromInt(100000), decimal.NewFromInt(10))

		assert.Equal(t, float64(999), result)
	})
}

func TestColorBands(t *testing.T) {
	t.Run("should use distinct tones per band", func(t *testing.T) {
		assert.Equal(t, "primary", ProgressColor(0))
		assert.Equal(t, "primary", ProgressColor(99.9))
		assert.Equal(t, "success", ProgressColor(100))
		assert.Equal(t, "warning", ProgressColor(100.1))
		assert.Equal(t, "warning", ProgressColor(110))
		assert.Equal(t, "danger", ProgressColor(110.1))
		assert.Equal(t, "danger", ProgressColor(999))
	})

	t.Run("should keep remaining label tone in the same band as the progress tone", func(t *testing.T) {
		assert.Equal(t, "text-default", RemainingColorClass(42))
		assert.Equal(t, "text-success", RemainingColorClass(100))
		assert.Equal(t, "text-warning", RemainingColorClass(105))
		assert.Equal(t, "text-danger", RemainingColorClass(200))
	})
}
