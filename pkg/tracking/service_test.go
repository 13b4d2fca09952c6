package tracking

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spenso/spenso/pkg/category"
	"github.com/spenso/spenso/pkg/expense"
	"github.com/spenso/spenso/pkg/plan"
)

type stubPlanStore struct {
	plan plan.Plan
}

func (s *stubPlanStore) GetPlan(_ context.Context, _ int) (plan.Plan, error) {
	return s.plan, nil
}

func (s *stubPlanStore) GetItem(_ context.Context, itemId int) (plan.PlanItem, error) {
	for _, item := range s.plan.Items {
		if item.Id == itemId {
			return item, nil
		}
	}
	return plan.PlanItem{}, plan.ErrItemNotFound
}

type stubExpenseLister struct {
	expenses []expense.Expense
}

func (s *stubExpenseLister) ListForPlan(_ context.Context, _ int) ([]expense.Expense, error) {
	return s.expenses, nil
}

type stubCategorySource struct {
	categories []category.Category
}

func (s *stubCategorySource) GetAll(_ context.Context) ([]category.Category, error) {
	return s.categories, nil
}

type stubTracker struct {
	toggled []int
}

func (s *stubTracker) Toggle(_ context.Context, item plan.PlanItem, force *bool) (plan.PlanItem, error) {
	s.toggled = append(s.toggled, item.Id)
	updated := item
	if force != nil {
		updated.IsCompleted = *force
	} else {
		updated.IsCompleted = !item.IsCompleted
	}
	return updated, nil
}

func TestGetOverview(t *testing.T) {
	newService := func(trackedPlan plan.Plan, expenses []expense.Expense, categories []category.Category) *ServiceImpl {
		return NewService(
			&stubPlanStore{plan: trackedPlan},
			&stubExpenseLister{expenses: expenses},
			&stubCategorySource{categories: categories},
			&stubTracker{},
		)
	}

	t.Run("should derive per category spending and outstanding amounts", func(t *testing.T) {
		// given
		rentItemId := 1
		trackedPlan := plan.Plan{
			Id:       3,
			Name:     "March",
			Currency: "EUR",
			Items: []plan.PlanItem{
				{Id: 1, PlanId: 3, CategoryId: 1, Name: "Rent", Amount: decimal.NewFromInt(900), IsFixedPayment: true, IsCompleted: true},
				{Id: 2, PlanId: 3, CategoryId: 2, Name: "Groceries", Amount: decimal.NewFromInt(300), IsFixedPayment: false},
			},
		}
		expenses := []expense.Expense{
			{Id: 1, CategoryId: 1, PlanItemId: &rentItemId, Amount: decimal.NewFromInt(900)},
			{Id: 2, CategoryId: 2, Amount: decimal.NewFromInt(120)},
		}
		categories := []category.Category{
			{Id: 1, Name: "Housing"},
			{Id: 2, Name: "Food"},
		}
		service := newService(trackedPlan, expenses, categories)

		// when
		overview, err := service.GetOverview(context.Background(), 3)

		// then
		require.NoError(t, err)
		assert.Equal(t, 3, overview.PlanId)
		assert.Equal(t, "EUR", overview.Currency)
		assert.Equal(t, 1, overview.CompletedCount)
		assert.Equal(t, 1, overview.TotalCount)
		require.Len(t, overview.Categories, 2)

		food := overview.Categories[0]
		assert.Equal(t, "Food", food.Category.Name)
		assert.True(t, decimal.NewFromInt(120).Equal(food.Spent))
		assert.True(t, decimal.NewFromInt(180).Equal(food.StillToPay))
		assert.Equal(t, float64(40), food.UsagePercent)
		assert.Equal(t, "primary", food.ProgressColor)

		housing := overview.Categories[1]
		assert.Equal(t, "Housing", housing.Category.Name)
		assert.True(t, decimal.NewFromInt(900).Equal(housing.Spent))
		assert.True(t, housing.StillToPay.IsZero(), "completed fixed payment leaves nothing outstanding")
		assert.Equal(t, float64(100), housing.UsagePercent)
		assert.Equal(t, "success", housing.ProgressColor)
	})

	t.Run("should not let a completed fixed payment consume the non-fixed envelope", func(t *testing.T) {
		// given
		billItemId := 1
		trackedPlan := plan.Plan{
			Id: 3,
			Items: []plan.PlanItem{
				{Id: 1, PlanId: 3, CategoryId: 1, Name: "Insurance", Amount: decimal.NewFromInt(50), IsFixedPayment: true, IsCompleted: true},
				{Id: 2, PlanId: 3, CategoryId: 1, Name: "Fuel", Amount: decimal.NewFromInt(200), IsFixedPayment: false},
			},
		}
		expenses := []expense.Expense{
			{Id: 1, CategoryId: 1, PlanItemId: &billItemId, Amount: decimal.NewFromInt(50)},
		}
		categories := []category.Category{{Id: 1, Name: "Car"}}
		service := newService(trackedPlan, expenses, categories)

		// when
		overview, err := service.GetOverview(context.Background(), 3)

		// then
		require.NoError(t, err)
		require.Len(t, overview.Categories, 1)
		assert.True(t, decimal.NewFromInt(200).Equal(overview.Categories[0].StillToPay),
			"full envelope should remain, got %s", overview.Categories[0].StillToPay)
	})

	t.Run("should return empty overview for plan without items", func(t *testing.T) {
		// given
		service := newService(plan.Plan{Id: 3, Name: "Empty"}, nil, nil)

		// when
		overview, err := service.GetOverview(context.Background(), 3)

		// then
		require.NoError(t, err)
		assert.Empty(t, overview.Categories)
		assert.Equal(t, 0, overview.TotalCount)
	})
}

func TestToggleItem(t *testing.T) {
	t.Run("should load the item and delegate to the tracker", func(t *testing.T) {
		// given
		trackerStub := &stubTracker{}
		service := NewService(
			&stubPlanStore{plan: plan.Plan{Items: []plan.PlanItem{
				{Id: 11, PlanId: 3, IsFixedPayment: true},
			}}},
			&stubExpenseLister{},
			&stubCategorySource{},
			trackerStub,
		)

		// when
		updated, err := service.ToggleItem(context.Background(), 11, nil)

		// then
		require.NoError(t, err)
		assert.True(t, updated.IsCompleted)
		assert.Equal(t, []int{11}, trackerStub.toggled)
	})

	t.Run("should fail for unknown item", func(t *testing.T) {
		// given
		service := NewService(&stubPlanStore{}, &stubExpenseLister{}, &stubCategorySource{}, &stubTracker{})

		// when
		_, err := service.ToggleItem(context.Background(), 99, nil)

		// then
		assert.ErrorIs(t, err, plan.ErrItemNotFound)
	})
}
