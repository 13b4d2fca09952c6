package expense

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spenso/spenso/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1})

var repoStub = NewStubRepository()

var service Service

func setup(t *testing.T) func() {
	service = NewService(repoStub)
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func intPtr(v int) *int {
	return &v
}

func TestServiceImpl_CreateExpense(t *testing.T) {
	t.Run("should create an expense linked to a plan item", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.CreateExpense(ctx, Expense{
			PlanId:     1,
			CategoryId: 2,
			PlanItemId: intPtr(42),
			Name:       "Rent",
			Amount:     decimal.NewFromInt(1200),
			Date:       time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		})

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.Id)
		require.NotNil(t, created.PlanItemId)
		assert.Equal(t, 42, *created.PlanItemId)
	})

	t.Run("should default the date to now", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.CreateExpense(ctx, Expense{
			PlanId: 1, CategoryId: 2, Name: "Coffee", Amount: decimal.NewFromInt(4),
		})

		// then
		assert.NoError(t, err)
		assert.False(t, created.Date.IsZero())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.CreateExpense(ctx, Expense{
			PlanId: 1, CategoryId: 2, Name: "Broken", Amount: decimal.NewFromInt(-1),
		})

		// then
		assert.Error(t, err)
	})
}

func TestServiceImpl_GetExpensesForPlanItem(t *testing.T) {
	t.Run("should return only expenses linked to the item", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		service.CreateExpense(ctx, Expense{PlanId: 1, CategoryId: 2, PlanItemId: intPtr(42), Name: "Rent", Amount: decimal.NewFromInt(1200)})
		service.CreateExpense(ctx, Expense{PlanId: 1, CategoryId: 2, PlanItemId: intPtr(43), Name: "Internet", Amount: decimal.NewFromInt(60)})
		service.CreateExpense(ctx, Expense{PlanId: 1, CategoryId: 2, Name: "Ad-hoc", Amount: decimal.NewFromInt(10)})

		// when
		expenses, err := service.GetExpensesForPlanItem(ctx, 42)

		// then
		assert.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, "Rent", expenses[0].Name)
	})
}

func TestServiceImpl_DeleteExpensesBatch(t *testing.T) {
	t.Run("should delete all expenses in the batch", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		e1, _ := service.CreateExpense(ctx, Expense{PlanId: 1, CategoryId: 2, PlanItemId: intPtr(42), Name: "Rent", Amount: decimal.NewFromInt(1200)})
		e2, _ := service.CreateExpense(ctx, Expense{PlanId: 1, CategoryId: 2, PlanItemId: intPtr(42), Name: "Rent again", Amount: decimal.NewFromInt(1200)})

		// when
		err := service.DeleteExpensesBatch(ctx, []int{e1.Id, e2.Id}, 1, 42, false)

		// then
		assert.NoError(t, err)
		remaining, err := service.GetExpensesForPlanItem(ctx, 42)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("should fail without deleting anything when one id is unknown", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		e1, _ := service.CreateExpense(ctx, Expense{PlanId: 1, CategoryId: 2, PlanItemId: intPtr(42), Name: "Rent", Amount: decimal.NewFromInt(1200)})

		// when
		err := service.DeleteExpensesBatch(ctx, []int{e1.Id, 9999}, 1, 42, false)

		// then
		assert.ErrorIs(t, err, ErrExpenseNotFound)
		remaining, _ := service.GetExpensesForPlanItem(ctx, 42)
		assert.Len(t, remaining, 1)
	})
}

func TestServiceImpl_SpentByCategory(t *testing.T) {
	t.Run("should sum amounts per category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		service.CreateExpense(ctx, Expense{PlanId: 1, CategoryId: 2, Name: "Groceries", Amount: decimal.NewFromInt(50)})
		service.CreateExpense(ctx, Expense{PlanId: 1, CategoryId: 2, Name: "More groceries", Amount: decimal.NewFromInt(30)})
		service.CreateExpense(ctx, Expense{PlanId: 1, CategoryId: 3, Name: "Fuel", Amount: decimal.NewFromInt(70)})
		service.CreateExpense(ctx, Expense{PlanId: 2, CategoryId: 2, Name: "Other plan", Amount: decimal.NewFromInt(999)})

		// when
		totals, err := service.SpentByCategory(ctx, 1)

		// then
		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(80).Equal(totals[2]))
		assert.True(t, decimal.NewFromInt(70).Equal(totals[3]))
	})
}
