package plan

import (
	"context"
	"testing"

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

func TestServiceImpl_GetPlan(t *testing.T) {
	t.Run("should get a plan successfully", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		createdPlan, _ := service.CreatePlan(ctx, Plan{Name: "August", Currency: "EUR"})

		// when
		result, err := service.GetPlan(ctx, createdPlan.Id)

		// then
		assert.NoError(t, err)
		assert.Equal(t, createdPlan.Id, result.Id)
		assert.Equal(t, "August", result.Name)
		assert.Equal(t, "EUR", result.Currency)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.GetPlan(context.Background(), 1)

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestServiceImpl_GetCurrentPlan(t *testing.T) {
	t.Run("should get the current plan", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.CreatePlan(ctx, Plan{Name: "Plan 1"})
		require.NoError(t, err)
		currentPlan, err := service.CreatePlan(ctx, Plan{Name: "Plan 2"})
		require.NoError(t, err)
		_, err = service.UpdatePlan(ctx, Plan{Id: currentPlan.Id, Name: currentPlan.Name, IsCurrent: true})
		require.NoError(t, err)

		// when
		result, err := service.GetCurrentPlan(ctx)

		// then
		assert.NoError(t, err)
		assert.Equal(t, currentPlan.Id, result.Id)
		assert.Equal(t, "Plan 2", result.Name)
	})
}

func TestServiceImpl_CreatePlan(t *testing.T) {
	t.Run("should mark the first created plan as current", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		createdPlan, err := service.CreatePlan(ctx, Plan{Name: "First"})

		// then
		assert.NoError(t, err)
		assert.True(t, createdPlan.IsCurrent)
	})
}

func TestServiceImpl_DeletePlan(t *testing.T) {
	t.Run("should refuse to delete the current plan", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		createdPlan, _ := service.CreatePlan(ctx, Plan{Name: "Only Plan"})

		// when
		deleted, err := service.DeletePlan(ctx, createdPlan.Id)

		// then
		assert.ErrorIs(t, err, ErrDeletingCurrentPlan)
		assert.False(t, deleted)
	})

	t.Run("should delete a non-current plan", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		service.CreatePlan(ctx, Plan{Name: "Current"})
		other, _ := service.CreatePlan(ctx, Plan{Name: "Old"})

		// when
		deleted, err := service.DeletePlan(ctx, other.Id)

		// then
		assert.NoError(t, err)
		assert.True(t, deleted)
	})
}

func TestServiceImpl_CreateItem(t *testing.T) {
	t.Run("should create a plan item", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		plan, _ := service.CreatePlan(ctx, Plan{Name: "August"})

		// when
		item, err := service.CreateItem(ctx, PlanItem{
			PlanId:         plan.Id,
			CategoryId:     7,
			Name:           "Rent",
			Amount:         decimal.NewFromInt(1200),
			IsFixedPayment: true,
		})

		// then
		assert.NoError(t, err)
		assert.NotZero(t, item.Id)
		assert.Equal(t, "Rent", item.Name)
		assert.True(t, decimal.NewFromInt(1200).Equal(item.Amount))
		assert.True(t, item.IsFixedPayment)
		assert.False(t, item.IsCompleted)
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		plan, _ := service.CreatePlan(ctx, Plan{Name: "August"})

		// when
		_, err := service.CreateItem(ctx, PlanItem{
			PlanId: plan.Id,
			Name:   "Broken",
			Amount: decimal.NewFromInt(-5),
		})

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must not be negative")
	})
}

func TestServiceImpl_UpdateItem(t *testing.T) {
	t.Run("should not touch the completion flag", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		plan, _ := service.CreatePlan(ctx, Plan{Name: "August"})
		item, _ := service.CreateItem(ctx, PlanItem{
			PlanId:         plan.Id,
			Name:           "Rent",
			Amount:         decimal.NewFromInt(1200),
			IsFixedPayment: true,
		})
		require.NoError(t, service.SetItemCompletion(ctx, item.Id, true, plan.Id))

		// when
		item.Name = "Rent & utilities"
		_, err := service.UpdateItem(ctx, item)

		// then
		assert.NoError(t, err)
		stored, err := service.GetItem(ctx, item.Id)
		require.NoError(t, err)
		assert.Equal(t, "Rent & utilities", stored.Name)
		assert.True(t, stored.IsCompleted)
	})
}

func TestServiceImpl_SetItemCompletion(t *testing.T) {
	t.Run("should persist the completion flag", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		plan, _ := service.CreatePlan(ctx, Plan{Name: "August"})
		item, _ := service.CreateItem(ctx, PlanItem{
			PlanId:         plan.Id,
			Name:           "Internet",
			Amount:         decimal.NewFromInt(60),
			IsFixedPayment: true,
		})

		// when
		err := service.SetItemCompletion(ctx, item.Id, true, plan.Id)

		// then
		assert.NoError(t, err)
		stored, _ := service.GetItem(ctx, item.Id)
		assert.True(t, stored.IsCompleted)
	})

	t.Run("should return ErrItemNotFound for unknown item", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := service.SetItemCompletion(ctx, 9999, true, 1)

		// then
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}
