package plan

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spenso/spenso/internal/test_utils"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	container, openDb := test_utils.TestWithDB()
	db = openDb()
	code := m.Run()
	db.Close()
	_ = container.Terminate(context.Background())
	os.Exit(code)
}

var userSeq int

func setupTestRepository(t *testing.T) (context.Context, Repository, int) {
	ctx := context.Background()
	repository := NewRepository(db)

	userSeq++
	var userId int
	err := db.QueryRow(ctx,
		`INSERT INTO users (uid, username, display_name) VALUES ($1, $2, $3) RETURNING id`,
		fmt.Sprintf("uid-plan-%d", userSeq), fmt.Sprintf("plan-user-%d", userSeq), "Plan User",
	).Scan(&userId)
	require.NoError(t, err)
	return ctx, repository, userId
}

func storeCategory(t *testing.T, ctx context.Context, userId int, name string) int {
	var categoryId int
	err := db.QueryRow(ctx,
		`INSERT INTO category (user_id, name) VALUES ($1, $2) RETURNING id`,
		userId, name,
	).Scan(&categoryId)
	require.NoError(t, err)
	return categoryId
}

func TestRepositoryImpl_CreatePlan(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)

	// when
	created, err := repo.CreatePlan(ctx, userId, Plan{Name: "March", Currency: "EUR"})
	require.NoError(t, err)

	// then
	storedPlans, err := repo.ListPlans(ctx, userId)
	require.NoError(t, err)

	assert.Equal(t, "March", created.Name)
	assert.Len(t, storedPlans, 1)
	assert.Equal(t, created.Name, storedPlans[0].Name)

	// should set the plan as current when it is the first one created
	assert.True(t, storedPlans[0].IsCurrent)

	// a second plan must not steal the current flag
	second, err := repo.CreatePlan(ctx, userId, Plan{Name: "April"})
	require.NoError(t, err)
	assert.False(t, second.IsCurrent)
}

func TestRepositoryImpl_UpdatePlan_ShouldMoveCurrentFlag(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	first, err := repo.CreatePlan(ctx, userId, Plan{Name: "March"})
	require.NoError(t, err)
	second, err := repo.CreatePlan(ctx, userId, Plan{Name: "April"})
	require.NoError(t, err)

	// when
	second.IsCurrent = true
	_, err = repo.UpdatePlan(ctx, userId, second)
	require.NoError(t, err)

	// then
	current, err := repo.GetCurrentPlan(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, second.Id, current.Id)

	previous, err := repo.GetPlan(ctx, userId, first.Id)
	require.NoError(t, err)
	assert.False(t, previous.IsCurrent)
}

func TestRepositoryImpl_DeletePlan(t *testing.T) {
	t.Run("should refuse to delete the current plan", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		current, err := repo.CreatePlan(ctx, userId, Plan{Name: "March"})
		require.NoError(t, err)

		// when
		ok, err := repo.DeletePlan(ctx, userId, current.Id)

		// then
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrDeletingCurrentPlan)
	})

	t.Run("should delete a non-current plan", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		_, err := repo.CreatePlan(ctx, userId, Plan{Name: "March"})
		require.NoError(t, err)
		other, err := repo.CreatePlan(ctx, userId, Plan{Name: "April"})
		require.NoError(t, err)

		// when
		ok, err := repo.DeletePlan(ctx, userId, other.Id)

		// then
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestRepositoryImpl_Items(t *testing.T) {
	t.Run("should store and load items with the plan", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		created, err := repo.CreatePlan(ctx, userId, Plan{Name: "March"})
		require.NoError(t, err)
		categoryId := storeCategory(t, ctx, userId, "Housing")

		// when
		itemId, err := repo.StoreItem(ctx, userId, PlanItem{
			PlanId:         created.Id,
			CategoryId:     categoryId,
			Name:           "Rent",
			Amount:         decimal.RequireFromString("900.50"),
			IsFixedPayment: true,
		})
		require.NoError(t, err)

		// then
		loaded, err := repo.GetPlan(ctx, userId, created.Id)
		require.NoError(t, err)
		require.Len(t, loaded.Items, 1)
		item := loaded.Items[0]
		assert.Equal(t, itemId, item.Id)
		assert.Equal(t, "Rent", item.Name)
		assert.True(t, decimal.RequireFromString("900.50").Equal(item.Amount))
		assert.True(t, item.IsFixedPayment)
		assert.False(t, item.IsCompleted)
	})

	t.Run("should not change completion on regular item update", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		created, err := repo.CreatePlan(ctx, userId, Plan{Name: "March"})
		require.NoError(t, err)
		categoryId := storeCategory(t, ctx, userId, "Housing")
		itemId, err := repo.StoreItem(ctx, userId, PlanItem{
			PlanId: created.Id, CategoryId: categoryId, Name: "Rent",
			Amount: decimal.NewFromInt(900), IsFixedPayment: true,
		})
		require.NoError(t, err)
		ok, err := repo.SetItemCompletion(ctx, userId, itemId, true)
		require.NoError(t, err)
		require.True(t, ok)

		// when
		ok, err = repo.UpdateItem(ctx, userId, PlanItem{
			Id: itemId, PlanId: created.Id, CategoryId: categoryId, Name: "Rent updated",
			Amount: decimal.NewFromInt(950), IsFixedPayment: true,
		})
		require.NoError(t, err)
		require.True(t, ok)

		// then
		item, err := repo.GetItem(ctx, userId, itemId)
		require.NoError(t, err)
		assert.Equal(t, "Rent updated", item.Name)
		assert.True(t, item.IsCompleted, "completion flag must survive item updates")
	})

	t.Run("should scope items to the owning user", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		_, _, otherUserId := setupTestRepository(t)
		created, err := repo.CreatePlan(ctx, userId, Plan{Name: "March"})
		require.NoError(t, err)
		categoryId := storeCategory(t, ctx, userId, "Housing")
		itemId, err := repo.StoreItem(ctx, userId, PlanItem{
			PlanId: created.Id, CategoryId: categoryId, Name: "Rent",
			Amount: decimal.NewFromInt(900), IsFixedPayment: true,
		})
		require.NoError(t, err)

		// when
		_, err = repo.GetItem(ctx, otherUserId, itemId)

		// then
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}
