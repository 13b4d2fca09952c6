package tracking

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/spenso/spenso/pkg/category"
	"github.com/spenso/spenso/pkg/plan"
)

func lookupFromCategories(categories ...category.Category) CategoryLookup {
	byId := make(map[int]category.Category)
	for _, cat := range categories {
		byId[cat.Id] = cat
	}
	return func(categoryId int) (category.Category, bool) {
		cat, ok := byId[categoryId]
		return cat, ok
	}
}

func TestClassifyItems(t *testing.T) {
	t.Run("should partition by payment kind and count completed fixed items", func(t *testing.T) {
		// given
		items := []plan.PlanItem{
			{Id: 1, IsFixedPayment: true, IsCompleted: true},
			{Id: 2, IsFixedPayment: false},
			{Id: 3, IsFixedPayment: true, IsCompleted: false},
			{Id: 4, IsFixedPayment: false},
		}

		// when
		classified := ClassifyItems(items)

		// then
		assert.Len(t, classified.Fixed, 2)
		assert.Len(t, classified.NonFixed, 2)
		assert.Equal(t, 1, classified.CompletedCount)
		assert.Equal(t, 2, classified.TotalCount)
		assert.Equal(t, 3, classified.Fixed[0].Id, "incomplete item must come first")
		assert.Equal(t, 1, classified.Fixed[1].Id)
		assert.Equal(t, 2, classified.NonFixed[0].Id)
		assert.Equal(t, 4, classified.NonFixed[1].Id)
	})

	t.Run("should not count non-fixed items in the total", func(t *testing.T) {
		// given
		items := []plan.PlanItem{
			{Id: 1, IsFixedPayment: true},
			{Id: 2, IsFixedPayment: false},
			{Id: 3, IsFixedPayment: false},
		}

		// when
		classified := ClassifyItems(items)

		// then
		assert.Equal(t, 1, classified.TotalCount)
		assert.Equal(t, 0, classified.CompletedCount)
	})

	t.Run("should sort fixed items incomplete first keeping relative order", func(t *testing.T) {
		// given
		items := []plan.PlanItem{
			{Id: 1, Name: "A", IsFixedPayment: true, IsCompleted: true},
			{Id: 2, Name: "B", IsFixedPayment: true, IsCompleted: false},
			{Id: 3, Name: "C", IsFixedPayment: true, IsCompleted: true},
		}

		// when
		classified := ClassifyItems(items)

		// then
		names := make([]string, 0, len(classified.Fixed))
		for _, item := range classified.Fixed {
			names = append(names, item.Name)
		}
		assert.Equal(t, []string{"B", "A", "C"}, names)
	})

	t.Run("should handle empty input", func(t *testing.T) {
		classified := ClassifyItems(nil)

		assert.Empty(t, classified.Fixed)
		assert.Empty(t, classified.NonFixed)
		assert.Equal(t, 0, classified.CompletedCount)
		assert.Equal(t, 0, classified.TotalCount)
	})
}

func TestGroupByCategory(t *testing.T) {
	t.Run("should group items per category and sum fixed amounts only", func(t *testing.T) {
		// given
		lookup := lookupFromCategories(
			category.Category{Id: 1, Name: "Housing"},
			category.Category{Id: 2, Name: "Food"},
		)
		items := []plan.PlanItem{
			{Id: 1, CategoryId: 1, Amount: decimal.NewFromInt(900), IsFixedPayment: true},
			{Id: 2, CategoryId: 2, Amount: decimal.NewFromInt(300), IsFixedPayment: false},
			{Id: 3, CategoryId: 1, Amount: decimal.NewFromInt(60), IsFixedPayment: true, IsCompleted: true},
		}

		// when
		groups := GroupByCategory(items, lookup)

		// then
		assert.Len(t, groups, 2)
		assert.Equal(t, "Food", groups[0].Category.Name)
		assert.Equal(t, "Housing", groups[1].Category.Name)
		housing := groups[1]
		assert.Len(t, housing.FixedItems, 2)
		assert.True(t, decimal.NewFromInt(960).Equal(housing.TotalPlanned))
		assert.Equal(t, 1, housing.CompletedCount)
		food := groups[0]
		assert.Len(t, food.NonFixedItems, 1)
		assert.True(t, food.TotalPlanned.IsZero())
	})

	t.Run("should move completed fixed items after incomplete ones keeping relative order", func(t *testing.T) {
		// given
		lookup := lookupFromCategories(category.Category{Id: 1, Name: "Bills"})
		items := []plan.PlanItem{
			{Id: 1, CategoryId: 1, IsFixedPayment: true, IsCompleted: true},
			{Id: 2, CategoryId: 1, IsFixedPayment: true, IsCompleted: false},
			{Id: 3, CategoryId: 1, IsFixedPayment: true, IsCompleted: true},
			{Id: 4, CategoryId: 1, IsFixedPayment: true, IsCompleted: false},
		}

		// when
		groups := GroupByCategory(items, lookup)

		// then
		ids := make([]int, 0, 4)
		for _, item := range groups[0].FixedItems {
			ids = append(ids, item.Id)
		}
		assert.Equal(t, []int{2, 4, 1, 3}, ids)
	})

	t.Run("should drop items with unresolvable category", func(t *testing.T) {
		// given
		lookup := lookupFromCategories(category.Category{Id: 1, Name: "Bills"})
		items := []plan.PlanItem{
			{Id: 1, CategoryId: 1, IsFixedPayment: true},
			{Id: 2, CategoryId: 99, IsFixedPayment: true},
		}

		// when
		groups := GroupByCategory(items, lookup)

		// then
		assert.Len(t, groups, 1)
		assert.Len(t, groups[0].FixedItems, 1)
		assert.Equal(t, 1, groups[0].FixedItems[0].Id)
	})

	t.Run("should sort groups by category name with locale collation", func(t *testing.T) {
		// given
		lookup := lookupFromCategories(
			category.Category{Id: 1, Name: "Zakupy"},
			category.Category{Id: 2, Name: "Éducation"},
			category.Category{Id: 3, Name: "Auto"},
		)
		items := []plan.PlanItem{
			{Id: 1, CategoryId: 1, IsFixedPayment: true},
			{Id: 2, CategoryId: 2, IsFixedPayment: true},
			{Id: 3, CategoryId: 3, IsFixedPayment: true},
		}

		// when
		groups := GroupByCategory(items, lookup)

		// then
		names := []string{groups[0].Category.Name, groups[1].Category.Name, groups[2].Category.Name}
		assert.Equal(t, []string{"Auto", "Éducation", "Zakupy"}, names)
	})
}
