package tracking

import (
	"slices"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/spenso/spenso/pkg/category"
	"github.com/spenso/spenso/pkg/plan"
)

// Classified splits a plan's items by payment kind. Fixed payments are
// discrete bills that get ticked off one by one, non-fixed items are spending
// envelopes consumed by expenses. CompletedCount and TotalCount cover fixed
// payments only, since envelopes have no completion state.
type Classified struct {
	Fixed          []plan.PlanItem
	NonFixed       []plan.PlanItem
	CompletedCount int
	TotalCount     int
}

// CategoryGroup is one category's slice of a plan, with fixed items sorted
// incomplete first. TotalPlanned counts fixed payments only; envelope budgets
// are tracked against expenses, not against a checkable total.
type CategoryGroup struct {
	Category       category.Category
	FixedItems     []plan.PlanItem
	NonFixedItems  []plan.PlanItem
	TotalPlanned   decimal.Decimal
	CompletedCount int
}

// CategoryLookup resolves a category id. The second return reports whether
// the category exists.
type CategoryLookup func(categoryId int) (category.Category, bool)

// ClassifyItems partitions items by IsFixedPayment and counts completion of
// the fixed ones. Fixed items come back incomplete first, keeping their
// relative order otherwise; the non-fixed partition keeps its input order.
func ClassifyItems(items []plan.PlanItem) Classified {
	var classified Classified
	for _, item := range items {
		if item.IsFixedPayment {
			classified.Fixed = append(classified.Fixed, item)
			classified.TotalCount++
			if item.IsCompleted {
				classified.CompletedCount++
			}
		} else {
			classified.NonFixed = append(classified.NonFixed, item)
		}
	}
	slices.SortStableFunc(classified.Fixed, byCompletionState)
	return classified
}

func byCompletionState(a plan.PlanItem, b plan.PlanItem) int {
	if a.IsCompleted == b.IsCompleted {
		return 0
	}
	if a.IsCompleted {
		return 1
	}
	return -1
}

// GroupByCategory buckets items per category and resolves each bucket through
// the lookup. Items whose category cannot be resolved are dropped with a
// warning. Fixed items inside a group keep their original order apart from
// completed ones sinking to the bottom, and groups come back sorted by
// category name using locale collation.
func GroupByCategory(items []plan.PlanItem, lookup CategoryLookup) []CategoryGroup {
	buckets := make(map[int]*CategoryGroup)
	order := make([]int, 0)
	for _, item := range items {
		group, ok := buckets[item.CategoryId]
		if !ok {
			cat, found := lookup(item.CategoryId)
			if !found {
				log.Warnf("Dropping plan item %d with unknown category %d", item.Id, item.CategoryId)
				continue
			}
			group = &CategoryGroup{Category: cat, TotalPlanned: decimal.Zero}
			buckets[item.CategoryId] = group
			order = append(order, item.CategoryId)
		}
		if item.IsFixedPayment {
			group.FixedItems = append(group.FixedItems, item)
			group.TotalPlanned = group.TotalPlanned.Add(item.Amount)
			if item.IsCompleted {
				group.CompletedCount++
			}
		} else {
			group.NonFixedItems = append(group.NonFixedItems, item)
		}
	}

	groups := make([]CategoryGroup, 0, len(order))
	for _, categoryId := range order {
		group := buckets[categoryId]
		slices.SortStableFunc(group.FixedItems, byCompletionState)
		groups = append(groups, *group)
	}

	collator := collate.New(language.Und)
	slices.SortStableFunc(groups, func(a CategoryGroup, b CategoryGroup) int {
		return collator.CompareString(a.Category.Name, b.Category.Name)
	})
	return groups
}
