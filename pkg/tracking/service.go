package tracking

import (
	"context"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/spenso/spenso/pkg/category"
	"github.com/spenso/spenso/pkg/expense"
	"github.com/spenso/spenso/pkg/plan"
)

// CategoryStatus is one category's tracking row: the grouped items plus the
// derived spending figures and display tones.
type CategoryStatus struct {
	CategoryGroup
	Spent               decimal.Decimal
	StillToPay          decimal.Decimal
	UsagePercent        float64
	ProgressColor       string
	RemainingColorClass string
}

// Overview is the tracking view of a single plan.
type Overview struct {
	PlanId         int
	PlanName       string
	Currency       string
	CompletedCount int
	TotalCount     int
	Categories     []CategoryStatus
}

type Service interface {
	GetOverview(ctx context.Context, planId int) (Overview, error)
	ToggleItem(ctx context.Context, itemId int, force *bool) (plan.PlanItem, error)
}

// PlanStore is the slice of the plan service the overview needs.
type PlanStore interface {
	GetPlan(ctx context.Context, planId int) (plan.Plan, error)
	GetItem(ctx context.Context, itemId int) (plan.PlanItem, error)
}

// ExpenseLister lists all expenses recorded against a plan.
type ExpenseLister interface {
	ListForPlan(ctx context.Context, planId int) ([]expense.Expense, error)
}

// CategorySource lists the current user's categories.
type CategorySource interface {
	GetAll(ctx context.Context) ([]category.Category, error)
}

type ServiceImpl struct {
	plans      PlanStore
	expenses   ExpenseLister
	categories CategorySource
	tracker    Tracker
}

func NewService(
	plans PlanStore,
	expenses ExpenseLister,
	categories CategorySource,
	tracker Tracker,
) *ServiceImpl {
	return &ServiceImpl{
		plans:      plans,
		expenses:   expenses,
		categories: categories,
		tracker:    tracker,
	}
}

// GetOverview loads the plan, its expenses and the user's categories, then
// derives the per-category tracking rows.
func (s *ServiceImpl) GetOverview(ctx context.Context, planId int) (Overview, error) {
	trackedPlan, err := s.plans.GetPlan(ctx, planId)
	if err != nil {
		log.Errorf("Error fetching plan %d for tracking: %v", planId, err)
		return Overview{}, err
	}

	planExpenses, err := s.expenses.ListForPlan(ctx, planId)
	if err != nil {
		log.Errorf("Error fetching expenses for plan %d: %v", planId, err)
		return Overview{}, err
	}
	// Expenses derived from completed fixed payments carry a plan item link.
	// They count towards total spending but must not consume the non-fixed
	// envelope, which is tracked by free-standing expenses only.
	spentByCategory := make(map[int]decimal.Decimal)
	envelopeSpentByCategory := make(map[int]decimal.Decimal)
	for _, e := range planExpenses {
		spentByCategory[e.CategoryId] = spentByCategory[e.CategoryId].Add(e.Amount)
		if e.PlanItemId == nil {
			envelopeSpentByCategory[e.CategoryId] = envelopeSpentByCategory[e.CategoryId].Add(e.Amount)
		}
	}

	allCategories, err := s.categories.GetAll(ctx)
	if err != nil {
		log.Errorf("Error fetching categories: %v", err)
		return Overview{}, err
	}
	categoriesById := make(map[int]category.Category, len(allCategories))
	for _, cat := range allCategories {
		categoriesById[cat.Id] = cat
	}
	lookup := func(categoryId int) (category.Category, bool) {
		cat, ok := categoriesById[categoryId]
		return cat, ok
	}

	classified := ClassifyItems(trackedPlan.Items)
	groups := GroupByCategory(trackedPlan.Items, lookup)

	statuses := make([]CategoryStatus, 0, len(groups))
	for _, group := range groups {
		spent := spentByCategory[group.Category.Id]
		planned := group.TotalPlanned
		for _, item := range group.NonFixedItems {
			planned = planned.Add(item.Amount)
		}
		percentage := UsagePercent(spent, planned)
		statuses = append(statuses, CategoryStatus{
			CategoryGroup:       group,
			Spent:               spent,
			StillToPay:          StillToPay(group.Category.Id, trackedPlan.Items, envelopeSpentByCategory[group.Category.Id]),
			UsagePercent:        percentage,
			ProgressColor:       ProgressColor(percentage),
			RemainingColorClass: RemainingColorClass(percentage),
		})
	}

	return Overview{
		PlanId:         trackedPlan.Id,
		PlanName:       trackedPlan.Name,
		Currency:       trackedPlan.Currency,
		CompletedCount: classified.CompletedCount,
		TotalCount:     classified.TotalCount,
		Categories:     statuses,
	}, nil
}

// ToggleItem loads the item and delegates the transition to the tracker.
func (s *ServiceImpl) ToggleItem(ctx context.Context, itemId int, force *bool) (plan.PlanItem, error) {
	item, err := s.plans.GetItem(ctx, itemId)
	if err != nil {
		log.Errorf("Error fetching item %d: %v", itemId, err)
		return plan.PlanItem{}, err
	}
	return s.tracker.Toggle(ctx, item, force)
}
