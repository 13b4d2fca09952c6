package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/spenso/spenso/pkg/user"
)

type Service interface {
	CreateExpense(ctx context.Context, expense Expense) (Expense, error)
	ListForPlan(ctx context.Context, planId int) ([]Expense, error)
	GetExpensesForPlanItem(ctx context.Context, planItemId int) ([]Expense, error)
	DeleteExpensesBatch(ctx context.Context, expenseIds []int, planId int, planItemId int, hasRemainingExpensesForItem bool) error
	DeleteExpense(ctx context.Context, expenseId int) (bool, error)
	SpentByCategory(ctx context.Context, planId int) (map[int]decimal.Decimal, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) CreateExpense(ctx context.Context, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if expense.Amount.IsNegative() {
		return Expense{}, fmt.Errorf("expense amount must not be negative")
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}
	id, err := s.repo.Store(ctx, userId, expense)
	if err != nil {
		return Expense{}, err
	}
	expense.Id = id
	return expense, nil
}

func (s *ServiceImpl) ListForPlan(ctx context.Context, planId int) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListForPlan(ctx, userId, planId)
}

func (s *ServiceImpl) GetExpensesForPlanItem(ctx context.Context, planItemId int) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListForPlanItem(ctx, userId, planItemId)
}

// DeleteExpensesBatch removes all given expenses as one atomic operation.
// hasRemainingExpensesForItem tells the persistence layer whether any expenses
// will still be attributed to planItemId afterwards, so ancillary state for the
// item can be cleared when the last one goes.
func (s *ServiceImpl) DeleteExpensesBatch(ctx context.Context, expenseIds []int, planId int, planItemId int, hasRemainingExpensesForItem bool) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.DeleteBatch(ctx, userId, expenseIds)
	if err != nil {
		return err
	}
	log.Debugf("deleted %d expenses for item %d in plan %d (remaining attributed: %t)",
		deleted, planItemId, planId, hasRemainingExpensesForItem)
	return nil
}

func (s *ServiceImpl) DeleteExpense(ctx context.Context, expenseId int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.Delete(ctx, userId, expenseId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("expense not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", expenseId, userId)
	}
	return deleted, nil
}

func (s *ServiceImpl) SpentByCategory(ctx context.Context, planId int) (map[int]decimal.Decimal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.SpentByCategory(ctx, userId, planId)
}
