package expense

import (
	"context"

	"github.com/shopspring/decimal"
)

type RepositoryStub struct {
	nextId int
	data   map[int]Expense
}

func NewStubRepository() *RepositoryStub {
	return &RepositoryStub{data: map[int]Expense{}}
}

func (s *RepositoryStub) Store(ctx context.Context, userId int, expense Expense) (int, error) {
	s.nextId++
	expense.Id = s.nextId
	s.data[expense.Id] = expense
	return expense.Id, nil
}

func (s *RepositoryStub) GetById(ctx context.Context, userId int, expenseId int) (Expense, error) {
	expense, ok := s.data[expenseId]
	if !ok {
		return Expense{}, ErrExpenseNotFound
	}
	return expense, nil
}

func (s *RepositoryStub) ListForPlan(ctx context.Context, userId int, planId int) ([]Expense, error) {
	var expenses []Expense
	for _, expense := range s.data {
		if expense.PlanId == planId {
			expenses = append(expenses, expense)
		}
	}
	return expenses, nil
}

func (s *RepositoryStub) ListForPlanItem(ctx context.Context, userId int, planItemId int) ([]Expense, error) {
	var expenses []Expense
	for _, expense := range s.data {
		if expense.PlanItemId != nil && *expense.PlanItemId == planItemId {
			expenses = append(expenses, expense)
		}
	}
	return expenses, nil
}

func (s *RepositoryStub) DeleteBatch(ctx context.Context, userId int, expenseIds []int) (int, error) {
	for _, id := range expenseIds {
		if _, ok := s.data[id]; !ok {
			return 0, ErrExpenseNotFound
		}
	}
	for _, id := range expenseIds {
		delete(s.data, id)
	}
	return len(expenseIds), nil
}

func (s *RepositoryStub) Delete(ctx context.Context, userId int, expenseId int) (bool, error) {
	if _, ok := s.data[expenseId]; !ok {
		return false, nil
	}
	delete(s.data, expenseId)
	return true, nil
}

func (s *RepositoryStub) SpentByCategory(ctx context.Context, userId int, planId int) (map[int]decimal.Decimal, error) {
	totals := make(map[int]decimal.Decimal)
	for _, expense := range s.data {
		if expense.PlanId == planId {
			totals[expense.CategoryId] = totals[expense.CategoryId].Add(expense.Amount)
		}
	}
	return totals, nil
}

func (s *RepositoryStub) Cleanup() {
	s.data = map[int]Expense{}
}
