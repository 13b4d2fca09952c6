package event_bus

import "github.com/shopspring/decimal"

// PlanItemCompleted is published after a fixed payment item has been marked
// completed and its derived expense has been persisted.
type PlanItemCompleted struct {
	ItemId     int
	PlanId     int
	CategoryId int
	Name       string
	Amount     decimal.Decimal
	ExpenseId  int
}

// PlanItemUncompleted is published after a fixed payment item has been marked
// incomplete and all of its linked expenses have been removed.
type PlanItemUncompleted struct {
	ItemId            int
	PlanId            int
	RemovedExpenseIds []int
}
