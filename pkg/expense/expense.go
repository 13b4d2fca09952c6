package expense

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrExpenseNotFound = errors.New("expense not found")

// Expense is an actual recorded outflow, optionally linked to the plan item it
// pays off. PlanItemId is nil for ad-hoc expenses.
type Expense struct {
	Id         int
	PlanId     int
	CategoryId int
	PlanItemId *int
	Name       string
	Amount     decimal.Decimal
	Date       time.Time
}
