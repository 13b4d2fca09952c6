package plan

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrPlanNotFound = errors.New("plan not found")
var ErrItemNotFound = errors.New("plan item not found")
var ErrDeletingCurrentPlan = errors.New("cannot delete current plan")

// Plan is a budgeting period with planned items and a display currency.
type Plan struct {
	Id        int
	Name      string
	Currency  string
	IsCurrent bool
	Items     []PlanItem
}

// PlanItem is a budgeted line entry within a plan.
//
// A fixed payment item is a discrete, checkable commitment ("Rent: 1200").
// A non-fixed item is a rolling allotment that is never individually checked
// off but still counts toward planned totals. IsCompleted is meaningful only
// when IsFixedPayment is true and is mutated exclusively by the tracking
// package.
type PlanItem struct {
	Id             int
	PlanId         int
	CategoryId     int
	Name           string
	Amount         decimal.Decimal
	IsFixedPayment bool
	IsCompleted    bool
}
