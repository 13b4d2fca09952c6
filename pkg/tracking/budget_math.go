package tracking

import (
	"github.com/shopspring/decimal"

	"github.com/spenso/spenso/pkg/plan"
)

// maxUsagePercent caps the reported budget usage so runaway spending on a
// tiny budget does not blow up the progress rendering.
const maxUsagePercent = 999

type usageBand int

const (
	bandUnder usageBand = iota
	bandExact
	bandNear
	bandOver
)

func bandFor(percentage float64) usageBand {
	switch {
	case percentage < 100:
		return bandUnder
	case percentage == 100:
		return bandExact
	case percentage <= 110:
		return bandNear
	default:
		return bandOver
	}
}

// StillToPay returns the outstanding amount for a category: every incomplete
// fixed payment in full, plus whatever part of the non-fixed budget the actual
// expenses have not consumed yet. Completed fixed payments and overspending on
// the non-fixed part contribute nothing.
func StillToPay(categoryId int, items []plan.PlanItem, actualExpenses decimal.Decimal) decimal.Decimal {
	fixedOutstanding := decimal.Zero
	nonFixedPlanned := decimal.Zero
	for _, item := range items {
		if item.CategoryId != categoryId {
			continue
		}
		if item.IsFixedPayment {
			if !item.IsCompleted {
				fixedOutstanding = fixedOutstanding.Add(item.Amount)
			}
		} else {
			nonFixedPlanned = nonFixedPlanned.Add(item.Amount)
		}
	}
	nonFixedRemaining := nonFixedPlanned.Sub(actualExpenses)
	if nonFixedRemaining.IsNegative() {
		nonFixedRemaining = decimal.Zero
	}
	return fixedOutstanding.Add(nonFixedRemaining)
}

// UsagePercent returns spent as a percentage of budget, capped at
// maxUsagePercent. A zero budget reads as 0% regardless of spending.
func UsagePercent(spent decimal.Decimal, budget decimal.Decimal) float64 {
	if budget.IsZero() {
		return 0
	}
	percentage := spent.Div(budget).Mul(decimal.NewFromInt(100)).InexactFloat64()
	if percentage > maxUsagePercent {
		return maxUsagePercent
	}
	return percentage
}

// ProgressColor maps a usage percentage to the tone of the progress bar.
func ProgressColor(percentage float64) string {
	switch bandFor(percentage) {
	case bandUnder:
		return "primary"
	case bandExact:
		return "success"
	case bandNear:
		return "warning"
	default:
		return "danger"
	}
}

// RemainingColorClass maps the same usage bands to the text tone of the
// remaining-amount label.
func RemainingColorClass(percentage float64) string {
	switch bandFor(percentage) {
	case bandUnder:
		return "text-default"
	case bandExact:
		return "text-success"
	case bandNear:
		return "text-warning"
	default:
		return "text-danger"
	}
}
