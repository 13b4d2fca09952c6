package currency

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionResult is one finished currency conversion.
type ConversionResult struct {
	From            string
	To              string
	OriginalAmount  decimal.Decimal
	ConvertedAmount decimal.Decimal
	Rate            decimal.Decimal
	Timestamp       time.Time
}

// State of the conversion coordinator.
type State string

const (
	StateIdle       State = "idle"
	StateConverting State = "converting"
)

// Status is a snapshot of the coordinator. Result and ErrorMessage are
// mutually exclusive, at most one of them is set.
type Status struct {
	State        State
	Result       *ConversionResult
	ErrorMessage string
}
