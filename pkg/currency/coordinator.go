package currency

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/spenso/spenso/internal/utils"
)

const defaultDebounceInterval = 500 * time.Millisecond

// msgConversionFailed is the fallback shown when the rate client fails
// without a message of its own.
const msgConversionFailed = "Failed to convert currency. Please try again."

// Coordinator serializes currency conversions for interactive input. It keeps
// at most one result or one error, debounces rapid input and discards
// responses of conversions that were superseded or reset while in flight.
type Coordinator struct {
	client   RateClient
	clock    utils.Clock
	debounce time.Duration

	mu           sync.Mutex
	state        State
	result       *ConversionResult
	errorMessage string
	timer        *time.Timer
	seq          uint64
}

func NewCoordinator(client RateClient, clock utils.Clock) *Coordinator {
	return &Coordinator{
		client:   client,
		clock:    clock,
		debounce: defaultDebounceInterval,
		state:    StateIdle,
	}
}

// Status returns a snapshot of the coordinator state.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Coordinator) snapshotLocked() Status {
	status := Status{State: c.state, ErrorMessage: c.errorMessage}
	if c.result != nil {
		copied := *c.result
		status.Result = &copied
	}
	return status
}

func validInput(from string, to string, amount decimal.Decimal) bool {
	return from != "" && to != "" && from != to && amount.IsPositive()
}

// PerformConversion runs one conversion synchronously. Incomplete input, a
// non-positive amount or identical currencies clear any previous result and
// error without calling the rate client.
func (c *Coordinator) PerformConversion(ctx context.Context, from string, to string, amount decimal.Decimal) Status {
	c.mu.Lock()
	if !validInput(from, to, amount) {
		c.result = nil
		c.errorMessage = ""
		c.state = StateIdle
		defer c.mu.Unlock()
		return c.snapshotLocked()
	}

	c.seq++
	token := c.seq
	c.state = StateConverting
	c.mu.Unlock()

	rate, err := c.client.GetRate(ctx, from, to)

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.seq {
		log.Debugf("Discarding stale conversion response %s to %s", from, to)
		return c.snapshotLocked()
	}
	c.state = StateIdle
	if err != nil {
		log.Errorf("Error converting %s to %s: %v", from, to, err)
		c.result = nil
		c.errorMessage = err.Error()
		if c.errorMessage == "" {
			c.errorMessage = msgConversionFailed
		}
		return c.snapshotLocked()
	}
	c.result = &ConversionResult{
		From:            from,
		To:              to,
		OriginalAmount:  amount,
		ConvertedAmount: amount.Mul(rate),
		Rate:            rate,
		Timestamp:       c.clock.Now(),
	}
	c.errorMessage = ""
	return c.snapshotLocked()
}

// ConvertWithDebounce clears the current result and error immediately and
// schedules the conversion after the debounce interval. A newer call replaces
// a pending one, so only the last input within the interval is converted.
func (c *Coordinator) ConvertWithDebounce(ctx context.Context, from string, to string, amount decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.result = nil
	c.errorMessage = ""
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if !validInput(from, to, amount) {
		c.state = StateIdle
		return
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.PerformConversion(ctx, from, to, amount)
	})
}

// Reset cancels any pending debounced conversion, invalidates in-flight
// responses and clears the state.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.seq++
	c.state = StateIdle
	c.result = nil
	c.errorMessage = ""
}
