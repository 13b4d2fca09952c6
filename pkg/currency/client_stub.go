package currency

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// StubRateClient is an in-memory RateClient for tests. Rates are keyed by
// "FROM/TO". When Block is set, GetRate waits on it before answering, which
// lets tests hold a conversion in flight.
type StubRateClient struct {
	mu    sync.Mutex
	Rates map[string]decimal.Decimal
	Err   error
	Block chan struct{}
	calls int
}

func NewStubRateClient() *StubRateClient {
	return &StubRateClient{Rates: make(map[string]decimal.Decimal)}
}

func (s *StubRateClient) GetRate(_ context.Context, from string, to string) (decimal.Decimal, error) {
	s.mu.Lock()
	s.calls++
	block := s.Block
	err := s.Err
	rate, ok := s.Rates[from+"/"+to]
	s.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("no exchange rate from %s to %s", from, to)
	}
	return rate, nil
}

func (s *StubRateClient) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
