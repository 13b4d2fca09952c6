package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/spenso/spenso/internal/config"
)

const ratesCacheTTL = time.Hour

// RateClient resolves the exchange rate between two currency codes.
type RateClient interface {
	GetRate(ctx context.Context, from string, to string) (decimal.Decimal, error)
}

type cachedRates struct {
	rates     map[string]decimal.Decimal
	fetchedAt time.Time
}

// HTTPRateClient fetches exchange rates from an open.er-api.com compatible
// endpoint and caches one rate table per base currency for an hour.
type HTTPRateClient struct {
	httpClient *http.Client
	apiUrl     string

	mu    sync.Mutex
	cache map[string]cachedRates
}

func NewHTTPRateClient(cfg config.Currency) *HTTPRateClient {
	return &HTTPRateClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiUrl:     strings.TrimRight(cfg.ApiUrl, "/"),
		cache:      make(map[string]cachedRates),
	}
}

type ratesResponse struct {
	Result   string                     `json:"result"`
	BaseCode string                     `json:"base_code"`
	Rates    map[string]decimal.Decimal `json:"rates"`
}

func (c *HTTPRateClient) GetRate(ctx context.Context, from string, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	rates, err := c.ratesFor(ctx, from)
	if err != nil {
		return decimal.Decimal{}, err
	}
	rate, ok := rates[to]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("no exchange rate from %s to %s", from, to)
	}
	return rate, nil
}

func (c *HTTPRateClient) ratesFor(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	c.mu.Lock()
	cached, ok := c.cache[base]
	c.mu.Unlock()
	if ok && time.Since(cached.fetchedAt) < ratesCacheTTL {
		return cached.rates, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiUrl+"/"+base, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching exchange rates for %s: %w", base, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exchange rate endpoint returned status %d for %s", resp.StatusCode, base)
	}

	var parsed ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding exchange rates for %s: %w", base, err)
	}
	if parsed.Result != "success" {
		return nil, fmt.Errorf("exchange rate endpoint reported %q for %s", parsed.Result, base)
	}

	log.Debugf("Fetched %d exchange rates for base %s", len(parsed.Rates), base)
	c.mu.Lock()
	c.cache[base] = cachedRates{rates: parsed.Rates, fetchedAt: time.Now()}
	c.mu.Unlock()
	return parsed.Rates, nil
}
