// =============================================================================
// Sales Analytics - Exchange Rate Client
// =============================================================================
//
// HTTP client for the USD exchange-rate endpoint. Failure handling mirrors
// the catalog client, except the fallback is not empty: the configured
// default rates (EUR 0.92, GBP 0.79, INR 83.12) are substituted so the
// multi-currency report section can always be rendered.
//
// =============================================================================

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Rates holds the USD exchange rates the report needs.
type Rates struct {
	EUR  float64
	GBP  float64
	INR  float64
	Date string
}

// RatesClient fetches current exchange rates, with configured fallbacks.
type RatesClient struct {
	url        string
	httpClient *http.Client
	timeout    time.Duration
	fallback   Rates
	log        zerolog.Logger
}

// NewRatesClient creates a rates client. The fallback rates are injected
// configuration, not hidden constants.
func NewRatesClient(url string, timeout time.Duration, fallback Rates, log zerolog.Logger) *RatesClient {
	return &RatesClient{
		url:        url,
		httpClient: &http.Client{},
		timeout:    timeout,
		fallback:   fallback,
		log:        log,
	}
}

// FetchRates fetches the current USD rates. On any failure (network error,
// timeout, non-2xx status, malformed payload) it returns the configured
// fallback rates and the batch continues. No retries are performed.
func (c *RatesClient) FetchRates(ctx context.Context) Rates {
	rates, err := c.fetch(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("exchange rates unavailable, using configured fallback rates")
		return c.fallback
	}

	c.log.Info().Str("date", rates.Date).Msg("exchange rates fetched")
	return rates
}

func (c *RatesClient) fetch(ctx context.Context) (Rates, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, c.url, nil)
	if err != nil {
		return Rates{}, fmt.Errorf("failed to build rates request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Rates{}, fmt.Errorf("rates request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Rates{}, fmt.Errorf("rates endpoint returned status %d", resp.StatusCode)
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
		Date  string             `json:"date"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Rates{}, fmt.Errorf("failed to decode rates response: %w", err)
	}

	if payload.Rates == nil {
		return Rates{}, fmt.Errorf("rates response carried no rates map")
	}

	return Rates{
		EUR:  payload.Rates["EUR"],
		GBP:  payload.Rates["GBP"],
		INR:  payload.Rates["INR"],
		Date: payload.Date,
	}, nil
}
