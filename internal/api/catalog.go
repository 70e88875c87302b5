// =============================================================================
// Sales Analytics - Product Catalog Client
// =============================================================================
//
// HTTP client for the external product catalog. The catalog is fetched once
// per run and treated as a read-only snapshot; the pipeline never refreshes
// it mid-batch. Every failure mode (network error, timeout, non-2xx status,
// malformed payload) maps to the same behavior: log a warning, return an
// empty mapping, and let the batch continue with unenriched records.
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

// Product holds the catalog attributes the pipeline cares about.
type Product struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
}

// CatalogClient fetches the product catalog snapshot.
type CatalogClient struct {
	url        string
	httpClient *http.Client
	timeout    time.Duration
	log        zerolog.Logger
}

// NewCatalogClient creates a catalog client with an explicit per-call timeout.
func NewCatalogClient(url string, timeout time.Duration, log zerolog.Logger) *CatalogClient {
	return &CatalogClient{
		url:        url,
		httpClient: &http.Client{},
		timeout:    timeout,
		log:        log,
	}
}

// FetchProducts fetches the catalog and returns an id-keyed product mapping.
// On any failure it returns an empty mapping; a missing catalog degrades
// enrichment, it never aborts the batch. No retries are performed.
func (c *CatalogClient) FetchProducts(ctx context.Context) map[int]Product {
	products, err := c.fetch(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("product catalog unavailable, continuing without enrichment data")
		return map[int]Product{}
	}

	c.log.Info().Int("products", len(products)).Msg("product catalog loaded")
	return products
}

func (c *CatalogClient) fetch(ctx context.Context) (map[int]Product, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var payload struct {
		Products []Product `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	products := make(map[int]Product, len(payload.Products))
	for _, p := range payload.Products {
		products[p.ID] = p
	}

	return products, nil
}
