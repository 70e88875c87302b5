// =============================================================================
// Sales Analytics - Enrichment Module
// =============================================================================
//
// This module attaches external catalog attributes (category, brand, rating)
// to validated transactions. Enrichment is a pure per-record transform: no
// record is ever dropped, relative order is preserved, and a failed lookup
// is a first-class state (Matched=false), never an error.
//
// The lookup key is derived by stripping the "P" prefix from the ProductID
// and parsing the remainder as an integer; key derivation failures count as
// misses too. Misses are logged as a data-quality signal.
//
// =============================================================================

package enrich

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/retailops/sales-analytics/internal/api"
	"github.com/retailops/sales-analytics/internal/types"
)

// Options configures enrichment behavior.
type Options struct {
	// HeuristicCategories fills the Category of unmatched records from the
	// product name. Matched stays false either way; by default unmatched
	// records carry no category at all.
	HeuristicCategories bool
}

// Enricher attaches catalog attributes to transactions using a read-only
// catalog snapshot loaded once per run.
type Enricher struct {
	catalog map[int]api.Product
	opts    Options
	log     zerolog.Logger
}

// New creates an Enricher over a catalog snapshot.
func New(catalog map[int]api.Product, opts Options, log zerolog.Logger) *Enricher {
	return &Enricher{catalog: catalog, opts: opts, log: log}
}

// Enrich returns an enriched copy of every input transaction, same length,
// same order. The input slice is never mutated.
func (e *Enricher) Enrich(txs []types.Transaction) []types.EnrichedTransaction {
	enriched := make([]types.EnrichedTransaction, 0, len(txs))
	misses := 0

	for _, tx := range txs {
		record := types.EnrichedTransaction{Transaction: tx}

		if product, ok := e.lookup(tx.ProductID); ok {
			record.Category = product.Category
			record.Brand = product.Brand
			record.Rating = product.Rating
			record.Matched = true
		} else {
			misses++
			if e.opts.HeuristicCategories {
				record.Category = CategorizeName(tx.ProductName)
			}
			e.log.Debug().
				Str("product_id", tx.ProductID).
				Msg("no catalog match for product")
		}

		enriched = append(enriched, record)
	}

	e.log.Info().
		Int("enriched", len(enriched)).
		Int("unmatched", misses).
		Msg("enrichment complete")

	return enriched
}

// lookup resolves a ProductID against the catalog snapshot.
func (e *Enricher) lookup(productID string) (api.Product, bool) {
	key, err := productKey(productID)
	if err != nil {
		return api.Product{}, false
	}

	product, ok := e.catalog[key]
	return product, ok
}

// productKey derives the numeric catalog key from a ProductID by stripping
// the "P" prefix and parsing the remainder.
func productKey(productID string) (int, error) {
	return strconv.Atoi(strings.TrimPrefix(productID, "P"))
}
