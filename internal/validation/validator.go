// =============================================================================
// Sales Analytics - Validation Engine
// =============================================================================
//
// This module applies the business validation rules to parsed transactions
// and partitions the batch into valid records and rejections. Rejections are
// collected, not thrown: a record failing several rules carries every reason,
// in rule order, for diagnostic reporting.
//
// VALIDATION RULES (a record is valid only if ALL hold):
//   1. Quantity > 0
//   2. UnitPrice > 0
//   3. All eight fields are present/non-empty
//   4. TransactionID starts with "T"
//   5. ProductID starts with "P"
//   6. CustomerID starts with "C"
//
// FILTERS:
//   After validation, two optional filters narrow the valid set in a fixed
//   order: region (exact, case-sensitive) first, then amount range
//   (inclusive bounds on Quantity * UnitPrice). Each step's removal count is
//   tracked independently in the FilterSummary.
//
//   The filter discovery metadata (available regions, observed amount range)
//   is always computed from the valid set BEFORE filters are applied.
//
// =============================================================================

package validation

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/retailops/sales-analytics/internal/types"
)

// requiredStringFields lists the string fields checked by the presence rule,
// in input column order. Quantity and UnitPrice have their own rules.
var requiredStringFields = []struct {
	name string
	get  func(types.Transaction) string
}{
	{"TransactionID", func(t types.Transaction) string { return t.TransactionID }},
	{"Date", func(t types.Transaction) string { return t.Date }},
	{"ProductID", func(t types.Transaction) string { return t.ProductID }},
	{"ProductName", func(t types.Transaction) string { return t.ProductName }},
	{"CustomerID", func(t types.Transaction) string { return t.CustomerID }},
	{"Region", func(t types.Transaction) string { return t.Region }},
}

// Outcome bundles everything the validation-and-filtering stage produces.
type Outcome struct {
	// Result is the valid/invalid partition before filtering.
	Result types.ValidationResult

	// Filtered is the valid set after the optional filters.
	Filtered []types.Transaction

	// Summary tracks the removal counts per stage.
	Summary types.FilterSummary

	// Discovery describes the pre-filter valid set for presentation.
	Discovery types.Discovery
}

// Validator applies the business rules and filters to parsed transactions.
type Validator struct {
	log zerolog.Logger
}

// New creates a Validator that logs rejections to the given logger.
func New(log zerolog.Logger) *Validator {
	return &Validator{log: log}
}

// =============================================================================
// MAIN VALIDATION FUNCTIONS
// =============================================================================

// ValidateAndFilter validates a batch and applies the optional filters,
// returning the surviving records, the invalid count and the filter summary.
// This is the plain three-value contract; Run returns the full Outcome.
func (v *Validator) ValidateAndFilter(txs []types.Transaction, opts types.FilterOptions) ([]types.Transaction, int, types.FilterSummary) {
	outcome := v.Run(txs, opts)
	return outcome.Filtered, outcome.Result.InvalidCount(), outcome.Summary
}

// Run validates a batch, computes the discovery metadata, and applies the
// optional filters in the documented order. An input with zero valid records
// yields an empty outcome, never an error.
func (v *Validator) Run(txs []types.Transaction, opts types.FilterOptions) Outcome {
	outcome := Outcome{
		Result: v.Validate(txs),
	}

	outcome.Summary.TotalInput = len(txs)
	outcome.Summary.Invalid = outcome.Result.InvalidCount()

	// Discovery always reflects the unfiltered valid set.
	outcome.Discovery = types.DiscoverOptions(outcome.Result.Valid)

	// Filters apply only to the valid subset, region first, then amount.
	filtered := outcome.Result.Valid

	if opts.Region != "" {
		before := len(filtered)
		filtered = filterByRegion(filtered, opts.Region)
		outcome.Summary.FilteredByRegion = before - len(filtered)

		v.log.Debug().
			Str("region", opts.Region).
			Int("removed", outcome.Summary.FilteredByRegion).
			Msg("region filter applied")
	}

	if opts.MinAmount != nil || opts.MaxAmount != nil {
		before := len(filtered)
		filtered = filterByAmount(filtered, opts.MinAmount, opts.MaxAmount)
		outcome.Summary.FilteredByAmount = before - len(filtered)

		v.log.Debug().
			Int("removed", outcome.Summary.FilteredByAmount).
			Msg("amount filter applied")
	}

	outcome.Filtered = filtered
	outcome.Summary.FinalCount = len(filtered)

	v.log.Info().
		Int("total", outcome.Summary.TotalInput).
		Int("invalid", outcome.Summary.Invalid).
		Int("filtered_by_region", outcome.Summary.FilteredByRegion).
		Int("filtered_by_amount", outcome.Summary.FilteredByAmount).
		Int("final", outcome.Summary.FinalCount).
		Msg("validation and filtering complete")

	return outcome
}

// Validate partitions the batch into valid records and rejections without
// applying any filters.
func (v *Validator) Validate(txs []types.Transaction) types.ValidationResult {
	result := types.ValidationResult{
		Valid: make([]types.Transaction, 0, len(txs)),
	}

	for _, tx := range txs {
		reasons := checkRules(tx)
		if len(reasons) == 0 {
			result.Valid = append(result.Valid, tx)
			continue
		}

		result.Rejections = append(result.Rejections, types.Rejection{
			Transaction: tx,
			Reasons:     reasons,
		})

		v.log.Debug().
			Str("transaction_id", tx.TransactionID).
			Strs("reasons", reasons).
			Msg("transaction rejected")
	}

	return result
}

// =============================================================================
// RULE EVALUATION
// =============================================================================

// checkRules evaluates every validation rule against a transaction and
// returns the reasons for ALL rules it fails, in rule order. An empty slice
// means the record is valid.
func checkRules(tx types.Transaction) []string {
	var reasons []string

	// Rule 1: Quantity must be positive.
	if tx.Quantity <= 0 {
		reasons = append(reasons, "Quantity must be > 0")
	}

	// Rule 2: UnitPrice must be positive. This is the strict business-rule
	// threshold; zero-priced records are rejected.
	if tx.UnitPrice <= 0 {
		reasons = append(reasons, "UnitPrice must be > 0")
	}

	// Rule 3: All string fields must be present.
	for _, field := range requiredStringFields {
		if field.get(tx) == "" {
			reasons = append(reasons, "Missing "+field.name)
		}
	}

	// Rules 4-6: Identifier prefixes.
	if !strings.HasPrefix(tx.TransactionID, "T") {
		reasons = append(reasons, "TransactionID must start with 'T'")
	}
	if !strings.HasPrefix(tx.ProductID, "P") {
		reasons = append(reasons, "ProductID must start with 'P'")
	}
	if !strings.HasPrefix(tx.CustomerID, "C") {
		reasons = append(reasons, "CustomerID must start with 'C'")
	}

	return reasons
}

// =============================================================================
// FILTERS
// =============================================================================

// filterByRegion keeps transactions whose region matches exactly.
func filterByRegion(txs []types.Transaction, region string) []types.Transaction {
	filtered := make([]types.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Region == region {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}

// filterByAmount keeps transactions whose amount falls within the inclusive
// bounds. A nil bound is unbounded on that side.
func filterByAmount(txs []types.Transaction, min, max *float64) []types.Transaction {
	filtered := make([]types.Transaction, 0, len(txs))
	for _, tx := range txs {
		amount := tx.Amount()
		if min != nil && amount < *min {
			continue
		}
		if max != nil && amount > *max {
			continue
		}
		filtered = append(filtered, tx)
	}
	return filtered
}
