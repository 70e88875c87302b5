// =============================================================================
// Sales Analytics - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - salesparser
//   - validation
//   - enrich
//   - analytics
//   - report / export
//
// =============================================================================

package types

import "sort"

// =============================================================================
// TRANSACTION TYPES
// =============================================================================

// Transaction represents a single parsed sales record. Field order matches
// the column order of the input file:
//
//	TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region
type Transaction struct {
	// TransactionID is the record identifier, e.g. "T001".
	TransactionID string

	// Date is the sale date as an ISO-like "YYYY-MM-DD" string.
	// It is kept as a string because the format is lexically sortable.
	Date string

	// ProductID is the product identifier, e.g. "P101".
	ProductID string

	// ProductName is the product name, preserved verbatim from the input.
	// It may legitimately contain commas.
	ProductName string

	// Quantity is the number of units sold.
	Quantity int

	// UnitPrice is the per-unit price in USD.
	UnitPrice float64

	// CustomerID is the customer identifier, e.g. "C001".
	CustomerID string

	// Region is the free-form geographic grouping key, e.g. "North".
	Region string
}

// Amount returns the transaction amount (Quantity * UnitPrice).
// The amount is never stored; every consumer recomputes it through this
// single definition so validation, analytics and reports always agree.
func (t Transaction) Amount() float64 {
	return float64(t.Quantity) * t.UnitPrice
}

// EnrichedTransaction is a Transaction extended with external catalog
// attributes. When the catalog lookup fails, all attributes are empty and
// Matched is false; that is a normal state, not an error.
type EnrichedTransaction struct {
	Transaction

	// Category is the product category from the catalog.
	Category string

	// Brand is the product brand from the catalog.
	Brand string

	// Rating is the product rating from the catalog.
	Rating float64

	// Matched reports whether the catalog lookup succeeded.
	Matched bool
}

// =============================================================================
// VALIDATION TYPES
// =============================================================================

// Rejection holds an invalid transaction together with the ordered list of
// every validation rule it failed, not just the first one.
type Rejection struct {
	Transaction Transaction
	Reasons     []string
}

// ValidationResult is the partition of a parsed batch into valid records and
// rejections.
type ValidationResult struct {
	Valid      []Transaction
	Rejections []Rejection
}

// InvalidCount returns the number of rejected records.
func (r ValidationResult) InvalidCount() int {
	return len(r.Rejections)
}

// FilterSummary tracks how many records each pipeline stage removed.
//
// Invariant (filters applied in order: region, then amount):
//
//	FinalCount = TotalInput - Invalid - FilteredByRegion - FilteredByAmount
type FilterSummary struct {
	TotalInput       int
	Invalid          int
	FilteredByRegion int
	FilteredByAmount int
	FinalCount       int
}

// FilterOptions are the optional narrowing filters applied after validation.
// A nil amount bound means unbounded on that side.
type FilterOptions struct {
	// Region filters to an exact, case-sensitive region match when non-empty.
	Region string

	// MinAmount is the inclusive lower bound on the computed amount.
	MinAmount *float64

	// MaxAmount is the inclusive upper bound on the computed amount.
	MaxAmount *float64
}

// Discovery describes the valid set before any filters are applied. It is
// presentation metadata: the regions a user could filter on and the amount
// range they could narrow to.
type Discovery struct {
	// Regions is the sorted set of regions observed in the valid records.
	Regions []string

	// MinAmount and MaxAmount are the observed amount range. Both are zero
	// when there are no valid records.
	MinAmount float64
	MaxAmount float64
}

// DiscoverOptions computes the Discovery metadata for a valid record set.
func DiscoverOptions(valid []Transaction) Discovery {
	var d Discovery

	seen := make(map[string]bool)
	for i, t := range valid {
		if !seen[t.Region] {
			seen[t.Region] = true
			d.Regions = append(d.Regions, t.Region)
		}

		amount := t.Amount()
		if i == 0 || amount < d.MinAmount {
			d.MinAmount = amount
		}
		if i == 0 || amount > d.MaxAmount {
			d.MaxAmount = amount
		}
	}
	sort.Strings(d.Regions)

	return d
}
