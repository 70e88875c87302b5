// =============================================================================
// Sales Analytics - Aggregation Engine
// =============================================================================
//
// This module computes the aggregate statistics over the valid transaction
// set. Every sub-aggregation is a group-by plus sum/count/min/max/distinct
// reduction; no record needs cross-group information, so everything is
// computed in independent single passes over the input.
//
// DETERMINISM:
//   - Group entries are accumulated in first-encounter order.
//   - Final orderings use stable sorts, so ties preserve encounter order.
//   - Distinct product sets are sorted lexicographically.
//
// FAILURE SEMANTICS:
//   An empty input produces an all-zero report. Every average guards the
//   empty-denominator case by returning 0.
//
// =============================================================================

package analytics

import (
	"math"
	"sort"

	"github.com/retailops/sales-analytics/internal/types"
)

// =============================================================================
// REPORT TYPES
// =============================================================================

// RevenueSummary holds the overall revenue statistics.
type RevenueSummary struct {
	TotalRevenue       float64
	TransactionCount   int
	AverageTransaction float64
	MedianTransaction  float64
	StdDev             float64
	MinTransaction     float64
	MaxTransaction     float64
	TotalUnits         int
}

// RegionStat holds the aggregate for one region.
type RegionStat struct {
	Region           string
	TotalSales       float64
	TransactionCount int

	// Percentage is the share of total revenue, rounded to 2 decimals.
	// It is 0 when the grand total is 0.
	Percentage float64
}

// ProductStat holds the aggregate for one product name.
type ProductStat struct {
	ProductName   string
	TotalQuantity int
	TotalRevenue  float64
}

// CustomerStat holds the aggregate for one customer.
type CustomerStat struct {
	CustomerID    string
	TotalSpent    float64
	PurchaseCount int

	// AvgOrderValue is TotalSpent / PurchaseCount, rounded to 2 decimals.
	AvgOrderValue float64

	// Products are the distinct product names bought, sorted for
	// deterministic output.
	Products []string
}

// DailyStat holds the aggregate for one date.
type DailyStat struct {
	Date             string
	Revenue          float64
	TransactionCount int
	UniqueCustomers  int
}

// AggregateReport bundles every summary computed over one valid set.
// It is immutable after construction; re-running Analyze on the same input
// yields identical values.
type AggregateReport struct {
	Revenue RevenueSummary

	// Regions is ordered descending by revenue, ties in encounter order.
	Regions []RegionStat

	// Products is in first-encounter order; use TopProducts and
	// LowPerformers for the ranked views.
	Products []ProductStat

	// Customers is ordered descending by total spend, ties in encounter order.
	Customers []CustomerStat

	// Daily is ordered ascending by date string (the ISO-like format is
	// lexically sortable).
	Daily []DailyStat

	// Peak is the highest-revenue day, first encountered on ties. Zero value
	// when there are no transactions.
	Peak DailyStat
}

// =============================================================================
// MAIN ANALYSIS FUNCTION
// =============================================================================

// Analyze computes the full aggregate report for a valid transaction set.
// An empty input yields an all-zero report, never an error.
func Analyze(txs []types.Transaction) AggregateReport {
	return AggregateReport{
		Revenue:   revenueSummary(txs),
		Regions:   regionStats(txs),
		Products:  productStats(txs),
		Customers: customerStats(txs),
		Daily:     dailyStats(txs),
		Peak:      peakDay(txs),
	}
}

// TopProducts returns the n best-selling products by total quantity,
// descending, ties in encounter order.
func (r AggregateReport) TopProducts(n int) []ProductStat {
	ranked := make([]ProductStat, len(r.Products))
	copy(ranked, r.Products)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalQuantity > ranked[j].TotalQuantity
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	if n < 0 {
		n = 0
	}
	return ranked[:n]
}

// LowPerformers returns products whose total quantity is strictly below the
// threshold, ascending by quantity.
func (r AggregateReport) LowPerformers(threshold int) []ProductStat {
	var low []ProductStat
	for _, p := range r.Products {
		if p.TotalQuantity < threshold {
			low = append(low, p)
		}
	}

	sort.SliceStable(low, func(i, j int) bool {
		return low[i].TotalQuantity < low[j].TotalQuantity
	})

	return low
}

// AverageDailyRevenue returns total revenue divided by the number of sales
// days, or 0 when there are none.
func (r AggregateReport) AverageDailyRevenue() float64 {
	if len(r.Daily) == 0 {
		return 0
	}
	return r.Revenue.TotalRevenue / float64(len(r.Daily))
}

// =============================================================================
// SUB-AGGREGATIONS
// =============================================================================

func revenueSummary(txs []types.Transaction) RevenueSummary {
	summary := RevenueSummary{TransactionCount: len(txs)}
	if len(txs) == 0 {
		return summary
	}

	amounts := make([]float64, len(txs))
	for i, tx := range txs {
		amounts[i] = tx.Amount()
		summary.TotalRevenue += amounts[i]
		summary.TotalUnits += tx.Quantity
	}

	summary.AverageTransaction = summary.TotalRevenue / float64(len(txs))
	summary.MedianTransaction = median(amounts)
	summary.StdDev = stdDev(amounts, summary.AverageTransaction)

	summary.MinTransaction = amounts[0]
	summary.MaxTransaction = amounts[0]
	for _, a := range amounts[1:] {
		if a < summary.MinTransaction {
			summary.MinTransaction = a
		}
		if a > summary.MaxTransaction {
			summary.MaxTransaction = a
		}
	}

	return summary
}

func regionStats(txs []types.Transaction) []RegionStat {
	var stats []RegionStat
	index := make(map[string]int)

	grandTotal := 0.0
	for _, tx := range txs {
		i, ok := index[tx.Region]
		if !ok {
			i = len(stats)
			index[tx.Region] = i
			stats = append(stats, RegionStat{Region: tx.Region})
		}

		amount := tx.Amount()
		stats[i].TotalSales += amount
		stats[i].TransactionCount++
		grandTotal += amount
	}

	for i := range stats {
		if grandTotal > 0 {
			stats[i].Percentage = round2(stats[i].TotalSales / grandTotal * 100)
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSales > stats[j].TotalSales
	})

	return stats
}

func productStats(txs []types.Transaction) []ProductStat {
	var stats []ProductStat
	index := make(map[string]int)

	for _, tx := range txs {
		i, ok := index[tx.ProductName]
		if !ok {
			i = len(stats)
			index[tx.ProductName] = i
			stats = append(stats, ProductStat{ProductName: tx.ProductName})
		}

		stats[i].TotalQuantity += tx.Quantity
		stats[i].TotalRevenue += tx.Amount()
	}

	return stats
}

func customerStats(txs []types.Transaction) []CustomerStat {
	var stats []CustomerStat
	index := make(map[string]int)
	products := make(map[string]map[string]bool)

	for _, tx := range txs {
		i, ok := index[tx.CustomerID]
		if !ok {
			i = len(stats)
			index[tx.CustomerID] = i
			stats = append(stats, CustomerStat{CustomerID: tx.CustomerID})
			products[tx.CustomerID] = make(map[string]bool)
		}

		stats[i].TotalSpent += tx.Amount()
		stats[i].PurchaseCount++
		products[tx.CustomerID][tx.ProductName] = true
	}

	for i := range stats {
		if stats[i].PurchaseCount > 0 {
			stats[i].AvgOrderValue = round2(stats[i].TotalSpent / float64(stats[i].PurchaseCount))
		}

		names := make([]string, 0, len(products[stats[i].CustomerID]))
		for name := range products[stats[i].CustomerID] {
			names = append(names, name)
		}
		sort.Strings(names)
		stats[i].Products = names
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSpent > stats[j].TotalSpent
	})

	return stats
}

func dailyStats(txs []types.Transaction) []DailyStat {
	grouped := groupByDate(txs)

	sort.SliceStable(grouped, func(i, j int) bool {
		return grouped[i].Date < grouped[j].Date
	})

	return grouped
}

// peakDay returns the highest-revenue day, first encountered on ties.
func peakDay(txs []types.Transaction) DailyStat {
	grouped := groupByDate(txs)
	if len(grouped) == 0 {
		return DailyStat{}
	}

	peak := grouped[0]
	for _, day := range grouped[1:] {
		if day.Revenue > peak.Revenue {
			peak = day
		}
	}

	return peak
}

// groupByDate accumulates the per-date stats in first-encounter order.
func groupByDate(txs []types.Transaction) []DailyStat {
	var stats []DailyStat
	index := make(map[string]int)
	customers := make(map[string]map[string]bool)

	for _, tx := range txs {
		i, ok := index[tx.Date]
		if !ok {
			i = len(stats)
			index[tx.Date] = i
			stats = append(stats, DailyStat{Date: tx.Date})
			customers[tx.Date] = make(map[string]bool)
		}

		stats[i].Revenue += tx.Amount()
		stats[i].TransactionCount++
		customers[tx.Date][tx.CustomerID] = true
	}

	for i := range stats {
		stats[i].Revenue = round2(stats[i].Revenue)
		stats[i].UniqueCustomers = len(customers[stats[i].Date])
	}

	return stats
}

// =============================================================================
// NUMERIC HELPERS
// =============================================================================

// round2 rounds to 2 decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// median returns the median of the values. The input is copied before
// sorting so callers keep their ordering.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// stdDev returns the population standard deviation.
func stdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sumSquares := 0.0
	for _, v := range values {
		d := v - mean
		sumSquares += d * d
	}

	return math.Sqrt(sumSquares / float64(len(values)))
}
