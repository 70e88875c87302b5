// =============================================================================
// Sales Analytics - Report Rendering
// =============================================================================
//
// This module renders the aggregate results into the two human-readable text
// reports: the summary report and the invalid-records report. It is a pure
// formatting layer; every number printed here traces directly to a field of
// the AggregateReport or the FilterSummary.
//
// =============================================================================

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/retailops/sales-analytics/internal/analytics"
	"github.com/retailops/sales-analytics/internal/api"
	"github.com/retailops/sales-analytics/internal/types"
)

const lineWidth = 75

// SummaryData carries everything the summary report prints.
type SummaryData struct {
	GeneratedAt  time.Time
	Report       analytics.AggregateReport
	Summary      types.FilterSummary
	LinesSkipped int
	Rates        api.Rates
	TopProducts  int
	TopCustomers int
	LowThreshold int
}

// RenderSummary renders the full analytics summary report.
func RenderSummary(data SummaryData) string {
	var b strings.Builder
	rep := data.Report

	rule := strings.Repeat("=", lineWidth)
	thin := strings.Repeat("-", lineWidth)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "SALES DATA ANALYTICS REPORT")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Report Generated: %s\n", data.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(&b)

	// Data quality.
	fmt.Fprintln(&b, "DATA QUALITY SUMMARY")
	fmt.Fprintln(&b, thin)
	fmt.Fprintf(&b, "Valid Transactions Processed: %d\n", rep.Revenue.TransactionCount)
	fmt.Fprintf(&b, "Invalid Records Rejected: %d\n", data.Summary.Invalid)
	fmt.Fprintf(&b, "Unparseable Lines Skipped: %d\n", data.LinesSkipped)
	if data.Summary.FilteredByRegion > 0 {
		fmt.Fprintf(&b, "Removed by Region Filter: %d\n", data.Summary.FilteredByRegion)
	}
	if data.Summary.FilteredByAmount > 0 {
		fmt.Fprintf(&b, "Removed by Amount Filter: %d\n", data.Summary.FilteredByAmount)
	}
	fmt.Fprintln(&b)

	// Revenue analysis.
	fmt.Fprintln(&b, "REVENUE ANALYSIS")
	fmt.Fprintln(&b, thin)
	fmt.Fprintf(&b, "Total Revenue: $%s\n", money(rep.Revenue.TotalRevenue))
	fmt.Fprintf(&b, "Average Transaction: $%s\n", money(rep.Revenue.AverageTransaction))
	fmt.Fprintf(&b, "Median Transaction: $%s\n", money(rep.Revenue.MedianTransaction))
	fmt.Fprintf(&b, "Standard Deviation: $%s\n", money(rep.Revenue.StdDev))
	fmt.Fprintf(&b, "Minimum Transaction: $%s\n", money(rep.Revenue.MinTransaction))
	fmt.Fprintf(&b, "Maximum Transaction: $%s\n", money(rep.Revenue.MaxTransaction))
	fmt.Fprintf(&b, "Total Units Sold: %s\n", groupDigits(fmt.Sprintf("%d", rep.Revenue.TotalUnits)))
	fmt.Fprintln(&b)

	// Multi-currency revenue.
	fmt.Fprintln(&b, "REVENUE IN MULTIPLE CURRENCIES")
	fmt.Fprintln(&b, thin)
	rev := rep.Revenue.TotalRevenue
	fmt.Fprintf(&b, "USD: $%s\n", money(rev))
	fmt.Fprintf(&b, "EUR: €%s\n", money(rev*data.Rates.EUR))
	fmt.Fprintf(&b, "GBP: £%s\n", money(rev*data.Rates.GBP))
	fmt.Fprintf(&b, "INR: ₹%s\n", money(rev*data.Rates.INR))
	fmt.Fprintf(&b, "Exchange rates as of: %s\n", data.Rates.Date)
	fmt.Fprintln(&b)

	// Regional performance.
	fmt.Fprintln(&b, "REGIONAL SALES PERFORMANCE")
	fmt.Fprintln(&b, thin)
	for _, region := range rep.Regions {
		fmt.Fprintf(&b, "%-15s $%15s  (%5.2f%%, %d transactions)\n",
			region.Region, money(region.TotalSales), region.Percentage, region.TransactionCount)
	}
	fmt.Fprintln(&b)

	// Top products.
	fmt.Fprintf(&b, "TOP %d PRODUCTS BY QUANTITY\n", data.TopProducts)
	fmt.Fprintln(&b, thin)
	for rank, product := range rep.TopProducts(data.TopProducts) {
		fmt.Fprintf(&b, "%d. %s\n", rank+1, product.ProductName)
		fmt.Fprintf(&b, "   Units Sold: %d\n", product.TotalQuantity)
		fmt.Fprintf(&b, "   Revenue: $%s\n", money(product.TotalRevenue))
	}
	fmt.Fprintln(&b)

	// Top customers.
	fmt.Fprintf(&b, "TOP %d CUSTOMERS BY SPENDING\n", data.TopCustomers)
	fmt.Fprintln(&b, thin)
	customers := rep.Customers
	if len(customers) > data.TopCustomers {
		customers = customers[:data.TopCustomers]
	}
	for rank, customer := range customers {
		fmt.Fprintf(&b, "%d. Customer %s: $%s\n", rank+1, customer.CustomerID, money(customer.TotalSpent))
		fmt.Fprintf(&b, "   Orders: %d  Average Order Value: $%s  Distinct Products: %d\n",
			customer.PurchaseCount, money(customer.AvgOrderValue), len(customer.Products))
	}
	fmt.Fprintln(&b)

	// Daily trend.
	fmt.Fprintln(&b, "DAILY SALES TRENDS")
	fmt.Fprintln(&b, thin)
	if len(rep.Daily) > 0 {
		fmt.Fprintf(&b, "Peak Sales Day: %s ($%s, %d transactions)\n",
			rep.Peak.Date, money(rep.Peak.Revenue), rep.Peak.TransactionCount)
	} else {
		fmt.Fprintln(&b, "Peak Sales Day: n/a")
	}
	fmt.Fprintf(&b, "Total Days with Sales: %d\n", len(rep.Daily))
	fmt.Fprintf(&b, "Average Daily Revenue: $%s\n", money(rep.AverageDailyRevenue()))
	fmt.Fprintln(&b)

	// Low performers.
	fmt.Fprintf(&b, "LOW PERFORMING PRODUCTS (< %d units)\n", data.LowThreshold)
	fmt.Fprintln(&b, thin)
	low := rep.LowPerformers(data.LowThreshold)
	if len(low) == 0 {
		fmt.Fprintln(&b, "None.")
	}
	for _, product := range low {
		fmt.Fprintf(&b, "%s: %d units, $%s\n",
			product.ProductName, product.TotalQuantity, money(product.TotalRevenue))
	}
	fmt.Fprintln(&b)

	// Summary statistics.
	fmt.Fprintln(&b, "SUMMARY STATISTICS")
	fmt.Fprintln(&b, thin)
	fmt.Fprintf(&b, "Total Customers: %d\n", len(rep.Customers))
	fmt.Fprintf(&b, "Total Products: %d\n", len(rep.Products))
	fmt.Fprintf(&b, "Total Regions: %d\n", len(rep.Regions))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "END OF REPORT")
	fmt.Fprintln(&b, rule)

	return b.String()
}

// RenderInvalidRecords renders the invalid-records report. Every rejection
// lists all of the rules it failed.
func RenderInvalidRecords(rejections []types.Rejection) string {
	var b strings.Builder

	rule := strings.Repeat("=", lineWidth)
	thin := strings.Repeat("-", lineWidth)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "INVALID RECORDS REPORT")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Total Invalid Records: %d\n", len(rejections))
	fmt.Fprintln(&b)

	for i, rejection := range rejections {
		tx := rejection.Transaction
		fmt.Fprintf(&b, "Invalid Record #%d\n", i+1)
		fmt.Fprintf(&b, "Transaction ID: %s\n", orNA(tx.TransactionID))
		fmt.Fprintf(&b, "Rejection Reasons: %s\n", strings.Join(rejection.Reasons, ", "))
		fmt.Fprintf(&b, "Product: %s\n", orNA(tx.ProductName))
		fmt.Fprintf(&b, "Customer: %s\n", orNA(tx.CustomerID))
		fmt.Fprintln(&b, thin)
	}

	return b.String()
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

// money formats a value with thousands separators and 2 decimal places,
// e.g. 90000 -> "90,000.00".
func money(v float64) string {
	s := fmt.Sprintf("%.2f", v)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	grouped := groupDigits(parts[0]) + "." + parts[1]

	if neg {
		return "-" + grouped
	}
	return grouped
}

// groupDigits inserts thousands separators into a digit string.
func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
