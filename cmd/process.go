// =============================================================================
// Sales Analytics - Process Command
// =============================================================================
//
// This file defines the 'process' command, the main pipeline entry point.
//
// COMMAND USAGE:
//   salescli process [flags]
//
// PROCESSING PIPELINE:
//   1. Load configuration and apply CLI flag overrides
//   2. Read the raw input file (UTF-8 with legacy-encoding fallback)
//   3. Parse pipe-delimited lines into transactions
//   4. Validate business rules and apply the optional filters
//   5. Fetch the product catalog and exchange rates
//   6. Enrich the surviving records with catalog attributes
//   7. Aggregate and render the summary and invalid-records reports
//   8. Write the cleaned data exports (pipe-delimited, CSV, XLSX)
//
// FAILURE POLICY:
//   Only an unusable configuration or an unreadable input file aborts the
//   run. Bad lines, invalid records, catalog misses and unreachable APIs are
//   absorbed inside their stages; a run with zero valid records still writes
//   its reports and exits successfully.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/retailops/sales-analytics/internal/analytics"
	"github.com/retailops/sales-analytics/internal/api"
	"github.com/retailops/sales-analytics/internal/config"
	"github.com/retailops/sales-analytics/internal/enrich"
	"github.com/retailops/sales-analytics/internal/export"
	"github.com/retailops/sales-analytics/internal/logger"
	"github.com/retailops/sales-analytics/internal/reader"
	"github.com/retailops/sales-analytics/internal/report"
	"github.com/retailops/sales-analytics/internal/salesparser"
	"github.com/retailops/sales-analytics/internal/types"
	"github.com/retailops/sales-analytics/internal/validation"
	"github.com/retailops/sales-analytics/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	// inputFile overrides the configured input file when non-empty.
	inputFile string

	// filterRegion keeps only transactions from one region (exact match).
	filterRegion string

	// minAmount and maxAmount bound the transaction amount filter. They only
	// take effect when the flag was actually set.
	minAmount float64
	maxAmount float64

	// topN overrides the configured top-products/top-customers list size.
	topN int

	// lowThreshold overrides the configured low-performer quantity threshold.
	lowThreshold int

	// heuristicCategories fills categories of unmatched products from their
	// names instead of leaving them empty.
	heuristicCategories bool

	// dryRun prints the summary report to stdout without writing any files.
	dryRun bool
)

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process the sales data file into reports and cleaned exports",
	Long: `Process reads the pipe-delimited sales data file, validates and
optionally filters the records, enriches them from the product catalog, and
writes the analytics reports plus the cleaned data exports.

Examples:
  salescli process
  salescli process --input ./data/sales_data.txt
  salescli process --region North --min-amount 1000 --max-amount 90000
  salescli process --dry-run`,
	RunE: runProcess,
}

// init registers the process command and its flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input sales data file (overrides config)")
	processCmd.Flags().StringVar(&filterRegion, "region", "", "Keep only transactions from this region (exact match)")
	processCmd.Flags().Float64Var(&minAmount, "min-amount", 0, "Keep only transactions with amount >= this value")
	processCmd.Flags().Float64Var(&maxAmount, "max-amount", 0, "Keep only transactions with amount <= this value")
	processCmd.Flags().IntVar(&topN, "top", 0, "Size of the top-products and top-customers lists (overrides config)")
	processCmd.Flags().IntVar(&lowThreshold, "low-threshold", 0, "Quantity threshold for low-performing products (overrides config)")
	processCmd.Flags().BoolVar(&heuristicCategories, "heuristic-categories", false, "Guess categories of unmatched products from their names")
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the summary report to stdout without writing files")
}

// =============================================================================
// PIPELINE EXECUTION
// =============================================================================

// runProcess executes the full processing pipeline.
func runProcess(cmd *cobra.Command, args []string) error {
	log := logger.New(verbose)

	// A missing config file is fine unless the user pointed at one explicitly.
	cfg, err := config.Load(cfgFile, !cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)

	log.Info().Str("input", cfg.InputFile).Msg("starting sales data processing")

	// Stage 1: read the raw file. This is the one fatal failure.
	lines, err := reader.ReadSalesData(cfg.InputFile)
	if err != nil {
		return err
	}

	// Stage 2: parse.
	parsed := salesparser.New(log).Parse(lines)
	if len(parsed.Transactions) == 0 && parsed.LinesRead > 0 {
		return fmt.Errorf("no parseable transactions in %s (%d lines skipped)", cfg.InputFile, parsed.LinesSkipped)
	}

	// Stage 3: validate and filter.
	outcome := validation.New(log).Run(parsed.Transactions, filterOptions(cmd))

	if len(outcome.Discovery.Regions) > 0 {
		log.Debug().
			Strs("regions", outcome.Discovery.Regions).
			Float64("min_amount", outcome.Discovery.MinAmount).
			Float64("max_amount", outcome.Discovery.MaxAmount).
			Msg("filter options discovered")
	}

	// Stage 4: external data. Both clients absorb their own failures.
	ctx := context.Background()
	catalog := api.NewCatalogClient(cfg.CatalogURL, cfg.HTTPTimeout(), log).FetchProducts(ctx)
	rates := api.NewRatesClient(cfg.RatesURL, cfg.HTTPTimeout(), api.Rates{
		EUR:  cfg.FallbackRates.EUR,
		GBP:  cfg.FallbackRates.GBP,
		INR:  cfg.FallbackRates.INR,
		Date: cfg.FallbackRates.Date,
	}, log).FetchRates(ctx)

	// Stage 5: enrich.
	enriched := enrich.New(catalog, enrich.Options{
		HeuristicCategories: heuristicCategories,
	}, log).Enrich(outcome.Filtered)

	// Stage 6: aggregate and render.
	summary := report.RenderSummary(report.SummaryData{
		GeneratedAt:  time.Now(),
		Report:       analytics.Analyze(outcome.Filtered),
		Summary:      outcome.Summary,
		LinesSkipped: parsed.LinesSkipped,
		Rates:        rates,
		TopProducts:  cfg.TopProducts,
		TopCustomers: cfg.TopCustomers,
		LowThreshold: cfg.LowQuantityThreshold,
	})
	invalidReport := report.RenderInvalidRecords(outcome.Result.Rejections)

	if dryRun {
		fmt.Println(summary)
		log.Info().Msg("dry run complete, no files written")
		return nil
	}

	// Stage 7: write everything. All pipeline stages have completed by now,
	// so a write failure cannot leave a half-processed dataset behind.
	out := utils.NewOutputManager(cfg.OutputDir)
	if err := out.EnsureDir(); err != nil {
		return err
	}

	summaryPath, err := out.WriteReport(cfg.SummaryReportFile, summary)
	if err != nil {
		return err
	}
	invalidPath, err := out.WriteReport(cfg.InvalidReportFile, invalidReport)
	if err != nil {
		return err
	}

	if err := export.WritePipeDelimited(out.Resolve(cfg.CleanedDataFile), enriched); err != nil {
		return err
	}
	if err := export.WriteCSV(out.Resolve(cfg.CSVExportFile), enriched); err != nil {
		return err
	}
	if err := export.WriteXLSX(out.Resolve(cfg.XLSXExportFile), enriched); err != nil {
		return err
	}

	log.Info().
		Str("summary_report", summaryPath).
		Str("invalid_report", invalidPath).
		Int("cleaned_records", len(enriched)).
		Msg("processing complete")

	return nil
}

// applyFlagOverrides applies the CLI flag overrides onto the loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if inputFile != "" {
		cfg.InputFile = inputFile
	}
	if cmd.Flags().Changed("top") {
		cfg.TopProducts = topN
		cfg.TopCustomers = topN
	}
	if cmd.Flags().Changed("low-threshold") {
		cfg.LowQuantityThreshold = lowThreshold
	}
}

// filterOptions builds the filter options from the CLI flags. Amount bounds
// only apply when their flag was set, so 0 remains a usable bound.
func filterOptions(cmd *cobra.Command) types.FilterOptions {
	opts := types.FilterOptions{Region: filterRegion}

	if cmd.Flags().Changed("min-amount") {
		opts.MinAmount = &minAmount
	}
	if cmd.Flags().Changed("max-amount") {
		opts.MaxAmount = &maxAmount
	}

	return opts
}
