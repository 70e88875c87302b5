// =============================================================================
// Sales Analytics - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. A single YAML file covers:
//   1. Input/output locations
//   2. Output artifact names (with {timestamp}/{uuid} placeholders)
//   3. External API endpoints, timeout and fallback exchange rates
//   4. Analysis tuning knobs (top-N sizes, low-quantity threshold)
//
// Defaults are applied after parsing, and the configuration is validated on
// load. The fallback exchange rates are deliberately configuration, not
// hidden constants: they are injected into the rates client so a run never
// depends on module-level state.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the full application configuration, loaded from config.yaml.
type Config struct {
	// =========================================================================
	// INPUT / OUTPUT SETTINGS
	// =========================================================================

	// InputFile is the pipe-delimited sales data file to process.
	// Default: "./data/sales_data.txt"
	InputFile string `yaml:"input_file"`

	// OutputDir is the directory where reports and exports are written.
	// Created on load if it does not exist.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// SummaryReportFile is the name of the text summary report.
	// Names may contain {timestamp} and {uuid} placeholders.
	// Default: "sales_summary_report.txt"
	SummaryReportFile string `yaml:"summary_report_file"`

	// InvalidReportFile is the name of the invalid-records report.
	// Default: "invalid_records_report.txt"
	InvalidReportFile string `yaml:"invalid_report_file"`

	// CleanedDataFile is the name of the pipe-delimited cleaned data export.
	// Default: "cleaned_sales_data.txt"
	CleanedDataFile string `yaml:"cleaned_data_file"`

	// CSVExportFile is the name of the CSV export of the cleaned data.
	// Default: "cleaned_sales_data.csv"
	CSVExportFile string `yaml:"csv_export_file"`

	// XLSXExportFile is the name of the XLSX export of the cleaned data.
	// Default: "cleaned_sales_data.xlsx"
	XLSXExportFile string `yaml:"xlsx_export_file"`

	// =========================================================================
	// EXTERNAL API SETTINGS
	// =========================================================================

	// CatalogURL is the product catalog endpoint. The response must carry a
	// "products" array with at least {id, title, category, brand, rating}.
	// Default: "https://dummyjson.com/products?limit=100"
	CatalogURL string `yaml:"catalog_url"`

	// RatesURL is the exchange-rate endpoint. The response must carry a
	// "rates" map and a "date" string.
	// Default: "https://api.exchangerate-api.com/v4/latest/USD"
	RatesURL string `yaml:"rates_url"`

	// HTTPTimeoutSeconds bounds each external call. A call that times out
	// falls back to defaults; it never aborts the batch.
	// Default: 10
	HTTPTimeoutSeconds int `yaml:"http_timeout_seconds"`

	// FallbackRates are the exchange rates used when the rates endpoint is
	// unreachable or returns a bad payload.
	FallbackRates FallbackRates `yaml:"fallback_rates"`

	// =========================================================================
	// ANALYSIS SETTINGS
	// =========================================================================

	// TopProducts is the number of products shown in the top-sellers section.
	// Default: 5
	TopProducts int `yaml:"top_products"`

	// TopCustomers is the number of customers shown in the top-spenders section.
	// Default: 5
	TopCustomers int `yaml:"top_customers"`

	// LowQuantityThreshold marks products with total quantity strictly below
	// it as low-performing.
	// Default: 10
	LowQuantityThreshold int `yaml:"low_quantity_threshold"`
}

// FallbackRates are the documented default USD exchange rates used when the
// live endpoint fails.
type FallbackRates struct {
	EUR  float64 `yaml:"eur"`
	GBP  float64 `yaml:"gbp"`
	INR  float64 `yaml:"inr"`
	Date string  `yaml:"date"`
}

// HTTPTimeout returns the external call timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// Load reads a YAML configuration file, applies defaults and validates the
// result. A missing file is not an error when allowMissing is true; the
// defaults are used instead, which makes the CLI usable without any config
// file at all.
func Load(path string, allowMissing bool) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err) && allowMissing:
		// Fall through to defaults.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputFile == "" {
		cfg.InputFile = "./data/sales_data.txt"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.SummaryReportFile == "" {
		cfg.SummaryReportFile = "sales_summary_report.txt"
	}
	if cfg.InvalidReportFile == "" {
		cfg.InvalidReportFile = "invalid_records_report.txt"
	}
	if cfg.CleanedDataFile == "" {
		cfg.CleanedDataFile = "cleaned_sales_data.txt"
	}
	if cfg.CSVExportFile == "" {
		cfg.CSVExportFile = "cleaned_sales_data.csv"
	}
	if cfg.XLSXExportFile == "" {
		cfg.XLSXExportFile = "cleaned_sales_data.xlsx"
	}
	if cfg.CatalogURL == "" {
		cfg.CatalogURL = "https://dummyjson.com/products?limit=100"
	}
	if cfg.RatesURL == "" {
		cfg.RatesURL = "https://api.exchangerate-api.com/v4/latest/USD"
	}
	if cfg.HTTPTimeoutSeconds == 0 {
		cfg.HTTPTimeoutSeconds = 10
	}
	if cfg.FallbackRates == (FallbackRates{}) {
		cfg.FallbackRates = FallbackRates{EUR: 0.92, GBP: 0.79, INR: 83.12, Date: "2024-12-01"}
	}
	if cfg.TopProducts == 0 {
		cfg.TopProducts = 5
	}
	if cfg.TopCustomers == 0 {
		cfg.TopCustomers = 5
	}
	if cfg.LowQuantityThreshold == 0 {
		cfg.LowQuantityThreshold = 10
	}
}

// validate checks the configuration and creates the output directory.
func validate(cfg *Config) error {
	if cfg.HTTPTimeoutSeconds < 0 {
		return fmt.Errorf("http_timeout_seconds must not be negative")
	}
	if cfg.TopProducts < 0 || cfg.TopCustomers < 0 {
		return fmt.Errorf("top_products and top_customers must not be negative")
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	return nil
}
