// =============================================================================
// Sales Analytics - Cleaned Data Exports
// =============================================================================
//
// This module writes the cleaned, enriched dataset out in three formats:
//   - pipe-delimited text (the canonical cleaned-data artifact)
//   - CSV (for spreadsheet import)
//   - XLSX (a ready-to-open workbook)
//
// All three carry the same rows: the eight canonical transaction columns
// followed by the enrichment columns. Exports are only written once every
// pipeline stage has completed, so a failed run never leaves partial files.
//
// =============================================================================

package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/retailops/sales-analytics/internal/types"
)

// sheetName is the sheet carrying the cleaned rows in the XLSX export.
const sheetName = "Cleaned Data"

// columns is the export header, canonical transaction fields first.
var columns = []string{
	"TransactionID", "Date", "ProductID", "ProductName",
	"Quantity", "UnitPrice", "CustomerID", "Region",
	"Category", "Brand", "Rating", "Matched",
}

// WritePipeDelimited writes the cleaned data as a pipe-delimited text file
// with a header row, mirroring the input format plus enrichment columns.
func WritePipeDelimited(path string, records []types.EnrichedTransaction) error {
	var b strings.Builder

	b.WriteString(strings.Join(columns, "|"))
	b.WriteByte('\n')

	for _, record := range records {
		b.WriteString(strings.Join(fields(record), "|"))
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write cleaned data file: %w", err)
	}

	return nil
}

// WriteCSV writes the cleaned data as a CSV file.
func WriteCSV(path string, records []types.EnrichedTransaction) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV export: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(fields(record)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV export: %w", err)
	}

	return nil
}

// WriteXLSX writes the cleaned data as an XLSX workbook with a single sheet.
func WriteXLSX(path string, records []types.EnrichedTransaction) error {
	workbook := excelize.NewFile()
	defer workbook.Close()

	if err := workbook.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := workbook.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write XLSX header: %w", err)
	}

	for i, record := range records {
		row := []interface{}{
			record.TransactionID,
			record.Date,
			record.ProductID,
			record.ProductName,
			record.Quantity,
			record.UnitPrice,
			record.CustomerID,
			record.Region,
			record.Category,
			record.Brand,
			record.Rating,
			record.Matched,
		}

		cell := fmt.Sprintf("A%d", i+2)
		if err := workbook.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write XLSX row %d: %w", i+2, err)
		}
	}

	if err := workbook.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save XLSX export: %w", err)
	}

	return nil
}

// fields renders one record as export column values.
func fields(record types.EnrichedTransaction) []string {
	return []string{
		record.TransactionID,
		record.Date,
		record.ProductID,
		record.ProductName,
		strconv.Itoa(record.Quantity),
		strconv.FormatFloat(record.UnitPrice, 'f', -1, 64),
		record.CustomerID,
		record.Region,
		record.Category,
		record.Brand,
		strconv.FormatFloat(record.Rating, 'f', -1, 64),
		strconv.FormatBool(record.Matched),
	}
}
