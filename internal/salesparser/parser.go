// =============================================================================
// Sales Analytics - Transaction Parser
// =============================================================================
//
// This module turns raw pipe-delimited lines into typed Transaction records.
// The input format is fixed:
//
//	TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region
//
// A generic CSV reader is deliberately not used here: product names contain
// literal commas ("Laptop, 15 inch") that must never be treated as field
// separators, and numeric fields carry thousands separators ("1,200") that
// must be stripped before conversion. The exact-8-field pipe split handles
// both.
//
// ERROR HANDLING:
//   - A line with the wrong field count is skipped and counted, never fatal.
//   - A numeric conversion failure skips that line the same way.
//   - The parser reports lines read vs. skipped for diagnostics.
//
// =============================================================================

package salesparser

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/retailops/sales-analytics/internal/types"
)

// fieldCount is the fixed number of pipe-separated fields per line.
const fieldCount = 8

// Result holds the parsed transactions plus the diagnostic line counts.
type Result struct {
	// Transactions are the successfully parsed records, in input order.
	Transactions []types.Transaction

	// LinesRead is the number of raw lines consumed.
	LinesRead int

	// LinesSkipped is the number of lines discarded for a wrong field count
	// or a numeric conversion failure.
	LinesSkipped int
}

// Parser parses raw sales data lines into Transaction records.
type Parser struct {
	log zerolog.Logger
}

// New creates a Parser that logs skipped lines to the given logger.
func New(log zerolog.Logger) *Parser {
	return &Parser{log: log}
}

// Parse converts raw lines into transactions. Parsing is best-effort per
// line: a malformed line is logged and skipped, and processing continues.
// Output order matches input order.
func (p *Parser) Parse(lines []string) Result {
	result := Result{
		Transactions: make([]types.Transaction, 0, len(lines)),
		LinesRead:    len(lines),
	}

	for i, line := range lines {
		tx, err := parseLine(line)
		if err != nil {
			result.LinesSkipped++
			p.log.Warn().
				Int("line", i+1).
				Err(err).
				Msg("skipping unparseable line")
			continue
		}

		result.Transactions = append(result.Transactions, tx)
	}

	p.log.Info().
		Int("parsed", len(result.Transactions)).
		Int("skipped", result.LinesSkipped).
		Msg("parsing complete")

	return result
}

// lineError describes why a single line was rejected.
type lineError struct {
	msg string
}

func (e *lineError) Error() string { return e.msg }

// parseLine parses one pipe-delimited line into a Transaction.
func parseLine(line string) (types.Transaction, error) {
	fields := strings.Split(line, "|")
	if len(fields) != fieldCount {
		return types.Transaction{}, &lineError{
			msg: "expected " + strconv.Itoa(fieldCount) + " fields, got " + strconv.Itoa(len(fields)),
		}
	}

	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	quantity, err := parseQuantity(fields[4])
	if err != nil {
		return types.Transaction{}, err
	}

	unitPrice, err := parseUnitPrice(fields[5])
	if err != nil {
		return types.Transaction{}, err
	}

	return types.Transaction{
		TransactionID: fields[0],
		Date:          fields[1],
		ProductID:     fields[2],
		ProductName:   fields[3], // kept verbatim, commas included
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		CustomerID:    fields[6],
		Region:        fields[7],
	}, nil
}

// parseQuantity strips grouping commas and converts to an integer.
func parseQuantity(s string) (int, error) {
	cleaned := strings.ReplaceAll(s, ",", "")
	quantity, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, &lineError{msg: "invalid quantity " + strconv.Quote(s)}
	}
	return quantity, nil
}

// parseUnitPrice strips grouping commas and converts to a float.
func parseUnitPrice(s string) (float64, error) {
	cleaned := strings.ReplaceAll(s, ",", "")
	unitPrice, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, &lineError{msg: "invalid unit price " + strconv.Quote(s)}
	}
	return unitPrice, nil
}
