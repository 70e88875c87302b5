package salesparser

import (
	"io"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/retailops/sales-analytics/internal/logger"
	"github.com/retailops/sales-analytics/internal/types"
)

func newTestParser() *Parser {
	return New(logger.NewWithWriter(io.Discard))
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want types.Transaction
	}{
		{
			name: "basic line",
			line: "T001|2024-12-01|P101|Laptop|2|45000|C001|North",
			want: types.Transaction{
				TransactionID: "T001",
				Date:          "2024-12-01",
				ProductID:     "P101",
				ProductName:   "Laptop",
				Quantity:      2,
				UnitPrice:     45000,
				CustomerID:    "C001",
				Region:        "North",
			},
		},
		{
			name: "comma-grouped numerics are stripped",
			line: "T002|2024-12-02|P102|Monitor|1,200|1,499.50|C002|South",
			want: types.Transaction{
				TransactionID: "T002",
				Date:          "2024-12-02",
				ProductID:     "P102",
				ProductName:   "Monitor",
				Quantity:      1200,
				UnitPrice:     1499.50,
				CustomerID:    "C002",
				Region:        "South",
			},
		},
		{
			name: "product name keeps its commas",
			line: "T003|2024-12-03|P103|Laptop, 15 inch|1|999.99|C003|East",
			want: types.Transaction{
				TransactionID: "T003",
				Date:          "2024-12-03",
				ProductID:     "P103",
				ProductName:   "Laptop, 15 inch",
				Quantity:      1,
				UnitPrice:     999.99,
				CustomerID:    "C003",
				Region:        "East",
			},
		},
		{
			name: "surrounding whitespace is trimmed",
			line: " T004 | 2024-12-04 | P104 | Mouse | 3 | 25.50 | C004 | West ",
			want: types.Transaction{
				TransactionID: "T004",
				Date:          "2024-12-04",
				ProductID:     "P104",
				ProductName:   "Mouse",
				Quantity:      3,
				UnitPrice:     25.50,
				CustomerID:    "C004",
				Region:        "West",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLine(tt.line)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLineErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "T001|2024-12-01|P101|Laptop|2|45000|C001"},
		{"too many fields", "T001|2024-12-01|P101|Laptop|2|45000|C001|North|extra"},
		{"non-numeric quantity", "T001|2024-12-01|P101|Laptop|two|45000|C001|North"},
		{"non-numeric unit price", "T001|2024-12-01|P101|Laptop|2|abc|C001|North"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseLine(tt.line)
			assert.Error(t, err)
		})
	}
}

func TestParseSkipsBadLinesAndKeepsOrder(t *testing.T) {
	lines := []string{
		"T001|2024-12-01|P101|Laptop|2|45000|C001|North",
		"garbage line without pipes",
		"T002|2024-12-02|P102|Mouse|5|500|C002|South",
		"T003|2024-12-03|P103|Keyboard|x|999|C003|East",
		"T004|2024-12-04|P104|Monitor|1|12000|C004|West",
	}

	result := newTestParser().Parse(lines)

	assert.Equal(t, 5, result.LinesRead)
	assert.Equal(t, 2, result.LinesSkipped)
	assert.Equal(t, 3, len(result.Transactions))

	// Surviving records keep input order.
	assert.Equal(t, "T001", result.Transactions[0].TransactionID)
	assert.Equal(t, "T002", result.Transactions[1].TransactionID)
	assert.Equal(t, "T004", result.Transactions[2].TransactionID)
}

func TestParseEmptyInput(t *testing.T) {
	result := newTestParser().Parse(nil)

	assert.Equal(t, 0, result.LinesRead)
	assert.Equal(t, 0, result.LinesSkipped)
	assert.Equal(t, 0, len(result.Transactions))
}
