package validation

import (
	"io"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/retailops/sales-analytics/internal/logger"
	"github.com/retailops/sales-analytics/internal/types"
)

func newTestValidator() *Validator {
	return New(logger.NewWithWriter(io.Discard))
}

// validTx returns a transaction passing every rule; tests mutate single fields.
func validTx() types.Transaction {
	return types.Transaction{
		TransactionID: "T001",
		Date:          "2024-12-01",
		ProductID:     "P101",
		ProductName:   "Laptop",
		Quantity:      2,
		UnitPrice:     45000,
		CustomerID:    "C001",
		Region:        "North",
	}
}

func TestCheckRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.Transaction)
		want   []string
	}{
		{
			name:   "valid record has no reasons",
			mutate: func(tx *types.Transaction) {},
			want:   nil,
		},
		{
			name:   "zero quantity",
			mutate: func(tx *types.Transaction) { tx.Quantity = 0 },
			want:   []string{"Quantity must be > 0"},
		},
		{
			name:   "negative quantity",
			mutate: func(tx *types.Transaction) { tx.Quantity = -3 },
			want:   []string{"Quantity must be > 0"},
		},
		{
			name:   "zero unit price",
			mutate: func(tx *types.Transaction) { tx.UnitPrice = 0 },
			want:   []string{"UnitPrice must be > 0"},
		},
		{
			name:   "missing region",
			mutate: func(tx *types.Transaction) { tx.Region = "" },
			want:   []string{"Missing Region"},
		},
		{
			name:   "wrong transaction prefix",
			mutate: func(tx *types.Transaction) { tx.TransactionID = "X001" },
			want:   []string{"TransactionID must start with 'T'"},
		},
		{
			name:   "wrong product prefix",
			mutate: func(tx *types.Transaction) { tx.ProductID = "Q101" },
			want:   []string{"ProductID must start with 'P'"},
		},
		{
			name:   "wrong customer prefix",
			mutate: func(tx *types.Transaction) { tx.CustomerID = "K001" },
			want:   []string{"CustomerID must start with 'C'"},
		},
		{
			name: "multiple failures collect every reason in rule order",
			mutate: func(tx *types.Transaction) {
				tx.Quantity = 0
				tx.UnitPrice = -1
				tx.CustomerID = ""
			},
			want: []string{
				"Quantity must be > 0",
				"UnitPrice must be > 0",
				"Missing CustomerID",
				"CustomerID must start with 'C'",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTx()
			tt.mutate(&tx)
			assert.Equal(t, tt.want, checkRules(tx))
		})
	}
}

func TestValidatePartition(t *testing.T) {
	good := validTx()
	bad := validTx()
	bad.TransactionID = "X002"

	result := newTestValidator().Validate([]types.Transaction{good, bad})

	assert.Equal(t, 1, len(result.Valid))
	assert.Equal(t, 1, result.InvalidCount())
	assert.Equal(t, "T001", result.Valid[0].TransactionID)
	assert.Equal(t, "X002", result.Rejections[0].Transaction.TransactionID)
	assert.Equal(t, []string{"TransactionID must start with 'T'"}, result.Rejections[0].Reasons)

	// Every record lands on exactly one side of the partition.
	assert.Equal(t, 2, len(result.Valid)+result.InvalidCount())
}

func TestRunFiltersAndSummary(t *testing.T) {
	mk := func(id, region string, qty int, price float64) types.Transaction {
		tx := validTx()
		tx.TransactionID = id
		tx.Region = region
		tx.Quantity = qty
		tx.UnitPrice = price
		return tx
	}

	invalid := validTx()
	invalid.Quantity = 0

	txs := []types.Transaction{
		mk("T001", "North", 2, 45000), // amount 90000
		mk("T002", "South", 1, 500),   // amount 500
		mk("T003", "North", 1, 100),   // amount 100
		mk("T004", "North", 1, 2000),  // amount 2000
		invalid,
	}

	min := 1000.0
	outcome := newTestValidator().Run(txs, types.FilterOptions{
		Region:    "North",
		MinAmount: &min,
	})

	assert.Equal(t, 5, outcome.Summary.TotalInput)
	assert.Equal(t, 1, outcome.Summary.Invalid)
	assert.Equal(t, 1, outcome.Summary.FilteredByRegion) // T002
	assert.Equal(t, 1, outcome.Summary.FilteredByAmount) // T003
	assert.Equal(t, 2, outcome.Summary.FinalCount)

	// FinalCount = TotalInput - Invalid - FilteredByRegion - FilteredByAmount.
	s := outcome.Summary
	assert.Equal(t, s.FinalCount, s.TotalInput-s.Invalid-s.FilteredByRegion-s.FilteredByAmount)

	assert.Equal(t, "T001", outcome.Filtered[0].TransactionID)
	assert.Equal(t, "T004", outcome.Filtered[1].TransactionID)
}

func TestFilterByAmountBoundsAreInclusive(t *testing.T) {
	tx := validTx()
	tx.Quantity = 1
	tx.UnitPrice = 1000

	min, max := 1000.0, 1000.0
	filtered := filterByAmount([]types.Transaction{tx}, &min, &max)
	assert.Equal(t, 1, len(filtered))
}

func TestDiscoveryReflectsPreFilterValidSet(t *testing.T) {
	mk := func(id, region string, price float64) types.Transaction {
		tx := validTx()
		tx.TransactionID = id
		tx.Region = region
		tx.Quantity = 1
		tx.UnitPrice = price
		return tx
	}

	txs := []types.Transaction{
		mk("T001", "West", 50),
		mk("T002", "East", 9000),
		mk("T003", "West", 300),
	}

	// Region filter removes East, but discovery still sees it.
	outcome := newTestValidator().Run(txs, types.FilterOptions{Region: "West"})

	assert.Equal(t, []string{"East", "West"}, outcome.Discovery.Regions)
	assert.Equal(t, 50.0, outcome.Discovery.MinAmount)
	assert.Equal(t, 9000.0, outcome.Discovery.MaxAmount)
}

func TestRunEmptyInput(t *testing.T) {
	outcome := newTestValidator().Run(nil, types.FilterOptions{})

	assert.Equal(t, 0, outcome.Summary.TotalInput)
	assert.Equal(t, 0, outcome.Summary.FinalCount)
	assert.Equal(t, 0, len(outcome.Filtered))
	assert.Equal(t, 0, len(outcome.Discovery.Regions))
}
