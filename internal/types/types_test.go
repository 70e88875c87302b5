package types

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestAmount(t *testing.T) {
	tx := Transaction{Quantity: 3, UnitPrice: 12.5}
	assert.Equal(t, 37.5, tx.Amount())
}

func TestDiscoverOptions(t *testing.T) {
	valid := []Transaction{
		{Region: "West", Quantity: 1, UnitPrice: 300},
		{Region: "East", Quantity: 2, UnitPrice: 25},
		{Region: "West", Quantity: 1, UnitPrice: 9000},
	}

	d := DiscoverOptions(valid)

	assert.Equal(t, []string{"East", "West"}, d.Regions)
	assert.Equal(t, 50.0, d.MinAmount)
	assert.Equal(t, 9000.0, d.MaxAmount)
}

func TestDiscoverOptionsEmpty(t *testing.T) {
	d := DiscoverOptions(nil)

	assert.Equal(t, 0, len(d.Regions))
	assert.Equal(t, 0.0, d.MinAmount)
	assert.Equal(t, 0.0, d.MaxAmount)
}
