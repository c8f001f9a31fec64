package etl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyInventory(t *testing.T) {
	tests := []struct {
		name     string
		quantity int32
		want     string
	}{
		{name: "negative quantity is low tier", quantity: -4, want: LowQuantityItem},
		{name: "zero", quantity: 0, want: LowQuantityItem},
		{name: "just below low boundary", quantity: 9, want: LowQuantityItem},
		{name: "low boundary", quantity: 10, want: MediumQuantityItem},
		{name: "just below medium boundary", quantity: 49, want: MediumQuantityItem},
		{name: "medium boundary", quantity: 50, want: HighQuantityItem},
		{name: "large quantity", quantity: 5000, want: HighQuantityItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyInventory(tt.quantity))
		})
	}
}

func TestStockStatusMediumTierBoundaries(t *testing.T) {
	// 9 -> low, 19 -> medium, 20 -> high
	assert.Equal(t, StatusLow, StockStatus(MediumQuantityItem, 9))
	assert.Equal(t, StatusMedium, StockStatus(MediumQuantityItem, 19))
	assert.Equal(t, StatusHigh, StockStatus(MediumQuantityItem, 20))
}

func TestStockStatusLowTierKeepsLegacyLabel(t *testing.T) {
	assert.Equal(t, StatusLow, StockStatus(LowQuantityItem, 2))
	// The low tier's middle branch emits the full class label instead of
	// "medium"; upstream consumers depend on the literal as-is.
	assert.Equal(t, MediumQuantityItem, StockStatus(LowQuantityItem, 4))
	assert.Equal(t, MediumQuantityItem, StockStatus(LowQuantityItem, 5))
	assert.Equal(t, StatusHigh, StockStatus(LowQuantityItem, 6))
}

func TestStockStatusHighTierBoundaries(t *testing.T) {
	assert.Equal(t, StatusLow, StockStatus(HighQuantityItem, 49))
	assert.Equal(t, StatusMedium, StockStatus(HighQuantityItem, 50))
	assert.Equal(t, StatusMedium, StockStatus(HighQuantityItem, 69))
	assert.Equal(t, StatusHigh, StockStatus(HighQuantityItem, 70))
}
