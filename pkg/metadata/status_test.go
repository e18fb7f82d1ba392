package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockStatus(t *testing.T) {
	tests := []struct {
		name      string
		quantity  float64
		threshold float64
		expected  Status
	}{
		{name: "Empty", quantity: 0, threshold: 10, expected: StatusOutOfStock},
		{name: "Negative", quantity: -2, threshold: 10, expected: StatusOutOfStock},
		{name: "Below threshold", quantity: 3, threshold: 10, expected: StatusLowStock},
		{name: "At threshold", quantity: 10, threshold: 10, expected: StatusAvailable},
		{name: "Plenty", quantity: 250, threshold: 10, expected: StatusAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StockStatus(tt.quantity, tt.threshold))
		})
	}
}

func TestResolveStockStatus(t *testing.T) {
	assert.Equal(t, StatusLowStock, ResolveStockStatus("Low Stock", 500, 10))
	assert.Equal(t, StatusOutOfStock, ResolveStockStatus("", 0, 10))
	assert.Equal(t, StatusAvailable, ResolveStockStatus("whatever", 40, 10))
	assert.Equal(t, StatusLowStock, ResolveStockStatus("Active", 2, 10))
}

func TestNewStatus(t *testing.T) {
	status, err := NewStatus("Out of Stock")
	assert.NoError(t, err)
	assert.Equal(t, StatusOutOfStock, status)

	_, err = NewStatus("in_transit")
	assert.Error(t, err)
}
