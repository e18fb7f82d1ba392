package metadata

import "fmt"

type Status string

const (
	StatusAvailable  Status = "Available"
	StatusLowStock   Status = "Low Stock"
	StatusOutOfStock Status = "Out of Stock"
	StatusActive     Status = "Active"
	StatusInactive   Status = "Inactive"
)

// DefaultLowStockThreshold applies when the configuration does not override it.
const DefaultLowStockThreshold = 10.0

func NewStatus(value string) (Status, error) {
	status := Status(value)
	if !status.isValid() {
		return "", fmt.Errorf("invalid status: %s", value)
	}
	return status, nil
}

func (s Status) isValid() bool {
	switch s {
	case StatusAvailable, StatusLowStock, StatusOutOfStock, StatusActive, StatusInactive:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// StockStatus derives the status of a stocked record from its quantity.
func StockStatus(quantity, lowStockThreshold float64) Status {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity < lowStockThreshold:
		return StatusLowStock
	default:
		return StatusAvailable
	}
}

// ResolveStockStatus keeps a backend-supplied stock status and derives one otherwise.
func ResolveStockStatus(backend string, quantity, lowStockThreshold float64) Status {
	switch status := Status(backend); status {
	case StatusAvailable, StatusLowStock, StatusOutOfStock:
		return status
	}
	return StockStatus(quantity, lowStockThreshold)
}

func StockStatuses() []string {
	return []string{StatusAvailable.String(), StatusLowStock.String(), StatusOutOfStock.String()}
}
