// Package inventory holds what the stocked resources (ingredients, merchandise, supplies) share.
package inventory

import (
	"ims/internal/table"
	"ims/pkg/metadata"

	"github.com/tidwall/gjson"
)

type Options struct {
	// LowStockThreshold is the quantity below which an item is "Low Stock".
	LowStockThreshold float64
}

func (o Options) Threshold() float64 {
	if o.LowStockThreshold <= 0 {
		return metadata.DefaultLowStockThreshold
	}
	return o.LowStockThreshold
}

// StockStatus keeps the status a service reports and derives it from quantity otherwise.
func StockStatus(raw gjson.Result, quantity float64, opts Options) string {
	backend := table.Lookup(raw, "Status", "status").String()
	return metadata.ResolveStockStatus(backend, quantity, opts.Threshold()).String()
}
