package pipeline

import (
	"sort"
	"time"

	"github.com/lodeworks/refinery/pkg/cleanse"
	"github.com/lodeworks/refinery/pkg/repair"
	"github.com/lodeworks/refinery/pkg/survivor"
	"github.com/lodeworks/refinery/pkg/tables"
)

// Sales reconciles a raw sales-line batch: one survivor per order number and
// product key (latest order date wins), packed dates converted, and the
// amount/quantity/price triplet repaired into mutual consistency.
func Sales(raw []tables.RawSale, now time.Time) []tables.Sale {
	survivors := survivor.Latest(raw,
		func(s tables.RawSale) (string, bool) {
			order := cleanse.Scrub(s.OrderNumber)
			product := cleanse.Scrub(s.ProductKey)
			if order == "" || product == "" {
				return "", false
			}
			// Unit separator keeps composite keys unambiguous.
			return order + "\x1f" + product, true
		},
		func(s tables.RawSale) time.Time {
			return dateOrZero(repair.PackedDate(s.OrderDate))
		},
	)

	out := make([]tables.Sale, 0, len(survivors))
	for _, s := range survivors {
		amount, quantity, price := repair.Sales(s.Sales, s.Quantity, s.Price)
		out = append(out, tables.Sale{
			OrderNumber: cleanse.Scrub(s.OrderNumber),
			ProductKey:  cleanse.Scrub(s.ProductKey),
			CustomerID:  s.CustomerID,
			OrderDate:   repair.PackedDate(s.OrderDate),
			ShipDate:    repair.PackedDate(s.ShipDate),
			DueDate:     repair.PackedDate(s.DueDate),
			Sales:       amount,
			Quantity:    quantity,
			Price:       price,
			LoadedAt:    now,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderNumber != out[j].OrderNumber {
			return out[i].OrderNumber < out[j].OrderNumber
		}
		return out[i].ProductKey < out[j].ProductKey
	})
	return out
}
