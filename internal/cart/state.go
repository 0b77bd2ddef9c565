package cart

import (
	"github.com/shopspring/decimal"
)

// LineItem is one product entry in the cart. Title, thumbnail and unit price
// are snapshotted from the catalog record at add time and never re-fetched.
// A line item with Quantity < 1 must not exist; removal is the only path to
// zero.
type LineItem struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	ThumbnailURL string  `json:"thumbnailUrl"`
	UnitPrice    float64 `json:"unitPrice"`
	Quantity     int     `json:"quantity"`
}

// State holds the ordered cart line items, unique by product id. Aggregates
// are recomputed from Items on every read so they can never drift.
type State struct {
	Items []LineItem
}

// TotalItems is the sum of all line item quantities.
func (s State) TotalItems() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal is the sum of unit price times quantity across all line items.
func (s State) Subtotal() float64 {
	sum := decimal.Zero
	for _, item := range s.Items {
		line := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum = sum.Add(line)
	}
	value, _ := sum.Float64()
	return value
}

// TotalWithTax applies the given tax rate on top of the subtotal.
func (s State) TotalWithTax(taxRate float64) float64 {
	sum := decimal.Zero
	for _, item := range s.Items {
		line := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum = sum.Add(line)
	}
	factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(taxRate))
	value, _ := sum.Mul(factor).Float64()
	return value
}

func (s State) indexOf(productID int64) int {
	for i, item := range s.Items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
