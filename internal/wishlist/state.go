package wishlist

import (
	"github.com/lmarquez/storefront-backend/internal/catalog"
)

// State is an insertion-ordered set of saved product records, unique by
// product id. Order is preserved for display but carries no semantic weight.
type State struct {
	Items []catalog.Product
}

// Contains reports whether the product id is already saved.
func (s State) Contains(productID int64) bool {
	return s.indexOf(productID) >= 0
}

func (s State) indexOf(productID int64) int {
	for i, item := range s.Items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

func cloneItems(items []catalog.Product) []catalog.Product {
	out := make([]catalog.Product, len(items))
	copy(out, items)
	return out
}
