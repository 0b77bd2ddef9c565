package cart

import (
	"github.com/lmarquez/storefront-backend/internal/catalog"
)

type ActionType string

const (
	ActionAddItem     ActionType = "ADD_ITEM"
	ActionRemoveItem  ActionType = "REMOVE_ITEM"
	ActionSetQuantity ActionType = "SET_QUANTITY"
	ActionClear       ActionType = "CLEAR"
)

// Action is the tagged command consumed by Reduce. Exactly one payload field
// is meaningful per type.
type Action struct {
	Type      ActionType
	Product   *catalog.Product
	ProductID int64
	Quantity  int
}

// AddItem appends the product or increments its existing line item.
func AddItem(product catalog.Product) Action {
	return Action{Type: ActionAddItem, Product: &product}
}

// RemoveItem deletes the line item with the given product id.
func RemoveItem(productID int64) Action {
	return Action{Type: ActionRemoveItem, ProductID: productID}
}

// SetQuantity replaces the line item's quantity.
func SetQuantity(productID int64, quantity int) Action {
	return Action{Type: ActionSetQuantity, ProductID: productID, Quantity: quantity}
}

// Clear resets the cart to the empty state.
func Clear() Action {
	return Action{Type: ActionClear}
}

// Reduce computes the next cart state from the current state and one action.
// It is a pure, total function: malformed or unknown actions return the
// state unchanged, never an error. maxQuantity caps every line item's
// quantity silently; a value below 1 disables the cap.
func Reduce(state State, action Action, maxQuantity int) State {
	switch action.Type {
	case ActionAddItem:
		if action.Product == nil {
			return state
		}
		return reduceAdd(state, *action.Product, maxQuantity)

	case ActionRemoveItem:
		idx := state.indexOf(action.ProductID)
		if idx < 0 {
			return state
		}
		items := make([]LineItem, 0, len(state.Items)-1)
		items = append(items, state.Items[:idx]...)
		items = append(items, state.Items[idx+1:]...)
		return State{Items: items}

	case ActionSetQuantity:
		// Decrementing to zero must go through REMOVE_ITEM explicitly.
		if action.Quantity < 1 {
			return state
		}
		idx := state.indexOf(action.ProductID)
		if idx < 0 {
			return state
		}
		items := cloneItems(state.Items)
		items[idx].Quantity = clampQuantity(action.Quantity, maxQuantity)
		return State{Items: items}

	case ActionClear:
		return State{Items: []LineItem{}}

	default:
		return state
	}
}

func reduceAdd(state State, product catalog.Product, maxQuantity int) State {
	if idx := state.indexOf(product.ID); idx >= 0 {
		items := cloneItems(state.Items)
		items[idx].Quantity = clampQuantity(items[idx].Quantity+1, maxQuantity)
		return State{Items: items}
	}

	items := cloneItems(state.Items)
	items = append(items, LineItem{
		ID:           product.ID,
		Title:        product.Title,
		ThumbnailURL: product.Thumbnail,
		UnitPrice:    product.Price,
		Quantity:     1,
	})
	return State{Items: items}
}

func clampQuantity(quantity, maxQuantity int) int {
	if maxQuantity >= 1 && quantity > maxQuantity {
		return maxQuantity
	}
	return quantity
}
