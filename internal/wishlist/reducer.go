package wishlist

import (
	"github.com/lmarquez/storefront-backend/internal/catalog"
)

type ActionType string

const (
	ActionAdd    ActionType = "ADD"
	ActionRemove ActionType = "REMOVE"
	ActionToggle ActionType = "TOGGLE"
)

// Action is the tagged command consumed by Reduce.
type Action struct {
	Type      ActionType
	Product   *catalog.Product
	ProductID int64
}

// Add saves the product; a duplicate id is a no-op.
func Add(product catalog.Product) Action {
	return Action{Type: ActionAdd, Product: &product}
}

// Remove drops the entry with the given product id; absent ids are a no-op.
func Remove(productID int64) Action {
	return Action{Type: ActionRemove, ProductID: productID}
}

// Toggle removes the product if present, otherwise adds it. It is a single
// atomic reducer step so no intermediate state can be observed or persisted.
func Toggle(product catalog.Product) Action {
	return Action{Type: ActionToggle, Product: &product}
}

// Reduce computes the next wishlist state from the current state and one
// action. Pure and total: malformed or unknown actions return the state
// unchanged.
func Reduce(state State, action Action) State {
	switch action.Type {
	case ActionAdd:
		if action.Product == nil || state.Contains(action.Product.ID) {
			return state
		}
		return State{Items: append(cloneItems(state.Items), *action.Product)}

	case ActionRemove:
		idx := state.indexOf(action.ProductID)
		if idx < 0 {
			return state
		}
		items := make([]catalog.Product, 0, len(state.Items)-1)
		items = append(items, state.Items[:idx]...)
		items = append(items, state.Items[idx+1:]...)
		return State{Items: items}

	case ActionToggle:
		if action.Product == nil {
			return state
		}
		if state.Contains(action.Product.ID) {
			return Reduce(state, Remove(action.Product.ID))
		}
		return Reduce(state, Add(*action.Product))

	default:
		return state
	}
}
