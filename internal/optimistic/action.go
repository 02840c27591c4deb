package optimistic

import (
	"github.com/AdejohOS/feather-mart-sub001/internal/cart"
)

// Action is the closed set of speculative cart mutations. The sealed
// interface keeps the reducer exhaustive: an unknown action cannot be
// constructed outside this package, so there is no silent no-op branch.
type Action interface {
	isAction()
}

// AddItem merges a line into the cart by product id.
type AddItem struct {
	Item cart.Item
}

// UpdateQuantity replaces a line's quantity; zero or less removes it.
type UpdateQuantity struct {
	ItemID   string
	Quantity int
}

// RemoveItem drops a line.
type RemoveItem struct {
	ItemID string
}

func (AddItem) isAction()        {}
func (UpdateQuantity) isAction() {}
func (RemoveItem) isAction()     {}

// Apply is the pure reducer: it computes the speculative cart a mutation
// would produce, using the same arithmetic the cart service applies on the
// server. Totals are recomputed in the same step.
func Apply(state cart.Cart, action Action) cart.Cart {
	switch a := action.(type) {
	case AddItem:
		return applyAdd(state, a)
	case UpdateQuantity:
		return applyUpdate(state, a.ItemID, a.Quantity)
	case RemoveItem:
		return applyUpdate(state, a.ItemID, 0)
	}
	return state
}

func applyAdd(state cart.Cart, a AddItem) cart.Cart {
	items := make([]cart.Item, 0, len(state.Items)+1)
	merged := false
	for _, item := range state.Items {
		if item.ProductID == a.Item.ProductID {
			// Keep the confirmed line's id; only the quantity grows.
			item.Quantity += a.Item.Quantity
			merged = true
		}
		items = append(items, item)
	}
	if !merged {
		items = append(items, a.Item)
	}
	return cart.Recompute(items)
}

func applyUpdate(state cart.Cart, itemID string, quantity int) cart.Cart {
	items := make([]cart.Item, 0, len(state.Items))
	for _, item := range state.Items {
		if item.ID != itemID {
			items = append(items, item)
			continue
		}
		if quantity <= 0 {
			continue
		}
		item.Quantity = quantity
		items = append(items, item)
	}
	return cart.Recompute(items)
}
