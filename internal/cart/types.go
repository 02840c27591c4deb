package cart

import (
	"github.com/AdejohOS/feather-mart-sub001/internal/products"
	"github.com/google/uuid"
)

// Item is one rendered cart line. ID is a locally minted uuid for guest
// items and the row id for authenticated items; the two namespaces never
// survive the guest/auth boundary.
type Item struct {
	ID                 string    `json:"id"`
	ProductID          uuid.UUID `json:"product_id"`
	Name               string    `json:"name"`
	UnitPriceCents     int       `json:"unit_price_cents"`
	DiscountPriceCents *int      `json:"discount_price_cents,omitempty"`
	Quantity           int       `json:"quantity"`
	Unit               string    `json:"unit"`
	MinimumOrder       *int      `json:"minimum_order,omitempty"`
	ImageURL           *string   `json:"image_url,omitempty"`
}

// EffectivePriceCents returns the discounted unit price when one is set.
func (i Item) EffectivePriceCents() int {
	if i.DiscountPriceCents != nil {
		return *i.DiscountPriceCents
	}
	return i.UnitPriceCents
}

// Cart is the full aggregate returned by every operation. SubtotalCents and
// TotalItems are derived from Items in the same step as any mutation and are
// never stored independently.
type Cart struct {
	Items         []Item `json:"items"`
	SubtotalCents int    `json:"subtotal_cents"`
	TotalItems    int    `json:"total_items"`
}

// Empty returns the zero cart with a non-nil item slice.
func Empty() Cart {
	return Cart{Items: []Item{}}
}

// Recompute builds a cart from items with both derived totals refreshed.
func Recompute(items []Item) Cart {
	if items == nil {
		items = []Item{}
	}
	c := Cart{Items: items}
	for _, item := range items {
		c.SubtotalCents += item.EffectivePriceCents() * item.Quantity
		c.TotalItems += item.Quantity
	}
	return c
}

// ItemFromSnapshot builds a line from live product data.
func ItemFromSnapshot(id string, snap *products.Snapshot, quantity int) Item {
	return Item{
		ID:                 id,
		ProductID:          snap.ID,
		Name:               snap.Name,
		UnitPriceCents:     snap.PriceCents,
		DiscountPriceCents: snap.DiscountPriceCents,
		Quantity:           quantity,
		Unit:               snap.Unit,
		MinimumOrder:       snap.MinimumOrder,
		ImageURL:           snap.ImageURL,
	}
}
