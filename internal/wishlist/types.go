package wishlist

import (
	"github.com/AdejohOS/feather-mart-sub001/internal/products"
	"github.com/google/uuid"
)

// Item is one rendered wishlist row. Membership is boolean; there is no
// quantity. Display fields come from the live product snapshot on every read.
type Item struct {
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	PriceCents int       `json:"price_cents"`
	Stock      int       `json:"stock"`
	ImageURL   *string   `json:"image_url,omitempty"`
	FarmName   *string   `json:"farm_name,omitempty"`
}

// Wishlist is the full aggregate returned by every operation.
type Wishlist struct {
	Items []Item `json:"items"`
}

// Empty returns the zero wishlist with a non-nil item slice.
func Empty() Wishlist {
	return Wishlist{Items: []Item{}}
}

// guestBlob is the persisted guest document: product ids only, hydrated
// through the snapshot resolver on read.
type guestBlob struct {
	Items []guestEntry `json:"items"`
}

type guestEntry struct {
	ProductID uuid.UUID `json:"product_id"`
}

// ItemFromSnapshot builds a wishlist row from live product data.
func ItemFromSnapshot(snap *products.Snapshot) Item {
	item := Item{
		ProductID:  snap.ID,
		Name:       snap.Name,
		PriceCents: snap.EffectivePriceCents(),
		Stock:      snap.Stock,
		ImageURL:   snap.ImageURL,
	}
	if snap.FarmName != "" {
		farm := snap.FarmName
		item.FarmName = &farm
	}
	return item
}
