package products

import (
	"github.com/AdejohOS/feather-mart-sub001/pkg/db/models"
	"github.com/google/uuid"
)

// Snapshot carries the display fields needed to render a cart or wishlist
// line. It is always read fresh from the product row, never cached on the
// line itself, so price changes and stock depletion show up immediately.
type Snapshot struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	FarmName           string    `json:"farm_name"`
	Unit               string    `json:"unit"`
	PriceCents         int       `json:"price_cents"`
	DiscountPriceCents *int      `json:"discount_price_cents,omitempty"`
	Stock              int       `json:"stock"`
	MinimumOrder       *int      `json:"minimum_order,omitempty"`
	ImageURL           *string   `json:"image_url,omitempty"`
}

// EffectivePriceCents returns the discounted price when one is set.
func (s Snapshot) EffectivePriceCents() int {
	if s.DiscountPriceCents != nil {
		return *s.DiscountPriceCents
	}
	return s.PriceCents
}

func snapshotFromModel(p *models.Product) *Snapshot {
	snap := &Snapshot{
		ID:                 p.ID,
		Name:               p.Name,
		FarmName:           p.FarmName,
		Unit:               p.Unit,
		PriceCents:         p.PriceCents,
		DiscountPriceCents: copyIntPtr(p.DiscountPriceCents),
		Stock:              p.Stock,
		MinimumOrder:       copyIntPtr(p.MinimumOrder),
	}
	if len(p.Images) > 0 {
		first := p.Images[0]
		snap.ImageURL = &first
	}
	return snap
}

func copyIntPtr(src *int) *int {
	if src == nil {
		return nil
	}
	val := *src
	return &val
}
