package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product represents the canonical farm listing.
type Product struct {
	ID                 uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FarmID             uuid.UUID      `gorm:"column:farm_id;type:uuid;not null"`
	FarmName           string         `gorm:"column:farm_name;not null"`
	Name               string         `gorm:"column:name;not null"`
	Description        *string        `gorm:"column:description"`
	Unit               string         `gorm:"column:unit;not null"`
	MinimumOrder       *int           `gorm:"column:minimum_order"`
	PriceCents         int            `gorm:"column:price_cents;not null"`
	DiscountPriceCents *int           `gorm:"column:discount_price_cents"`
	Stock              int            `gorm:"column:stock;not null;default:0"`
	Images             pq.StringArray `gorm:"column:images;type:text[]"`
	IsActive           bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt          time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
