package products

import (
	"context"

	"github.com/AdejohOS/feather-mart-sub001/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository reads product display data. Product CRUD is owned elsewhere;
// this surface is read-only.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a product repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Snapshot loads the display fields for one active product.
// Returns gorm.ErrRecordNotFound when the product is missing or inactive.
func (r *Repository) Snapshot(ctx context.Context, id uuid.UUID) (*Snapshot, error) {
	if id == uuid.Nil {
		return nil, gorm.ErrInvalidValue
	}
	var row models.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return snapshotFromModel(&row), nil
}

// Snapshots loads display fields for a batch of products, keyed by id.
// Missing or inactive products are simply absent from the result.
func (r *Repository) Snapshots(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Snapshot, error) {
	result := make(map[uuid.UUID]*Snapshot, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		result[rows[i].ID] = snapshotFromModel(&rows[i])
	}
	return result, nil
}
