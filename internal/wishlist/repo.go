package wishlist

import (
	"context"

	"github.com/AdejohOS/feather-mart-sub001/pkg/db"
	"github.com/AdejohOS/feather-mart-sub001/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates wishlist persistence for authenticated users.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddItem inserts a wishlist entry. A duplicate insert is treated as
// success; membership is boolean.
func (r *Repository) AddItem(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil || productID == uuid.Nil {
		return gorm.ErrInvalidValue
	}

	err := r.db.WithContext(ctx).
		Exec(`INSERT INTO wishlist_items (user_id, product_id) VALUES (?, ?)`, userID, productID).
		Error
	if db.IsUniqueViolation(err, "") {
		return nil
	}
	return err
}

// RemoveItem deletes the user-product entry if it exists.
func (r *Repository) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{}).
		Error
}

// ListProductIDs returns the saved product ids for a user, oldest first.
func (r *Repository) ListProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Contains reports whether the user already saved the product.
func (r *Repository) Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteAll removes every wishlist entry for a user.
func (r *Repository) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.WishlistItem{}).
		Error
}
