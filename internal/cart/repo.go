package cart

import (
	"context"

	"github.com/AdejohOS/feather-mart-sub001/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists authenticated cart lines. Rows store only
// (user_id, product_id, quantity); pricing and stock stay on the product.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Transact runs fn against a transaction-bound copy of the repository.
// Read-modify-write sequences go through here so a concurrent add cannot
// interleave between the read and the upsert.
func (r *Repository) Transact(ctx context.Context, fn func(LineRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// ListByUser returns all cart lines for a user, oldest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var rows []models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByUserAndProduct loads the line for one product, if present.
func (r *Repository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	var row models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByID loads a line by row id, restricted to the owning user.
func (r *Repository) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.CartItem, error) {
	var row models.CartItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UpsertQuantity inserts the line or replaces its quantity in place.
func (r *Repository) UpsertQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	if userID == uuid.Nil || productID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	return r.db.WithContext(ctx).
		Exec(`INSERT INTO cart_items (user_id, product_id, quantity) VALUES (?, ?, ?)
ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = CURRENT_TIMESTAMP`,
			userID, productID, quantity).
		Error
}

// DeleteByID removes a line by row id for the owning user.
func (r *Repository) DeleteByID(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.CartItem{}).
		Error
}

// DeleteByProduct removes the line holding the given product.
func (r *Repository) DeleteByProduct(ctx context.Context, userID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{}).
		Error
}

// DeleteAll removes every line for a user.
func (r *Repository) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).
		Error
}
