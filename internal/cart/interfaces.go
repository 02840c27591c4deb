package cart

import (
	"context"

	"github.com/AdejohOS/feather-mart-sub001/internal/products"
	"github.com/AdejohOS/feather-mart-sub001/pkg/db/models"
	"github.com/google/uuid"
)

// LineRepository defines the persistence surface required for authenticated
// cart lines. Transact scopes fn to a single transaction; implementations
// without transactional storage may run fn directly.
type LineRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*models.CartItem, error)
	UpsertQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	DeleteByID(ctx context.Context, userID, id uuid.UUID) error
	DeleteByProduct(ctx context.Context, userID, productID uuid.UUID) error
	DeleteAll(ctx context.Context, userID uuid.UUID) error
	Transact(ctx context.Context, fn func(LineRepository) error) error
}

// SnapshotLoader resolves live product display data.
type SnapshotLoader interface {
	Snapshot(ctx context.Context, id uuid.UUID) (*products.Snapshot, error)
	Snapshots(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*products.Snapshot, error)
}

// GuestCartStore is the browser-scoped side of the dual backend.
type GuestCartStore interface {
	Read(ctx context.Context, guestToken string) Cart
	Write(ctx context.Context, guestToken string, c Cart)
	Clear(ctx context.Context, guestToken string)
}
