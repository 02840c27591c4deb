package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  farm_id TEXT NOT NULL,
  farm_name TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  unit TEXT NOT NULL,
  minimum_order INTEGER,
  price_cents INTEGER NOT NULL,
  discount_price_cents INTEGER,
  stock INTEGER NOT NULL DEFAULT 0,
  images TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, id uuid.UUID, priceCents, stock int, active bool) {
	t.Helper()
	require.NoError(t, db.Exec(
		`INSERT INTO products (id, farm_id, farm_name, name, unit, price_cents, stock, is_active)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, uuid.New(), "Sunrise Farm", "Broiler feed", "bag", priceCents, stock, active,
	).Error)
}

func TestRepositorySnapshotReturnsActiveProduct(t *testing.T) {
	t.Parallel()

	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	id := uuid.New()
	seedProduct(t, db, id, 1250, 40, true)

	snap, err := repo.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, snap.ID)
	assert.Equal(t, 1250, snap.PriceCents)
	assert.Equal(t, 40, snap.Stock)
	assert.Equal(t, "bag", snap.Unit)
}

func TestRepositorySnapshotHidesInactiveProduct(t *testing.T) {
	t.Parallel()

	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	id := uuid.New()
	seedProduct(t, db, id, 1250, 40, false)

	_, err := repo.Snapshot(ctx, id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositorySnapshotRejectsNilID(t *testing.T) {
	t.Parallel()

	repo := NewRepository(setupProductsTestDB(t))

	_, err := repo.Snapshot(context.Background(), uuid.Nil)
	assert.Error(t, err)
}

func TestRepositorySnapshotsOmitsMissingAndInactive(t *testing.T) {
	t.Parallel()

	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	liveID := uuid.New()
	inactiveID := uuid.New()
	missingID := uuid.New()
	seedProduct(t, db, liveID, 900, 5, true)
	seedProduct(t, db, inactiveID, 700, 5, false)

	snaps, err := repo.Snapshots(ctx, []uuid.UUID{liveID, inactiveID, missingID})
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Contains(t, snaps, liveID)
}

func TestRepositorySnapshotsEmptyInput(t *testing.T) {
	t.Parallel()

	repo := NewRepository(setupProductsTestDB(t))

	snaps, err := repo.Snapshots(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestSnapshotEffectivePrice(t *testing.T) {
	t.Parallel()

	snap := Snapshot{PriceCents: 1000}
	assert.Equal(t, 1000, snap.EffectivePriceCents())

	discount := 750
	snap.DiscountPriceCents = &discount
	assert.Equal(t, 750, snap.EffectivePriceCents())
}
