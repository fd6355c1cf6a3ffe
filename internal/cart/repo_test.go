package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/maisonluxe/storefront-backend/pkg/db/models"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	carts := `
CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  user_id TEXT,
  promo_code TEXT NOT NULL DEFAULT '',
  promo_applied INTEGER NOT NULL DEFAULT 0,
  promo_discount TEXT NOT NULL DEFAULT '0',
  promo_expanded INTEGER NOT NULL DEFAULT 0,
  shipping_postal_code TEXT NOT NULL DEFAULT '',
  shipping_calculated INTEGER NOT NULL DEFAULT 0,
  shipping_cost TEXT NOT NULL DEFAULT '0',
  shipping_expanded INTEGER NOT NULL DEFAULT 0,
  gift_bag INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	cartLines := `
CREATE TABLE IF NOT EXISTS cart_lines (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  unit_price TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (cart_id, product_id)
);`
	require.NoError(t, db.Exec(carts).Error)
	require.NoError(t, db.Exec(cartLines).Error)
	return db
}

func createCart(t *testing.T, repo *Repository, userID *uuid.UUID) *models.Cart {
	t.Helper()

	cart := &models.Cart{ID: uuid.New(), UserID: userID}
	require.NoError(t, repo.db.Create(cart).Error)
	return cart
}

func TestRepositoryCartRoundTrip(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	cart := createCart(t, repo, &userID)

	line := &models.CartLine{
		ID:        uuid.New(),
		CartID:    cart.ID,
		ProductID: uuid.New(),
		UnitPrice: decimal.RequireFromString("149.00"),
		Quantity:  2,
	}
	require.NoError(t, repo.SaveLine(ctx, line))

	loaded, err := repo.FindByID(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 1)
	assert.True(t, loaded.Lines[0].UnitPrice.Equal(decimal.RequireFromString("149.00")))
	assert.Equal(t, 2, loaded.Lines[0].Quantity)

	byUser, err := repo.FindActiveByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, byUser.ID)
}

func TestRepositoryUpdatePersistsWidgetState(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	cart := createCart(t, repo, nil)

	cart.PromoCode = "LUXE10"
	cart.PromoApplied = true
	cart.PromoDiscount = decimal.NewFromInt(10)
	cart.ShippingPostalCode = "28001"
	cart.ShippingCalculated = true
	cart.ShippingCost = decimal.NewFromInt(15)
	cart.GiftBag = true
	require.NoError(t, repo.Update(ctx, cart))

	loaded, err := repo.FindByID(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, "LUXE10", loaded.PromoCode)
	assert.True(t, loaded.PromoApplied)
	assert.True(t, loaded.PromoDiscount.Equal(decimal.NewFromInt(10)))
	assert.True(t, loaded.ShippingCalculated)
	assert.True(t, loaded.ShippingCost.Equal(decimal.NewFromInt(15)))
	assert.True(t, loaded.GiftBag)
}

func TestRepositoryDeleteLine(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	cart := createCart(t, repo, nil)
	productID := uuid.New()

	require.NoError(t, repo.SaveLine(ctx, &models.CartLine{
		ID:        uuid.New(),
		CartID:    cart.ID,
		ProductID: productID,
		UnitPrice: decimal.NewFromInt(50),
		Quantity:  1,
	}))

	require.NoError(t, repo.DeleteLine(ctx, cart.ID, productID))
	// deleting again is a no-op
	require.NoError(t, repo.DeleteLine(ctx, cart.ID, productID))

	line, err := repo.FindLine(ctx, cart.ID, productID)
	require.NoError(t, err)
	assert.Nil(t, line)
}
