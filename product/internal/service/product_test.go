package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/shopping/internal/errors"
	"github.com/Alturino/shopping/internal/repository"
	"github.com/Alturino/shopping/internal/testutil"
	"github.com/Alturino/shopping/product/internal/cache"
)

func TestProductService(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	c := context.Background()
	pool := testutil.StartPostgres(t)
	server, client := testutil.StartRedis(t)
	queries := repository.New(pool)
	productService := NewProductService(queries, cache.NewProductCache(client))

	first := testutil.SeedProduct(t, queries, "Mouse", "9.99")
	second := testutil.SeedProduct(t, queries, "Keyboard", "5.00")
	inactive, err := queries.InsertProduct(c, repository.InsertProductParams{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        "Discontinued",
		Description: pgtype.Text{String: "gone", Valid: true},
		Price:       repository.NumericFromDecimal(decimal.NewFromInt(1)),
		Currency:    "USD",
		IsActive:    false,
	})
	require.NoError(t, err)

	t.Run("given active and inactive products should list only active in creation order", func(t *testing.T) {
		products, err := productService.ListProducts(c)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, first.ID, products[0].ID)
		assert.Equal(t, second.ID, products[1].ID)
		assert.Equal(t, "9.99", products[0].Price.String())
		assert.True(t, server.Exists(cache.KeyProducts))
	})

	t.Run("given inactive product should return not found", func(t *testing.T) {
		_, err := productService.FindProductById(c, inactive.ID)
		assert.ErrorIs(t, err, inErrors.ErrNotFound)
	})

	t.Run("given unknown product should return not found", func(t *testing.T) {
		_, err := productService.FindProductById(c, uuid.New())
		assert.ErrorIs(t, err, inErrors.ErrNotFound)
	})

	t.Run("given active product should return it and cache it", func(t *testing.T) {
		product, err := productService.FindProductById(c, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Mouse", product.Name)
		assert.True(t, server.Exists(cache.ProductKey(first.ID)))
	})

	t.Run("given product deactivated after caching should stop serving it once the entry expires", func(t *testing.T) {
		product := testutil.SeedProduct(t, queries, "Webcam", "30.00")
		_, err := productService.FindProductById(c, product.ID)
		require.NoError(t, err)

		_, err = queries.UpdateProductActive(c, repository.UpdateProductActiveParams{ID: product.ID, IsActive: false})
		require.NoError(t, err)

		cached, err := productService.FindProductById(c, product.ID)
		require.NoError(t, err)
		assert.True(t, cached.IsActive)

		server.FastForward(cache.MaxTTL + time.Second)
		_, err = productService.FindProductById(c, product.ID)
		assert.ErrorIs(t, err, inErrors.ErrNotFound)
	})
}
