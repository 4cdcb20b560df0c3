package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/shopping/internal/money"
	"github.com/Alturino/shopping/internal/testutil"
	"github.com/Alturino/shopping/product/pkg/response"
)

func TestProductCache(t *testing.T) {
	c := context.Background()
	server, client := testutil.StartRedis(t)
	productCache := NewProductCache(client)

	product := response.Product{
		ID:        uuid.New(),
		Name:      "Keyboard",
		Price:     money.NewAmount(decimal.RequireFromString("49.9")),
		Currency:  "USD",
		IsActive:  true,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}

	t.Run("given empty cache should return miss", func(t *testing.T) {
		_, err := productCache.GetProduct(c, product.ID)
		assert.ErrorIs(t, err, ErrCacheMiss)
		_, err = productCache.GetProducts(c)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("given cached product should return it", func(t *testing.T) {
		require.NoError(t, productCache.SetProduct(c, product))

		got, err := productCache.GetProduct(c, product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.ID, got.ID)
		assert.Equal(t, "49.90", got.Price.String())

		ttl := server.TTL(ProductKey(product.ID))
		assert.GreaterOrEqual(t, ttl, 10*time.Minute)
		assert.Less(t, ttl, 12*time.Minute)
	})

	t.Run("given cached list should return it", func(t *testing.T) {
		require.NoError(t, productCache.SetProducts(c, []response.Product{product}))

		got, err := productCache.GetProducts(c)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, product.Name, got[0].Name)
	})

	t.Run("given expired entry should return miss", func(t *testing.T) {
		server.FastForward(13 * time.Minute)
		_, err := productCache.GetProduct(c, product.ID)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}
