package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/shopping/internal/errors"
	"github.com/Alturino/shopping/internal/repository"
	"github.com/Alturino/shopping/internal/testutil"
	"github.com/Alturino/shopping/order/pkg/event"
	"github.com/Alturino/shopping/order/pkg/request"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.OrderCreated
	err    error
}

func (p *recordingPublisher) PublishOrderCreated(_ context.Context, e event.OrderCreated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func addCartItem(t *testing.T, queries *repository.Queries, userID uuid.UUID, product repository.Product, quantity int32) repository.Cart {
	t.Helper()
	c := context.Background()
	cart, err := queries.GetOrCreateActiveCart(c, repository.GetOrCreateActiveCartParams{
		ID:     uuid.Must(uuid.NewV7()),
		UserID: userID,
	})
	require.NoError(t, err)
	_, err = queries.UpsertCartItem(c, repository.UpsertCartItemParams{
		ID:        uuid.Must(uuid.NewV7()),
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  quantity,
		UnitPrice: product.Price,
	})
	require.NoError(t, err)
	return cart
}

func countOrders(t *testing.T, queries *repository.Queries, userID uuid.UUID) int {
	t.Helper()
	orders, err := queries.FindOrdersByUserId(context.Background(), userID)
	require.NoError(t, err)
	return len(orders)
}

func TestOrderService(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	c := context.Background()
	pool := testutil.StartPostgres(t)
	queries := repository.New(pool)

	mouse := testutil.SeedProduct(t, queries, "Mouse", "9.99")
	keyboard := testutil.SeedProduct(t, queries, "Keyboard", "5.00")

	t.Run("given cart with items should create order and empty cart", func(t *testing.T) {
		publisher := &recordingPublisher{}
		orderService := NewOrderService(pool, queries, publisher)
		user := testutil.SeedUser(t, queries)
		cart := addCartItem(t, queries, user.ID, mouse, 2)
		addCartItem(t, queries, user.ID, keyboard, 1)

		key := "checkout-1"
		order, err := orderService.Checkout(c, user.ID, request.Checkout{IdempotencyKey: &key})
		require.NoError(t, err)

		assert.Equal(t, user.ID, order.UserID)
		assert.Equal(t, "pending", order.Status)
		assert.Equal(t, "USD", order.Currency)
		assert.Equal(t, "24.98", order.TotalAmount.String())
		require.Len(t, order.Items, 2)
		lineTotals := map[uuid.UUID]string{}
		for _, item := range order.Items {
			lineTotals[item.Product.ID] = item.LineTotal.String()
		}
		assert.Equal(t, "19.98", lineTotals[mouse.ID])
		assert.Equal(t, "5.00", lineTotals[keyboard.ID])

		after, err := queries.GetOrCreateActiveCart(c, repository.GetOrCreateActiveCartParams{
			ID:     uuid.Must(uuid.NewV7()),
			UserID: user.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, cart.ID, after.ID)
		items, err := queries.FindCartItemsByCartId(c, cart.ID)
		require.NoError(t, err)
		assert.Empty(t, items)

		require.Len(t, publisher.events, 1)
		assert.Equal(t, order.ID, publisher.events[0].OrderID)
		assert.Equal(t, 2, publisher.events[0].ItemsCount)
		assert.Equal(t, "24.98", publisher.events[0].TotalAmount.String())
	})

	t.Run("given product repriced after adding to cart should charge snapshot price", func(t *testing.T) {
		orderService := NewOrderService(pool, queries, nil)
		user := testutil.SeedUser(t, queries)
		product := testutil.SeedProduct(t, queries, "Headset", "9.99")
		addCartItem(t, queries, user.ID, product, 2)

		_, err := queries.UpdateProductPrice(c, repository.UpdateProductPriceParams{
			ID:    product.ID,
			Price: repository.NumericFromDecimal(decimal.RequireFromString("12.00")),
		})
		require.NoError(t, err)

		order, err := orderService.Checkout(c, user.ID, request.Checkout{})
		require.NoError(t, err)

		require.Len(t, order.Items, 1)
		assert.Equal(t, "9.99", order.Items[0].UnitPrice.String())
		assert.Equal(t, "19.98", order.Items[0].LineTotal.String())
		assert.Equal(t, "19.98", order.TotalAmount.String())
		assert.Equal(t, "12.00", order.Items[0].Product.Price.String())
	})

	t.Run("given line total beyond storage precision should return invalid request and create no order", func(t *testing.T) {
		orderService := NewOrderService(pool, queries, nil)
		user := testutil.SeedUser(t, queries)
		product := testutil.SeedProduct(t, queries, "Yacht", "99999999.99")
		addCartItem(t, queries, user.ID, product, 1000)

		_, err := orderService.Checkout(c, user.ID, request.Checkout{})
		assert.ErrorIs(t, err, inErrors.ErrInvalidRequest)
		assert.Equal(t, 0, countOrders(t, queries, user.ID))
	})

	t.Run("given empty cart should return empty cart error and create no order", func(t *testing.T) {
		publisher := &recordingPublisher{}
		orderService := NewOrderService(pool, queries, publisher)
		user := testutil.SeedUser(t, queries)

		_, err := orderService.Checkout(c, user.ID, request.Checkout{})
		assert.ErrorIs(t, err, inErrors.ErrEmptyCart)
		assert.Equal(t, 0, countOrders(t, queries, user.ID))
		assert.Empty(t, publisher.events)
	})

	t.Run("given failing publisher should still commit order", func(t *testing.T) {
		orderService := NewOrderService(pool, queries, &recordingPublisher{err: errors.New("broker down")})
		user := testutil.SeedUser(t, queries)
		addCartItem(t, queries, user.ID, keyboard, 1)

		order, err := orderService.Checkout(c, user.ID, request.Checkout{})
		require.NoError(t, err)

		found, err := orderService.FindOrderById(c, user.ID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "5.00", found.TotalAmount.String())
	})

	t.Run("given concurrent checkouts should create exactly one order", func(t *testing.T) {
		orderService := NewOrderService(pool, queries, nil)
		user := testutil.SeedUser(t, queries)
		addCartItem(t, queries, user.ID, mouse, 1)

		var wg sync.WaitGroup
		errs := make([]error, 5)
		for i := range errs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = orderService.Checkout(c, user.ID, request.Checkout{})
			}()
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, inErrors.ErrEmptyCart)
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, countOrders(t, queries, user.ID))
	})

	t.Run("given orders should list newest first with items", func(t *testing.T) {
		orderService := NewOrderService(pool, queries, nil)
		user := testutil.SeedUser(t, queries)

		addCartItem(t, queries, user.ID, mouse, 1)
		first, err := orderService.Checkout(c, user.ID, request.Checkout{})
		require.NoError(t, err)
		addCartItem(t, queries, user.ID, keyboard, 3)
		second, err := orderService.Checkout(c, user.ID, request.Checkout{})
		require.NoError(t, err)

		orders, err := orderService.FindOrders(c, user.ID)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, second.ID, orders[0].ID)
		assert.Equal(t, first.ID, orders[1].ID)
		require.Len(t, orders[0].Items, 1)
		assert.Equal(t, "15.00", orders[0].Items[0].LineTotal.String())
		require.Len(t, orders[1].Items, 1)
		assert.Equal(t, "9.99", orders[1].TotalAmount.String())
	})

	t.Run("given user without orders should return empty list", func(t *testing.T) {
		orderService := NewOrderService(pool, queries, nil)
		user := testutil.SeedUser(t, queries)

		orders, err := orderService.FindOrders(c, user.ID)
		require.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)
	})

	t.Run("given order of another user should return not found", func(t *testing.T) {
		orderService := NewOrderService(pool, queries, nil)
		owner := testutil.SeedUser(t, queries)
		other := testutil.SeedUser(t, queries)
		addCartItem(t, queries, owner.ID, mouse, 1)
		order, err := orderService.Checkout(c, owner.ID, request.Checkout{})
		require.NoError(t, err)

		_, err = orderService.FindOrderById(c, other.ID, order.ID)
		assert.ErrorIs(t, err, inErrors.ErrNotFound)

		_, err = orderService.FindOrderById(c, owner.ID, uuid.New())
		assert.ErrorIs(t, err, inErrors.ErrNotFound)
	})
}
