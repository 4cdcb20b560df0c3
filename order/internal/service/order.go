package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Alturino/shopping/internal/constants"
	inErrors "github.com/Alturino/shopping/internal/errors"
	"github.com/Alturino/shopping/internal/log"
	"github.com/Alturino/shopping/internal/money"
	"github.com/Alturino/shopping/internal/otel"
	"github.com/Alturino/shopping/internal/otel/metric"
	"github.com/Alturino/shopping/internal/repository"
	"github.com/Alturino/shopping/order/pkg/event"
	"github.com/Alturino/shopping/order/pkg/request"
	"github.com/Alturino/shopping/order/pkg/response"
)

type EventPublisher interface {
	PublishOrderCreated(c context.Context, e event.OrderCreated) error
}

type OrderService struct {
	pool      *pgxpool.Pool
	queries   *repository.Queries
	publisher EventPublisher
}

// NewOrderService creates the service. publisher may be nil, in which case no events
// are emitted.
func NewOrderService(pool *pgxpool.Pool, queries *repository.Queries, publisher EventPublisher) *OrderService {
	return &OrderService{pool: pool, queries: queries, publisher: publisher}
}

// Checkout turns the active cart of the user into a pending order and empties the cart
// in the same transaction. The cart row lock taken by GetOrCreateActiveCart serializes
// concurrent checkouts of one cart, so the loser sees an empty cart.
func (svc *OrderService) Checkout(
	c context.Context,
	userID uuid.UUID,
	param request.Checkout,
) (order response.Order, err error) {
	c, span := otel.Tracer.Start(c, "OrderService Checkout")
	defer span.End()
	defer func() {
		metric.CheckoutTotal.WithLabelValues(metric.Result(err)).Inc()
	}()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService Checkout").
		Str(log.KeyUserID, userID.String()).
		Logger()
	if param.IdempotencyKey != nil {
		logger = logger.With().Str(log.KeyIdempotencyKey, *param.IdempotencyKey).Logger()
	}

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Trace().Msg("initializing transaction")
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	defer repository.Rollback(logger.WithContext(c), tx, span)
	queries := svc.queries.WithTx(tx)
	logger.Trace().Msg("initialized transaction")

	logger = logger.With().Str(log.KeyProcess, "locking active cart").Logger()
	logger.Trace().Msg("locking active cart")
	cart, err := queries.GetOrCreateActiveCart(c, repository.GetOrCreateActiveCartParams{
		ID:     uuid.Must(uuid.NewV7()),
		UserID: userID,
	})
	if err != nil {
		err = fmt.Errorf("failed locking active cart with error=%w", repository.MapError(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
	logger.Trace().Msg("locked active cart")

	logger = logger.With().Str(log.KeyProcess, "finding cart items").Logger()
	logger.Trace().Msg("finding cart items")
	cartItems, err := queries.FindCartItemsByCartIdForUpdate(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed finding cart items with error=%w", repository.MapError(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if len(cartItems) == 0 {
		err = fmt.Errorf("failed checking out cart id=%s with error=%w", cart.ID, inErrors.ErrEmptyCart)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger = logger.With().Int(log.KeyCartItemsCount, len(cartItems)).Logger()
	logger.Trace().Msg("found cart items")

	logger = logger.With().Str(log.KeyProcess, "inserting order").Logger()
	logger.Trace().Msg("inserting order")
	inserted, err := queries.InsertOrder(c, repository.InsertOrderParams{
		ID:       uuid.Must(uuid.NewV7()),
		UserID:   userID,
		Status:   constants.OrderStatusPending,
		Currency: orderCurrency(cartItems),
	})
	if err != nil {
		err = fmt.Errorf("failed inserting order with error=%w", repository.MapError(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger = logger.With().Str(log.KeyOrderID, inserted.ID.String()).Logger()
	logger.Trace().Msg("inserted order")

	logger = logger.With().Str(log.KeyProcess, "inserting order items").Logger()
	logger.Trace().Msg("inserting order items")
	orderItems, total := priceOrderItems(inserted.ID, cartItems)
	count, err := queries.InsertOrderItems(c, orderItems)
	if err != nil {
		err = fmt.Errorf("failed inserting order items with error=%w", repository.MapError(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger = logger.With().Int64(log.KeyOrderItemsCount, count).Logger()
	logger.Trace().Msg("inserted order items")

	logger = logger.With().Str(log.KeyProcess, "updating order total").Logger()
	logger.Trace().Msg("updating order total")
	inserted, err = queries.UpdateOrderTotalAmount(c, repository.UpdateOrderTotalAmountParams{
		ID:          inserted.ID,
		TotalAmount: repository.NumericFromDecimal(total),
	})
	if err != nil {
		err = fmt.Errorf("failed updating order total with error=%w", repository.MapError(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger = logger.With().Str(log.KeyTotalAmount, money.NewAmount(total).String()).Logger()
	logger.Trace().Msg("updated order total")

	logger = logger.With().Str(log.KeyProcess, "emptying cart").Logger()
	logger.Trace().Msg("emptying cart")
	if _, err = queries.DeleteCartItemsByCartId(c, cart.ID); err != nil {
		err = fmt.Errorf("failed emptying cart with error=%w", repository.MapError(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if _, err = queries.TouchCart(c, cart.ID); err != nil {
		err = fmt.Errorf("failed touching cart with error=%w", repository.MapError(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Trace().Msg("emptied cart")

	logger = logger.With().Str(log.KeyProcess, "finding order items").Logger()
	logger.Trace().Msg("finding order items")
	rows, err := queries.FindOrderItemsByOrderIds(c, []uuid.UUID{inserted.ID})
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", repository.MapError(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Trace().Msg("found order items")

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Trace().Msg("committing transaction")
	if err = tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", repository.MapError(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("checked out cart")

	order = repository.OrderResponse(inserted, rows)
	svc.publishOrderCreated(logger.WithContext(c), order)

	return order, nil
}

// publishOrderCreated notifies subscribers of a committed order. A failed publish is
// logged and does not affect the checkout result.
func (svc *OrderService) publishOrderCreated(c context.Context, order response.Order) {
	if svc.publisher == nil {
		return
	}
	logger := zerolog.Ctx(c).With().Str(log.KeyProcess, "publishing order created").Logger()
	err := svc.publisher.PublishOrderCreated(c, event.OrderCreated{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Currency:    order.Currency,
		ItemsCount:  len(order.Items),
		CreatedAt:   order.CreatedAt,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed publishing order created")
	}
}

// FindOrders lists every order of the user, newest first, with their items.
func (svc *OrderService) FindOrders(c context.Context, userID uuid.UUID) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrders").
		Str(log.KeyUserID, userID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding orders").Logger()
	logger.Info().Msg("finding orders")
	orders, err := svc.queries.FindOrdersByUserId(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", repository.MapError(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if len(orders) == 0 {
		logger.Info().Msg("found no orders")
		return []response.Order{}, nil
	}
	logger.Trace().Int("ordersCount", len(orders)).Msg("found orders")

	logger = logger.With().Str(log.KeyProcess, "finding order items").Logger()
	logger.Trace().Msg("finding order items")
	orderIDs := make([]uuid.UUID, 0, len(orders))
	for _, order := range orders {
		orderIDs = append(orderIDs, order.ID)
	}
	rows, err := svc.queries.FindOrderItemsByOrderIds(c, orderIDs)
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", repository.MapError(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int(log.KeyOrderItemsCount, len(rows)).Msg("found order items")

	return repository.OrdersResponse(orders, rows), nil
}

// FindOrderById returns one order of the user. Orders of other users are reported as
// missing.
func (svc *OrderService) FindOrderById(c context.Context, userID uuid.UUID, orderID uuid.UUID) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrderById").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyOrderID, orderID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding order").Logger()
	logger.Info().Msg("finding order")
	order, err := svc.queries.FindOrderByIdAndUserId(c, repository.FindOrderByIdAndUserIdParams{
		ID:     orderID,
		UserID: userID,
	})
	if err != nil {
		err = fmt.Errorf("failed finding order id=%s with error=%w", orderID, repository.MapError(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Trace().Msg("found order")

	logger = logger.With().Str(log.KeyProcess, "finding order items").Logger()
	logger.Trace().Msg("finding order items")
	rows, err := svc.queries.FindOrderItemsByOrderIds(c, []uuid.UUID{order.ID})
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", repository.MapError(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Int(log.KeyOrderItemsCount, len(rows)).Msg("found order")

	return repository.OrderResponse(order, rows), nil
}
