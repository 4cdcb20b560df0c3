package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Alturino/shopping/cart/pkg/request"
	"github.com/Alturino/shopping/cart/pkg/response"
	inErrors "github.com/Alturino/shopping/internal/errors"
	"github.com/Alturino/shopping/internal/log"
	"github.com/Alturino/shopping/internal/otel"
	"github.com/Alturino/shopping/internal/otel/metric"
	"github.com/Alturino/shopping/internal/repository"
)

const (
	operationUpsertItem = "upsert_item"
	operationRemoveItem = "remove_item"
	operationClear      = "clear"
)

type CartService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
}

func NewCartService(pool *pgxpool.Pool, queries *repository.Queries) *CartService {
	return &CartService{pool: pool, queries: queries}
}

// mutateFunc changes the items of cart and reports whether anything changed.
type mutateFunc func(c context.Context, queries *repository.Queries, cart repository.Cart) (bool, error)

// withActiveCart runs mutate inside one transaction after locking the user's active
// cart, then reloads the cart with its items before committing. A nil mutate only
// reads.
func (svc *CartService) withActiveCart(
	c context.Context,
	userID uuid.UUID,
	mutate mutateFunc,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService withActiveCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService withActiveCart").
		Str(log.KeyUserID, userID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Trace().Msg("initializing transaction")
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	defer repository.Rollback(logger.WithContext(c), tx, span)
	queries := svc.queries.WithTx(tx)
	logger.Trace().Msg("initialized transaction")

	logger = logger.With().Str(log.KeyProcess, "getting active cart").Logger()
	logger.Trace().Msg("getting active cart")
	cart, err := queries.GetOrCreateActiveCart(c, repository.GetOrCreateActiveCartParams{
		ID:     uuid.Must(uuid.NewV7()),
		UserID: userID,
	})
	if err != nil {
		err = fmt.Errorf("failed getting active cart with error=%w", repository.MapError(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
	logger.Trace().Msg("got active cart")

	if mutate != nil {
		logger = logger.With().Str(log.KeyProcess, "mutating cart").Logger()
		logger.Trace().Msg("mutating cart")
		changed, err := mutate(logger.WithContext(c), queries, cart)
		if err != nil {
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		if changed {
			cart, err = queries.TouchCart(c, cart.ID)
			if err != nil {
				err = fmt.Errorf("failed touching cart with error=%w", repository.MapError(err))
				otel.RecordError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return response.Cart{}, err
			}
		}
		logger.Trace().Bool("changed", changed).Msg("mutated cart")
	}

	logger = logger.With().Str(log.KeyProcess, "finding cart items").Logger()
	logger.Trace().Msg("finding cart items")
	items, err := queries.FindCartItemsByCartId(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed finding cart items with error=%w", repository.MapError(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Int(log.KeyCartItemsCount, len(items)).Logger()
	logger.Trace().Msg("found cart items")

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Trace().Msg("committing transaction")
	if err = tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", repository.MapError(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Trace().Msg("committed transaction")

	return repository.CartResponse(cart, items), nil
}

// GetCart returns the active cart of the user, creating an empty one on first access.
func (svc *CartService) GetCart(c context.Context, userID uuid.UUID) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService GetCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService GetCart").
		Str(log.KeyUserID, userID.String()).
		Logger()

	logger.Info().Msg("getting cart")
	cart, err := svc.withActiveCart(logger.WithContext(c), userID, nil)
	if err != nil {
		err = fmt.Errorf("failed getting cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("got cart")

	return cart, nil
}

// UpsertCartItem sets the quantity of product in the active cart and snapshots its
// current price. An existing line for product is overwritten rather than duplicated.
func (svc *CartService) UpsertCartItem(
	c context.Context,
	userID uuid.UUID,
	param request.UpsertCartItem,
) (cart response.Cart, err error) {
	c, span := otel.Tracer.Start(c, "CartService UpsertCartItem")
	defer span.End()
	defer func() {
		metric.CartMutationTotal.WithLabelValues(operationUpsertItem, metric.Result(err)).Inc()
	}()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpsertCartItem").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProductID, param.ProductID.String()).
		Int32(log.KeyCartItemQuantity, param.Quantity).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating quantity").Logger()
	if param.Quantity <= 0 {
		err = fmt.Errorf("failed validating quantity=%d with error=%w", param.Quantity, inErrors.ErrInvalidQuantity)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "upserting cart item").Logger()
	logger.Info().Msg("upserting cart item")
	cart, err = svc.withActiveCart(
		logger.WithContext(c),
		userID,
		func(c context.Context, queries *repository.Queries, cart repository.Cart) (bool, error) {
			product, err := queries.FindActiveProductByIdForShare(c, param.ProductID)
			if err != nil {
				return false, fmt.Errorf("failed finding product with error=%w", repository.MapError(err))
			}
			_, err = queries.UpsertCartItem(c, repository.UpsertCartItemParams{
				ID:        uuid.Must(uuid.NewV7()),
				CartID:    cart.ID,
				ProductID: product.ID,
				Quantity:  param.Quantity,
				UnitPrice: product.Price,
			})
			if err != nil {
				return false, fmt.Errorf("failed upserting cart item with error=%w", repository.MapError(err))
			}
			return true, nil
		},
	)
	if err != nil {
		err = fmt.Errorf("failed upserting cart item with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("upserted cart item")

	return cart, nil
}

// RemoveCartItem deletes one line of the active cart. Items of other carts are
// reported as missing.
func (svc *CartService) RemoveCartItem(
	c context.Context,
	userID uuid.UUID,
	cartItemID uuid.UUID,
) (cart response.Cart, err error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveCartItem")
	defer span.End()
	defer func() {
		metric.CartMutationTotal.WithLabelValues(operationRemoveItem, metric.Result(err)).Inc()
	}()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveCartItem").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyCartItemID, cartItemID.String()).
		Str(log.KeyProcess, "removing cart item").
		Logger()

	logger.Info().Msg("removing cart item")
	cart, err = svc.withActiveCart(
		logger.WithContext(c),
		userID,
		func(c context.Context, queries *repository.Queries, cart repository.Cart) (bool, error) {
			deleted, err := queries.DeleteCartItem(c, repository.DeleteCartItemParams{
				ID:     cartItemID,
				CartID: cart.ID,
			})
			if err != nil {
				return false, fmt.Errorf("failed deleting cart item with error=%w", repository.MapError(err))
			}
			if deleted == 0 {
				return false, fmt.Errorf("failed deleting cart item id=%s with error=%w", cartItemID, inErrors.ErrNotFound)
			}
			return true, nil
		},
	)
	if err != nil {
		err = fmt.Errorf("failed removing cart item with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("removed cart item")

	return cart, nil
}

// ClearCart deletes every item of the active cart. Clearing an empty cart is a no-op.
func (svc *CartService) ClearCart(c context.Context, userID uuid.UUID) (cart response.Cart, err error) {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()
	defer func() {
		metric.CartMutationTotal.WithLabelValues(operationClear, metric.Result(err)).Inc()
	}()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProcess, "clearing cart").
		Logger()

	logger.Info().Msg("clearing cart")
	cart, err = svc.withActiveCart(
		logger.WithContext(c),
		userID,
		func(c context.Context, queries *repository.Queries, cart repository.Cart) (bool, error) {
			deleted, err := queries.DeleteCartItemsByCartId(c, cart.ID)
			if err != nil {
				return false, fmt.Errorf("failed deleting cart items with error=%w", repository.MapError(err))
			}
			return deleted > 0, nil
		},
	)
	if err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("cleared cart")

	return cart, nil
}
