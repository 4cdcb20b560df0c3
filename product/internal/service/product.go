package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/shopping/internal/log"
	"github.com/Alturino/shopping/internal/otel"
	"github.com/Alturino/shopping/internal/repository"
	"github.com/Alturino/shopping/product/internal/cache"
	"github.com/Alturino/shopping/product/pkg/response"
)

type ProductService struct {
	queries *repository.Queries
	cache   *cache.ProductCache
}

func NewProductService(queries *repository.Queries, cache *cache.ProductCache) *ProductService {
	return &ProductService{queries: queries, cache: cache}
}

// ListProducts returns the active products ordered by creation. Cache failures fall
// through to the database.
func (svc *ProductService) ListProducts(c context.Context) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService ListProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService ListProducts").
		Str(log.KeyCacheKey, cache.KeyProducts).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding products in cache").Logger()
	logger.Trace().Msg("finding products in cache")
	products, err := svc.cache.GetProducts(c)
	if err == nil {
		logger.Info().Int("count", len(products)).Msg("found products in cache")
		return products, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn().Err(err).Msg(err.Error())
	}
	logger.Trace().Msg("products not found in cache")

	logger = logger.With().Str(log.KeyProcess, "finding products in database").Logger()
	logger.Trace().Msg("finding products in database")
	rows, err := svc.queries.FindActiveProducts(c)
	if err != nil {
		err = fmt.Errorf("failed finding products in database with error=%w", repository.MapError(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	products = make([]response.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.Response())
	}
	logger.Info().Int("count", len(products)).Msg("found products in database")

	logger = logger.With().Str(log.KeyProcess, "inserting products to cache").Logger()
	if err := svc.cache.SetProducts(c, products); err != nil {
		logger.Warn().Err(err).Msg(err.Error())
	}

	return products, nil
}

// FindProductById reads through the cache. A product deactivated in the database keeps
// being served from the cache for at most cache.MaxTTL. Cart and checkout read the
// database and are unaffected.
func (svc *ProductService) FindProductById(c context.Context, id uuid.UUID) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyProductID, id.String()).
		Str(log.KeyCacheKey, cache.ProductKey(id)).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in cache").Logger()
	logger.Trace().Msg("finding product in cache")
	product, err := svc.cache.GetProduct(c, id)
	if err == nil {
		logger.Info().Msg("found product in cache")
		return product, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn().Err(err).Msg(err.Error())
	}

	logger = logger.With().Str(log.KeyProcess, "finding product in database").Logger()
	logger.Trace().Msg("finding product in database")
	row, err := svc.queries.FindActiveProductById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding product id=%s with error=%w", id, repository.MapError(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	product = row.Response()
	logger.Info().Msg("found product in database")

	logger = logger.With().Str(log.KeyProcess, "inserting product to cache").Logger()
	if err := svc.cache.SetProduct(c, product); err != nil {
		logger.Warn().Err(err).Msg(err.Error())
	}

	return product, nil
}
