package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Alturino/shopping/product/pkg/response"
)

const (
	KeyProducts = "products"
	KeyProduct  = "product:"
)

// MaxTTL bounds how long a cached product outlives a change in the database. Products
// are managed outside this service, so entries are never evicted on write.
const MaxTTL = baseTTL + maxJitter

const (
	baseTTL   = 10 * time.Minute
	maxJitter = 2 * time.Minute
)

var ErrCacheMiss = errors.New("cache miss")

type ProductCache struct {
	client    *redis.Client
	baseTTL   time.Duration
	maxJitter time.Duration
}

func NewProductCache(client *redis.Client) *ProductCache {
	return &ProductCache{
		client:    client,
		baseTTL:   baseTTL,
		maxJitter: maxJitter,
	}
}

func ProductKey(id uuid.UUID) string {
	return KeyProduct + id.String()
}

func (p *ProductCache) ttl() time.Duration {
	return p.baseTTL + time.Duration(rand.Int64N(int64(p.maxJitter)))
}

func (p *ProductCache) get(c context.Context, key string, dst interface{}) error {
	data, err := p.client.Get(c, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("failed getting key=%s from redis with error=%w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed unmarshaling key=%s with error=%w", key, err)
	}
	return nil
}

func (p *ProductCache) set(c context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed marshaling key=%s with error=%w", key, err)
	}
	if err := p.client.Set(c, key, data, p.ttl()).Err(); err != nil {
		return fmt.Errorf("failed setting key=%s to redis with error=%w", key, err)
	}
	return nil
}

func (p *ProductCache) GetProducts(c context.Context) ([]response.Product, error) {
	products := []response.Product{}
	if err := p.get(c, KeyProducts, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (p *ProductCache) SetProducts(c context.Context, products []response.Product) error {
	return p.set(c, KeyProducts, products)
}

func (p *ProductCache) GetProduct(c context.Context, id uuid.UUID) (response.Product, error) {
	product := response.Product{}
	if err := p.get(c, ProductKey(id), &product); err != nil {
		return response.Product{}, err
	}
	return product, nil
}

func (p *ProductCache) SetProduct(c context.Context, product response.Product) error {
	return p.set(c, ProductKey(product.ID), product)
}
