package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/models"
)

// cachedClient serves product details and the category list from a
// read-through cache. Listings and searches always go to the catalog.
// Cache failures are logged and never fail the request.
type cachedClient struct {
	Client
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedClient(next Client, c cache.Cache, ttl time.Duration) Client {
	return &cachedClient{Client: next, cache: c, ttl: ttl}
}

func (c *cachedClient) GetProduct(ctx context.Context, id int) (*models.Product, error) {

	key := cache.ProductKey(id)

	var product models.Product
	if c.lookup(ctx, key, &product) {
		return &product, nil
	}

	fetched, err := c.Client.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, fetched)

	return fetched, nil
}

func (c *cachedClient) ListCategories(ctx context.Context) ([]models.Category, error) {

	var categories []models.Category
	if c.lookup(ctx, cache.CategoriesKey, &categories) {
		return categories, nil
	}

	fetched, err := c.Client.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	c.store(ctx, cache.CategoriesKey, fetched)

	return fetched, nil
}

func (c *cachedClient) lookup(ctx context.Context, key string, dest any) bool {
	found, err := c.cache.Get(ctx, key, dest)
	if err != nil {
		slog.Warn("Catalog cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}

	return found
}

func (c *cachedClient) store(ctx context.Context, key string, value any) {
	if err := c.cache.Set(ctx, key, value, c.ttl); err != nil {
		slog.Warn("Catalog cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
