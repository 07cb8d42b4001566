package cache

import (
	"context"
	"strconv"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

func ProductKey(id int) string {
	return Key(ProductKeyPrefix, strconv.Itoa(id))
}

const (
	ProductKeyPrefix = "catalog:product"
	CategoriesKey    = "catalog:categories"
)
