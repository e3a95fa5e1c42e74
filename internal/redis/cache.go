package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tourdesk/internal/domain"
)

// CacheStore caches reference-data lookups in Redis so catalog screens and
// the wizard's live pricing previews don't hit Postgres on every keystroke.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	CityCacheTTL    = 12 * time.Hour   // City catalog barely changes
	CatalogCacheTTL = 15 * time.Minute // Supplier catalogs change during the day
	RateCacheTTL    = 5 * time.Minute  // Exchange rates refresh frequently
)

// Key prefixes
const (
	cityCacheKey       = "cache:cities"
	catalogCachePrefix = "cache:catalog:"
	rateCachePrefix    = "cache:fx:"
)

// GetCities retrieves the cached city list; nil means cache miss.
func (s *CacheStore) GetCities(ctx context.Context) ([]domain.City, error) {
	data, err := s.client.Get(ctx, cityCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var cities []domain.City
	if err := json.Unmarshal(data, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// SetCities stores the city list in cache.
func (s *CacheStore) SetCities(ctx context.Context, cities []domain.City) error {
	data, err := json.Marshal(cities)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cityCacheKey, data, CityCacheTTL).Err()
}

// GetCatalog retrieves a cached supplier catalog; nil means cache miss.
func (s *CacheStore) GetCatalog(ctx context.Context, kind domain.ServiceKind, cityID int64) ([]domain.CatalogItem, error) {
	key := catalogKey(kind, cityID)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var items []domain.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetCatalog stores a supplier catalog in cache.
func (s *CacheStore) SetCatalog(ctx context.Context, kind domain.ServiceKind, cityID int64, items []domain.CatalogItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, catalogKey(kind, cityID), data, CatalogCacheTTL).Err()
}

// GetExchangeRate retrieves a cached rate; nil means cache miss.
func (s *CacheStore) GetExchangeRate(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	key := rateCachePrefix + from + ":" + to
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var rate domain.ExchangeRate
	if err := json.Unmarshal(data, &rate); err != nil {
		return nil, err
	}
	return &rate, nil
}

// SetExchangeRate stores a rate in cache.
func (s *CacheStore) SetExchangeRate(ctx context.Context, rate *domain.ExchangeRate) error {
	key := rateCachePrefix + rate.From + ":" + rate.To
	data, err := json.Marshal(rate)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, RateCacheTTL).Err()
}

// InvalidateCatalog removes a supplier catalog from cache.
func (s *CacheStore) InvalidateCatalog(ctx context.Context, kind domain.ServiceKind, cityID int64) error {
	return s.client.Del(ctx, catalogKey(kind, cityID)).Err()
}

func catalogKey(kind domain.ServiceKind, cityID int64) string {
	return fmt.Sprintf("%s%s:%d", catalogCachePrefix, kind, cityID)
}
