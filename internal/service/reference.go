package service

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"tourdesk/internal/domain"
	"tourdesk/internal/redis"
	"tourdesk/internal/repository"
)

// ReferenceService serves the lookup data the booking screens need, with a
// Redis cache in front of Postgres. Cache failures degrade to repository
// reads; they are logged and never surfaced.
type ReferenceService struct {
	repo  repository.ReferenceRepository
	cache *redis.CacheStore // nil disables caching
}

// NewReferenceService creates a new ReferenceService.
func NewReferenceService(repo repository.ReferenceRepository, cache *redis.CacheStore) *ReferenceService {
	return &ReferenceService{repo: repo, cache: cache}
}

// Cities returns the destination city catalog.
func (s *ReferenceService) Cities(ctx context.Context) ([]domain.City, error) {
	if s.cache != nil {
		cities, err := s.cache.GetCities(ctx)
		if err != nil {
			log.Printf("city cache read failed: %v", err)
		} else if cities != nil {
			return cities, nil
		}
	}

	cities, err := s.repo.ListCities(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetCities(ctx, cities); err != nil {
			log.Printf("city cache write failed: %v", err)
		}
	}
	return cities, nil
}

// Currencies returns the supported currency list.
func (s *ReferenceService) Currencies(ctx context.Context) ([]domain.Currency, error) {
	return s.repo.ListCurrencies(ctx)
}

// Catalog returns the supplier catalog for a service kind in a city.
func (s *ReferenceService) Catalog(ctx context.Context, kind domain.ServiceKind, cityID int64) ([]domain.CatalogItem, error) {
	if s.cache != nil {
		items, err := s.cache.GetCatalog(ctx, kind, cityID)
		if err != nil {
			log.Printf("catalog cache read failed: %v", err)
		} else if items != nil {
			return items, nil
		}
	}

	items, err := s.repo.ListCatalog(ctx, kind, cityID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetCatalog(ctx, kind, cityID, items); err != nil {
			log.Printf("catalog cache write failed: %v", err)
		}
	}
	return items, nil
}

// TaxRates returns the configured tax rates.
func (s *ReferenceService) TaxRates(ctx context.Context) ([]domain.TaxRate, error) {
	return s.repo.ListTaxRates(ctx)
}

// CancellationPolicies returns the selectable cancellation policies.
func (s *ReferenceService) CancellationPolicies(ctx context.Context) ([]domain.CancellationPolicy, error) {
	return s.repo.ListCancellationPolicies(ctx)
}

// ExchangeRate returns the rate converting from into to. Identical
// currencies convert at 1 without touching storage.
func (s *ReferenceService) ExchangeRate(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	if from == to {
		return &domain.ExchangeRate{From: from, To: to, Rate: decimal.NewFromInt(1), AsOf: time.Now()}, nil
	}

	if s.cache != nil {
		rate, err := s.cache.GetExchangeRate(ctx, from, to)
		if err != nil {
			log.Printf("fx cache read failed: %v", err)
		} else if rate != nil {
			return rate, nil
		}
	}

	rate, err := s.repo.GetExchangeRate(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetExchangeRate(ctx, rate); err != nil {
			log.Printf("fx cache write failed: %v", err)
		}
	}
	return rate, nil
}

// ValidatePromoCode resolves a promo code and checks it is usable at the
// given time. The discount it returns feeds the wizard's pricing summary.
func (s *ReferenceService) ValidatePromoCode(ctx context.Context, code string, at time.Time) (*domain.PromoCode, error) {
	promo, err := s.repo.GetPromoCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !promo.Active {
		return nil, ErrPromoCodeInactive
	}
	if at.Before(promo.ValidFrom) || at.After(promo.ValidUntil) {
		return nil, ErrPromoCodeExpired
	}
	return promo, nil
}
