package repository

import (
	"context"

	"tourdesk/internal/domain"
)

// ReferenceRepository defines the read side for the lookup data the wizard's
// callers need: catalogs, rates and policies.
type ReferenceRepository interface {
	// ListCities retrieves the destination city catalog.
	ListCities(ctx context.Context) ([]domain.City, error)

	// ListCurrencies retrieves the supported currency list.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// ListCatalog retrieves the supplier catalog for a service kind in a
	// city. cityID 0 means all cities.
	ListCatalog(ctx context.Context, kind domain.ServiceKind, cityID int64) ([]domain.CatalogItem, error)

	// ListTaxRates retrieves the configured tax rates.
	ListTaxRates(ctx context.Context) ([]domain.TaxRate, error)

	// GetExchangeRate retrieves the current rate converting from into to.
	GetExchangeRate(ctx context.Context, from, to string) (*domain.ExchangeRate, error)

	// ListCancellationPolicies retrieves the selectable policies.
	ListCancellationPolicies(ctx context.Context) ([]domain.CancellationPolicy, error)

	// GetPromoCode retrieves a promo code by its code string.
	GetPromoCode(ctx context.Context, code string) (*domain.PromoCode, error)
}
