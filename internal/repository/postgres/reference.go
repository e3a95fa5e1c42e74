package postgres

import (
	"context"
	"database/sql"
	"errors"

	"tourdesk/internal/domain"
	"tourdesk/internal/repository"
)

// ReferenceRepository is a PostgreSQL implementation of
// repository.ReferenceRepository.
type ReferenceRepository struct {
	q Querier
}

// NewReferenceRepository creates a new PostgreSQL reference repository.
func NewReferenceRepository(db *sql.DB) *ReferenceRepository {
	return &ReferenceRepository{q: db}
}

// ListCities retrieves the destination city catalog.
func (r *ReferenceRepository) ListCities(ctx context.Context) ([]domain.City, error) {
	query := `SELECT id, name, country FROM cities ORDER BY name`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []domain.City
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.Name, &c.Country); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

// ListCurrencies retrieves the supported currency list.
func (r *ReferenceRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT code, name FROM currencies ORDER BY code`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var currencies []domain.Currency
	for rows.Next() {
		var c domain.Currency
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, err
		}
		currencies = append(currencies, c)
	}
	return currencies, rows.Err()
}

// ListCatalog retrieves the supplier catalog for a service kind in a city.
func (r *ReferenceRepository) ListCatalog(ctx context.Context, kind domain.ServiceKind, cityID int64) ([]domain.CatalogItem, error) {
	query := `
		SELECT id, kind, name, city_id FROM service_catalog
		WHERE kind = $1 AND ($2 = 0 OR city_id = $2)
		ORDER BY name
	`

	rows, err := r.q.QueryContext(ctx, query, string(kind), cityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CatalogItem
	for rows.Next() {
		var item domain.CatalogItem
		var k string
		if err := rows.Scan(&item.ID, &k, &item.Name, &item.CityID); err != nil {
			return nil, err
		}
		item.Kind = domain.ServiceKind(k)
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListTaxRates retrieves the configured tax rates.
func (r *ReferenceRepository) ListTaxRates(ctx context.Context) ([]domain.TaxRate, error) {
	query := `SELECT id, name, rate_percent FROM tax_rates ORDER BY id`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []domain.TaxRate
	for rows.Next() {
		var t domain.TaxRate
		if err := rows.Scan(&t.ID, &t.Name, &t.RatePercent); err != nil {
			return nil, err
		}
		rates = append(rates, t)
	}
	return rates, rows.Err()
}

// GetExchangeRate retrieves the latest rate converting from into to.
func (r *ReferenceRepository) GetExchangeRate(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	query := `
		SELECT from_currency, to_currency, rate, as_of FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2
		ORDER BY as_of DESC LIMIT 1
	`

	var rate domain.ExchangeRate
	err := r.q.QueryRowContext(ctx, query, from, to).Scan(&rate.From, &rate.To, &rate.Rate, &rate.AsOf)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &rate, nil
}

// ListCancellationPolicies retrieves the selectable policies.
func (r *ReferenceRepository) ListCancellationPolicies(ctx context.Context) ([]domain.CancellationPolicy, error) {
	query := `SELECT id, name, description FROM cancellation_policies ORDER BY id`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []domain.CancellationPolicy
	for rows.Next() {
		var p domain.CancellationPolicy
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

// GetPromoCode retrieves a promo code by its code string.
func (r *ReferenceRepository) GetPromoCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	query := `
		SELECT id, code, campaign_id, discount_amount, valid_from, valid_until, active
		FROM promo_codes WHERE code = $1
	`

	var p domain.PromoCode
	var campaignID sql.NullInt64
	err := r.q.QueryRowContext(ctx, query, code).Scan(
		&p.ID,
		&p.Code,
		&campaignID,
		&p.DiscountAmount,
		&p.ValidFrom,
		&p.ValidUntil,
		&p.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if campaignID.Valid {
		p.CampaignID = &campaignID.Int64
	}
	return &p, nil
}
