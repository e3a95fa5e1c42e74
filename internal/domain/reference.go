package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reference data consumed by the wizard's callers: the wizard core never
// fetches these itself, it receives already-resolved identifiers and rates.

// City is a destination from the city catalog.
type City struct {
	ID      int64
	Name    string
	Country string
}

// Currency is an entry from the currency list.
type Currency struct {
	Code string // 3-letter code
	Name string
}

// CatalogItem is a bookable supplier entry (hotel, guide, tour, transfer,
// restaurant, entrance fee or extra-expense template) for one city.
type CatalogItem struct {
	ID     int64
	Kind   ServiceKind
	Name   string
	CityID int64
}

// TaxRate is a configured tax rate.
type TaxRate struct {
	ID          int64
	Name        string
	RatePercent decimal.Decimal // 0..100
}

// ExchangeRate converts one unit of From into To.
type ExchangeRate struct {
	From string
	To   string
	Rate decimal.Decimal
	AsOf time.Time
}

// CancellationPolicy is a selectable cancellation policy.
type CancellationPolicy struct {
	ID          int64
	Name        string
	Description string
}

// PromoCode is a promotional discount code. DiscountAmount is a fixed amount
// in the booking's base currency.
type PromoCode struct {
	ID             int64
	Code           string
	CampaignID     *int64
	DiscountAmount decimal.Decimal
	ValidFrom      time.Time
	ValidUntil     time.Time
	Active         bool
}
