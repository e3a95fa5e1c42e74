package tests

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"tourdesk/internal/domain"
	"tourdesk/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK REFERENCE REPOSITORY
// ──────────────────────────────────────────────

// MockReferenceRepository is an in-memory ReferenceRepository with call
// counters and error injection.
type MockReferenceRepository struct {
	mu sync.Mutex

	Cities     []domain.City
	Currencies []domain.Currency
	Catalog    []domain.CatalogItem
	TaxRates   []domain.TaxRate
	Rates      map[string]*domain.ExchangeRate // keyed FROM:TO
	Policies   []domain.CancellationPolicy
	Promos     map[string]*domain.PromoCode

	Err error // returned by every method when set

	ListCitiesCallCount      int
	ListCatalogCallCount     int
	GetExchangeRateCallCount int
	GetPromoCodeCallCount    int
}

// NewMockReferenceRepository creates an empty mock repository.
func NewMockReferenceRepository() *MockReferenceRepository {
	return &MockReferenceRepository{
		Rates:  make(map[string]*domain.ExchangeRate),
		Promos: make(map[string]*domain.PromoCode),
	}
}

var _ repository.ReferenceRepository = (*MockReferenceRepository)(nil)

func (m *MockReferenceRepository) ListCities(ctx context.Context) ([]domain.City, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCitiesCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Cities, nil
}

func (m *MockReferenceRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Currencies, nil
}

func (m *MockReferenceRepository) ListCatalog(ctx context.Context, kind domain.ServiceKind, cityID int64) ([]domain.CatalogItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCatalogCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	var items []domain.CatalogItem
	for _, item := range m.Catalog {
		if item.Kind != kind {
			continue
		}
		if cityID != 0 && item.CityID != cityID {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (m *MockReferenceRepository) ListTaxRates(ctx context.Context) ([]domain.TaxRate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.TaxRates, nil
}

func (m *MockReferenceRepository) GetExchangeRate(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetExchangeRateCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	rate, ok := m.Rates[from+":"+to]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return rate, nil
}

func (m *MockReferenceRepository) ListCancellationPolicies(ctx context.Context) ([]domain.CancellationPolicy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Policies, nil
}

func (m *MockReferenceRepository) GetPromoCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPromoCodeCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	promo, ok := m.Promos[code]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return promo, nil
}

// ──────────────────────────────────────────────
// MEMORY KV
// ──────────────────────────────────────────────

// MemoryKV is an in-memory stand-in for the durable session store.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Write(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Read(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *MemoryKV) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Len reports the number of stored keys.
func (m *MemoryKV) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
