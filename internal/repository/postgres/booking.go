package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"tourdesk/internal/domain"
	"tourdesk/internal/repository"
)

// BookingRepository is a PostgreSQL implementation of
// repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository bound to a
// transaction, so the submission sink can write the header, passengers and
// services atomically.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

// Create persists a booking header.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (
			id, reference, status, client_type, client_id,
			destination_city_id, travel_start_date, travel_end_date,
			base_currency, selling_currency, booking_source,
			total_services_cost, markup_percentage, profit_amount,
			total_selling_price, tax_amount, total_with_tax,
			discount_amount, final_total, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.Reference,
		booking.Status,
		booking.Client.ClientType,
		booking.Client.ClientID,
		booking.Trip.DestinationCityID,
		booking.Trip.TravelStartDate,
		booking.Trip.TravelEndDate,
		booking.Pricing.BaseCurrency,
		booking.Pricing.SellingCurrency,
		booking.Pricing.BookingSource,
		booking.Pricing.TotalServicesCost,
		booking.Pricing.MarkupPercentage,
		booking.Pricing.ProfitAmount,
		booking.Pricing.TotalSellingPrice,
		booking.Pricing.TaxAmount,
		booking.Pricing.TotalWithTax,
		booking.Pricing.DiscountAmount,
		booking.Pricing.FinalTotal,
		booking.CreatedAt,
	)
	return err
}

// AddPassengers persists the passenger list for a booking.
func (r *BookingRepository) AddPassengers(ctx context.Context, bookingID string, passengers []domain.Passenger) error {
	query := `
		INSERT INTO booking_passengers (
			booking_id, position, title, first_name, last_name, gender,
			nationality, date_of_birth, passenger_type, passport_number,
			passport_expiry_date, passport_issue_country, is_lead, email, phone
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	for i, p := range passengers {
		_, err := r.q.ExecContext(ctx, query,
			bookingID,
			i,
			p.Title,
			p.FirstName,
			p.LastName,
			p.Gender,
			p.Nationality,
			p.DateOfBirth,
			p.PassengerType,
			p.PassportNumber,
			p.PassportExpiryDate,
			p.PassportIssueCountry,
			p.IsLeadPassenger,
			p.Email,
			p.Phone,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// AddServices persists the service list for a booking. The variant payload
// is stored as JSON alongside the shared pricing columns.
func (r *BookingRepository) AddServices(ctx context.Context, bookingID string, services []domain.Service) error {
	query := `
		INSERT INTO booking_services (
			booking_id, position, kind, service_date, quantity,
			cost_amount, cost_currency, exchange_rate, cost_in_base_currency,
			selling_price, selling_currency, description, detail
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	for i, s := range services {
		detail, ok := s.Detail()
		if !ok {
			return errors.New("service detail does not match its kind")
		}
		detailJSON, err := json.Marshal(detail)
		if err != nil {
			return err
		}

		_, err = r.q.ExecContext(ctx, query,
			bookingID,
			i,
			s.Kind,
			s.ServiceDate,
			s.Quantity,
			s.CostAmount,
			s.CostCurrency,
			s.ExchangeRate,
			s.CostInBaseCurrency,
			s.SellingPrice,
			s.SellingCurrency,
			s.ServiceDescription,
			detailJSON,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a booking header by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `
		SELECT id, reference, status, client_type, client_id,
			destination_city_id, travel_start_date, travel_end_date,
			base_currency, selling_currency, booking_source,
			total_services_cost, markup_percentage, profit_amount,
			total_selling_price, tax_amount, total_with_tax,
			discount_amount, final_total, created_at
		FROM bookings WHERE id = $1
	`

	var b domain.Booking
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&b.ID,
		&b.Reference,
		&b.Status,
		&b.Client.ClientType,
		&b.Client.ClientID,
		&b.Trip.DestinationCityID,
		&b.Trip.TravelStartDate,
		&b.Trip.TravelEndDate,
		&b.Pricing.BaseCurrency,
		&b.Pricing.SellingCurrency,
		&b.Pricing.BookingSource,
		&b.Pricing.TotalServicesCost,
		&b.Pricing.MarkupPercentage,
		&b.Pricing.ProfitAmount,
		&b.Pricing.TotalSellingPrice,
		&b.Pricing.TaxAmount,
		&b.Pricing.TotalWithTax,
		&b.Pricing.DiscountAmount,
		&b.Pricing.FinalTotal,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}
