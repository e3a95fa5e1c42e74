package repository

import (
	"context"

	"tourdesk/internal/domain"
)

// BookingRepository defines the persistence operations for created bookings.
type BookingRepository interface {
	// Create persists a booking header.
	Create(ctx context.Context, booking *domain.Booking) error

	// AddPassengers persists the passenger list for a booking.
	AddPassengers(ctx context.Context, bookingID string, passengers []domain.Passenger) error

	// AddServices persists the service list for a booking.
	AddServices(ctx context.Context, bookingID string, services []domain.Service) error

	// GetByID retrieves a booking header by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
}
