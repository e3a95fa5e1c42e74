package domain

import "time"

// BookingStatus tracks a created booking.
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// SubmissionRequest is the aggregate the submission sink consumes from step 5.
type SubmissionRequest struct {
	Client     ClientSelection
	Trip       TripDetails
	Passengers []Passenger
	Services   []Service
	Pricing    PricingSummary
}

// Booking is the record created by a successful submission.
type Booking struct {
	ID        string
	Reference string // human-facing booking reference
	Status    BookingStatus
	Client    ClientSelection
	Trip      TripDetails
	Pricing   PricingSummary
	CreatedAt time.Time
}
