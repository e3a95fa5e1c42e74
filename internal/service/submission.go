package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tourdesk/internal/domain"
	"tourdesk/internal/repository/postgres"
	"tourdesk/internal/validation"
)

// SubmissionService is the wizard's exit boundary: it consumes the full
// aggregate collected by step 5 and creates the booking. Everything is
// re-validated here — the wizard gates steps, but the sink is the last line
// before rows hit the database. On any failure the caller's wizard state is
// untouched, so the user can fix and retry without data loss.
type SubmissionService struct {
	db *sql.DB
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(db *sql.DB) *SubmissionService {
	return &SubmissionService{db: db}
}

// Submit validates the aggregate and writes the booking, its passengers and
// its services in one transaction. A non-empty problems return means
// validation rejected the aggregate and nothing was written.
func (s *SubmissionService) Submit(ctx context.Context, req domain.SubmissionRequest) (*domain.Booking, validation.Result, error) {
	problems := validateAggregate(req)
	if !problems.Valid() {
		return nil, problems, nil
	}

	booking := &domain.Booking{
		ID:        uuid.NewString(),
		Reference: newReference(),
		Status:    domain.BookingStatusConfirmed,
		Client:    req.Client,
		Trip:      req.Trip,
		Pricing:   req.Pricing,
		CreatedAt: time.Now(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin submission tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	repo := postgres.NewBookingRepositoryWithTx(tx)
	if err = repo.Create(ctx, booking); err != nil {
		return nil, nil, fmt.Errorf("create booking: %w", err)
	}
	if err = repo.AddPassengers(ctx, booking.ID, req.Passengers); err != nil {
		return nil, nil, fmt.Errorf("add passengers: %w", err)
	}
	if err = repo.AddServices(ctx, booking.ID, req.Services); err != nil {
		return nil, nil, fmt.Errorf("add services: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit submission: %w", err)
	}

	return booking, nil, nil
}

// BuildRequest assembles a submission request from a wizard snapshot,
// failing if a required step was never completed.
func BuildRequest(state domain.WizardState) (domain.SubmissionRequest, error) {
	if state.Client == nil || state.Trip == nil || len(state.Passengers) == 0 || state.Pricing == nil {
		return domain.SubmissionRequest{}, ErrIncompleteWizard
	}
	return domain.SubmissionRequest{
		Client:     *state.Client,
		Trip:       *state.Trip,
		Passengers: state.Passengers,
		Services:   state.Services,
		Pricing:    *state.Pricing,
	}, nil
}

// validateAggregate runs every validator family over the aggregate.
func validateAggregate(req domain.SubmissionRequest) validation.Result {
	var problems validation.Result
	problems = append(problems, validation.ValidateClient(req.Client)...)
	problems = append(problems, validation.ValidateTripDetails(req.Trip, time.Now())...)
	problems = append(problems, validation.ValidatePassengerList(req.Passengers, req.Trip.TravelEndDate)...)
	problems = append(problems, validation.ValidateServiceList(req.Services)...)
	problems = append(problems, validation.ValidatePricing(req.Pricing, req.Services)...)
	return problems
}

// newReference builds a short human-facing booking reference.
func newReference() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "BK-" + id[:8]
}
