package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/pricing"
	"tourdesk/internal/service"
)

// ──────────────────────────────────────────────
// SUBMISSION SINK
// ──────────────────────────────────────────────

func completeState(now time.Time) domain.WizardState {
	start := day(now.AddDate(0, 2, 0))
	end := start.AddDate(0, 0, 10)

	state := domain.NewWizardState()
	state.Client = &domain.ClientSelection{ClientType: domain.ClientTypeB2C, ClientID: 42}
	trip := flowTrip(start, end)
	state.Trip = &trip
	state.Passengers = flowPassengers(now, end)
	state.Services = flowServices(start)
	summary := pricing.Quote(state.Services, domain.PricingSummary{
		MarkupPercentage: dec("25"),
		TaxRate:          dec("10"),
		DiscountAmount:   dec("37.50"),
		BaseCurrency:     "USD",
		SellingCurrency:  "USD",
		BookingSource:    trip.BookingSource,
	})
	state.Pricing = &summary
	return state
}

func TestBuildRequest_CompleteState(t *testing.T) {
	t.Parallel()

	state := completeState(time.Now())
	req, err := service.BuildRequest(state)
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	if req.Client.ClientID != 42 || len(req.Passengers) != 2 || len(req.Services) != 2 {
		t.Error("request should carry the full aggregate")
	}
	if !req.Pricing.FinalTotal.Equal(dec("650")) {
		t.Errorf("FinalTotal = %s, want 650", req.Pricing.FinalTotal)
	}
}

func TestBuildRequest_IncompleteState(t *testing.T) {
	t.Parallel()

	now := time.Now()

	testCases := []struct {
		name   string
		mutate func(*domain.WizardState)
	}{
		{"missing client", func(s *domain.WizardState) { s.Client = nil }},
		{"missing trip", func(s *domain.WizardState) { s.Trip = nil }},
		{"no passengers", func(s *domain.WizardState) { s.Passengers = nil }},
		{"missing pricing", func(s *domain.WizardState) { s.Pricing = nil }},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			state := completeState(now)
			tc.mutate(&state)
			if _, err := service.BuildRequest(state); !errors.Is(err, service.ErrIncompleteWizard) {
				t.Errorf("expected ErrIncompleteWizard, got %v", err)
			}
		})
	}
}

func TestSubmit_RejectsInvalidAggregateBeforeStorage(t *testing.T) {
	t.Parallel()

	state := completeState(time.Now())
	req, err := service.BuildRequest(state)
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}

	// Break the aggregate: a hand-edited final total no longer matches the
	// calculator.
	req.Pricing.FinalTotal = dec("1")

	// The database is never touched when validation rejects, so a sink with
	// no connection must still return the problem list cleanly.
	sink := service.NewSubmissionService(nil)
	booking, problems, err := sink.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if booking != nil {
		t.Error("rejected submission must not create a booking")
	}
	if problems.Valid() {
		t.Fatal("expected validation problems")
	}

	found := false
	for _, fe := range problems {
		if fe.Field == "finalTotal" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a finalTotal problem, got %v", problems)
	}
}

func TestSubmit_CollectsProblemsAcrossFamilies(t *testing.T) {
	t.Parallel()

	state := completeState(time.Now())
	req, err := service.BuildRequest(state)
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}

	req.Client.ClientID = 0
	req.Passengers[0].PassportNumber = ""
	req.Services[0].Quantity = 0

	sink := service.NewSubmissionService(nil)
	_, problems, err := sink.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	fields := make(map[string]bool, len(problems))
	for _, fe := range problems {
		fields[fe.Field] = true
	}
	for _, want := range []string{"selectedClientId", "passengers[0].passportNumber", "services[0].quantity"} {
		if !fields[want] {
			t.Errorf("expected a problem on %s, got %v", want, problems)
		}
	}
}
