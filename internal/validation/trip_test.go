package validation

import (
	"testing"
	"time"

	"tourdesk/internal/domain"
)

var tripNow = date(2026, time.August, 29)

func TestValidateTripDetails_Valid(t *testing.T) {
	t.Parallel()

	if r := ValidateTripDetails(validTrip(), tripNow); !r.Valid() {
		t.Errorf("expected valid trip, got %v", r)
	}
}

func TestValidateTripDetails_Dates(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		mutate    func(*domain.TripDetails)
		wantField string
	}{
		{
			name:      "start date in the past",
			mutate:    func(tr *domain.TripDetails) { tr.TravelStartDate = date(2026, time.August, 28) },
			wantField: "travelStartDate",
		},
		{
			name: "start date today is allowed",
			mutate: func(tr *domain.TripDetails) {
				tr.TravelStartDate = tripNow
				tr.TravelEndDate = date(2026, time.September, 2)
			},
		},
		{
			name:      "end date equals start date",
			mutate:    func(tr *domain.TripDetails) { tr.TravelEndDate = tr.TravelStartDate },
			wantField: "travelEndDate",
		},
		{
			name:      "end date before start date",
			mutate:    func(tr *domain.TripDetails) { tr.TravelEndDate = date(2026, time.September, 5) },
			wantField: "travelEndDate",
		},
		{
			name:      "missing start date",
			mutate:    func(tr *domain.TripDetails) { tr.TravelStartDate = time.Time{} },
			wantField: "travelStartDate",
		},
		{
			name:      "missing end date",
			mutate:    func(tr *domain.TripDetails) { tr.TravelEndDate = time.Time{} },
			wantField: "travelEndDate",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			trip := validTrip()
			tc.mutate(&trip)
			r := ValidateTripDetails(trip, tripNow)
			if tc.wantField == "" {
				if !r.Valid() {
					t.Errorf("expected valid, got %v", r)
				}
				return
			}
			if !hasField(r, tc.wantField) {
				t.Errorf("expected violation on %s, got %v", tc.wantField, r)
			}
		})
	}
}

func TestValidateTripDetails_StartDateIgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	// A trip starting today must pass even when "now" carries a later
	// time of day than the start date's midnight.
	trip := validTrip()
	trip.TravelStartDate = date(2026, time.August, 29)
	now := time.Date(2026, time.August, 29, 23, 15, 0, 0, time.UTC)

	if r := ValidateTripDetails(trip, now); hasField(r, "travelStartDate") {
		t.Errorf("same-day start rejected: %v", r)
	}
}

func TestValidateTripDetails_Party(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		mutate    func(*domain.TripDetails)
		wantField string
	}{
		{
			name:      "no adults",
			mutate:    func(tr *domain.TripDetails) { tr.NumAdults = 0 },
			wantField: "numAdults",
		},
		{
			name:      "missing destination city",
			mutate:    func(tr *domain.TripDetails) { tr.DestinationCityID = 0 },
			wantField: "destinationCityId",
		},
		{
			name: "children count and ages mismatch",
			mutate: func(tr *domain.TripDetails) {
				tr.NumChildren = 2
				tr.ChildrenAges = []int{8}
			},
			wantField: "childrenAges",
		},
		{
			name: "child age out of band",
			mutate: func(tr *domain.TripDetails) {
				tr.ChildrenAges = []int{18}
			},
			wantField: "childrenAges[0]",
		},
		{
			name:      "bad currency code",
			mutate:    func(tr *domain.TripDetails) { tr.Currency = "usd" },
			wantField: "currency",
		},
		{
			name:      "unknown trip type",
			mutate:    func(tr *domain.TripDetails) { tr.TripType = "SAFARI" },
			wantField: "tripType",
		},
		{
			name:      "unknown booking source",
			mutate:    func(tr *domain.TripDetails) { tr.BookingSource = "FAX" },
			wantField: "bookingSource",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			trip := validTrip()
			tc.mutate(&trip)
			if r := ValidateTripDetails(trip, tripNow); !hasField(r, tc.wantField) {
				t.Errorf("expected violation on %s, got %v", tc.wantField, r)
			}
		})
	}
}

func TestValidateTripDetails_GroupFieldsConditional(t *testing.T) {
	t.Parallel()

	// Not a group booking: the group trio may be empty.
	trip := validTrip()
	trip.IsGroupBooking = false
	if r := ValidateTripDetails(trip, tripNow); !r.Valid() {
		t.Errorf("non-group booking should not require group fields: %v", r)
	}

	// Group booking: all three group fields become required.
	trip.IsGroupBooking = true
	r := ValidateTripDetails(trip, tripNow)
	for _, field := range []string{"groupName", "groupLeaderName", "groupLeaderContact"} {
		if !hasField(r, field) {
			t.Errorf("expected violation on %s for an empty group booking", field)
		}
	}

	// Filled in, the group booking passes again.
	trip.GroupName = "Hiking Club"
	trip.GroupLeaderName = "Sam Reyes"
	trip.GroupLeaderContact = "+1-555-0199"
	if r := ValidateTripDetails(trip, tripNow); !r.Valid() {
		t.Errorf("complete group booking should be valid: %v", r)
	}
}

func TestValidateTripDetails_EmergencyContactAlwaysRequired(t *testing.T) {
	t.Parallel()

	trip := validTrip()
	trip.EmergencyContactName = ""
	trip.EmergencyContactPhone = ""
	trip.EmergencyContactRelationship = ""

	r := ValidateTripDetails(trip, tripNow)
	for _, field := range []string{"emergencyContactName", "emergencyContactPhone", "emergencyContactRelationship"} {
		if !hasField(r, field) {
			t.Errorf("expected violation on %s", field)
		}
	}
}
