package validation

import (
	"testing"
	"time"

	"tourdesk/internal/domain"
)

func TestValidatePassenger_Valid(t *testing.T) {
	t.Parallel()

	travelEnd := date(2026, time.September, 20)
	if r := ValidatePassenger(validAdult(), travelEnd); !r.Valid() {
		t.Errorf("expected valid passenger, got %v", r)
	}
}

func TestValidatePassenger_AgeTypeCoherence(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		age     int
		ptype   domain.PassengerType
		wantErr bool
	}{
		{"newborn infant", 0, domain.PassengerTypeInfant, false},
		{"one year old infant", 1, domain.PassengerTypeInfant, false},
		{"two year old must be child", 2, domain.PassengerTypeInfant, true},
		{"two year old child", 2, domain.PassengerTypeChild, false},
		{"seventeen year old child", 17, domain.PassengerTypeChild, false},
		{"seventeen year old as adult", 17, domain.PassengerTypeAdult, true},
		{"eighteen year old adult", 18, domain.PassengerTypeAdult, false},
		{"eighteen year old as child", 18, domain.PassengerTypeChild, true},
		{"adult as infant", 40, domain.PassengerTypeInfant, true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := validAdult()
			p.Age = tc.age
			p.PassengerType = tc.ptype
			p.DateOfBirth = date(2026, time.January, 1).AddDate(-tc.age, 0, 0)

			r := ValidatePassenger(p, date(2026, time.September, 20))
			if tc.wantErr && !hasField(r, "passengerType") {
				t.Errorf("expected passengerType violation for age %d as %s, got %v", tc.age, tc.ptype, r)
			}
			if !tc.wantErr && hasField(r, "passengerType") {
				t.Errorf("unexpected passengerType violation: %v", r)
			}
		})
	}
}

func TestValidatePassenger_NegativeAge(t *testing.T) {
	t.Parallel()

	p := validAdult()
	p.Age = -1

	r := ValidatePassenger(p, date(2026, time.September, 20))
	if !hasField(r, "age") {
		t.Errorf("expected age violation, got %v", r)
	}
}

func TestValidatePassenger_PassportValidityWindow(t *testing.T) {
	t.Parallel()

	// Travel ends 2026-06-01, so the passport must be valid through
	// 2026-12-01.
	travelEnd := date(2026, time.June, 1)

	testCases := []struct {
		name    string
		expiry  time.Time
		wantErr bool
	}{
		{"expires well after window", date(2030, time.January, 1), false},
		{"expires exactly six months after travel end", date(2026, time.December, 1), false},
		{"expires one day short of the window", date(2026, time.November, 30), true},
		{"expires inside the trip", date(2026, time.May, 20), true},
		{"expires before the trip", date(2026, time.January, 15), true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := validAdult()
			p.PassportExpiryDate = tc.expiry

			r := ValidatePassenger(p, travelEnd)
			if tc.wantErr && !hasField(r, "passportExpiryDate") {
				t.Errorf("expected passportExpiryDate violation for expiry %s, got %v", tc.expiry.Format("2006-01-02"), r)
			}
			if !tc.wantErr && hasField(r, "passportExpiryDate") {
				t.Errorf("unexpected passportExpiryDate violation: %v", r)
			}
		})
	}
}

func TestValidatePassenger_ZeroTravelEndSkipsPassportWindow(t *testing.T) {
	t.Parallel()

	// Trip details not entered yet: only hard passport rules apply.
	p := validAdult()
	p.PassportExpiryDate = date(2026, time.January, 2)

	if r := ValidatePassenger(p, time.Time{}); hasField(r, "passportExpiryDate") {
		t.Errorf("validity window should be skipped without a travel end date: %v", r)
	}
}

func TestValidatePassenger_LeadContactRequired(t *testing.T) {
	t.Parallel()

	travelEnd := date(2026, time.September, 20)

	lead := validAdult()
	lead.Email = ""
	lead.Phone = ""
	r := ValidatePassenger(lead, travelEnd)
	if !hasField(r, "email") || !hasField(r, "phone") {
		t.Errorf("lead passenger without contact details should fail: %v", r)
	}

	lead = validAdult()
	lead.Email = "not-an-email"
	if r := ValidatePassenger(lead, travelEnd); !hasField(r, "email") {
		t.Errorf("malformed lead email should fail: %v", r)
	}

	// A non-lead passenger needs no contact details.
	other := validAdult()
	other.IsLeadPassenger = false
	other.Email = ""
	other.Phone = ""
	if r := ValidatePassenger(other, travelEnd); !r.Valid() {
		t.Errorf("non-lead passenger without contact details should pass: %v", r)
	}
}

func TestValidatePassenger_RequiredFields(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		mutate    func(*domain.Passenger)
		wantField string
	}{
		{"unknown title", func(p *domain.Passenger) { p.Title = "Dr" }, "title"},
		{"missing first name", func(p *domain.Passenger) { p.FirstName = "  " }, "firstName"},
		{"missing last name", func(p *domain.Passenger) { p.LastName = "" }, "lastName"},
		{"unknown gender", func(p *domain.Passenger) { p.Gender = "X" }, "gender"},
		{"missing nationality", func(p *domain.Passenger) { p.Nationality = "" }, "nationality"},
		{"missing date of birth", func(p *domain.Passenger) { p.DateOfBirth = time.Time{} }, "dateOfBirth"},
		{"missing passport number", func(p *domain.Passenger) { p.PassportNumber = "" }, "passportNumber"},
		{"missing passport country", func(p *domain.Passenger) { p.PassportIssueCountry = "" }, "passportIssueCountry"},
		{"missing passport expiry", func(p *domain.Passenger) { p.PassportExpiryDate = time.Time{} }, "passportExpiryDate"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := validAdult()
			tc.mutate(&p)
			if r := ValidatePassenger(p, date(2026, time.September, 20)); !hasField(r, tc.wantField) {
				t.Errorf("expected violation on %s, got %v", tc.wantField, r)
			}
		})
	}
}

func TestValidatePassengerList(t *testing.T) {
	t.Parallel()

	travelEnd := date(2026, time.September, 20)

	t.Run("empty list fails", func(t *testing.T) {
		t.Parallel()
		if r := ValidatePassengerList(nil, travelEnd); !hasField(r, "passengers") {
			t.Errorf("expected passengers violation, got %v", r)
		}
	})

	t.Run("exactly one lead passes", func(t *testing.T) {
		t.Parallel()
		second := validAdult()
		second.IsLeadPassenger = false
		second.FirstName = "Morgan"
		second.Email = ""
		second.Phone = ""

		if r := ValidatePassengerList([]domain.Passenger{validAdult(), second}, travelEnd); !r.Valid() {
			t.Errorf("expected valid list, got %v", r)
		}
	})

	t.Run("no lead fails", func(t *testing.T) {
		t.Parallel()
		p := validAdult()
		p.IsLeadPassenger = false
		p.Email = ""
		p.Phone = ""

		if r := ValidatePassengerList([]domain.Passenger{p}, travelEnd); !hasField(r, "passengers") {
			t.Errorf("expected passengers violation, got %v", r)
		}
	})

	t.Run("two leads fail", func(t *testing.T) {
		t.Parallel()
		if r := ValidatePassengerList([]domain.Passenger{validAdult(), validAdult()}, travelEnd); !hasField(r, "passengers") {
			t.Errorf("expected passengers violation, got %v", r)
		}
	})

	t.Run("per-passenger errors are indexed", func(t *testing.T) {
		t.Parallel()
		bad := validAdult()
		bad.IsLeadPassenger = false
		bad.Email = ""
		bad.Phone = ""
		bad.PassportNumber = ""

		r := ValidatePassengerList([]domain.Passenger{validAdult(), bad}, travelEnd)
		if !hasField(r, "passengers[1].passportNumber") {
			t.Errorf("expected indexed violation, got %v", r)
		}
	})
}
