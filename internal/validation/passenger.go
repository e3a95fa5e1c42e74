package validation

import (
	"fmt"
	"strings"
	"time"

	"tourdesk/internal/domain"
)

// passportValidityMonths is the minimum passport validity beyond the travel
// end date required by most destination countries.
const passportValidityMonths = 6

// ValidatePassenger checks one passenger. travelEnd is the booking's travel
// end date, needed for the passport validity window; a zero travelEnd skips
// that rule (trip details not entered yet).
func ValidatePassenger(p domain.Passenger, travelEnd time.Time) Result {
	var r Result

	switch p.Title {
	case domain.TitleMr, domain.TitleMrs, domain.TitleMs, domain.TitleMstr, domain.TitleMiss:
	default:
		r = r.add("title", "unknown title")
	}

	if strings.TrimSpace(p.FirstName) == "" {
		r = r.add("firstName", "first name is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		r = r.add("lastName", "last name is required")
	}

	switch p.Gender {
	case domain.GenderMale, domain.GenderFemale, domain.GenderOther:
	default:
		r = r.add("gender", "unknown gender")
	}

	if p.Nationality == "" {
		r = r.add("nationality", "nationality is required")
	}

	if p.DateOfBirth.IsZero() {
		r = r.add("dateOfBirth", "date of birth is required")
	}

	if band, ok := typeForAge(p.Age); !ok {
		r = r.add("age", "age cannot be negative")
	} else {
		switch p.PassengerType {
		case domain.PassengerTypeAdult, domain.PassengerTypeChild, domain.PassengerTypeInfant:
			if p.PassengerType != band {
				r = r.add("passengerType", fmt.Sprintf("passenger aged %d must be %s", p.Age, band))
			}
		default:
			r = r.add("passengerType", "unknown passenger type")
		}
	}

	if p.PassportNumber == "" {
		r = r.add("passportNumber", "passport number is required")
	}
	if p.PassportIssueCountry == "" {
		r = r.add("passportIssueCountry", "passport issue country is required")
	}
	if p.PassportExpiryDate.IsZero() {
		r = r.add("passportExpiryDate", "passport expiry date is required")
	} else if !travelEnd.IsZero() {
		minExpiry := travelEnd.AddDate(0, passportValidityMonths, 0)
		if p.PassportExpiryDate.Before(minExpiry) {
			r = r.add("passportExpiryDate",
				fmt.Sprintf("passport must be valid until at least %s (%d months after travel end)",
					minExpiry.Format("2006-01-02"), passportValidityMonths))
		}
	}

	if p.IsLeadPassenger {
		if p.Email == "" {
			r = r.add("email", "email is required for the lead passenger")
		} else if !strings.Contains(p.Email, "@") {
			r = r.add("email", "email is not valid")
		}
		if p.Phone == "" {
			r = r.add("phone", "phone is required for the lead passenger")
		}
	}

	return r
}

// ValidatePassengerList checks list-level rules: at least one passenger and
// exactly one lead. Per-passenger rules are reported under passengers[i].
func ValidatePassengerList(passengers []domain.Passenger, travelEnd time.Time) Result {
	var r Result

	if len(passengers) == 0 {
		return r.add("passengers", "at least one passenger is required")
	}

	leads := 0
	for i, p := range passengers {
		if p.IsLeadPassenger {
			leads++
		}
		for _, fe := range ValidatePassenger(p, travelEnd) {
			r = r.add(fmt.Sprintf("passengers[%d].%s", i, fe.Field), fe.Message)
		}
	}
	if leads != 1 {
		r = r.add("passengers", fmt.Sprintf("exactly one lead passenger is required, got %d", leads))
	}

	return r
}

// typeForAge maps an age to its passenger type band. Boundaries: under 2 is
// Infant, 2..17 is Child, 18 and over is Adult.
func typeForAge(age int) (domain.PassengerType, bool) {
	switch {
	case age < 0:
		return "", false
	case age < 2:
		return domain.PassengerTypeInfant, true
	case age < 18:
		return domain.PassengerTypeChild, true
	default:
		return domain.PassengerTypeAdult, true
	}
}
