package validation

import (
	"fmt"
	"time"

	"tourdesk/internal/domain"
)

// ValidateTripDetails checks the step 2 record. now anchors the "start date
// not in the past" rule; only the calendar date matters, not the time of day.
func ValidateTripDetails(t domain.TripDetails, now time.Time) Result {
	var r Result

	today := truncateToDay(now)
	if t.TravelStartDate.IsZero() {
		r = r.add("travelStartDate", "travel start date is required")
	} else if truncateToDay(t.TravelStartDate).Before(today) {
		r = r.add("travelStartDate", "travel start date cannot be in the past")
	}

	if t.TravelEndDate.IsZero() {
		r = r.add("travelEndDate", "travel end date is required")
	} else if !t.TravelStartDate.IsZero() && !t.TravelEndDate.After(t.TravelStartDate) {
		r = r.add("travelEndDate", "travel end date must be after the start date")
	}

	if t.DestinationCityID <= 0 {
		r = r.add("destinationCityId", "a destination city must be selected")
	}

	if t.NumAdults < 1 {
		r = r.add("numAdults", "at least one adult is required")
	}
	if t.NumChildren < 0 {
		r = r.add("numChildren", "number of children cannot be negative")
	}
	if t.NumChildren >= 0 && len(t.ChildrenAges) != t.NumChildren {
		r = r.add("childrenAges", fmt.Sprintf("expected %d children ages, got %d", t.NumChildren, len(t.ChildrenAges)))
	}
	for i, age := range t.ChildrenAges {
		if age < 0 || age > 17 {
			r = r.add(fmt.Sprintf("childrenAges[%d]", i), "child age must be between 0 and 17")
		}
	}

	if !isCurrencyCode(t.Currency) {
		r = r.add("currency", "currency must be a 3-letter code")
	}

	switch t.TripType {
	case domain.TripTypeLeisure, domain.TripTypeBusiness, domain.TripTypeCultural,
		domain.TripTypePilgrimage, domain.TripTypeMICE:
	default:
		r = r.add("tripType", "unknown trip type")
	}

	switch t.BookingSource {
	case domain.BookingSourceDirect, domain.BookingSourceWebsite, domain.BookingSourcePhone,
		domain.BookingSourceReferral, domain.BookingSourceAgency:
	default:
		r = r.add("bookingSource", "unknown booking source")
	}

	if t.IsGroupBooking {
		if t.GroupName == "" {
			r = r.add("groupName", "group name is required for group bookings")
		}
		if t.GroupLeaderName == "" {
			r = r.add("groupLeaderName", "group leader name is required for group bookings")
		}
		if t.GroupLeaderContact == "" {
			r = r.add("groupLeaderContact", "group leader contact is required for group bookings")
		}
	}

	if t.EmergencyContactName == "" {
		r = r.add("emergencyContactName", "emergency contact name is required")
	}
	if t.EmergencyContactPhone == "" {
		r = r.add("emergencyContactPhone", "emergency contact phone is required")
	}
	if t.EmergencyContactRelationship == "" {
		r = r.add("emergencyContactRelationship", "emergency contact relationship is required")
	}

	return r
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
