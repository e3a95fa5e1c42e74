package validation

import (
	"time"

	"github.com/shopspring/decimal"

	"tourdesk/internal/domain"
)

// Shared fixtures and helpers for the validator tests.

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// hasField reports whether the result carries a violation for field.
func hasField(r Result, field string) bool {
	for _, fe := range r {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func validTrip() domain.TripDetails {
	return domain.TripDetails{
		TravelStartDate:              date(2026, time.September, 10),
		TravelEndDate:                date(2026, time.September, 20),
		DestinationCityID:            42,
		NumAdults:                    2,
		NumChildren:                  1,
		ChildrenAges:                 []int{8},
		Currency:                     "USD",
		TripType:                     domain.TripTypeLeisure,
		BookingSource:                domain.BookingSourceDirect,
		EmergencyContactName:         "Jordan Blake",
		EmergencyContactPhone:        "+1-555-0100",
		EmergencyContactRelationship: "sibling",
	}
}

func validAdult() domain.Passenger {
	return domain.Passenger{
		Title:                domain.TitleMr,
		FirstName:            "Alex",
		LastName:             "Carter",
		Gender:               domain.GenderMale,
		Nationality:          "US",
		DateOfBirth:          date(1990, time.March, 14),
		Age:                  36,
		PassengerType:        domain.PassengerTypeAdult,
		PassportNumber:       "X1234567",
		PassportExpiryDate:   date(2030, time.January, 1),
		PassportIssueCountry: "US",
		IsLeadPassenger:      true,
		Email:                "alex.carter@example.com",
		Phone:                "+1-555-0101",
	}
}

func validHotelService() domain.Service {
	return domain.Service{
		Kind:               domain.ServiceKindHotel,
		ServiceDate:        date(2026, time.September, 10),
		Quantity:           1,
		CostAmount:         dec("500"),
		CostCurrency:       "EUR",
		ExchangeRate:       dec("1.1"),
		CostInBaseCurrency: dec("550"),
		SellingPrice:       dec("650"),
		SellingCurrency:    "USD",
		ServiceDescription: "4 nights at the Marina Hotel",
		Hotel: &domain.HotelDetails{
			HotelID:      7,
			RoomType:     "Double",
			BoardBasis:   "BB",
			NumRooms:     1,
			CheckInDate:  date(2026, time.September, 10),
			CheckOutDate: date(2026, time.September, 14),
		},
	}
}
