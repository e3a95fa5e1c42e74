package handler

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tourdesk/internal/domain"
)

// dateLayout is how date-only fields travel in request and response bodies.
const dateLayout = "2006-01-02"

// ClientRequest is the HTTP request body for the step 1 selection.
type ClientRequest struct {
	ClientType string `json:"clientType"`
	ClientID   int64  `json:"selectedClientId"`
}

// TripRequest is the HTTP request body for the step 2 details. Omitted
// optional fields stay empty; PATCH semantics are handled by TripPatch.
type TripRequest struct {
	TravelStartDate   string `json:"travelStartDate"`
	TravelEndDate     string `json:"travelEndDate"`
	DestinationCityID int64  `json:"destinationCityId"`
	NumAdults         int    `json:"numAdults"`
	NumChildren       int    `json:"numChildren"`
	ChildrenAges      []int  `json:"childrenAges"`
	Currency          string `json:"currency"`
	TripType          string `json:"tripType"`
	BookingSource     string `json:"bookingSource"`

	IsGroupBooking     bool   `json:"isGroupBooking"`
	GroupName          string `json:"groupName"`
	GroupLeaderName    string `json:"groupLeaderName"`
	GroupLeaderContact string `json:"groupLeaderContact"`

	EmergencyContactName         string `json:"emergencyContactName"`
	EmergencyContactPhone        string `json:"emergencyContactPhone"`
	EmergencyContactRelationship string `json:"emergencyContactRelationship"`

	SpecialRequests string `json:"specialRequests"`
}

// TripPatch is the HTTP request body for a partial trip update; only
// non-nil fields are applied.
type TripPatch struct {
	TravelStartDate *string `json:"travelStartDate"`
	TravelEndDate   *string `json:"travelEndDate"`
	NumAdults       *int    `json:"numAdults"`
	NumChildren     *int    `json:"numChildren"`
	ChildrenAges    *[]int  `json:"childrenAges"`
	SpecialRequests *string `json:"specialRequests"`

	GroupName          *string `json:"groupName"`
	GroupLeaderName    *string `json:"groupLeaderName"`
	GroupLeaderContact *string `json:"groupLeaderContact"`
}

// PassengerRequest is the HTTP request body for one passenger.
type PassengerRequest struct {
	Title       string `json:"title"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Gender      string `json:"gender"`
	Nationality string `json:"nationality"`
	DateOfBirth string `json:"dateOfBirth"`

	PassengerType string `json:"passengerType"`

	PassportNumber       string `json:"passportNumber"`
	PassportExpiryDate   string `json:"passportExpiryDate"`
	PassportIssueCountry string `json:"passportIssueCountry"`

	IsLeadPassenger bool   `json:"isLeadPassenger"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`

	DietaryRequirements string `json:"dietaryRequirements"`
	MedicalConditions   string `json:"medicalConditions"`
	AccessibilityNeeds  string `json:"accessibilityNeeds"`
}

// ServiceRequest is the HTTP request body for one service. Exactly one
// detail block must be present and must match serviceType. The base-currency
// cost is computed server-side from costAmount and exchangeRate.
type ServiceRequest struct {
	ServiceType string `json:"serviceType"`

	ServiceDate        string          `json:"serviceDate"`
	Quantity           int             `json:"quantity"`
	CostAmount         decimal.Decimal `json:"costAmount"`
	CostCurrency       string          `json:"costCurrency"`
	ExchangeRate       decimal.Decimal `json:"exchangeRate"`
	SellingPrice       decimal.Decimal `json:"sellingPrice"`
	SellingCurrency    string          `json:"sellingCurrency"`
	ServiceDescription string          `json:"serviceDescription"`

	Hotel         *HotelRequest                `json:"hotel"`
	Transfer      *domain.TransferDetails      `json:"transfer"`
	VehicleRental *domain.VehicleRentalDetails `json:"vehicleRental"`
	Tour          *domain.TourDetails          `json:"tour"`
	Guide         *domain.GuideDetails         `json:"guide"`
	Restaurant    *domain.RestaurantDetails    `json:"restaurant"`
	EntranceFee   *domain.EntranceFeeDetails   `json:"entranceFee"`
	Extra         *domain.ExtraDetails         `json:"extra"`
}

// HotelRequest is the hotel detail block with wire-form dates.
type HotelRequest struct {
	HotelID      int64  `json:"hotelId"`
	RoomType     string `json:"roomType"`
	BoardBasis   string `json:"boardBasis"`
	NumRooms     int    `json:"numRooms"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

// PricingRequest carries the entered step 5 inputs; every derived figure is
// computed server-side through the pricing calculator.
type PricingRequest struct {
	MarkupPercentage decimal.Decimal `json:"markupPercentage"`
	TaxRateID        *int64          `json:"taxRateId"`
	TaxRate          decimal.Decimal `json:"taxRate"`
	PromoCodeID      *int64          `json:"promoCodeId"`
	CampaignID       *int64          `json:"campaignId"`
	DiscountAmount   decimal.Decimal `json:"discountAmount"`

	SellingCurrency      string `json:"sellingCurrency"`
	CancellationPolicyID *int64 `json:"cancellationPolicyId"`
	InternalNotes        string `json:"internalNotes"`
}

// toDomain converts the client DTO.
func (r ClientRequest) toDomain() domain.ClientSelection {
	return domain.ClientSelection{
		ClientType: domain.ClientType(r.ClientType),
		ClientID:   r.ClientID,
	}
}

// toDomain converts the trip DTO; malformed dates are reported against
// their field so the UI can surface them inline.
func (r TripRequest) toDomain() (domain.TripDetails, error) {
	start, err := parseDate("travelStartDate", r.TravelStartDate)
	if err != nil {
		return domain.TripDetails{}, err
	}
	end, err := parseDate("travelEndDate", r.TravelEndDate)
	if err != nil {
		return domain.TripDetails{}, err
	}
	return domain.TripDetails{
		TravelStartDate:              start,
		TravelEndDate:                end,
		DestinationCityID:            r.DestinationCityID,
		NumAdults:                    r.NumAdults,
		NumChildren:                  r.NumChildren,
		ChildrenAges:                 r.ChildrenAges,
		Currency:                     r.Currency,
		TripType:                     domain.TripType(r.TripType),
		BookingSource:                domain.BookingSource(r.BookingSource),
		IsGroupBooking:               r.IsGroupBooking,
		GroupName:                    r.GroupName,
		GroupLeaderName:              r.GroupLeaderName,
		GroupLeaderContact:           r.GroupLeaderContact,
		EmergencyContactName:         r.EmergencyContactName,
		EmergencyContactPhone:        r.EmergencyContactPhone,
		EmergencyContactRelationship: r.EmergencyContactRelationship,
		SpecialRequests:              r.SpecialRequests,
	}, nil
}

// apply writes the patch's non-nil fields onto the trip and returns the
// patched copy.
func (p TripPatch) apply(t domain.TripDetails) (domain.TripDetails, error) {
	if p.TravelStartDate != nil {
		start, err := parseDate("travelStartDate", *p.TravelStartDate)
		if err != nil {
			return t, err
		}
		t.TravelStartDate = start
	}
	if p.TravelEndDate != nil {
		end, err := parseDate("travelEndDate", *p.TravelEndDate)
		if err != nil {
			return t, err
		}
		t.TravelEndDate = end
	}
	if p.NumAdults != nil {
		t.NumAdults = *p.NumAdults
	}
	if p.NumChildren != nil {
		t.NumChildren = *p.NumChildren
	}
	if p.ChildrenAges != nil {
		t.ChildrenAges = *p.ChildrenAges
	}
	if p.SpecialRequests != nil {
		t.SpecialRequests = *p.SpecialRequests
	}
	if p.GroupName != nil {
		t.GroupName = *p.GroupName
	}
	if p.GroupLeaderName != nil {
		t.GroupLeaderName = *p.GroupLeaderName
	}
	if p.GroupLeaderContact != nil {
		t.GroupLeaderContact = *p.GroupLeaderContact
	}
	return t, nil
}

// toDomain converts the passenger DTO, deriving age from the date of birth.
func (r PassengerRequest) toDomain(now time.Time) (domain.Passenger, error) {
	dob, err := parseDate("dateOfBirth", r.DateOfBirth)
	if err != nil {
		return domain.Passenger{}, err
	}
	expiry, err := parseDate("passportExpiryDate", r.PassportExpiryDate)
	if err != nil {
		return domain.Passenger{}, err
	}
	p := domain.Passenger{
		Title:                domain.PassengerTitle(r.Title),
		FirstName:            r.FirstName,
		LastName:             r.LastName,
		Gender:               domain.Gender(r.Gender),
		Nationality:          r.Nationality,
		DateOfBirth:          dob,
		PassengerType:        domain.PassengerType(r.PassengerType),
		PassportNumber:       r.PassportNumber,
		PassportExpiryDate:   expiry,
		PassportIssueCountry: r.PassportIssueCountry,
		IsLeadPassenger:      r.IsLeadPassenger,
		Email:                r.Email,
		Phone:                r.Phone,
		DietaryRequirements:  r.DietaryRequirements,
		MedicalConditions:    r.MedicalConditions,
		AccessibilityNeeds:   r.AccessibilityNeeds,
	}
	p.Age = p.AgeAt(now)
	return p, nil
}

// toDomain converts the service DTO, converting the cost into base currency
// through the declared exchange rate.
func (r ServiceRequest) toDomain(convert func(amount, rate decimal.Decimal) decimal.Decimal) (domain.Service, error) {
	date, err := parseDate("serviceDate", r.ServiceDate)
	if err != nil {
		return domain.Service{}, err
	}
	s := domain.Service{
		Kind:               domain.ServiceKind(r.ServiceType),
		ServiceDate:        date,
		Quantity:           r.Quantity,
		CostAmount:         r.CostAmount,
		CostCurrency:       r.CostCurrency,
		ExchangeRate:       r.ExchangeRate,
		CostInBaseCurrency: convert(r.CostAmount, r.ExchangeRate),
		SellingPrice:       r.SellingPrice,
		SellingCurrency:    r.SellingCurrency,
		ServiceDescription: r.ServiceDescription,
		Transfer:           r.Transfer,
		VehicleRental:      r.VehicleRental,
		Tour:               r.Tour,
		Guide:              r.Guide,
		Restaurant:         r.Restaurant,
		EntranceFee:        r.EntranceFee,
		Extra:              r.Extra,
	}
	if r.Hotel != nil {
		checkIn, err := parseDate("checkInDate", r.Hotel.CheckInDate)
		if err != nil {
			return domain.Service{}, err
		}
		checkOut, err := parseDate("checkOutDate", r.Hotel.CheckOutDate)
		if err != nil {
			return domain.Service{}, err
		}
		s.Hotel = &domain.HotelDetails{
			HotelID:      r.Hotel.HotelID,
			RoomType:     r.Hotel.RoomType,
			BoardBasis:   r.Hotel.BoardBasis,
			NumRooms:     r.Hotel.NumRooms,
			CheckInDate:  checkIn,
			CheckOutDate: checkOut,
		}
	}
	return s, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a %s date", field, dateLayout)
	}
	return t, nil
}
