package persist

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"tourdesk/internal/domain"
)

// dateLayout is the wire form of date-only fields. Timestamps (LastSaved)
// travel as RFC 3339.
const dateLayout = "2006-01-02"

// Wire records mirror the domain records with every date as a string, so a
// snapshot read back from storage is retyped explicitly. Decode fails on the
// first bad field and the caller discards the whole snapshot; a
// partially-typed state never escapes this package.

type wireState struct {
	CurrentStep    int             `json:"currentStep"`
	CompletedSteps []int           `json:"completedSteps"`
	Client         *wireClient     `json:"client,omitempty"`
	Trip           *wireTrip       `json:"tripDetails,omitempty"`
	Passengers     []wirePassenger `json:"passengers,omitempty"`
	Services       []wireService   `json:"services,omitempty"`
	Pricing        *wirePricing    `json:"pricing,omitempty"`
	IsSubmitting   bool            `json:"isSubmitting"`
	IsDraft        bool            `json:"isDraft"`
	LastSaved      string          `json:"lastSaved,omitempty"`
}

type wireClient struct {
	ClientType string `json:"clientType"`
	ClientID   int64  `json:"selectedClientId"`
}

type wireTrip struct {
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
	GroupName          string `json:"groupName,omitempty"`
	GroupLeaderName    string `json:"groupLeaderName,omitempty"`
	GroupLeaderContact string `json:"groupLeaderContact,omitempty"`

	EmergencyContactName         string `json:"emergencyContactName"`
	EmergencyContactPhone        string `json:"emergencyContactPhone"`
	EmergencyContactRelationship string `json:"emergencyContactRelationship"`

	SpecialRequests string `json:"specialRequests,omitempty"`
}

type wirePassenger struct {
	Title       string `json:"title"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Gender      string `json:"gender"`
	Nationality string `json:"nationality"`
	DateOfBirth string `json:"dateOfBirth"`
	Age         int    `json:"age"`

	PassengerType string `json:"passengerType"`

	PassportNumber       string `json:"passportNumber"`
	PassportExpiryDate   string `json:"passportExpiryDate"`
	PassportIssueCountry string `json:"passportIssueCountry"`

	IsLeadPassenger bool   `json:"isLeadPassenger"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`

	DietaryRequirements string `json:"dietaryRequirements,omitempty"`
	MedicalConditions   string `json:"medicalConditions,omitempty"`
	AccessibilityNeeds  string `json:"accessibilityNeeds,omitempty"`
}

type wireService struct {
	Kind string `json:"serviceType"`

	ServiceDate        string          `json:"serviceDate"`
	Quantity           int             `json:"quantity"`
	CostAmount         decimal.Decimal `json:"costAmount"`
	CostCurrency       string          `json:"costCurrency"`
	ExchangeRate       decimal.Decimal `json:"exchangeRate"`
	CostInBaseCurrency decimal.Decimal `json:"costInBaseCurrency"`
	SellingPrice       decimal.Decimal `json:"sellingPrice"`
	SellingCurrency    string          `json:"sellingCurrency"`
	ServiceDescription string          `json:"serviceDescription"`

	Hotel         *wireHotel                   `json:"hotel,omitempty"`
	Transfer      *domain.TransferDetails      `json:"transfer,omitempty"`
	VehicleRental *domain.VehicleRentalDetails `json:"vehicleRental,omitempty"`
	Tour          *domain.TourDetails          `json:"tour,omitempty"`
	Guide         *domain.GuideDetails         `json:"guide,omitempty"`
	Restaurant    *domain.RestaurantDetails    `json:"restaurant,omitempty"`
	EntranceFee   *domain.EntranceFeeDetails   `json:"entranceFee,omitempty"`
	Extra         *domain.ExtraDetails         `json:"extra,omitempty"`
}

// wireHotel is separate from domain.HotelDetails because it carries dates.
type wireHotel struct {
	HotelID      int64  `json:"hotelId"`
	RoomType     string `json:"roomType"`
	BoardBasis   string `json:"boardBasis,omitempty"`
	NumRooms     int    `json:"numRooms"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

type wirePricing struct {
	TotalServicesCost decimal.Decimal `json:"totalServicesCost"`
	MarkupPercentage  decimal.Decimal `json:"markupPercentage"`
	ProfitAmount      decimal.Decimal `json:"profitAmount"`
	TotalSellingPrice decimal.Decimal `json:"totalSellingPrice"`

	TaxRateID    *int64          `json:"taxRateId,omitempty"`
	TaxRate      decimal.Decimal `json:"taxRate"`
	TaxAmount    decimal.Decimal `json:"taxAmount"`
	TotalWithTax decimal.Decimal `json:"totalWithTax"`

	PromoCodeID    *int64          `json:"promoCodeId,omitempty"`
	CampaignID     *int64          `json:"campaignId,omitempty"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	FinalTotal     decimal.Decimal `json:"finalTotal"`

	BaseCurrency    string `json:"baseCurrency"`
	SellingCurrency string `json:"sellingCurrency"`
	BookingSource   string `json:"bookingSource"`

	CancellationPolicyID *int64 `json:"cancellationPolicyId,omitempty"`
	InternalNotes        string `json:"internalNotes,omitempty"`
}

// Encode serializes a wizard state to its wire form.
func Encode(state domain.WizardState) (string, error) {
	w := wireState{
		CurrentStep:  int(state.CurrentStep),
		IsSubmitting: state.IsSubmitting,
		IsDraft:      state.IsDraft,
	}
	for step, done := range state.CompletedSteps {
		if done {
			w.CompletedSteps = append(w.CompletedSteps, int(step))
		}
	}
	sort.Ints(w.CompletedSteps)

	if !state.LastSaved.IsZero() {
		w.LastSaved = state.LastSaved.Format(time.RFC3339Nano)
	}

	if state.Client != nil {
		w.Client = &wireClient{
			ClientType: string(state.Client.ClientType),
			ClientID:   state.Client.ClientID,
		}
	}
	if state.Trip != nil {
		w.Trip = encodeTrip(*state.Trip)
	}
	for _, p := range state.Passengers {
		w.Passengers = append(w.Passengers, encodePassenger(p))
	}
	for _, s := range state.Services {
		w.Services = append(w.Services, encodeService(s))
	}
	if state.Pricing != nil {
		w.Pricing = encodePricing(*state.Pricing)
	}

	data, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("encode wizard state: %w", err)
	}
	return string(data), nil
}

// Decode parses a wire-form snapshot back into a typed wizard state. Any
// malformed field fails the whole decode.
func Decode(data string) (domain.WizardState, error) {
	var w wireState
	if err := json.Unmarshal([]byte(data), &w); err != nil {
		return domain.WizardState{}, fmt.Errorf("decode wizard state: %w", err)
	}

	if w.CurrentStep < int(domain.FirstStep) || w.CurrentStep > int(domain.LastStep) {
		return domain.WizardState{}, fmt.Errorf("decode currentStep: %d out of range", w.CurrentStep)
	}

	state := domain.NewWizardState()
	state.CurrentStep = domain.Step(w.CurrentStep)
	state.IsSubmitting = w.IsSubmitting
	state.IsDraft = w.IsDraft
	for _, step := range w.CompletedSteps {
		if step < int(domain.FirstStep) || step > int(domain.LastStep) {
			return domain.WizardState{}, fmt.Errorf("decode completedSteps: %d out of range", step)
		}
		state.CompletedSteps[domain.Step(step)] = true
	}

	if w.LastSaved != "" {
		ts, err := time.Parse(time.RFC3339Nano, w.LastSaved)
		if err != nil {
			return domain.WizardState{}, fmt.Errorf("decode lastSaved: %w", err)
		}
		state.LastSaved = ts
	}

	if w.Client != nil {
		state.Client = &domain.ClientSelection{
			ClientType: domain.ClientType(w.Client.ClientType),
			ClientID:   w.Client.ClientID,
		}
	}
	if w.Trip != nil {
		trip, err := decodeTrip(*w.Trip)
		if err != nil {
			return domain.WizardState{}, err
		}
		state.Trip = &trip
	}
	for i, wp := range w.Passengers {
		p, err := decodePassenger(wp)
		if err != nil {
			return domain.WizardState{}, fmt.Errorf("passenger %d: %w", i, err)
		}
		state.Passengers = append(state.Passengers, p)
	}
	for i, ws := range w.Services {
		s, err := decodeService(ws)
		if err != nil {
			return domain.WizardState{}, fmt.Errorf("service %d: %w", i, err)
		}
		state.Services = append(state.Services, s)
	}
	if w.Pricing != nil {
		p := decodePricing(*w.Pricing)
		state.Pricing = &p
	}

	return state, nil
}

func encodeTrip(t domain.TripDetails) *wireTrip {
	return &wireTrip{
		TravelStartDate:              t.TravelStartDate.Format(dateLayout),
		TravelEndDate:                t.TravelEndDate.Format(dateLayout),
		DestinationCityID:            t.DestinationCityID,
		NumAdults:                    t.NumAdults,
		NumChildren:                  t.NumChildren,
		ChildrenAges:                 t.ChildrenAges,
		Currency:                     t.Currency,
		TripType:                     string(t.TripType),
		BookingSource:                string(t.BookingSource),
		IsGroupBooking:               t.IsGroupBooking,
		GroupName:                    t.GroupName,
		GroupLeaderName:              t.GroupLeaderName,
		GroupLeaderContact:           t.GroupLeaderContact,
		EmergencyContactName:         t.EmergencyContactName,
		EmergencyContactPhone:        t.EmergencyContactPhone,
		EmergencyContactRelationship: t.EmergencyContactRelationship,
		SpecialRequests:              t.SpecialRequests,
	}
}

func decodeTrip(w wireTrip) (domain.TripDetails, error) {
	start, err := parseDate("travelStartDate", w.TravelStartDate)
	if err != nil {
		return domain.TripDetails{}, err
	}
	end, err := parseDate("travelEndDate", w.TravelEndDate)
	if err != nil {
		return domain.TripDetails{}, err
	}
	return domain.TripDetails{
		TravelStartDate:              start,
		TravelEndDate:                end,
		DestinationCityID:            w.DestinationCityID,
		NumAdults:                    w.NumAdults,
		NumChildren:                  w.NumChildren,
		ChildrenAges:                 w.ChildrenAges,
		Currency:                     w.Currency,
		TripType:                     domain.TripType(w.TripType),
		BookingSource:                domain.BookingSource(w.BookingSource),
		IsGroupBooking:               w.IsGroupBooking,
		GroupName:                    w.GroupName,
		GroupLeaderName:              w.GroupLeaderName,
		GroupLeaderContact:           w.GroupLeaderContact,
		EmergencyContactName:         w.EmergencyContactName,
		EmergencyContactPhone:        w.EmergencyContactPhone,
		EmergencyContactRelationship: w.EmergencyContactRelationship,
		SpecialRequests:              w.SpecialRequests,
	}, nil
}

func encodePassenger(p domain.Passenger) wirePassenger {
	return wirePassenger{
		Title:                string(p.Title),
		FirstName:            p.FirstName,
		LastName:             p.LastName,
		Gender:               string(p.Gender),
		Nationality:          p.Nationality,
		DateOfBirth:          p.DateOfBirth.Format(dateLayout),
		Age:                  p.Age,
		PassengerType:        string(p.PassengerType),
		PassportNumber:       p.PassportNumber,
		PassportExpiryDate:   p.PassportExpiryDate.Format(dateLayout),
		PassportIssueCountry: p.PassportIssueCountry,
		IsLeadPassenger:      p.IsLeadPassenger,
		Email:                p.Email,
		Phone:                p.Phone,
		DietaryRequirements:  p.DietaryRequirements,
		MedicalConditions:    p.MedicalConditions,
		AccessibilityNeeds:   p.AccessibilityNeeds,
	}
}

func decodePassenger(w wirePassenger) (domain.Passenger, error) {
	dob, err := parseDate("dateOfBirth", w.DateOfBirth)
	if err != nil {
		return domain.Passenger{}, err
	}
	expiry, err := parseDate("passportExpiryDate", w.PassportExpiryDate)
	if err != nil {
		return domain.Passenger{}, err
	}
	return domain.Passenger{
		Title:                domain.PassengerTitle(w.Title),
		FirstName:            w.FirstName,
		LastName:             w.LastName,
		Gender:               domain.Gender(w.Gender),
		Nationality:          w.Nationality,
		DateOfBirth:          dob,
		Age:                  w.Age,
		PassengerType:        domain.PassengerType(w.PassengerType),
		PassportNumber:       w.PassportNumber,
		PassportExpiryDate:   expiry,
		PassportIssueCountry: w.PassportIssueCountry,
		IsLeadPassenger:      w.IsLeadPassenger,
		Email:                w.Email,
		Phone:                w.Phone,
		DietaryRequirements:  w.DietaryRequirements,
		MedicalConditions:    w.MedicalConditions,
		AccessibilityNeeds:   w.AccessibilityNeeds,
	}, nil
}

func encodeService(s domain.Service) wireService {
	w := wireService{
		Kind:               string(s.Kind),
		ServiceDate:        s.ServiceDate.Format(dateLayout),
		Quantity:           s.Quantity,
		CostAmount:         s.CostAmount,
		CostCurrency:       s.CostCurrency,
		ExchangeRate:       s.ExchangeRate,
		CostInBaseCurrency: s.CostInBaseCurrency,
		SellingPrice:       s.SellingPrice,
		SellingCurrency:    s.SellingCurrency,
		ServiceDescription: s.ServiceDescription,
		Transfer:           s.Transfer,
		VehicleRental:      s.VehicleRental,
		Tour:               s.Tour,
		Guide:              s.Guide,
		Restaurant:         s.Restaurant,
		EntranceFee:        s.EntranceFee,
		Extra:              s.Extra,
	}
	if s.Hotel != nil {
		w.Hotel = &wireHotel{
			HotelID:      s.Hotel.HotelID,
			RoomType:     s.Hotel.RoomType,
			BoardBasis:   s.Hotel.BoardBasis,
			NumRooms:     s.Hotel.NumRooms,
			CheckInDate:  s.Hotel.CheckInDate.Format(dateLayout),
			CheckOutDate: s.Hotel.CheckOutDate.Format(dateLayout),
		}
	}
	return w
}

func decodeService(w wireService) (domain.Service, error) {
	date, err := parseDate("serviceDate", w.ServiceDate)
	if err != nil {
		return domain.Service{}, err
	}
	s := domain.Service{
		Kind:               domain.ServiceKind(w.Kind),
		ServiceDate:        date,
		Quantity:           w.Quantity,
		CostAmount:         w.CostAmount,
		CostCurrency:       w.CostCurrency,
		ExchangeRate:       w.ExchangeRate,
		CostInBaseCurrency: w.CostInBaseCurrency,
		SellingPrice:       w.SellingPrice,
		SellingCurrency:    w.SellingCurrency,
		ServiceDescription: w.ServiceDescription,
		Transfer:           w.Transfer,
		VehicleRental:      w.VehicleRental,
		Tour:               w.Tour,
		Guide:              w.Guide,
		Restaurant:         w.Restaurant,
		EntranceFee:        w.EntranceFee,
		Extra:              w.Extra,
	}
	if w.Hotel != nil {
		checkIn, err := parseDate("checkInDate", w.Hotel.CheckInDate)
		if err != nil {
			return domain.Service{}, err
		}
		checkOut, err := parseDate("checkOutDate", w.Hotel.CheckOutDate)
		if err != nil {
			return domain.Service{}, err
		}
		s.Hotel = &domain.HotelDetails{
			HotelID:      w.Hotel.HotelID,
			RoomType:     w.Hotel.RoomType,
			BoardBasis:   w.Hotel.BoardBasis,
			NumRooms:     w.Hotel.NumRooms,
			CheckInDate:  checkIn,
			CheckOutDate: checkOut,
		}
	}
	return s, nil
}

func encodePricing(p domain.PricingSummary) *wirePricing {
	return &wirePricing{
		TotalServicesCost:    p.TotalServicesCost,
		MarkupPercentage:     p.MarkupPercentage,
		ProfitAmount:         p.ProfitAmount,
		TotalSellingPrice:    p.TotalSellingPrice,
		TaxRateID:            p.TaxRateID,
		TaxRate:              p.TaxRate,
		TaxAmount:            p.TaxAmount,
		TotalWithTax:         p.TotalWithTax,
		PromoCodeID:          p.PromoCodeID,
		CampaignID:           p.CampaignID,
		DiscountAmount:       p.DiscountAmount,
		FinalTotal:           p.FinalTotal,
		BaseCurrency:         p.BaseCurrency,
		SellingCurrency:      p.SellingCurrency,
		BookingSource:        string(p.BookingSource),
		CancellationPolicyID: p.CancellationPolicyID,
		InternalNotes:        p.InternalNotes,
	}
}

func decodePricing(w wirePricing) domain.PricingSummary {
	return domain.PricingSummary{
		TotalServicesCost:    w.TotalServicesCost,
		MarkupPercentage:     w.MarkupPercentage,
		ProfitAmount:         w.ProfitAmount,
		TotalSellingPrice:    w.TotalSellingPrice,
		TaxRateID:            w.TaxRateID,
		TaxRate:              w.TaxRate,
		TaxAmount:            w.TaxAmount,
		TotalWithTax:         w.TotalWithTax,
		PromoCodeID:          w.PromoCodeID,
		CampaignID:           w.CampaignID,
		DiscountAmount:       w.DiscountAmount,
		FinalTotal:           w.FinalTotal,
		BaseCurrency:         w.BaseCurrency,
		SellingCurrency:      w.SellingCurrency,
		BookingSource:        domain.BookingSource(w.BookingSource),
		CancellationPolicyID: w.CancellationPolicyID,
		InternalNotes:        w.InternalNotes,
	}
}

// parseDate parses a date-only wire field.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode %s %q: %w", field, value, err)
	}
	return t, nil
}
