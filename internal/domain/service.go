package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceKind discriminates the closed set of bookable service variants.
type ServiceKind string

const (
	ServiceKindHotel         ServiceKind = "hotel"
	ServiceKindTransfer      ServiceKind = "transfer"
	ServiceKindVehicleRental ServiceKind = "vehicle_rental"
	ServiceKindTour          ServiceKind = "tour"
	ServiceKindGuide         ServiceKind = "guide"
	ServiceKindRestaurant    ServiceKind = "restaurant"
	ServiceKindEntranceFee   ServiceKind = "entrance_fee"
	ServiceKindExtra         ServiceKind = "extra"
)

// ServiceKinds lists every valid kind, in catalog order.
var ServiceKinds = []ServiceKind{
	ServiceKindHotel,
	ServiceKindTransfer,
	ServiceKindVehicleRental,
	ServiceKindTour,
	ServiceKindGuide,
	ServiceKindRestaurant,
	ServiceKindEntranceFee,
	ServiceKindExtra,
}

// Service is a tagged union over the eight service variants. Kind selects
// which detail pointer is populated; exactly one must be non-nil and it must
// match Kind. All costs convert into the booking's base currency through the
// service's own ExchangeRate.
type Service struct {
	Kind ServiceKind

	ServiceDate        time.Time
	Quantity           int
	CostAmount         decimal.Decimal
	CostCurrency       string
	ExchangeRate       decimal.Decimal // CostCurrency -> base currency
	CostInBaseCurrency decimal.Decimal
	SellingPrice       decimal.Decimal
	SellingCurrency    string
	ServiceDescription string

	Hotel         *HotelDetails
	Transfer      *TransferDetails
	VehicleRental *VehicleRentalDetails
	Tour          *TourDetails
	Guide         *GuideDetails
	Restaurant    *RestaurantDetails
	EntranceFee   *EntranceFeeDetails
	Extra         *ExtraDetails
}

// HotelDetails is the hotel variant payload.
type HotelDetails struct {
	HotelID      int64
	RoomType     string
	BoardBasis   string
	NumRooms     int
	CheckInDate  time.Time
	CheckOutDate time.Time // strictly after CheckInDate
}

// TransferDetails is the transfer variant payload.
type TransferDetails struct {
	TransferType    string // ARRIVAL, DEPARTURE, INTERCITY
	PickupLocation  string
	DropoffLocation string
	VehicleType     string
}

// VehicleRentalDetails is the vehicle_rental variant payload.
type VehicleRentalDetails struct {
	VehicleType     string
	PickupLocation  string
	DropoffLocation string
	RentalDays      int
}

// TourDetails is the tour variant payload.
type TourDetails struct {
	TourID    int64
	TourName  string
	Itinerary string
}

// GuideDetails is the guide variant payload.
type GuideDetails struct {
	GuideID  int64
	Language string
}

// RestaurantDetails is the restaurant variant payload.
type RestaurantDetails struct {
	RestaurantID int64
	MealType     string // BREAKFAST, LUNCH, DINNER
}

// EntranceFeeDetails is the entrance_fee variant payload.
type EntranceFeeDetails struct {
	SiteName    string
	TicketClass string
}

// ExtraDetails is the extra-expense variant payload.
type ExtraDetails struct {
	ExpenseType string
	Notes       string
}

// Detail returns the populated variant payload, or nil if the service is
// malformed. The second return reports whether the payload matches Kind.
func (s Service) Detail() (any, bool) {
	switch s.Kind {
	case ServiceKindHotel:
		return s.Hotel, s.Hotel != nil
	case ServiceKindTransfer:
		return s.Transfer, s.Transfer != nil
	case ServiceKindVehicleRental:
		return s.VehicleRental, s.VehicleRental != nil
	case ServiceKindTour:
		return s.Tour, s.Tour != nil
	case ServiceKindGuide:
		return s.Guide, s.Guide != nil
	case ServiceKindRestaurant:
		return s.Restaurant, s.Restaurant != nil
	case ServiceKindEntranceFee:
		return s.EntranceFee, s.EntranceFee != nil
	case ServiceKindExtra:
		return s.Extra, s.Extra != nil
	}
	return nil, false
}
