package validation

import (
	"fmt"

	"tourdesk/internal/domain"
)

// ValidateService checks the shared base of a service plus its variant
// payload. Exactly one payload must be set and it must match Kind.
func ValidateService(s domain.Service) Result {
	var r Result

	known := false
	for _, k := range domain.ServiceKinds {
		if s.Kind == k {
			known = true
			break
		}
	}
	if !known {
		return r.add("serviceType", "unknown service type")
	}

	if s.ServiceDate.IsZero() {
		r = r.add("serviceDate", "service date is required")
	}
	if s.Quantity < 1 {
		r = r.add("quantity", "quantity must be at least 1")
	}

	if s.CostAmount.IsNegative() {
		r = r.add("costAmount", "cost amount cannot be negative")
	}
	if !isCurrencyCode(s.CostCurrency) {
		r = r.add("costCurrency", "cost currency must be a 3-letter code")
	}
	if !s.ExchangeRate.IsPositive() {
		r = r.add("exchangeRate", "exchange rate must be positive")
	}
	if s.CostInBaseCurrency.IsNegative() {
		r = r.add("costInBaseCurrency", "cost in base currency cannot be negative")
	}
	// The base-currency cost is the service's own conversion; it must agree
	// with the declared rate.
	if !s.CostAmount.IsNegative() && s.ExchangeRate.IsPositive() &&
		!s.CostInBaseCurrency.Equal(s.CostAmount.Mul(s.ExchangeRate)) {
		r = r.add("costInBaseCurrency", "cost in base currency must equal cost amount times exchange rate")
	}
	if s.SellingPrice.IsNegative() {
		r = r.add("sellingPrice", "selling price cannot be negative")
	}
	if !isCurrencyCode(s.SellingCurrency) {
		r = r.add("sellingCurrency", "selling currency must be a 3-letter code")
	}
	if s.ServiceDescription == "" {
		r = r.add("serviceDescription", "service description is required")
	}

	if _, ok := s.Detail(); !ok {
		return r.add("serviceType", fmt.Sprintf("%s service is missing its %s details", s.Kind, s.Kind))
	}

	switch s.Kind {
	case domain.ServiceKindHotel:
		r = append(r, validateHotel(*s.Hotel)...)
	case domain.ServiceKindTransfer:
		r = append(r, validateTransfer(*s.Transfer)...)
	case domain.ServiceKindVehicleRental:
		r = append(r, validateVehicleRental(*s.VehicleRental)...)
	case domain.ServiceKindTour:
		r = append(r, validateTour(*s.Tour)...)
	case domain.ServiceKindGuide:
		r = append(r, validateGuide(*s.Guide)...)
	case domain.ServiceKindRestaurant:
		r = append(r, validateRestaurant(*s.Restaurant)...)
	case domain.ServiceKindEntranceFee:
		r = append(r, validateEntranceFee(*s.EntranceFee)...)
	case domain.ServiceKindExtra:
		r = append(r, validateExtra(*s.Extra)...)
	}

	return r
}

// ValidateServiceList checks every service in the list. Services are
// optional, so an empty list is valid.
func ValidateServiceList(services []domain.Service) Result {
	var r Result
	for i, s := range services {
		for _, fe := range ValidateService(s) {
			r = r.add(fmt.Sprintf("services[%d].%s", i, fe.Field), fe.Message)
		}
	}
	return r
}

func validateHotel(d domain.HotelDetails) Result {
	var r Result
	if d.HotelID <= 0 {
		r = r.add("hotelId", "a hotel must be selected")
	}
	if d.RoomType == "" {
		r = r.add("roomType", "room type is required")
	}
	if d.NumRooms < 1 {
		r = r.add("numRooms", "at least one room is required")
	}
	if d.CheckInDate.IsZero() {
		r = r.add("checkInDate", "check-in date is required")
	}
	if d.CheckOutDate.IsZero() {
		r = r.add("checkOutDate", "check-out date is required")
	} else if !d.CheckInDate.IsZero() && !d.CheckOutDate.After(d.CheckInDate) {
		r = r.add("checkOutDate", "check-out date must be after the check-in date")
	}
	return r
}

func validateTransfer(d domain.TransferDetails) Result {
	var r Result
	switch d.TransferType {
	case "ARRIVAL", "DEPARTURE", "INTERCITY":
	default:
		r = r.add("transferType", "transfer type must be ARRIVAL, DEPARTURE or INTERCITY")
	}
	if d.PickupLocation == "" {
		r = r.add("pickupLocation", "pickup location is required")
	}
	if d.DropoffLocation == "" {
		r = r.add("dropoffLocation", "dropoff location is required")
	}
	if d.VehicleType == "" {
		r = r.add("vehicleType", "vehicle type is required")
	}
	return r
}

func validateVehicleRental(d domain.VehicleRentalDetails) Result {
	var r Result
	if d.VehicleType == "" {
		r = r.add("vehicleType", "vehicle type is required")
	}
	if d.PickupLocation == "" {
		r = r.add("pickupLocation", "pickup location is required")
	}
	if d.RentalDays < 1 {
		r = r.add("rentalDays", "rental must be at least one day")
	}
	return r
}

func validateTour(d domain.TourDetails) Result {
	var r Result
	if d.TourName == "" {
		r = r.add("tourName", "tour name is required")
	}
	return r
}

func validateGuide(d domain.GuideDetails) Result {
	var r Result
	if d.GuideID <= 0 {
		r = r.add("guideId", "a guide must be selected")
	}
	if d.Language == "" {
		r = r.add("language", "guide language is required")
	}
	return r
}

func validateRestaurant(d domain.RestaurantDetails) Result {
	var r Result
	if d.RestaurantID <= 0 {
		r = r.add("restaurantId", "a restaurant must be selected")
	}
	switch d.MealType {
	case "BREAKFAST", "LUNCH", "DINNER":
	default:
		r = r.add("mealType", "meal type must be BREAKFAST, LUNCH or DINNER")
	}
	return r
}

func validateEntranceFee(d domain.EntranceFeeDetails) Result {
	var r Result
	if d.SiteName == "" {
		r = r.add("siteName", "site name is required")
	}
	return r
}

func validateExtra(d domain.ExtraDetails) Result {
	var r Result
	if d.ExpenseType == "" {
		r = r.add("expenseType", "expense type is required")
	}
	return r
}
