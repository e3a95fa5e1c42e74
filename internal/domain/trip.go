package domain

import "time"

// TripType categorizes the purpose of the trip.
type TripType string

const (
	TripTypeLeisure    TripType = "LEISURE"
	TripTypeBusiness   TripType = "BUSINESS"
	TripTypeCultural   TripType = "CULTURAL"
	TripTypePilgrimage TripType = "PILGRIMAGE"
	TripTypeMICE       TripType = "MICE"
)

// BookingSource identifies the channel the booking came through.
type BookingSource string

const (
	BookingSourceDirect   BookingSource = "DIRECT"
	BookingSourceWebsite  BookingSource = "WEBSITE"
	BookingSourcePhone    BookingSource = "PHONE"
	BookingSourceReferral BookingSource = "REFERRAL"
	BookingSourceAgency   BookingSource = "PARTNER_AGENCY"
)

// TripDetails holds the step 2 data: travel window, destination, party
// composition and the always-required emergency contact.
type TripDetails struct {
	TravelStartDate   time.Time
	TravelEndDate     time.Time
	DestinationCityID int64
	NumAdults         int
	NumChildren       int
	ChildrenAges      []int  // one entry per child
	Currency          string // 3-letter code; the booking's base currency
	TripType          TripType
	BookingSource     BookingSource

	IsGroupBooking     bool
	GroupName          string // required iff IsGroupBooking
	GroupLeaderName    string // required iff IsGroupBooking
	GroupLeaderContact string // required iff IsGroupBooking

	EmergencyContactName         string
	EmergencyContactPhone        string
	EmergencyContactRelationship string

	SpecialRequests string
}
