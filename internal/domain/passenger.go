package domain

import "time"

// PassengerType is the fare band a passenger falls into.
type PassengerType string

const (
	PassengerTypeAdult  PassengerType = "Adult"  // age >= 18
	PassengerTypeChild  PassengerType = "Child"  // age 2..17
	PassengerTypeInfant PassengerType = "Infant" // age < 2
)

// PassengerTitle is the honorific used on travel documents.
type PassengerTitle string

const (
	TitleMr   PassengerTitle = "Mr"
	TitleMrs  PassengerTitle = "Mrs"
	TitleMs   PassengerTitle = "Ms"
	TitleMstr PassengerTitle = "Mstr"
	TitleMiss PassengerTitle = "Miss"
)

// Gender as recorded on the passport.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Passenger is one traveller on the booking. Exactly one passenger in the
// list must be the lead passenger, who carries the booking's contact details.
type Passenger struct {
	Title       PassengerTitle
	FirstName   string
	LastName    string
	Gender      Gender
	Nationality string
	DateOfBirth time.Time
	Age         int // derived from DateOfBirth at entry time

	PassengerType PassengerType

	PassportNumber       string
	PassportExpiryDate   time.Time
	PassportIssueCountry string

	IsLeadPassenger bool
	Email           string // required iff IsLeadPassenger
	Phone           string // required iff IsLeadPassenger

	DietaryRequirements string
	MedicalConditions   string
	AccessibilityNeeds  string
}

// AgeAt returns the passenger's age in whole years at the given date.
func (p Passenger) AgeAt(at time.Time) int {
	years := at.Year() - p.DateOfBirth.Year()
	anniversary := p.DateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	return years
}
