package domain

import "time"

// Step is one of the five wizard steps.
type Step int

const (
	StepClientSelect Step = 1
	StepTripDetails  Step = 2
	StepPassengers   Step = 3
	StepServices     Step = 4
	StepPricing      Step = 5

	FirstStep = StepClientSelect
	LastStep  = StepPricing
)

// WizardState is the full aggregate collected by the wizard. Values handed
// out by the store are snapshots: mutating one never affects the store's
// current state.
type WizardState struct {
	CurrentStep    Step
	CompletedSteps map[Step]bool

	Client     *ClientSelection
	Trip       *TripDetails
	Passengers []Passenger
	Services   []Service
	Pricing    *PricingSummary

	IsSubmitting bool
	IsDraft      bool
	LastSaved    time.Time
}

// NewWizardState returns the empty state a session starts from.
func NewWizardState() WizardState {
	return WizardState{
		CurrentStep:    FirstStep,
		CompletedSteps: make(map[Step]bool),
		IsDraft:        true,
	}
}

// Clone returns a deep copy of the state. Slices, maps and inner records are
// all copied so the clone shares no mutable memory with the receiver.
func (s WizardState) Clone() WizardState {
	out := s

	out.CompletedSteps = make(map[Step]bool, len(s.CompletedSteps))
	for step, done := range s.CompletedSteps {
		out.CompletedSteps[step] = done
	}

	if s.Client != nil {
		c := *s.Client
		out.Client = &c
	}
	if s.Trip != nil {
		t := *s.Trip
		t.ChildrenAges = append([]int(nil), s.Trip.ChildrenAges...)
		out.Trip = &t
	}
	if s.Passengers != nil {
		out.Passengers = append([]Passenger(nil), s.Passengers...)
	}
	if s.Services != nil {
		out.Services = make([]Service, len(s.Services))
		for i, svc := range s.Services {
			out.Services[i] = svc.clone()
		}
	}
	if s.Pricing != nil {
		p := *s.Pricing
		p.TaxRateID = cloneID(s.Pricing.TaxRateID)
		p.PromoCodeID = cloneID(s.Pricing.PromoCodeID)
		p.CampaignID = cloneID(s.Pricing.CampaignID)
		p.CancellationPolicyID = cloneID(s.Pricing.CancellationPolicyID)
		out.Pricing = &p
	}
	return out
}

// clone copies a service including its variant payload.
func (s Service) clone() Service {
	out := s
	if s.Hotel != nil {
		d := *s.Hotel
		out.Hotel = &d
	}
	if s.Transfer != nil {
		d := *s.Transfer
		out.Transfer = &d
	}
	if s.VehicleRental != nil {
		d := *s.VehicleRental
		out.VehicleRental = &d
	}
	if s.Tour != nil {
		d := *s.Tour
		out.Tour = &d
	}
	if s.Guide != nil {
		d := *s.Guide
		out.Guide = &d
	}
	if s.Restaurant != nil {
		d := *s.Restaurant
		out.Restaurant = &d
	}
	if s.EntranceFee != nil {
		d := *s.EntranceFee
		out.EntranceFee = &d
	}
	if s.Extra != nil {
		d := *s.Extra
		out.Extra = &d
	}
	return out
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
