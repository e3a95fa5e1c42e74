package wizard

import "errors"

var (
	// ErrIndexOutOfRange is returned when a passenger or service index does
	// not exist. The store's state is left unchanged.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrStepOutOfRange is returned when a step outside 1..5 is requested.
	ErrStepOutOfRange = errors.New("step out of range")

	// ErrClientAlreadySet is returned when trying to overwrite the client
	// selection with a different client. The selection must be cleared first.
	ErrClientAlreadySet = errors.New("client already selected")

	// ErrSessionNotFound is returned when no session exists for the given ID,
	// in memory or in durable storage.
	ErrSessionNotFound = errors.New("wizard session not found")

	// ErrNoTripDetails is returned when a partial update targets trip details
	// that were never set.
	ErrNoTripDetails = errors.New("trip details not set")

	// ErrNoPricing is returned when a partial update targets a pricing
	// summary that was never set.
	ErrNoPricing = errors.New("pricing summary not set")

	// ErrStepIncomplete is returned when advancing is requested while the
	// current step's requirements are unmet.
	ErrStepIncomplete = errors.New("current step requirements not met")
)
