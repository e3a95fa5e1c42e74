package service

import "errors"

var (
	// ErrPromoCodeInactive is returned when a promo code exists but has been
	// disabled.
	ErrPromoCodeInactive = errors.New("promo code is not active")

	// ErrPromoCodeExpired is returned when a promo code is outside its
	// validity window.
	ErrPromoCodeExpired = errors.New("promo code is expired")

	// ErrIncompleteWizard is returned when submission is attempted with a
	// missing client, trip details or passenger list.
	ErrIncompleteWizard = errors.New("wizard is missing required steps")

	// ErrAlreadySubmitting is returned when a submission is requested while
	// one is already in flight for the session.
	ErrAlreadySubmitting = errors.New("submission already in progress")
)
