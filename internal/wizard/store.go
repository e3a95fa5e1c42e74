// Package wizard owns the multi-step booking wizard: the state store, the
// step orchestrator and the session manager. The store is the single source
// of truth for one wizard session; every mutation runs to completion and
// publishes a fresh immutable snapshot.
//
// The store performs no field validation. Callers run the validation package
// over a candidate record first and only commit values that passed; the store
// enforces structural integrity only (index bounds, step range, client
// immutability).
package wizard

import (
	"sync"

	"tourdesk/internal/domain"
)

// Saver receives snapshots for durable storage. Save must be fire-and-forget
// (the adapter debounces writes internally), Flush writes any pending
// snapshot synchronously, and Clear removes the durable snapshot.
type Saver interface {
	Save(state domain.WizardState)
	Flush()
	Clear()
}

// Store holds one session's wizard state. All mutators serialize on an
// internal mutex and either fully apply or leave the state untouched.
type Store struct {
	mu    sync.Mutex
	state domain.WizardState
	saver Saver // nil means in-memory only
}

// NewStore creates a store with empty state.
func NewStore(saver Saver) *Store {
	return &Store{state: domain.NewWizardState(), saver: saver}
}

// NewStoreFrom creates a store seeded with a previously persisted state.
func NewStoreFrom(state domain.WizardState, saver Saver) *Store {
	return &Store{state: state.Clone(), saver: saver}
}

// State returns a snapshot of the current state.
func (s *Store) State() domain.WizardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// commit applies mutate to a copy of the state, swaps it in if mutate
// succeeded, and schedules a durable save. On error nothing changes.
//
// The save is delivered while the lock is held so snapshots reach the saver
// in commit order, and so ResetWizard can never clear storage between a
// commit and its save.
func (s *Store) commit(mutate func(*domain.WizardState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Clone()
	if err := mutate(&next); err != nil {
		return err
	}
	s.apply(next)
	return nil
}

// SetClient records the step 1 selection. Re-applying the same selection is
// a no-op; changing an existing selection requires ClearClient first.
func (s *Store) SetClient(c domain.ClientSelection) error {
	return s.commit(func(st *domain.WizardState) error {
		if st.Client != nil && *st.Client != c {
			return ErrClientAlreadySet
		}
		st.Client = &c
		return nil
	})
}

// ClearClient removes the client selection.
func (s *Store) ClearClient() error {
	return s.commit(func(st *domain.WizardState) error {
		st.Client = nil
		return nil
	})
}

// SetTripDetails replaces the trip details.
func (s *Store) SetTripDetails(t domain.TripDetails) error {
	return s.commit(func(st *domain.WizardState) error {
		st.Trip = &t
		return nil
	})
}

// UpdateTripDetails applies a partial update to existing trip details.
func (s *Store) UpdateTripDetails(apply func(*domain.TripDetails)) error {
	return s.commit(func(st *domain.WizardState) error {
		if st.Trip == nil {
			return ErrNoTripDetails
		}
		apply(st.Trip)
		return nil
	})
}

// ClearTripDetails removes the trip details.
func (s *Store) ClearTripDetails() error {
	return s.commit(func(st *domain.WizardState) error {
		st.Trip = nil
		return nil
	})
}

// SetPassengers replaces the whole passenger list.
func (s *Store) SetPassengers(passengers []domain.Passenger) error {
	return s.commit(func(st *domain.WizardState) error {
		st.Passengers = append([]domain.Passenger(nil), passengers...)
		return nil
	})
}

// AddPassenger appends a passenger to the list.
func (s *Store) AddPassenger(p domain.Passenger) error {
	return s.commit(func(st *domain.WizardState) error {
		st.Passengers = append(st.Passengers, p)
		return nil
	})
}

// UpdatePassenger replaces the passenger at index.
func (s *Store) UpdatePassenger(index int, p domain.Passenger) error {
	return s.commit(func(st *domain.WizardState) error {
		if index < 0 || index >= len(st.Passengers) {
			return ErrIndexOutOfRange
		}
		st.Passengers[index] = p
		return nil
	})
}

// RemovePassenger deletes the passenger at index, preserving order.
func (s *Store) RemovePassenger(index int) error {
	return s.commit(func(st *domain.WizardState) error {
		if index < 0 || index >= len(st.Passengers) {
			return ErrIndexOutOfRange
		}
		st.Passengers = append(st.Passengers[:index], st.Passengers[index+1:]...)
		return nil
	})
}

// ClearPassengers removes all passengers.
func (s *Store) ClearPassengers() error {
	return s.commit(func(st *domain.WizardState) error {
		st.Passengers = nil
		return nil
	})
}

// SetServices replaces the whole service list.
func (s *Store) SetServices(services []domain.Service) error {
	return s.commit(func(st *domain.WizardState) error {
		st.Services = append([]domain.Service(nil), services...)
		return nil
	})
}

// AddService appends a service to the list.
func (s *Store) AddService(svc domain.Service) error {
	return s.commit(func(st *domain.WizardState) error {
		st.Services = append(st.Services, svc)
		return nil
	})
}

// UpdateService replaces the service at index.
func (s *Store) UpdateService(index int, svc domain.Service) error {
	return s.commit(func(st *domain.WizardState) error {
		if index < 0 || index >= len(st.Services) {
			return ErrIndexOutOfRange
		}
		st.Services[index] = svc
		return nil
	})
}

// RemoveService deletes the service at index, preserving order.
func (s *Store) RemoveService(index int) error {
	return s.commit(func(st *domain.WizardState) error {
		if index < 0 || index >= len(st.Services) {
			return ErrIndexOutOfRange
		}
		st.Services = append(st.Services[:index], st.Services[index+1:]...)
		return nil
	})
}

// ClearServices removes all services.
func (s *Store) ClearServices() error {
	return s.commit(func(st *domain.WizardState) error {
		st.Services = nil
		return nil
	})
}

// SetPricing replaces the pricing summary.
func (s *Store) SetPricing(p domain.PricingSummary) error {
	return s.commit(func(st *domain.WizardState) error {
		st.Pricing = &p
		return nil
	})
}

// UpdatePricing applies a partial update to an existing pricing summary.
func (s *Store) UpdatePricing(apply func(*domain.PricingSummary)) error {
	return s.commit(func(st *domain.WizardState) error {
		if st.Pricing == nil {
			return ErrNoPricing
		}
		apply(st.Pricing)
		return nil
	})
}

// ClearPricing removes the pricing summary.
func (s *Store) ClearPricing() error {
	return s.commit(func(st *domain.WizardState) error {
		st.Pricing = nil
		return nil
	})
}

// SetCurrentStep moves the wizard to step, which must be within 1..5.
// Step gating is the orchestrator's concern (GoToStep); this is the raw move.
func (s *Store) SetCurrentStep(step domain.Step) error {
	return s.commit(func(st *domain.WizardState) error {
		if step < domain.FirstStep || step > domain.LastStep {
			return ErrStepOutOfRange
		}
		st.CurrentStep = step
		return nil
	})
}

// MarkStepComplete records step as completed.
func (s *Store) MarkStepComplete(step domain.Step) error {
	return s.commit(func(st *domain.WizardState) error {
		if step < domain.FirstStep || step > domain.LastStep {
			return ErrStepOutOfRange
		}
		st.CompletedSteps[step] = true
		return nil
	})
}

// SetSubmitting flags the wizard as mid-submission so the UI can disable
// further edits while the sink runs.
func (s *Store) SetSubmitting(submitting bool) error {
	return s.commit(func(st *domain.WizardState) error {
		st.IsSubmitting = submitting
		return nil
	})
}

// ResetWizard clears the in-memory state and the durable snapshot. The two
// are cleared under the store's lock, so no observer can see one cleared and
// the other not. Any pending debounced write is flushed first so the adapter
// has nothing in flight when storage is removed.
func (s *Store) ResetWizard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.NewWizardState()
	if s.saver != nil {
		s.saver.Flush()
		s.saver.Clear()
	}
}
