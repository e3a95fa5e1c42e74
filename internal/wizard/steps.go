package wizard

import "tourdesk/internal/domain"

// Step orchestration: the transition policy over steps 1..5, built on top of
// the store. Forward/backward moves clamp to the step range; arbitrary jumps
// are gated on completed steps so the user can never land in a step whose
// prerequisites were skipped.

// NextStep advances one step, clamped at the last step, and returns the
// resulting current step.
func (s *Store) NextStep() domain.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentStep < domain.LastStep {
		next := s.state.Clone()
		next.CurrentStep++
		s.apply(next)
	}
	return s.state.CurrentStep
}

// PreviousStep moves one step back, clamped at the first step, and returns
// the resulting current step. Going backward is always allowed.
func (s *Store) PreviousStep() domain.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentStep > domain.FirstStep {
		next := s.state.Clone()
		next.CurrentStep--
		s.apply(next)
	}
	return s.state.CurrentStep
}

// GoToStep jumps to target if it is an already-completed step or the
// immediate next one. Any other target is a no-op; the return reports
// whether the step changed.
func (s *Store) GoToStep(target domain.Step) bool {
	if target < domain.FirstStep || target > domain.LastStep {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if target == s.state.CurrentStep {
		return false
	}
	if !s.state.CompletedSteps[target] && target != s.state.CurrentStep+1 {
		return false
	}
	next := s.state.Clone()
	next.CurrentStep = target
	s.apply(next)
	return true
}

// apply swaps in next and schedules a save. Callers must hold s.mu.
func (s *Store) apply(next domain.WizardState) {
	s.state = next
	if s.saver != nil {
		s.saver.Save(next.Clone())
	}
}

// CanAdvance reports whether the given state satisfies step's requirements.
// Step 4 has no requirement (services are optional) and step 5 is terminal.
func CanAdvance(state domain.WizardState, step domain.Step) bool {
	switch step {
	case domain.StepClientSelect:
		return state.Client != nil
	case domain.StepTripDetails:
		return state.Trip != nil
	case domain.StepPassengers:
		if len(state.Passengers) == 0 {
			return false
		}
		leads := 0
		for _, p := range state.Passengers {
			if p.IsLeadPassenger {
				leads++
			}
		}
		return leads == 1
	case domain.StepServices:
		return true
	case domain.StepPricing:
		return false // terminal; leaving step 5 is the submission sink's job
	}
	return false
}
