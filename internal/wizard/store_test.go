package wizard

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tourdesk/internal/domain"
)

// ──────────────────────────────────────────────
// FAKE SAVER
// ──────────────────────────────────────────────

// fakeSaver records every snapshot handed to it.
type fakeSaver struct {
	mu         sync.Mutex
	saves      []domain.WizardState
	flushCount int
	clearCount int
}

func (f *fakeSaver) Save(state domain.WizardState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves = append(f.saves, state)
}

func (f *fakeSaver) Flush() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushCount++
}

func (f *fakeSaver) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearCount++
}

func (f *fakeSaver) SaveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakeSaver) LastSave() domain.WizardState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves[len(f.saves)-1]
}

func testClient() domain.ClientSelection {
	return domain.ClientSelection{ClientType: domain.ClientTypeB2C, ClientID: 42}
}

func testPassenger(first string, lead bool) domain.Passenger {
	return domain.Passenger{
		Title:           domain.TitleMs,
		FirstName:       first,
		LastName:        "Traveler",
		IsLeadPassenger: lead,
	}
}

func testService(desc string) domain.Service {
	return domain.Service{
		Kind:               domain.ServiceKindExtra,
		ServiceDate:        time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC),
		Quantity:           1,
		CostAmount:         decimal.NewFromInt(10),
		CostCurrency:       "USD",
		ExchangeRate:       decimal.NewFromInt(1),
		CostInBaseCurrency: decimal.NewFromInt(10),
		SellingPrice:       decimal.NewFromInt(12),
		SellingCurrency:    "USD",
		ServiceDescription: desc,
		Extra:              &domain.ExtraDetails{ExpenseType: "misc"},
	}
}

// ──────────────────────────────────────────────
// SNAPSHOT SEMANTICS
// ──────────────────────────────────────────────

func TestStore_InitialState(t *testing.T) {
	t.Parallel()

	s := NewStore(nil)
	state := s.State()

	if state.CurrentStep != domain.StepClientSelect {
		t.Errorf("expected initial step %d, got %d", domain.StepClientSelect, state.CurrentStep)
	}
	if !state.IsDraft {
		t.Error("new state should be a draft")
	}
	if state.Client != nil || state.Trip != nil || state.Pricing != nil {
		t.Error("new state should carry no records")
	}
	if len(state.Passengers) != 0 || len(state.Services) != 0 {
		t.Error("new state should carry no lists")
	}
}

func TestStore_SnapshotsAreImmutable(t *testing.T) {
	t.Parallel()

	s := NewStore(nil)
	if err := s.AddPassenger(testPassenger("Alex", true)); err != nil {
		t.Fatalf("AddPassenger: %v", err)
	}
	if err := s.SetTripDetails(domain.TripDetails{DestinationCityID: 7, ChildrenAges: []int{4}}); err != nil {
		t.Fatalf("SetTripDetails: %v", err)
	}

	snap := s.State()
	snap.Passengers[0].FirstName = "Mallory"
	snap.Trip.DestinationCityID = 999
	snap.Trip.ChildrenAges[0] = 17
	snap.CompletedSteps[domain.StepPricing] = true

	fresh := s.State()
	if fresh.Passengers[0].FirstName != "Alex" {
		t.Error("mutating a snapshot leaked into the store's passenger list")
	}
	if fresh.Trip.DestinationCityID != 7 {
		t.Error("mutating a snapshot leaked into the store's trip details")
	}
	if fresh.Trip.ChildrenAges[0] != 4 {
		t.Error("mutating a snapshot leaked into the store's children ages")
	}
	if fresh.CompletedSteps[domain.StepPricing] {
		t.Error("mutating a snapshot leaked into the store's completed steps")
	}
}

func TestStore_FailedMutationLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	saver := &fakeSaver{}
	s := NewStore(saver)
	if err := s.AddPassenger(testPassenger("Alex", true)); err != nil {
		t.Fatalf("AddPassenger: %v", err)
	}
	before := s.State()
	savesBefore := saver.SaveCount()

	if err := s.UpdatePassenger(5, testPassenger("Mallory", false)); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}

	after := s.State()
	if len(after.Passengers) != len(before.Passengers) || after.Passengers[0].FirstName != "Alex" {
		t.Error("failed mutation changed the state")
	}
	if saver.SaveCount() != savesBefore {
		t.Error("failed mutation should not schedule a save")
	}
}

// ──────────────────────────────────────────────
// CLIENT
// ──────────────────────────────────────────────

func TestStore_SetClient(t *testing.T) {
	t.Parallel()

	s := NewStore(nil)
	if err := s.SetClient(testClient()); err != nil {
		t.Fatalf("SetClient: %v", err)
	}

	state := s.State()
	if state.Client == nil || state.Client.ClientID != 42 {
		t.Fatal("client selection not recorded")
	}
}

func TestStore_SetClient_SameSelectionIsIdempotent(t *testing.T) {
	t.Parallel()

	s := NewStore(nil)
	if err := s.SetClient(testClient()); err != nil {
		t.Fatalf("first SetClient: %v", err)
	}
	if err := s.SetClient(testClient()); err != nil {
		t.Errorf("re-applying the same selection should succeed, got %v", err)
	}
}

func TestStore_SetClient_ChangeRequiresClear(t *testing.T) {
	t.Parallel()

	s := NewStore(nil)
	if err := s.SetClient(testClient()); err != nil {
		t.Fatalf("SetClient: %v", err)
	}

	other := domain.ClientSelection{ClientType: domain.ClientTypeB2B, ClientID: 7}
	if err := s.SetClient(other); !errors.Is(err, ErrClientAlreadySet) {
		t.Fatalf("expected ErrClientAlreadySet, got %v", err)
	}
	if s.State().Client.ClientID != 42 {
		t.Error("rejected change must not alter the stored selection")
	}

	if err := s.ClearClient(); err != nil {
		t.Fatalf("ClearClient: %v", err)
	}
	if err := s.SetClient(other); err != nil {
		t.Errorf("SetClient after clear should succeed, got %v", err)
	}
	if s.State().Client.ClientID != 7 {
		t.Error("new selection not recorded after clear")
	}
}

// ──────────────────────────────────────────────
// LIST MUTATORS
// ──────────────────────────────────────────────

func TestStore_PassengerList(t *testing.T) {
	t.Parallel()

	s := NewStore(nil)
	for _, name := range []string{"A", "B", "C"} {
		if err := s.AddPassenger(testPassenger(name, name == "A")); err != nil {
			t.Fatalf("AddPassenger(%s): %v", name, err)
		}
	}

	if err := s.UpdatePassenger(1, testPassenger("B2", false)); err != nil {
		t.Fatalf("UpdatePassenger: %v", err)
	}
	if got := s.State().Passengers[1].FirstName; got != "B2" {
		t.Errorf("expected passenger B2 at index 1, got %s", got)
	}

	// Removal preserves the order of the rest.
	if err := s.RemovePassenger(1); err != nil {
		t.Fatalf("RemovePassenger: %v", err)
	}
	state := s.State()
	if len(state.Passengers) != 2 {
		t.Fatalf("expected 2 passengers, got %d", len(state.Passengers))
	}
	if state.Passengers[0].FirstName != "A" || state.Passengers[1].FirstName != "C" {
		t.Errorf("removal broke order: %s, %s", state.Passengers[0].FirstName, state.Passengers[1].FirstName)
	}

	if err := s.ClearPassengers(); err != nil {
		t.Fatalf("ClearPassengers: %v", err)
	}
	if len(s.State().Passengers) != 0 {
		t.Error("expected empty passenger list after clear")
	}
}

func TestStore_ListIndexBounds(t *testing.T) {
	t.Parallel()

	s := NewStore(nil)
	if err := s.AddService(testService("one")); err != nil {
		t.Fatalf("AddService: %v", err)
	}

	for _, index := range []int{-1, 1, 10} {
		if err := s.UpdateService(index, testService("x")); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("UpdateService(%d): expected ErrIndexOutOfRange, got %v", index, err)
		}
		if err := s.RemoveService(index); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("RemoveService(%d): expected ErrIndexOutOfRange, got %v", index, err)
		}
		if err := s.UpdatePassenger(index, testPassenger("x", false)); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("UpdatePassenger(%d): expected ErrIndexOutOfRange, got %v", index, err)
		}
		if err := s.RemovePassenger(index); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("RemovePassenger(%d): expected ErrIndexOutOfRange, got %v", index, err)
		}
	}
}

func TestStore_SetListsCopyTheInput(t *testing.T) {
	t.Parallel()

	s := NewStore(nil)
	services := []domain.Service{testService("one"), testService("two")}
	if err := s.SetServices(services); err != nil {
		t.Fatalf("SetServices: %v", err)
	}

	services[0].ServiceDescription = "mutated"
	if got := s.State().Services[0].ServiceDescription; got != "one" {
		t.Errorf("store shares memory with the caller's slice: %s", got)
	}
}

// ──────────────────────────────────────────────
// STEPS, FLAGS, RESET
// ──────────────────────────────────────────────

func TestStore_SetCurrentStepBounds(t *testing.T) {
	t.Parallel()

	s := NewStore(nil)
	if err := s.SetCurrentStep(domain.StepServices); err != nil {
		t.Fatalf("SetCurrentStep: %v", err)
	}
	if got := s.State().CurrentStep; got != domain.StepServices {
		t.Errorf("expected step %d, got %d", domain.StepServices, got)
	}

	for _, step := range []domain.Step{0, 6, -3} {
		if err := s.SetCurrentStep(step); !errors.Is(err, ErrStepOutOfRange) {
			t.Errorf("SetCurrentStep(%d): expected ErrStepOutOfRange, got %v", step, err)
		}
	}
}

func TestStore_MarkStepComplete(t *testing.T) {
	t.Parallel()

	s := NewStore(nil)
	if err := s.MarkStepComplete(domain.StepClientSelect); err != nil {
		t.Fatalf("MarkStepComplete: %v", err)
	}
	if !s.State().CompletedSteps[domain.StepClientSelect] {
		t.Error("step 1 should be marked complete")
	}
	if err := s.MarkStepComplete(6); !errors.Is(err, ErrStepOutOfRange) {
		t.Errorf("expected ErrStepOutOfRange, got %v", err)
	}
}

func TestStore_SetSubmitting(t *testing.T) {
	t.Parallel()

	s := NewStore(nil)
	if err := s.SetSubmitting(true); err != nil {
		t.Fatalf("SetSubmitting: %v", err)
	}
	if !s.State().IsSubmitting {
		t.Error("IsSubmitting should be set")
	}
	if err := s.SetSubmitting(false); err != nil {
		t.Fatalf("SetSubmitting: %v", err)
	}
	if s.State().IsSubmitting {
		t.Error("IsSubmitting should be cleared")
	}
}

func TestStore_ResetWizard(t *testing.T) {
	t.Parallel()

	saver := &fakeSaver{}
	s := NewStore(saver)
	if err := s.SetClient(testClient()); err != nil {
		t.Fatalf("SetClient: %v", err)
	}
	if err := s.AddPassenger(testPassenger("Alex", true)); err != nil {
		t.Fatalf("AddPassenger: %v", err)
	}
	if err := s.MarkStepComplete(domain.StepClientSelect); err != nil {
		t.Fatalf("MarkStepComplete: %v", err)
	}

	s.ResetWizard()

	state := s.State()
	if state.Client != nil || len(state.Passengers) != 0 || len(state.CompletedSteps) != 0 {
		t.Error("reset should return the state to empty")
	}
	if state.CurrentStep != domain.FirstStep {
		t.Errorf("reset should return to step %d, got %d", domain.FirstStep, state.CurrentStep)
	}
	if saver.flushCount != 1 {
		t.Errorf("reset should flush pending writes once, got %d", saver.flushCount)
	}
	if saver.clearCount != 1 {
		t.Errorf("reset should clear durable storage once, got %d", saver.clearCount)
	}
}

func TestStore_EveryMutationSchedulesASave(t *testing.T) {
	t.Parallel()

	saver := &fakeSaver{}
	s := NewStore(saver)

	if err := s.SetClient(testClient()); err != nil {
		t.Fatalf("SetClient: %v", err)
	}
	if err := s.AddService(testService("one")); err != nil {
		t.Fatalf("AddService: %v", err)
	}
	if err := s.SetSubmitting(true); err != nil {
		t.Fatalf("SetSubmitting: %v", err)
	}

	if saver.SaveCount() != 3 {
		t.Fatalf("expected 3 saves, got %d", saver.SaveCount())
	}
	last := saver.LastSave()
	if !last.IsSubmitting || last.Client == nil || len(last.Services) != 1 {
		t.Error("saved snapshot should carry the full mutated state")
	}
}

func TestStore_ConcurrentMutations(t *testing.T) {
	t.Parallel()

	s := NewStore(&fakeSaver{})
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.AddPassenger(testPassenger("P", false))
			_ = s.State()
		}()
	}
	wg.Wait()

	if got := len(s.State().Passengers); got != 20 {
		t.Errorf("expected 20 passengers, got %d", got)
	}
}

// ──────────────────────────────────────────────
// SAVE DELIVERY ORDER
// ──────────────────────────────────────────────

// sequencedSaver extends fakeSaver with an event log and a gate that holds
// the first Save open until released, so a test can park a commit mid-delivery.
type sequencedSaver struct {
	fakeSaver
	events  []string
	entered chan struct{}
	gate    chan struct{}
	once    sync.Once
}

func (s *sequencedSaver) Save(state domain.WizardState) {
	s.once.Do(func() {
		close(s.entered)
		<-s.gate
	})
	s.fakeSaver.Save(state)
	s.record("save")
}

func (s *sequencedSaver) Flush() {
	s.fakeSaver.Flush()
	s.record("flush")
}

func (s *sequencedSaver) Clear() {
	s.fakeSaver.Clear()
	s.record("clear")
}

func (s *sequencedSaver) record(event string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *sequencedSaver) Events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...)
}

func TestStore_ResetWaitsForInFlightSave(t *testing.T) {
	t.Parallel()

	saver := &sequencedSaver{entered: make(chan struct{}), gate: make(chan struct{})}
	s := NewStore(saver)

	commitDone := make(chan struct{})
	go func() {
		defer close(commitDone)
		_ = s.AddPassenger(testPassenger("Nora", true))
	}()
	<-saver.entered

	resetDone := make(chan struct{})
	go func() {
		defer close(resetDone)
		s.ResetWizard()
	}()

	// The commit's save is still being delivered; reset must not get between
	// the commit and its save, or the cleared storage would be repopulated.
	select {
	case <-resetDone:
		t.Fatal("ResetWizard completed while a commit's save was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(saver.gate)
	<-commitDone
	<-resetDone

	want := []string{"save", "flush", "clear"}
	got := saver.Events()
	if len(got) != len(want) {
		t.Fatalf("expected events %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %q, want %q", i, got[i], want[i])
		}
	}
	if got := len(s.State().Passengers); got != 0 {
		t.Errorf("expected empty state after reset, got %d passengers", got)
	}
}

func TestStore_SavesDeliveredInCommitOrder(t *testing.T) {
	t.Parallel()

	saver := &fakeSaver{}
	s := NewStore(saver)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.AddPassenger(testPassenger("P", false))
		}()
	}
	wg.Wait()

	// Delivery happens under the store's lock, so the k-th snapshot the saver
	// sees must carry exactly k passengers.
	saver.mu.Lock()
	defer saver.mu.Unlock()
	for i, snap := range saver.saves {
		if len(snap.Passengers) != i+1 {
			t.Fatalf("save %d carries %d passengers, want %d", i, len(snap.Passengers), i+1)
		}
	}
}
