package persist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tourdesk/internal/domain"
)

// ──────────────────────────────────────────────
// MEMORY KV
// ──────────────────────────────────────────────

// memoryKV is an in-memory KV with injectable failures.
type memoryKV struct {
	mu         sync.Mutex
	data       map[string]string
	writeCount int
	writeErr   error
	readErr    error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string]string)}
}

func (m *memoryKV) Write(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeCount++
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data[key] = value
	return nil
}

func (m *memoryKV) Read(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return "", false, m.readErr
	}
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *memoryKV) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memoryKV) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeCount
}

func (m *memoryKV) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	return value, ok
}

func (m *memoryKV) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// ──────────────────────────────────────────────
// DEBOUNCED AUTOSAVE
// ──────────────────────────────────────────────

const testDebounce = 20 * time.Millisecond

func stateWithClient(id int64) domain.WizardState {
	state := domain.NewWizardState()
	state.Client = &domain.ClientSelection{ClientType: domain.ClientTypeB2C, ClientID: id}
	return state
}

func TestAdapter_SaveIsDebounced(t *testing.T) {
	t.Parallel()

	kv := newMemoryKV()
	a := NewAdapter(kv, SessionKey("s1"), testDebounce)

	a.Save(stateWithClient(1))

	// Inside the window nothing has been written yet.
	if kv.WriteCount() != 0 {
		t.Fatalf("expected no writes inside the debounce window, got %d", kv.WriteCount())
	}

	time.Sleep(4 * testDebounce)
	if kv.WriteCount() != 1 {
		t.Fatalf("expected 1 write after the window, got %d", kv.WriteCount())
	}
}

func TestAdapter_RapidSavesCoalesceToLastWrite(t *testing.T) {
	t.Parallel()

	kv := newMemoryKV()
	a := NewAdapter(kv, SessionKey("s1"), testDebounce)

	for i := int64(1); i <= 5; i++ {
		a.Save(stateWithClient(i))
		time.Sleep(testDebounce / 4)
	}

	time.Sleep(4 * testDebounce)

	if kv.WriteCount() != 1 {
		t.Fatalf("expected rapid saves to coalesce into 1 write, got %d", kv.WriteCount())
	}

	data, ok := kv.Get(SessionKey("s1"))
	if !ok {
		t.Fatal("expected a stored snapshot")
	}
	state, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if state.Client == nil || state.Client.ClientID != 5 {
		t.Errorf("stored snapshot should carry the last save, got %+v", state.Client)
	}
}

func TestAdapter_FlushWritesImmediately(t *testing.T) {
	t.Parallel()

	kv := newMemoryKV()
	a := NewAdapter(kv, SessionKey("s1"), time.Hour) // window never elapses on its own

	a.Save(stateWithClient(7))
	a.Flush()

	if kv.WriteCount() != 1 {
		t.Fatalf("expected 1 write after flush, got %d", kv.WriteCount())
	}

	// Flush with nothing pending is a no-op.
	a.Flush()
	if kv.WriteCount() != 1 {
		t.Errorf("idle flush should not write, got %d writes", kv.WriteCount())
	}
}

func TestAdapter_SaveStampsLastSaved(t *testing.T) {
	t.Parallel()

	kv := newMemoryKV()
	a := NewAdapter(kv, SessionKey("s1"), time.Hour)

	before := time.Now()
	a.Save(stateWithClient(1))
	a.Flush()

	data, _ := kv.Get(SessionKey("s1"))
	state, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if state.LastSaved.Before(before) {
		t.Errorf("LastSaved = %v, should be stamped at save time", state.LastSaved)
	}
}

func TestAdapter_ClearDropsPendingAndStorage(t *testing.T) {
	t.Parallel()

	kv := newMemoryKV()
	a := NewAdapter(kv, SessionKey("s1"), testDebounce)

	a.Save(stateWithClient(1))
	a.Flush()
	a.Save(stateWithClient(2))
	a.Clear()

	time.Sleep(4 * testDebounce)

	if _, ok := kv.Get(SessionKey("s1")); ok {
		t.Error("expected durable snapshot to be removed")
	}
	// The pending save from before Clear must never land.
	if kv.WriteCount() != 1 {
		t.Errorf("expected only the flushed write, got %d", kv.WriteCount())
	}
}

func TestAdapter_WriteErrorsAreSwallowed(t *testing.T) {
	t.Parallel()

	kv := newMemoryKV()
	kv.writeErr = errors.New("store unavailable")
	a := NewAdapter(kv, SessionKey("s1"), time.Hour)

	// Neither call may panic or surface the error.
	a.Save(stateWithClient(1))
	a.Flush()

	if _, ok := kv.Get(SessionKey("s1")); ok {
		t.Error("failed write should store nothing")
	}
}

// ──────────────────────────────────────────────
// LOAD
// ──────────────────────────────────────────────

func TestAdapter_LoadRoundTrip(t *testing.T) {
	t.Parallel()

	kv := newMemoryKV()
	a := NewAdapter(kv, SessionKey("s1"), testDebounce)

	saved := fullState()
	a.Save(saved)
	a.Flush()

	got, ok := a.Load(context.Background())
	if !ok {
		t.Fatal("expected a snapshot")
	}
	if got.CurrentStep != saved.CurrentStep {
		t.Errorf("CurrentStep = %d, want %d", got.CurrentStep, saved.CurrentStep)
	}
	if got.Client == nil || got.Client.ClientID != saved.Client.ClientID {
		t.Error("client did not survive the storage round trip")
	}
	if len(got.Services) != len(saved.Services) {
		t.Errorf("expected %d services, got %d", len(saved.Services), len(got.Services))
	}
}

func TestAdapter_LoadMissingKey(t *testing.T) {
	t.Parallel()

	a := NewAdapter(newMemoryKV(), SessionKey("absent"), testDebounce)
	if _, ok := a.Load(context.Background()); ok {
		t.Error("expected ok=false for an absent snapshot")
	}
}

func TestAdapter_LoadDiscardsCorruptSnapshot(t *testing.T) {
	t.Parallel()

	kv := newMemoryKV()
	kv.Put(SessionKey("s1"), `{"currentStep":2,"tripDetails":{"travelStartDate":"not-a-date"}}`)

	a := NewAdapter(kv, SessionKey("s1"), testDebounce)
	if _, ok := a.Load(context.Background()); ok {
		t.Error("corrupt snapshot must be discarded whole, not partially loaded")
	}
}

func TestAdapter_LoadReadError(t *testing.T) {
	t.Parallel()

	kv := newMemoryKV()
	kv.readErr = errors.New("store unavailable")

	a := NewAdapter(kv, SessionKey("s1"), testDebounce)
	if _, ok := a.Load(context.Background()); ok {
		t.Error("expected ok=false when the store is unreachable")
	}
}
