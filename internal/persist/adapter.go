package persist

import (
	"context"
	"log"
	"sync"
	"time"

	"tourdesk/internal/domain"
)

// DefaultDebounce is the autosave coalescing window.
const DefaultDebounce = 2 * time.Second

// Adapter persists one session's wizard state. Save is debounced with
// cancel-and-reschedule semantics: every call replaces the pending snapshot
// and restarts the timer, so the write that eventually fires always carries
// the latest state. Flush runs the pending write immediately.
type Adapter struct {
	kv       KV
	key      string
	debounce time.Duration

	mu      sync.Mutex
	pending *domain.WizardState
	timer   *time.Timer
}

// NewAdapter creates an adapter for the given session key. A non-positive
// debounce falls back to DefaultDebounce.
func NewAdapter(kv KV, key string, debounce time.Duration) *Adapter {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Adapter{kv: kv, key: key, debounce: debounce}
}

// Save schedules state for durable storage. It never blocks on I/O and never
// fails: a snapshot that cannot be written is logged and dropped, and the
// session continues in memory.
func (a *Adapter) Save(state domain.WizardState) {
	state.LastSaved = time.Now()

	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending = &state
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.debounce, a.fire)
}

// fire writes the pending snapshot when the debounce window elapses.
func (a *Adapter) fire() {
	a.mu.Lock()
	state := a.pending
	a.pending = nil
	a.timer = nil
	a.mu.Unlock()

	if state != nil {
		a.write(*state)
	}
}

// Flush writes any pending snapshot synchronously and cancels the timer.
func (a *Adapter) Flush() {
	a.mu.Lock()
	state := a.pending
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()

	if state != nil {
		a.write(*state)
	}
}

// Clear drops any pending write and removes the durable snapshot.
func (a *Adapter) Clear() {
	a.mu.Lock()
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()

	if err := a.kv.Remove(context.Background(), a.key); err != nil {
		log.Printf("wizard autosave: remove %s: %v", a.key, err)
	}
}

// Load reads the durable snapshot. It returns ok=false when no snapshot
// exists, when the store is unreachable, or when any field fails to decode;
// a corrupt snapshot is discarded whole rather than returned half-typed.
func (a *Adapter) Load(ctx context.Context) (domain.WizardState, bool) {
	data, ok, err := a.kv.Read(ctx, a.key)
	if err != nil {
		log.Printf("wizard autosave: read %s: %v", a.key, err)
		return domain.WizardState{}, false
	}
	if !ok {
		return domain.WizardState{}, false
	}

	state, err := Decode(data)
	if err != nil {
		log.Printf("wizard autosave: discarding corrupt snapshot %s: %v", a.key, err)
		return domain.WizardState{}, false
	}
	return state, true
}

// write performs the actual KV write. Errors are logged, never surfaced.
func (a *Adapter) write(state domain.WizardState) {
	data, err := Encode(state)
	if err != nil {
		log.Printf("wizard autosave: encode %s: %v", a.key, err)
		return
	}
	if err := a.kv.Write(context.Background(), a.key, data); err != nil {
		log.Printf("wizard autosave: write %s: %v", a.key, err)
	}
}
