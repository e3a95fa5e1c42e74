// Package persist is the wizard's persistence adapter: it serializes the
// wizard state to a durable key/value store, debouncing writes so rapid
// mutation bursts cost one write, and rehydrates state on cold start.
// Storage failures are logged and swallowed; a session always keeps working
// in memory.
package persist

import "context"

// KV is the durable key/value interface the adapter writes through.
type KV interface {
	// Write stores value under key.
	Write(ctx context.Context, key, value string) error

	// Read returns the value for key; ok is false when the key is absent.
	Read(ctx context.Context, key string) (value string, ok bool, err error)

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// SessionKey returns the storage key for a wizard session.
func SessionKey(sessionID string) string {
	return "wizard:session:" + sessionID
}
