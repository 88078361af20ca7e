package transform

import "sync"

// Tracker is the external-id↔local-entity-id correspondence used to support
// idempotent re-import. Persistence lives with the host's migration-tracking
// collaborator; the core only consults this interface.
type Tracker interface {
	// LocalID returns the local entity id previously imported for the
	// remote item.
	LocalID(remoteItemID string) (string, bool)

	// SetLocalID records the correspondence after a successful import.
	SetLocalID(remoteItemID, localID string)
}

// MemoryTracker is a map-backed Tracker for tests and one-shot CLI runs.
type MemoryTracker struct {
	mu  sync.RWMutex
	ids map[string]string
}

var _ Tracker = (*MemoryTracker)(nil)

// NewMemoryTracker creates an empty tracker.
func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{ids: make(map[string]string)}
}

func (t *MemoryTracker) LocalID(remoteItemID string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.ids[remoteItemID]
	return id, ok
}

func (t *MemoryTracker) SetLocalID(remoteItemID, localID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ids[remoteItemID] = localID
}
