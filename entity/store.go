package entity

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no entity exists for the id.
var ErrNotFound = errors.New("entity not found")

// Store is the local persistence boundary. Implementations are expected to
// provide at-least-once creation safety for concurrent find-or-create (the
// reconciler relies on the host's transaction/locking primitives, not its
// own).
type Store interface {
	// Create returns a new unsaved entity of the given type and bundle.
	Create(entityType, bundle string) Entity

	// Load fetches an entity by type and id.
	Load(ctx context.Context, entityType, id string) (Entity, error)

	// Save persists the entity, assigning an id on first save.
	Save(ctx context.Context, e Entity) error

	// Delete removes the entity and all its translations.
	Delete(ctx context.Context, entityType, id string) error

	// LoadByProperties returns entities whose fields match all given
	// property values, in stable creation order (oldest first). For
	// multi-valued fields a property matches when the stored list
	// contains the value.
	LoadByProperties(ctx context.Context, entityType string, props map[string]any) ([]Entity, error)
}
