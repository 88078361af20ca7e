package transform

import (
	"context"
	"fmt"

	"github.com/lakeshore-digital/contentsync/entity"
	"github.com/lakeshore-digital/contentsync/mapping"
	"github.com/lakeshore-digital/contentsync/value"
)

// Pass carries per-item traversal state. A fresh Pass is created for every
// item import or export; it must not be shared between items.
type Pass struct {
	// processedRoots tracks which root reference fields have had their
	// delete-then-rebuild, keyed by the first path segment only so the
	// rebuild happens once per root field regardless of how many terminal
	// fields route through it.
	processedRoots map[string]bool

	// consumed tracks child slots already reported during an export,
	// keyed by child id + terminal field name.
	consumed map[string]bool
}

// NewPass creates empty traversal state for one item operation.
func NewPass() *Pass {
	return &Pass{
		processedRoots: make(map[string]bool),
		consumed:       make(map[string]bool),
	}
}

// LeafFunc is invoked once per terminal local field with the resolved
// terminal entity.
type LeafFunc func(target entity.Entity, fieldName string, field *entity.FieldDefinition) error

// Walker traverses chains of nested referenced entities described by a
// compound field path, creating, reusing, or deleting child entities to keep
// the local reference graph in sync with the remote structure.
type Walker struct {
	store    entity.Store
	registry *entity.Registry
}

// NewWalker creates a walker over the given store and schema registry.
func NewWalker(store entity.Store, registry *entity.Registry) *Walker {
	return &Walker{store: store, registry: registry}
}

// ApplyAtPath walks the path in the import/write direction and invokes leaf
// on the resolved terminal entity and field. On first visit to a root
// reference field within one pass, all currently-referenced child entities
// are deleted and the collection rebuilt: remote systems with repeatable
// nested groups periodically change composition, and stale children must
// not linger.
func (w *Walker) ApplyAtPath(ctx context.Context, e entity.Entity, path mapping.FieldPath, pass *Pass, leaf LeafFunc) error {
	return w.apply(ctx, e, path, pass, leaf, 0)
}

func (w *Walker) apply(ctx context.Context, e entity.Entity, path mapping.FieldPath, pass *Pass, leaf LeafFunc, depth int) error {
	if len(path) == 0 {
		return nil
	}

	segment := path.First()
	field, ok := w.registry.GetField(e.EntityType(), e.Bundle(), segment)
	if !ok {
		return configErr("", segment, "local field no longer exists", nil)
	}

	if len(path) == 1 {
		return leaf(e, segment, field)
	}

	if !field.IsReference() || field.RefEntityType == "" {
		return configErr("", segment, fmt.Sprintf("field is not a reference, cannot traverse %q", path.String()), nil)
	}

	refs := value.TextSlice(e.Get(segment))

	if depth == 0 && !pass.processedRoots[segment] {
		pass.processedRoots[segment] = true
		for _, id := range refs {
			if err := w.store.Delete(ctx, field.RefEntityType, id); err != nil {
				return fmt.Errorf("deleting stale child %s: %w", id, err)
			}
		}
		refs = nil
		e.Set(segment, []string{})
	}

	rest := path.Rest()

	// Reuse the first child in collection order whose terminal field is
	// still empty; siblings of the same repeatable group fill the same
	// child before a new one is created.
	for _, id := range refs {
		child, err := w.store.Load(ctx, field.RefEntityType, id)
		if err != nil {
			// Failed load is an absent branch, a fresh child covers it.
			continue
		}
		if child.Bundle() != field.RefBundle {
			continue
		}
		if w.terminalEmpty(ctx, child, rest) {
			if err := w.apply(ctx, child, rest, pass, leaf, depth+1); err != nil {
				return err
			}
			return w.store.Save(ctx, child)
		}
	}

	child := w.store.Create(field.RefEntityType, field.RefBundle)
	if err := w.apply(ctx, child, rest, pass, leaf, depth+1); err != nil {
		return err
	}
	if err := w.store.Save(ctx, child); err != nil {
		return fmt.Errorf("saving child of %q: %w", segment, err)
	}
	e.Set(segment, append(refs, child.ID()))
	return nil
}

// terminalEmpty checks whether the terminal field reached through rest is
// still unset on the child graph. Missing fields and unloadable branches
// count as empty.
func (w *Walker) terminalEmpty(ctx context.Context, e entity.Entity, path mapping.FieldPath) bool {
	if len(path) == 1 {
		return e.IsEmpty(path.First())
	}

	segment := path.First()
	field, ok := w.registry.GetField(e.EntityType(), e.Bundle(), segment)
	if !ok || !field.IsReference() {
		return true
	}
	for _, id := range value.TextSlice(e.Get(segment)) {
		child, err := w.store.Load(ctx, field.RefEntityType, id)
		if err != nil || child.Bundle() != field.RefBundle {
			continue
		}
		return w.terminalEmpty(ctx, child, path.Rest())
	}
	return true
}

// ResolveTarget walks the path in the export/read direction and returns the
// terminal entity and field. At each non-terminal segment it descends into
// the first referenced child not already consumed for the same terminal
// field within this pass, so the same child slot is never double-reported
// when one nested field backs two different remote fields. A branch that
// fails to load is treated as absent: ok is false and the caller omits the
// remote field.
func (w *Walker) ResolveTarget(ctx context.Context, e entity.Entity, path mapping.FieldPath, pass *Pass) (entity.Entity, string, *entity.FieldDefinition, bool) {
	if len(path) == 0 {
		return nil, "", nil, false
	}

	segment := path.First()
	field, ok := w.registry.GetField(e.EntityType(), e.Bundle(), segment)
	if !ok {
		return nil, "", nil, false
	}

	if len(path) == 1 {
		return e, segment, field, true
	}

	if !field.IsReference() || field.RefEntityType == "" {
		return nil, "", nil, false
	}

	terminal := path.Terminal()
	for _, id := range value.TextSlice(e.Get(segment)) {
		child, err := w.store.Load(ctx, field.RefEntityType, id)
		if err != nil || child.Bundle() != field.RefBundle {
			continue
		}
		key := child.ID() + "\x00" + terminal
		if pass.consumed[key] {
			continue
		}
		pass.consumed[key] = true
		if target, name, def, ok := w.ResolveTarget(ctx, child, path.Rest(), pass); ok {
			return target, name, def, true
		}
	}
	return nil, "", nil, false
}
