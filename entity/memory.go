package entity

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used by tests and the CLI dry-run path.
// It is not a persistence layer.
type MemoryStore struct {
	mu sync.RWMutex
	// entities[entityType][id] = *record
	entities map[string]map[string]*record
	nextSeq  uint64

	defaultLanguage string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(defaultLanguage string) *MemoryStore {
	if defaultLanguage == "" {
		defaultLanguage = "en"
	}
	return &MemoryStore{
		entities:        make(map[string]map[string]*record),
		defaultLanguage: defaultLanguage,
	}
}

// Create returns a new unsaved entity of the given type and bundle.
func (s *MemoryStore) Create(entityType, bundle string) Entity {
	return &record{
		entityType:   entityType,
		bundle:       bundle,
		language:     s.defaultLanguage,
		fields:       make(map[string]any),
		translations: make(map[string]*record),
	}
}

// Load fetches an entity by type and id.
func (s *MemoryStore) Load(ctx context.Context, entityType, id string) (Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := s.entities[entityType]
	if byID == nil {
		return nil, ErrNotFound
	}
	r, ok := byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

// Save persists the entity, assigning an id on first save.
func (s *MemoryStore) Save(ctx context.Context, e Entity) error {
	r, ok := e.(*record)
	if !ok {
		// Translations save through their base entity.
		if t, isTr := e.(*translation); isTr {
			r = t.base
		} else {
			return nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if r.id == "" {
		r.id = uuid.NewString()
		s.nextSeq++
		r.seq = s.nextSeq
	}
	if s.entities[r.entityType] == nil {
		s.entities[r.entityType] = make(map[string]*record)
	}
	s.entities[r.entityType][r.id] = r
	return nil
}

// Delete removes the entity and all its translations.
func (s *MemoryStore) Delete(ctx context.Context, entityType, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if byID := s.entities[entityType]; byID != nil {
		delete(byID, id)
	}
	return nil
}

// LoadByProperties returns entities whose base fields match all given
// values, in creation order.
func (s *MemoryStore) LoadByProperties(ctx context.Context, entityType string, props map[string]any) ([]Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []*record
	for _, r := range s.entities[entityType] {
		if r.matchesAll(props) {
			records = append(records, r)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].seq < records[j].seq })

	matches := make([]Entity, len(records))
	for i, r := range records {
		matches[i] = r
	}
	return matches, nil
}

// =============================================================================
// RECORD
// =============================================================================

// record is the base-language entity.
type record struct {
	id           string
	seq          uint64
	entityType   string
	bundle       string
	language     string
	fields       map[string]any
	translations map[string]*record
}

var _ Entity = (*record)(nil)

func (r *record) ID() string         { return r.id }
func (r *record) EntityType() string { return r.entityType }
func (r *record) Bundle() string     { return r.bundle }
func (r *record) Language() string   { return r.language }

func (r *record) Label() string {
	if v, ok := r.fields["title"].(string); ok {
		return v
	}
	return ""
}

func (r *record) SetLabel(label string) {
	r.fields["title"] = label
}

func (r *record) Get(fieldName string) any {
	return r.fields[fieldName]
}

func (r *record) Set(fieldName string, v any) {
	r.fields[fieldName] = v
}

func (r *record) IsEmpty(fieldName string) bool {
	return ValueEmpty(r.fields[fieldName])
}

func (r *record) Translation(language string) (Entity, bool) {
	if language == r.language {
		return r, true
	}
	t, ok := r.translations[language]
	if !ok {
		return nil, false
	}
	return &translation{record: t, base: r}, true
}

func (r *record) NewTranslation(language string) Entity {
	if language == r.language {
		return r
	}
	if t, ok := r.translations[language]; ok {
		return &translation{record: t, base: r}
	}
	t := &record{
		entityType: r.entityType,
		bundle:     r.bundle,
		language:   language,
		fields:     make(map[string]any),
	}
	r.translations[language] = t
	return &translation{record: t, base: r}
}

func (r *record) matchesAll(props map[string]any) bool {
	for name, want := range props {
		if !valueMatches(r.fields[name], want) {
			return false
		}
	}
	return true
}

// valueMatches implements the load-by-property semantics: equality for
// scalars, containment for multi-valued fields.
func valueMatches(stored, want any) bool {
	switch sv := stored.(type) {
	case string:
		return sv == propString(want)
	case Text:
		return sv.Value == propString(want)
	case []string:
		w := propString(want)
		for _, item := range sv {
			if item == w {
				return true
			}
		}
		return false
	default:
		return stored == want
	}
}

// propString coerces a property value to string for comparison.
func propString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if t, ok := v.(Text); ok {
		return t.Value
	}
	return ""
}

// translation wraps a per-language record so it shares the base entity's id
// while reading and writing its own field values.
type translation struct {
	*record
	base *record
}

func (t *translation) ID() string { return t.base.id }

func (t *translation) Translation(language string) (Entity, bool) {
	return t.base.Translation(language)
}

func (t *translation) NewTranslation(language string) Entity {
	return t.base.NewTranslation(language)
}
