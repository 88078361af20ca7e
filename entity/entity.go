package entity

// Text is the stored value of a formatted text field.
type Text struct {
	Value  string
	Format string
}

// Entity is the capability interface the transformation core uses to touch
// local content. The core never assumes a concrete field storage shape; a
// host CMS adapts its own entity objects to this interface.
//
// Field value conventions:
//   - formatted text fields hold Text
//   - plain string/date fields hold string
//   - list_string fields hold []string
//   - reference fields hold []string of target entity ids
//   - file fields hold the local file entity id as string
type Entity interface {
	// ID returns the entity id, empty until first save for new entities.
	ID() string

	// EntityType returns the entity type tag (e.g., "node").
	EntityType() string

	// Bundle returns the bundle tag (e.g., "article").
	Bundle() string

	// Label returns the entity display title.
	Label() string

	// SetLabel sets the entity display title.
	SetLabel(label string)

	// Get returns the value stored under fieldName, nil when unset.
	Get(fieldName string) any

	// Set stores a value under fieldName, replacing any prior value.
	Set(fieldName string, v any)

	// IsEmpty reports whether the field holds no meaningful value.
	IsEmpty(fieldName string) bool

	// Language returns the language tag of this entity or translation.
	Language() string

	// Translation returns the translation for the given language, if present.
	Translation(language string) (Entity, bool)

	// NewTranslation creates (or returns the existing) translation for the
	// given language. Translations share the entity id.
	NewTranslation(language string) Entity
}

// ValueEmpty reports whether v counts as "no value" under the field value
// conventions above.
func ValueEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case Text:
		return val.Value == ""
	case *Text:
		return val == nil || val.Value == ""
	default:
		return false
	}
}
