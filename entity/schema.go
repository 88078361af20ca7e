// Package entity defines the boundary to the local CMS: the entity get/set
// capability interface, the storage interface, and a bundle/field schema
// registry configured per-site from YAML.
package entity

import (
	"fmt"
)

// Local field type tags.
const (
	TypeString            = "string"
	TypeStringLong        = "string_long"
	TypeText              = "text"
	TypeTextLong          = "text_long"
	TypeTextWithSummary   = "text_with_summary"
	TypeEmail             = "email"
	TypeTelephone         = "telephone"
	TypeDate              = "date"
	TypeDateTime          = "datetime"
	TypeListString        = "list_string"
	TypeEntityReference   = "entity_reference"
	TypeCompositeRef      = "entity_reference_revisions"
	TypeFile              = "file"
	TypeImage             = "image"
)

// Text format identifiers for formatted text fields.
const (
	FormatPlain    = "plain_text"
	FormatRichHTML = "basic_html"
)

// Cardinality defines how many values a field can have.
type Cardinality int

const (
	Single    Cardinality = 1
	Unlimited Cardinality = -1
)

// FieldDefinition describes a field on a bundle.
type FieldDefinition struct {
	// Name is the field machine name (e.g., "field_author")
	Name string `yaml:"name"`

	// Type is the local field type tag
	Type string `yaml:"type"`

	// Label is the human-readable name
	Label string `yaml:"label,omitempty"`

	// Cardinality: 1 = single, -1 = unlimited, N = max N
	Cardinality Cardinality `yaml:"cardinality,omitempty"`

	// Required indicates if the field must have a value
	Required bool `yaml:"required,omitempty"`

	// RefEntityType is the target entity type for reference fields
	// (e.g., "taxonomy_term", "paragraph")
	RefEntityType string `yaml:"ref_entity_type,omitempty"`

	// RefBundle is the target bundle for reference fields
	RefBundle string `yaml:"ref_bundle,omitempty"`

	// Vocabulary names the controlled vocabulary backing an entity
	// reference. Empty means the reference is free-form and carries no
	// stable option identity.
	Vocabulary string `yaml:"vocabulary,omitempty"`
}

// IsMultiValue returns true if the field can have multiple values.
// The zero Cardinality means single.
func (f FieldDefinition) IsMultiValue() bool {
	return f.Cardinality != 0 && f.Cardinality != Single
}

// IsReference returns true for fields that point at other entities.
func (f FieldDefinition) IsReference() bool {
	return f.Type == TypeEntityReference || f.Type == TypeCompositeRef
}

// HasControlledVocabulary reports whether the reference target is backed by
// a controlled vocabulary with stable option identity.
func (f FieldDefinition) HasControlledVocabulary() bool {
	return f.IsReference() && f.Vocabulary != ""
}

// Definition describes one entity type + bundle combination.
type Definition struct {
	// EntityType is the entity type (e.g., "node", "taxonomy_term", "paragraph")
	EntityType string `yaml:"entity_type"`

	// Bundle is the bundle machine name (e.g., "article", "tags")
	Bundle string `yaml:"bundle"`

	// Name is the human-readable name
	Name string `yaml:"name,omitempty"`

	// Translatable marks the bundle as supporting per-language variants
	Translatable bool `yaml:"translatable,omitempty"`

	// Fields defines the schema for this bundle
	Fields []FieldDefinition `yaml:"fields"`

	fieldIndex map[string]*FieldDefinition
}

// GetField returns a field definition by name.
func (d *Definition) GetField(name string) (*FieldDefinition, bool) {
	d.buildIndex()
	f, ok := d.fieldIndex[name]
	return f, ok
}

// HasField checks if a field exists.
func (d *Definition) HasField(name string) bool {
	_, ok := d.GetField(name)
	return ok
}

// FieldNames returns all field names.
func (d *Definition) FieldNames() []string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.Name
	}
	return names
}

func (d *Definition) buildIndex() {
	if d.fieldIndex != nil {
		return
	}
	d.fieldIndex = make(map[string]*FieldDefinition, len(d.Fields))
	for i := range d.Fields {
		d.fieldIndex[d.Fields[i].Name] = &d.Fields[i]
	}
}

// Validate checks if the given fields satisfy the schema.
// Returns a list of validation errors, or nil if valid.
func (d *Definition) Validate(hasField func(string) bool) []string {
	var errors []string
	for _, f := range d.Fields {
		if f.Required && !hasField(f.Name) {
			errors = append(errors, fmt.Sprintf("missing required field %q", f.Name))
		}
	}
	return errors
}
