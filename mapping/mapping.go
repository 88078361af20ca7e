// Package mapping provides the stored correspondence between one remote
// template and one local bundle, plus loading and edit-time validation.
package mapping

import (
	"time"

	"github.com/lakeshore-digital/contentsync/remote"
)

// Destination types for a mapped tab.
const (
	DestinationContent  = "content"
	DestinationMetadata = "metadata"
)

// LanguageUnspecified is the language tag for tabs that target the base
// entity rather than a specific translation.
const LanguageUnspecified = "und"

// TitleField is the reserved field path for the entity display title.
const TitleField = "title"

// Mapping is the persistent configuration entity tying one remote template
// to one local entity type + bundle. A Mapping either has no Data (newly
// imported template, unconfigured) or complete Data (usable for sync).
type Mapping struct {
	ID         string `yaml:"id"`
	ProjectID  string `yaml:"project_id"`
	TemplateID string `yaml:"template_id"`

	// EntityType and Bundle identify the local target.
	EntityType string `yaml:"entity_type"`
	Bundle     string `yaml:"bundle"`

	// Data holds the per-tab field correspondences. Nil means unconfigured.
	Data MappingData `yaml:"data,omitempty"`

	// Template is the snapshot of the remote template as of last save.
	Template *remote.Template `yaml:"template,omitempty"`

	// UpdatedAt is the last local update timestamp.
	UpdatedAt time.Time `yaml:"updated_at,omitempty"`
}

// Configured reports whether the mapping can drive a sync.
func (m *Mapping) Configured() bool {
	return len(m.Data) > 0
}

// MappingData is the ordered collection of per-tab mappings.
type MappingData []TabMapping

// TabMapping maps the elements of one remote tab onto local field paths.
type TabMapping struct {
	// TabID is the remote tab/group identifier.
	TabID string `yaml:"tab_id"`

	// Type is the destination type: content or metadata.
	Type string `yaml:"type"`

	// Language is the local language tag this tab writes to, or
	// LanguageUnspecified for the base entity.
	Language string `yaml:"language,omitempty"`

	// Elements maps remote element id → local field path.
	Elements map[string]string `yaml:"elements"`

	// ElementTextFormats optionally overrides the text format per element.
	ElementTextFormats map[string]string `yaml:"element_text_formats,omitempty"`
}

// Tab returns the tab mapping for the given remote tab id.
func (d MappingData) Tab(tabID string) (*TabMapping, bool) {
	for i := range d {
		if d[i].TabID == tabID {
			return &d[i], true
		}
	}
	return nil, false
}

// Languages returns the distinct language tags used by content tabs,
// in tab order.
func (d MappingData) Languages() []string {
	var langs []string
	seen := make(map[string]bool)
	for _, tab := range d {
		lang := tab.Language
		if lang == "" {
			lang = LanguageUnspecified
		}
		if !seen[lang] {
			seen[lang] = true
			langs = append(langs, lang)
		}
	}
	return langs
}
