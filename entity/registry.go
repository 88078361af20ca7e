package entity

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Registry holds bundle definitions and site language configuration.
// It organizes definitions by entity_type and bundle, and answers the
// translation-capability queries the transformation core needs.
type Registry struct {
	mu sync.RWMutex
	// definitions[entityType][bundle] = *Definition
	definitions map[string]map[string]*Definition

	defaultLanguage string
	languages       []string
}

// NewRegistry creates an empty registry with "en" as the only language.
func NewRegistry() *Registry {
	return &Registry{
		definitions:     make(map[string]map[string]*Definition),
		defaultLanguage: "en",
		languages:       []string{"en"},
	}
}

// Register adds or updates a bundle definition.
// An existing definition with the same type and bundle is replaced.
func (r *Registry) Register(d *Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.definitions[d.EntityType] == nil {
		r.definitions[d.EntityType] = make(map[string]*Definition)
	}
	r.definitions[d.EntityType][d.Bundle] = d
}

// Get retrieves a bundle definition by type and bundle.
func (r *Registry) Get(entityType, bundle string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.definitions[entityType] == nil {
		return nil, false
	}
	d, ok := r.definitions[entityType][bundle]
	return d, ok
}

// GetField retrieves a field definition.
func (r *Registry) GetField(entityType, bundle, fieldName string) (*FieldDefinition, bool) {
	d, ok := r.Get(entityType, bundle)
	if !ok {
		return nil, false
	}
	return d.GetField(fieldName)
}

// IsTranslationEnabled reports whether the bundle supports per-language
// content variants.
func (r *Registry) IsTranslationEnabled(entityType, bundle string) bool {
	d, ok := r.Get(entityType, bundle)
	return ok && d.Translatable
}

// DefaultLanguage returns the site default language tag.
func (r *Registry) DefaultLanguage() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultLanguage
}

// ConfigurableLanguages returns all configured language tags,
// default first.
func (r *Registry) ConfigurableLanguages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.languages))
	copy(out, r.languages)
	return out
}

// SetLanguages configures the site languages. The default must be part of
// the list; it is prepended if missing.
func (r *Registry) SetLanguages(defaultLanguage string, languages []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := false
	for _, l := range languages {
		if l == defaultLanguage {
			found = true
			break
		}
	}
	if !found {
		languages = append([]string{defaultLanguage}, languages...)
	}
	r.defaultLanguage = defaultLanguage
	r.languages = languages
}

// ListBundles returns all bundles for an entity type.
func (r *Registry) ListBundles(entityType string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.definitions[entityType] == nil {
		return nil
	}
	bundles := make([]string, 0, len(r.definitions[entityType]))
	for b := range r.definitions[entityType] {
		bundles = append(bundles, b)
	}
	return bundles
}

// =============================================================================
// YAML LOADING
// =============================================================================

// SchemaConfig is the top-level YAML config format.
type SchemaConfig struct {
	Version         string       `yaml:"version"`
	DefaultLanguage string       `yaml:"default_language,omitempty"`
	Languages       []string     `yaml:"languages,omitempty"`
	Bundles         []Definition `yaml:"bundles"`
}

// LoadFromYAML loads bundle definitions from YAML bytes.
func (r *Registry) LoadFromYAML(data []byte) error {
	var config SchemaConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	if config.DefaultLanguage != "" {
		langs := config.Languages
		if len(langs) == 0 {
			langs = []string{config.DefaultLanguage}
		}
		r.SetLanguages(config.DefaultLanguage, langs)
	}

	for i := range config.Bundles {
		r.Register(&config.Bundles[i])
	}
	return nil
}

// LoadFromPath loads bundle definitions from a file or directory.
func (r *Registry) LoadFromPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if info.IsDir() {
		return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isYAMLFile(p) {
				return nil
			}
			return r.loadFile(p)
		})
	}

	return r.loadFile(path)
}

func (r *Registry) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := r.LoadFromYAML(data); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func isYAMLFile(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}
