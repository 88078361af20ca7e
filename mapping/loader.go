package mapping

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// mappingFile is the versioned on-disk format for a stored mapping.
type mappingFile struct {
	Version string  `yaml:"version"`
	Mapping Mapping `yaml:",inline"`
}

// FileVersion is the current mapping file schema version.
const FileVersion = "1"

// LoadMapping loads a mapping from a YAML file.
func LoadMapping(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping file: %w", err)
	}
	return ParseMapping(data)
}

// ParseMapping loads a mapping from YAML bytes.
func ParseMapping(data []byte) (*Mapping, error) {
	var f mappingFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing mapping YAML: %w", err)
	}
	if f.Version != "" && f.Version != FileVersion {
		return nil, fmt.Errorf("unsupported mapping file version %q", f.Version)
	}
	m := f.Mapping
	if m.ID == "" {
		m.ID = m.TemplateID
	}
	return &m, nil
}

// SaveMapping writes a mapping to a YAML file.
func SaveMapping(path string, m *Mapping) error {
	data, err := yaml.Marshal(mappingFile{Version: FileVersion, Mapping: *m})
	if err != nil {
		return fmt.Errorf("encoding mapping: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Registry holds loaded mappings keyed by id.
type Registry struct {
	mappings map[string]*Mapping
}

// NewRegistry creates an empty mapping registry.
func NewRegistry() *Registry {
	return &Registry{mappings: make(map[string]*Mapping)}
}

// Register adds a mapping to the registry.
func (r *Registry) Register(m *Mapping) {
	r.mappings[m.ID] = m
}

// Get retrieves a mapping by id.
func (r *Registry) Get(id string) (*Mapping, bool) {
	m, ok := r.mappings[id]
	return m, ok
}

// ForTemplate retrieves the mapping for a remote template.
func (r *Registry) ForTemplate(templateID string) (*Mapping, bool) {
	for _, m := range r.mappings {
		if m.TemplateID == templateID {
			return m, true
		}
	}
	return nil, false
}

// List returns all registered mapping ids.
func (r *Registry) List() []string {
	ids := make([]string, 0, len(r.mappings))
	for id := range r.mappings {
		ids = append(ids, id)
	}
	return ids
}

// LoadFromDirectory loads all mapping files from a directory.
// Invalid files are skipped.
func (r *Registry) LoadFromDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading mapping directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		m, err := LoadMapping(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		if m.ID == "" {
			m.ID = strings.TrimSuffix(entry.Name(), ".yaml")
		}
		r.Register(m)
	}
	return nil
}
