package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lakeshore-digital/contentsync/entity"
	"github.com/lakeshore-digital/contentsync/mapping"
	"github.com/lakeshore-digital/contentsync/remote"
)

// Config is the site configuration for CLI runs.
type Config struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		Email   string `yaml:"email"`
		Key     string `yaml:"key"`
	} `yaml:"api"`

	// SchemaPath points at the bundle schema YAML (file or directory).
	SchemaPath string `yaml:"schema"`

	// MappingsDir holds stored mapping YAML files.
	MappingsDir string `yaml:"mappings"`

	// FileDir is where downloaded attachments land.
	FileDir string `yaml:"file_dir"`

	// Workers bounds batch concurrency.
	Workers int `yaml:"workers"`

	// SyncFilesPerLanguage downloads attachments on every language pass.
	SyncFilesPerLanguage bool `yaml:"sync_files_per_language"`
}

// LoadConfig reads the site configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Workers == 0 {
		cfg.Workers = 4
	}
	if cfg.FileDir == "" {
		cfg.FileDir = "files"
	}
	return &cfg, nil
}

// env bundles the collaborators CLI commands wire up from a config.
type env struct {
	cfg      *Config
	registry *entity.Registry
	store    entity.Store
	mappings *mapping.Registry
	client   remote.Client
}

func buildEnv(configPath string) (*env, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	registry := entity.NewRegistry()
	if cfg.SchemaPath != "" {
		if err := registry.LoadFromPath(cfg.SchemaPath); err != nil {
			return nil, fmt.Errorf("loading schema: %w", err)
		}
	}

	mappings := mapping.NewRegistry()
	if cfg.MappingsDir != "" {
		if err := mappings.LoadFromDirectory(cfg.MappingsDir); err != nil {
			return nil, fmt.Errorf("loading mappings: %w", err)
		}
	}

	var client remote.Client
	if cfg.API.BaseURL != "" {
		client = remote.NewHTTPClient(cfg.API.BaseURL, cfg.API.Email, cfg.API.Key)
	}

	return &env{
		cfg:      cfg,
		registry: registry,
		store:    entity.NewMemoryStore(registry.DefaultLanguage()),
		mappings: mappings,
		client:   client,
	}, nil
}

func (e *env) mapping(id string) (*mapping.Mapping, error) {
	if m, ok := e.mappings.Get(id); ok {
		return m, nil
	}
	if m, ok := e.mappings.ForTemplate(id); ok {
		return m, nil
	}
	return nil, fmt.Errorf("unknown mapping %q", id)
}
