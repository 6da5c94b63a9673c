package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const FileName = "promify.yaml"

type Config struct {
	SourceRoot string   `yaml:"source_root"`
	OutputRoot string   `yaml:"output_root"`
	Extension  string   `yaml:"extension"`
	Pragma     string   `yaml:"pragma"`
	Exclude    []string `yaml:"exclude,omitempty"`
	// LegacyImportSplice splices every contract's import against the
	// unmodified source, so only the last contract's import is written.
	LegacyImportSplice bool  `yaml:"legacy_import_splice"`
	Watch              Watch `yaml:"watch"`
}

type Watch struct {
	Debounce time.Duration `yaml:"debounce"`
}

func Default() *Config {
	return &Config{
		SourceRoot: "src",
		OutputRoot: filepath.Join("src", "interface", "async"),
		Extension:  ".sol",
		Pragma:     "pragma",
		Watch: Watch{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Load reads promify.yaml from dir. A missing file yields Default(); keys
// absent from the file keep their default values.
func Load(dir string) (*Config, string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), "", nil
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.SourceRoot) == "" {
		return errors.New("source_root must not be empty")
	}
	if strings.TrimSpace(c.OutputRoot) == "" {
		return errors.New("output_root must not be empty")
	}
	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 {
		return fmt.Errorf("extension %q must start with a dot", c.Extension)
	}
	if c.Pragma == "" {
		return errors.New("pragma must not be empty")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	return nil
}

// Write marshals the config to path, refusing to replace an existing file
// unless force is set.
func (c *Config) Write(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}
