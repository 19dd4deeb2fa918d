package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/docvet/docvet/internal/domain"
)

const fileName = ".docvet.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .docvet.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .docvet.yaml from root. Returns DefaultConfig if the file
// does not exist.
func (l *YAMLLoader) Load(root string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(root, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	// Validate the raw input before filling defaults, to catch typos.
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return fillDefaults(cfg), nil
}

// fillDefaults overlays defaults under unset values. Explicit values
// always win.
func fillDefaults(cfg domain.ProjectConfig) domain.ProjectConfig {
	defaults := domain.DefaultConfig()
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = defaults.Patterns
	}
	if cfg.TimeoutMS == 0 {
		cfg.TimeoutMS = defaults.TimeoutMS
	}
	return cfg
}
