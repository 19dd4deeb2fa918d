package config_test

import (
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/docvet/docvet/internal/adapters/outbound/config"
	"github.com/docvet/docvet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".docvet.yaml"), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
patterns:
  - "*.md"
  - "*.rst"
timeout_ms: 5000
workers: 8
include_untagged: true
allowed_imports:
  - github.com/example/fixtures
rules:
  disabled:
    - naming_convention
  domain:
    - name: rate_range
      match: rate
      min: 0
      max: 1
      severity: high
  shape:
    expected_levels: [M, C, S]
`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"*.md", "*.rst"}, cfg.Patterns)
	assert.Equal(t, 5000, cfg.TimeoutMS)
	assert.Equal(t, 8, cfg.Workers)
	assert.True(t, cfg.IncludeUntagged)
	assert.Equal(t, []string{"github.com/example/fixtures"}, cfg.AllowedImports)
	assert.Equal(t, []string{"naming_convention"}, cfg.Rules.Disabled)
	require.Len(t, cfg.Rules.Domain, 1)
	assert.Equal(t, "rate_range", cfg.Rules.Domain[0].Name)
	require.NotNil(t, cfg.Rules.Domain[0].Min)
	assert.InDelta(t, 0.0, *cfg.Rules.Domain[0].Min, 1e-9)
	assert.Equal(t, []string{"M", "C", "S"}, cfg.Rules.Shape.ExpectedLevels)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .docvet.yaml")
}

func TestYAMLLoader_ValidationFailure(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `timeout_ms: -5`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .docvet.yaml")
}

func TestYAMLLoader_PartialConfigFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `workers: 2`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, domain.DefaultConfig().Patterns, cfg.Patterns)
	assert.Equal(t, domain.DefaultTimeoutMS, cfg.TimeoutMS)
}
