package domain

import (
	"fmt"
	"regexp"
	"time"
)

const (
	// DefaultTimeoutMS bounds the execution of a single example.
	DefaultTimeoutMS = 30000

	// DefaultBaselinePath is where the regression baseline lives relative
	// to the documentation root.
	DefaultBaselinePath = ".docvet/baseline.json"
)

// ProjectConfig is the parsed .docvet.yaml.
type ProjectConfig struct {
	// Patterns are file globs (matched against base names) selecting the
	// markup files scanned for fenced code blocks.
	Patterns []string `yaml:"patterns"`

	// ExcludePaths are directory names skipped during the corpus walk,
	// in addition to the built-in skip list.
	ExcludePaths []string `yaml:"exclude_paths"`

	// IncludeUntagged extracts fenced blocks without a language tag.
	// Default false: only blocks explicitly tagged as Go are extracted.
	IncludeUntagged bool `yaml:"include_untagged"`

	TimeoutMS int `yaml:"timeout_ms"`
	Workers   int `yaml:"workers"`

	// ExcludeMalformedFromRate drops malformed examples from the success
	// rate denominator. Default false: malformed examples count as
	// failures, since hiding them would overstate documentation quality.
	ExcludeMalformedFromRate bool `yaml:"exclude_malformed_from_rate"`

	// AllowedImports lists import paths resolvable in the execution
	// environment beyond the interpreted standard library.
	AllowedImports []string `yaml:"allowed_imports"`

	// SeedFile is a Go source file evaluated as a prelude in every
	// example's fresh scope (fixture constructors, rand seeding).
	SeedFile string `yaml:"seed_file"`

	Rules RulesConfig `yaml:"rules"`
}

// RulesConfig tunes the validator registry.
type RulesConfig struct {
	// Disabled lists rule names removed from the registry.
	Disabled []string `yaml:"disabled"`

	// Domain declares project-specific numeric constraints over values
	// bound by examples.
	Domain []DomainCheckConfig `yaml:"domain"`

	Shape ShapeConfig `yaml:"shape"`
}

// DomainCheckConfig is one declarative numeric invariant: every numeric
// value bound to a name matching the pattern must fall inside the range.
type DomainCheckConfig struct {
	Name     string   `yaml:"name"`
	Match    string   `yaml:"match"`
	Min      *float64 `yaml:"min"`
	Max      *float64 `yaml:"max"`
	Finite   bool     `yaml:"finite"`
	Severity string   `yaml:"severity"`
}

// ShapeConfig configures the structural shape rule for tabular values.
type ShapeConfig struct {
	// ExpectedLevels are the column level names a tabular value produced
	// by an example must expose (e.g. "M", "C", "S").
	ExpectedLevels []string `yaml:"expected_levels"`
}

// DefaultConfig returns the configuration used when no .docvet.yaml exists.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		Patterns:  []string{"*.md", "*.markdown"},
		TimeoutMS: DefaultTimeoutMS,
	}
}

// Timeout returns the per-example execution limit as a duration.
func (c ProjectConfig) Timeout() time.Duration {
	ms := c.TimeoutMS
	if ms <= 0 {
		ms = DefaultTimeoutMS
	}
	return time.Duration(ms) * time.Millisecond
}

// Validate catches typos in user-supplied raw config before merging.
func (c ProjectConfig) Validate() error {
	if c.TimeoutMS < 0 {
		return fmt.Errorf("timeout_ms must not be negative, got %d", c.TimeoutMS)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}

	for _, d := range c.Rules.Domain {
		if d.Name == "" {
			return fmt.Errorf("rules.domain entries need a name")
		}
		if d.Match == "" {
			return fmt.Errorf("rules.domain %q needs a match pattern", d.Name)
		}
		if _, err := regexp.Compile(d.Match); err != nil {
			return fmt.Errorf("rules.domain %q: invalid match pattern: %w", d.Name, err)
		}
		if d.Severity != "" && !ValidSeverity(d.Severity) {
			return fmt.Errorf("rules.domain %q: unknown severity %q", d.Name, d.Severity)
		}
		if d.Min == nil && d.Max == nil && !d.Finite {
			return fmt.Errorf("rules.domain %q declares no constraint", d.Name)
		}
	}

	return nil
}
