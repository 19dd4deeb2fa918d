package domain

import (
	"context"
	"reflect"
)

// CorpusExtractor discovers code examples under a documentation root.
// Extraction is a pure parse step: it never executes example code.
type CorpusExtractor interface {
	Extract(root string, cfg ProjectConfig) ([]Example, error)
}

// ExampleRunner executes one Example in isolation. Failures of the example
// itself are expressed through ExecutionResult.Status, never as an error.
type ExampleRunner interface {
	Run(ctx context.Context, ex Example) ExecutionResult
}

// RunnerFactory builds an ExampleRunner for one validation run. Seed
// validation errors (a broken prelude, for instance) surface here, before
// any example executes.
type RunnerFactory interface {
	NewRunner(cfg ProjectConfig, seed Seed) (ExampleRunner, error)
}

// Seed is the caller-supplied material injected into every fresh execution
// scope. Prelude is Go source evaluated before the example; Symbols are
// bound values exposed directly in scope. Examples that rely on randomness
// must be seeded here; the runner never seeds anything implicitly.
type Seed struct {
	Prelude string
	Symbols map[string]reflect.Value
}

// BaselineStore persists the regression baseline. Load returns (nil, nil)
// when no baseline exists at the path.
type BaselineStore interface {
	Load(path string) (*Baseline, error)
	Save(path string, b *Baseline) error
}

// ConfigLoader loads the project configuration from a documentation root.
type ConfigLoader interface {
	Load(root string) (ProjectConfig, error)
}

// GitInfo resolves commit metadata for report provenance.
type GitInfo interface {
	IsRepo(root string) bool
	CommitHash(root string) (string, error)
}
