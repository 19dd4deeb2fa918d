// Package executor runs examples in an isolated in-process interpreter.
// Every example gets a fresh interpreter seeded only from the caller's
// Seed, so no example can observe another's side effects regardless of
// execution order or worker scheduling.
package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/docvet/docvet/internal/domain"
)

const seedImportPath = "docvet/seed"

// Runner implements domain.ExampleRunner on top of yaegi.
type Runner struct {
	timeout  time.Duration
	seed     domain.Seed
	known    map[string]bool // import paths resolvable in the interpreter
	pkgNames map[string]bool // base names of those paths, for error classification
}

// Factory implements domain.RunnerFactory.
type Factory struct{}

func NewFactory() Factory { return Factory{} }

func (Factory) NewRunner(cfg domain.ProjectConfig, seed domain.Seed) (domain.ExampleRunner, error) {
	return New(cfg, seed)
}

// New builds a Runner and validates the seed by instantiating a throwaway
// interpreter, so a broken prelude surfaces as a configuration error
// instead of failing every example.
func New(cfg domain.ProjectConfig, seed domain.Seed) (*Runner, error) {
	known := make(map[string]bool)
	for key := range stdlib.Symbols {
		// Symbol keys are "path/name"; the import path is the prefix.
		if i := strings.LastIndex(key, "/"); i >= 0 {
			known[key[:i]] = true
		}
	}
	for _, p := range cfg.AllowedImports {
		known[p] = true
	}
	if len(seed.Symbols) > 0 {
		known[seedImportPath] = true
	}

	pkgNames := make(map[string]bool, len(known))
	for path := range known {
		pkgNames[path[strings.LastIndex(path, "/")+1:]] = true
	}

	r := &Runner{
		timeout:  cfg.Timeout(),
		seed:     seed,
		known:    known,
		pkgNames: pkgNames,
	}

	if _, err := r.newInterpreter(newBoundedBuffer(maxStdoutBytes), newBoundedBuffer(maxStderrBytes)); err != nil {
		return nil, fmt.Errorf("validating seed: %w", err)
	}
	return r, nil
}

// Run executes one example. Example failures are captured in the result,
// never returned as errors; nothing that happens to one example may abort
// the processing of any other.
func (r *Runner) Run(ctx context.Context, ex domain.Example) domain.ExecutionResult {
	start := time.Now()
	res := domain.ExecutionResult{ExampleID: ex.ID}
	finish := func() domain.ExecutionResult {
		res.DurationMS = time.Since(start).Milliseconds()
		return res
	}

	if ex.Malformed {
		res.Status = domain.StatusSyntaxError
		res.ErrorDetail = &domain.ErrorDetail{
			Type:    domain.ErrTypeUnterminatedBlock,
			Message: "unterminated fenced code block",
		}
		return finish()
	}

	// Compile step: syntax errors never enter the timed execution phase.
	if detail := checkSyntax(ex.Code); detail != nil {
		res.Status = domain.StatusSyntaxError
		res.ErrorDetail = detail
		return finish()
	}

	// Static import resolution against the interpreter's package set.
	for _, imp := range ex.DeclaredDependencies {
		if !r.known[imp] {
			res.Status = domain.StatusImportError
			res.ErrorDetail = &domain.ErrorDetail{
				Type:    domain.ErrTypeImportNotFound,
				Message: fmt.Sprintf("import %q cannot be resolved in the execution environment", imp),
			}
			return finish()
		}
	}

	stdout := newBoundedBuffer(maxStdoutBytes)
	stderr := newBoundedBuffer(maxStderrBytes)

	i, err := r.newInterpreter(stdout, stderr)
	if err != nil {
		// Seed was validated at construction; reaching this means the
		// environment itself broke mid-run.
		res.Status = domain.StatusRuntimeError
		res.ErrorDetail = &domain.ErrorDetail{Type: domain.ErrTypeEval, Message: err.Error()}
		return finish()
	}

	execCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	done := make(chan *domain.ErrorDetail, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- &domain.ErrorDetail{
					Type:    domain.ErrTypePanic,
					Message: fmt.Sprintf("panic: %v", rec),
				}
			}
		}()
		done <- r.evalExample(execCtx, i, ex, stdout)
	}()

	select {
	case detail := <-done:
		if detail != nil {
			res.Status = domain.StatusRuntimeError
			res.ErrorDetail = detail
			if detail.Type == domain.ErrTypeImportNotFound {
				// Import failures surfaced at eval time keep the same
				// status the static check would have given them.
				res.Status = domain.StatusImportError
			}
		} else {
			res.Status = domain.StatusSuccess
			res.ProducedValues = r.producedValues(i, ex)
		}
	case <-execCtx.Done():
		// The worker goroutine is abandoned, never reused; a hung native
		// loop must not leak state into later examples. Partial output is
		// snapshotted best-effort.
		log.Warn().Str("example", ex.ID).Dur("timeout", r.timeout).Msg("example timed out, discarding worker")
		res.Status = domain.StatusTimeout
		res.ErrorDetail = &domain.ErrorDetail{
			Type:    "timeout",
			Message: fmt.Sprintf("execution exceeded %s", r.timeout),
		}
	}

	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	return finish()
}

// newInterpreter builds the fresh, seeded scope an example executes in.
func (r *Runner) newInterpreter(stdout, stderr *boundedBuffer) (*interp.Interpreter, error) {
	i := interp.New(interp.Options{Stdout: stdout, Stderr: stderr})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("loading stdlib symbols: %w", err)
	}

	if len(r.seed.Symbols) > 0 {
		exports := interp.Exports{seedImportPath + "/seed": r.seed.Symbols}
		if err := i.Use(exports); err != nil {
			return nil, fmt.Errorf("loading seed symbols: %w", err)
		}
		if _, err := i.Eval(fmt.Sprintf("import . %q", seedImportPath)); err != nil {
			return nil, fmt.Errorf("importing seed symbols: %w", err)
		}
	}

	if r.seed.Prelude != "" {
		if _, err := i.Eval(r.seed.Prelude); err != nil {
			return nil, fmt.Errorf("evaluating seed prelude: %w", err)
		}
	}

	return i, nil
}

// evalExample runs the code inside the interpreter and returns the error
// detail, or nil on success.
func (r *Runner) evalExample(ctx context.Context, i *interp.Interpreter, ex domain.Example, stdout *boundedBuffer) *domain.ErrorDetail {
	if ex.Kind == domain.KindDocstring {
		return r.evalSegments(ctx, i, ex, stdout)
	}

	if _, err := i.EvalWithContext(ctx, ex.Code); err != nil {
		return r.classifyEvalError(err)
	}
	return nil
}

// producedValues reads back the bindings the example left in scope.
func (r *Runner) producedValues(i *interp.Interpreter, ex domain.Example) map[string]any {
	names := boundNames(ex.Code)
	if len(names) == 0 {
		return nil
	}

	values := make(map[string]any)
	for _, name := range names {
		v, err := i.Eval(name)
		if err != nil || !v.IsValid() || !v.CanInterface() {
			continue
		}
		values[name] = v.Interface()
	}
	if len(values) == 0 {
		return nil
	}
	return values
}
