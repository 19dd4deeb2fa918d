package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/docvet/docvet/internal/domain"
	"github.com/docvet/docvet/internal/domain/rules"
)

// ValidateService orchestrates the validation pipeline:
// extract -> execute (worker pool) -> rule fan-out -> aggregate.
type ValidateService struct {
	extractor    domain.CorpusExtractor
	runners      domain.RunnerFactory
	configLoader domain.ConfigLoader
	git          domain.GitInfo
	registry     *rules.Registry // nil means the built-in registry for the loaded config
	seed         domain.Seed
}

// NewValidateService creates a ValidateService with all required ports.
func NewValidateService(
	extractor domain.CorpusExtractor,
	runners domain.RunnerFactory,
	configLoader domain.ConfigLoader,
	git domain.GitInfo,
) *ValidateService {
	return &ValidateService{
		extractor: extractor, runners: runners,
		configLoader: configLoader, git: git,
	}
}

// WithRegistry replaces the built-in rule registry. Rules registered by
// the caller run in the order given, after nothing else; the caller owns
// the complete set.
func (s *ValidateService) WithRegistry(reg *rules.Registry) *ValidateService {
	s.registry = reg
	return s
}

// WithSeed merges programmatic seed material (fixture symbols, prelude)
// into every example's execution scope.
func (s *ValidateService) WithSeed(seed domain.Seed) *ValidateService {
	s.seed = seed
	return s
}

// Validate runs the full pipeline over root and returns the report.
// Per-example failures are findings, never errors; an error return means
// the run itself could not proceed (bad root, bad config, broken seed).
func (s *ValidateService) Validate(ctx context.Context, root string) (*domain.Report, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("root path %s is not a readable directory", absRoot)
	}

	// 1. Load config
	cfg, err := s.configLoader.Load(absRoot)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// 2. Assemble the seed
	seed := s.seed
	if cfg.SeedFile != "" {
		data, err := os.ReadFile(filepath.Join(absRoot, cfg.SeedFile))
		if err != nil {
			return nil, fmt.Errorf("reading seed file: %w", err)
		}
		if seed.Prelude != "" {
			seed.Prelude += "\n"
		}
		seed.Prelude += string(data)
	}

	// 3. Extract the corpus
	examples, err := s.extractor.Extract(absRoot, cfg)
	if err != nil {
		return nil, fmt.Errorf("extracting examples: %w", err)
	}

	// 4. Build the runner; seed problems surface here, before anything runs
	runner, err := s.runners.NewRunner(cfg, seed)
	if err != nil {
		return nil, fmt.Errorf("building runner: %w", err)
	}

	registry := s.registry
	if registry == nil {
		registry = rules.Builtin(cfg)
	}

	runID := uuid.New().String()
	log.Info().
		Str("run_id", runID).
		Str("root", absRoot).
		Int("examples", len(examples)).
		Msg("validation started")

	// 5. Execute and validate in parallel. Isolation of the runner and
	// purity of the rules make the fan-out safe; results are slotted by
	// index so completion order is irrelevant.
	items := make([]domain.ValidatedExample, len(examples))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(cfg))
	for idx, ex := range examples {
		g.Go(func() error {
			res := runner.Run(gctx, ex)
			items[idx] = domain.ValidatedExample{
				Example:    ex,
				Result:     res,
				Violations: registry.Inspect(ex, res),
			}
			log.Debug().
				Str("example", ex.ID).
				Str("status", string(res.Status)).
				Int64("duration_ms", res.DurationMS).
				Msg("example validated")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// 6. Aggregate into the report
	report := domain.BuildReport(items, domain.ReportOptions{
		RunID:                    runID,
		CommitHash:               s.commitHash(absRoot),
		Timestamp:                time.Now().UTC(),
		ExcludeMalformedFromRate: cfg.ExcludeMalformedFromRate,
	})

	log.Info().
		Str("run_id", runID).
		Int("violations", len(report.Violations)).
		Float64("success_rate", report.SuccessRate()).
		Msg("validation finished")

	return report, nil
}

func (s *ValidateService) commitHash(root string) string {
	if s.git == nil || !s.git.IsRepo(root) {
		return ""
	}
	hash, err := s.git.CommitHash(root)
	if err != nil {
		return ""
	}
	return hash
}

func workerCount(cfg domain.ProjectConfig) int {
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	return 4
}
