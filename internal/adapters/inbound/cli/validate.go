package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	baselineStore "github.com/docvet/docvet/internal/adapters/outbound/baseline"
	"github.com/docvet/docvet/internal/adapters/outbound/config"
	"github.com/docvet/docvet/internal/adapters/outbound/executor"
	"github.com/docvet/docvet/internal/adapters/outbound/extractor"
	"github.com/docvet/docvet/internal/adapters/outbound/gitinfo"
	"github.com/docvet/docvet/internal/adapters/outbound/tui"
	"github.com/docvet/docvet/internal/application"
	"github.com/docvet/docvet/internal/domain"
	"github.com/docvet/docvet/internal/domain/gate"
)

func newValidateCmd() *cobra.Command {
	var (
		root         string
		timeoutMS    int
		workers      int
		baselinePath string
		accept       bool
		noGate       bool
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run every documentation example and report violations",
		Long:  "Extract all code examples under --root, execute each in an isolated interpreter, apply the rule validators, and compare the result against the stored baseline.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := application.NewValidateService(
				extractor.New(),
				executor.NewFactory(),
				overlayLoader{inner: config.New(), timeoutMS: timeoutMS, workers: workers},
				gitinfo.New(),
			)

			report, err := svc.Validate(cmd.Context(), root)
			if err != nil {
				return fmt.Errorf("validate failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if noGate {
				return nil
			}

			gateSvc := application.NewGateService(baselineStore.New())
			path := resolveBaselinePath(root, baselinePath)

			decision, err := gateSvc.Evaluate(path, report)
			if err != nil {
				return fmt.Errorf("gate failed: %w", err)
			}

			if !jsonOutput {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderDecision(decision))
			}

			if accept {
				if err := gateSvc.Accept(path, report); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Baseline written to %s\n", path)
				return nil
			}

			if decision.Outcome == gate.NoBaseline {
				fmt.Fprintln(cmd.OutOrStdout(), "No baseline found; run with --accept to create one.")
				return nil
			}

			return decision.Err()
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Documentation root to scan")
	cmd.Flags().IntVar(&timeoutMS, "timeout-ms", 0, "Per-example execution timeout (overrides config)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel execution workers (overrides config)")
	cmd.Flags().StringVar(&baselinePath, "baseline", "", "Baseline file path (default <root>/"+domain.DefaultBaselinePath+")")
	cmd.Flags().BoolVar(&accept, "accept", false, "Accept this run as the new baseline")
	cmd.Flags().BoolVar(&noGate, "no-gate", false, "Skip the baseline comparison")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")

	return cmd
}

func resolveBaselinePath(root, flag string) string {
	if flag != "" {
		return flag
	}
	return filepath.Join(root, filepath.FromSlash(domain.DefaultBaselinePath))
}

// overlayLoader lets CLI flags override the loaded project config without
// the service knowing about flags.
type overlayLoader struct {
	inner     domain.ConfigLoader
	timeoutMS int
	workers   int
}

func (l overlayLoader) Load(root string) (domain.ProjectConfig, error) {
	cfg, err := l.inner.Load(root)
	if err != nil {
		return cfg, err
	}
	if l.timeoutMS > 0 {
		cfg.TimeoutMS = l.timeoutMS
	}
	if l.workers > 0 {
		cfg.Workers = l.workers
	}
	return cfg, nil
}
