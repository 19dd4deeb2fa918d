package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	baselineStore "github.com/docvet/docvet/internal/adapters/outbound/baseline"
	"github.com/docvet/docvet/internal/adapters/outbound/tui"
)

func newBaselineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Baseline commands",
		Long:  "Inspect the accepted baseline that the regression gate compares runs against.",
	}
	cmd.AddCommand(newBaselineShowCmd())
	return cmd
}

func newBaselineShowCmd() *cobra.Command {
	var (
		root         string
		baselinePath string
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the accepted baseline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := baselineStore.New()
			path := resolveBaselinePath(root, baselinePath)

			b, err := store.Load(path)
			if err != nil {
				return fmt.Errorf("load baseline: %w", err)
			}
			if b == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No baseline at %s\n", path)
				return nil
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(b)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderBaseline(b))
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Documentation root")
	cmd.Flags().StringVar(&baselinePath, "baseline", "", "Baseline file path")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the baseline as JSON")

	return cmd
}
