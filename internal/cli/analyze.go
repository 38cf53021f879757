package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/adrenaline09/SqlTranslator/internal/baseline"
	"github.com/adrenaline09/SqlTranslator/internal/depgraph"
	"github.com/adrenaline09/SqlTranslator/internal/reporter"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		query          string
		file           string
		format         string
		baselinePath   string
		updateBaseline string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Order a batch of statements by table dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := readInput(query, file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			result, err := depgraph.Analyze(batch)
			if err != nil {
				return fmt.Errorf("analyze: %w", err)
			}
			slog.Debug("analysis complete",
				"statements", result.Totals.Statements,
				"created", result.Totals.CreatedTables,
				"external", len(result.ExternalDependencies))

			// Save baseline before filtering so it records everything.
			if updateBaseline != "" {
				if err := baseline.Save(updateBaseline, result.ExternalDependencies); err != nil {
					return fmt.Errorf("save baseline: %w", err)
				}
				slog.Info("baseline saved",
					"path", updateBaseline,
					"tables", len(result.ExternalDependencies))
			}

			suppressed := 0
			if baselinePath != "" {
				bl, err := baseline.Load(baselinePath)
				if err != nil {
					return fmt.Errorf("load baseline: %w", err)
				}
				result.ExternalDependencies, suppressed = bl.Filter(result.ExternalDependencies)
			}

			report := reporter.NewAnalysisReport("analyze", result, suppressed)
			if err := reporter.WriteAnalysis(cmd.OutOrStdout(), &report, reporter.Format(outputFormat(cmd, format))); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "SQL batch to analyze")
	cmd.Flags().StringVarP(&file, "file", "f", "", "file with SQL statements (\"-\" for stdin)")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	cmd.Flags().StringVar(&baselinePath, "baseline", "", "path to baseline file (hide known external tables)")
	cmd.Flags().StringVar(&updateBaseline, "update-baseline", "", "save current external tables as new baseline")

	return cmd
}
