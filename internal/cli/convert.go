package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/adrenaline09/SqlTranslator/internal/converter"
	"github.com/adrenaline09/SqlTranslator/internal/depgraph"
	"github.com/adrenaline09/SqlTranslator/internal/dialect"
	"github.com/adrenaline09/SqlTranslator/internal/removals"
	"github.com/adrenaline09/SqlTranslator/internal/reporter"
)

func newConvertCmd() *cobra.Command {
	var (
		sourceName string
		targetName string
		query      string
		file       string
		output     string
		format     string
		remove     []string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Translate SQL between dialects",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := dialect.FromName(firstNonEmpty(sourceName, cfg.Defaults.Source))
			if err != nil {
				return fmt.Errorf("--source: %w", err)
			}
			target, err := dialect.FromName(firstNonEmpty(targetName, cfg.Defaults.Target))
			if err != nil {
				return fmt.Errorf("--target: %w", err)
			}

			batch, err := readInput(query, file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			statements, err := depgraph.SplitStatements(batch)
			if err != nil {
				return fmt.Errorf("split statements: %w", err)
			}
			if len(statements) == 0 {
				return fmt.Errorf("no SQL statements found in input")
			}

			patterns, err := loadRemovalPatterns()
			if err != nil {
				return err
			}
			patterns = append(patterns, remove...)

			conversions := make([]reporter.Conversion, 0, len(statements))
			for _, stmt := range statements {
				c := reporter.Conversion{
					Source: string(source),
					Target: string(target),
					Input:  stmt,
				}
				converted, err := converter.Convert(stmt, source, target, patterns)
				if err != nil {
					c.Error = err.Error()
				} else {
					c.Output = converted
				}
				conversions = append(conversions, c)
			}

			report := reporter.NewConversionReport("convert", conversions)
			slog.Debug("conversion complete",
				"statements", report.Summary.Total,
				"failed", report.Summary.Failed)

			out, closeOut, err := openOutput(cmd, output)
			if err != nil {
				return err
			}
			if err := reporter.WriteConversion(out, &report, reporter.Format(outputFormat(cmd, format))); err != nil {
				_ = closeOut()
				return fmt.Errorf("write report: %w", err)
			}
			if err := closeOut(); err != nil {
				return fmt.Errorf("close output: %w", err)
			}

			if report.Summary.Failed > 0 {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceName, "source", "s", "", "source dialect: "+dialectList())
	cmd.Flags().StringVarP(&targetName, "target", "t", "", "target dialect: "+dialectList())
	cmd.Flags().StringVarP(&query, "query", "q", "", "SQL statement to convert")
	cmd.Flags().StringVarP(&file, "file", "f", "", "file with SQL statements (\"-\" for stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write converted SQL to file instead of stdout")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	cmd.Flags().StringArrayVar(&remove, "remove", nil, "extra removal pattern, literal or regex (repeatable)")

	return cmd
}

func dialectList() string {
	names := dialect.Names()
	out := names[0]
	for _, n := range names[1:] {
		out += ", " + n
	}
	return out
}

// loadRemovalPatterns merges file rules with config patterns.
func loadRemovalPatterns() ([]string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	rules, err := removals.LoadRules(cwd)
	if err != nil {
		return nil, fmt.Errorf("load removal rules: %w", err)
	}
	rules.WithConfigPatterns(cfg.Removals)
	return rules.Patterns(), nil
}
