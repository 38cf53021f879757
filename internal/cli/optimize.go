package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/adrenaline09/SqlTranslator/internal/dialect"
	"github.com/adrenaline09/SqlTranslator/internal/optimizer"
)

func newOptimizeCmd() *cobra.Command {
	var (
		dialectName string
		query       string
		file        string
		apiKey      string
		timeout     time.Duration
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Request optimization suggestions for a statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dialect.FromName(firstNonEmpty(dialectName, cfg.Defaults.Source))
			if err != nil {
				return fmt.Errorf("--dialect: %w", err)
			}

			sql, err := readInput(query, file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			key := firstNonEmpty(apiKey,
				cfg.Optimizer.APIKey,
				os.Getenv("SQLTRANSLATOR_API_KEY"),
				os.Getenv("OPENAI_API_KEY"))

			var opts []optimizer.Option
			if cfg.Optimizer.Endpoint != "" {
				opts = append(opts, optimizer.WithEndpoint(cfg.Optimizer.Endpoint))
			}
			if cfg.Optimizer.Model != "" {
				opts = append(opts, optimizer.WithModel(cfg.Optimizer.Model))
			}
			client := optimizer.NewClient(key, opts...)

			if !cmd.Flags().Changed("timeout") {
				timeout = cfg.TimeoutDuration()
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			result := client.Suggest(ctx, sql, d)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			if !result.Available || len(result.Suggestions) == 0 {
				fmt.Fprintln(out, result.Message)
				return nil
			}
			for i, s := range result.Suggestions {
				fmt.Fprintf(out, "%d. %s [%s]\n   %s\n", i+1, s.Title, s.Impact, s.Description)
				if s.Example != "" {
					fmt.Fprintf(out, "   example: %s\n", s.Example)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dialectName, "dialect", "d", "", "dialect of the statement: "+dialectList())
	cmd.Flags().StringVarP(&query, "query", "q", "", "SQL statement to optimize")
	cmd.Flags().StringVarP(&file, "file", "f", "", "file with the SQL statement (\"-\" for stdin)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (or set SQLTRANSLATOR_API_KEY / OPENAI_API_KEY)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw result as JSON")

	return cmd
}
