package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/adrenaline09/SqlTranslator/internal/dbverify"
	"github.com/adrenaline09/SqlTranslator/internal/depgraph"
	"github.com/adrenaline09/SqlTranslator/internal/dialect"
)

func newVerifyCmd() *cobra.Command {
	var (
		targetName string
		query      string
		file       string
		dbURL      string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Prepare statements against a live database without executing",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dialect.FromName(firstNonEmpty(targetName, cfg.Defaults.Target))
			if err != nil {
				return fmt.Errorf("--target: %w", err)
			}

			connStr := dbURL
			if connStr == "" {
				switch d {
				case dialect.PostgreSQL:
					connStr = firstNonEmpty(os.Getenv("SQLTRANSLATOR_POSTGRES_URL"), cfg.Verify.PostgresURL)
				case dialect.MySQL:
					connStr = firstNonEmpty(os.Getenv("SQLTRANSLATOR_MYSQL_DSN"), cfg.Verify.MySQLDSN)
				}
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

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.TimeoutDuration())
			defer cancel()

			v, err := dbverify.New(ctx, d, connStr)
			if err != nil {
				return err
			}
			defer v.Close(ctx)

			out := cmd.OutOrStdout()
			failed := 0
			for i, stmt := range statements {
				if err := v.Verify(ctx, stmt); err != nil {
					failed++
					fmt.Fprintf(out, "FAIL statement %d: %v\n", i+1, err)
					slog.Debug("verification failed", "statement", stmt, "error", err)
				} else {
					fmt.Fprintf(out, "OK   statement %d\n", i+1)
				}
			}
			fmt.Fprintf(out, "%d of %d statements verified\n", len(statements)-failed, len(statements))

			if failed > 0 {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetName, "target", "t", "", "dialect to verify against: postgresql or mysql")
	cmd.Flags().StringVarP(&query, "query", "q", "", "SQL statement to verify")
	cmd.Flags().StringVarP(&file, "file", "f", "", "file with SQL statements (\"-\" for stdin)")
	cmd.Flags().StringVar(&dbURL, "db-url", "", "connection string (or set verify settings in config)")

	return cmd
}
