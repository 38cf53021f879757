// Package cli wires the sqltranslator commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/adrenaline09/SqlTranslator/internal/config"
	"github.com/adrenaline09/SqlTranslator/internal/logging"
)

var (
	verbose bool
	cfg     config.Config
)

func newRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:          "sqltranslator",
		Short:        "SQL dialect translator",
		Long:         "Translates SQL statements between Oracle, MySQL, PostgreSQL, and PySpark, analyzes batch dependencies, and verifies converted statements against live databases.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Init(verbose, cmd.ErrOrStderr())

			// Optional .env for API keys and connection strings.
			if err := godotenv.Load(); err == nil {
				slog.Debug("loaded .env")
			}

			cwd, err := os.Getwd()
			if err != nil {
				cwd = "."
			}
			cfg, err = config.Load(cwd)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			slog.Debug("config loaded", "path", cwd)
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug-level logging")

	root.AddCommand(newVersionCmd(version))
	root.AddCommand(newConvertCmd())
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newOptimizeCmd())
	root.AddCommand(newVerifyCmd())

	return root
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "sqltranslator "+version)
		},
	}
}

// readInput resolves the SQL input: an inline query, a file, or stdin
// when the file is "-".
func readInput(query, file string, stdin io.Reader) (string, error) {
	switch {
	case query != "" && file != "":
		return "", fmt.Errorf("use either --query or --file, not both")
	case query != "":
		return query, nil
	case file == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("provide SQL with --query or --file")
	}
}

// outputFormat applies the config default when the flag was not set.
func outputFormat(cmd *cobra.Command, format string) string {
	if !cmd.Flags().Changed("format") && cfg.Defaults.Format != "" {
		return cfg.Defaults.Format
	}
	return format
}

// openOutput returns stdout or the named file.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}

// firstNonEmpty returns the first non-blank value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Execute runs the root command.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}
