package config

import (
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

// Config holds all sqltranslator configuration.
type Config struct {
	Defaults  Defaults  `yaml:"defaults"`
	Removals  []string  `yaml:"removals"`
	Optimizer Optimizer `yaml:"optimizer"`
	Verify    Verify    `yaml:"verify"`
}

// Defaults holds default CLI flag values.
type Defaults struct {
	Source  string `yaml:"source"`
	Target  string `yaml:"target"`
	Format  string `yaml:"format"`
	Timeout string `yaml:"timeout"` // parsed as time.Duration
}

// Optimizer configures the optimization-suggestion service.
type Optimizer struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
}

// Verify holds connection strings for live statement verification.
type Verify struct {
	PostgresURL string `yaml:"postgres_url"`
	MySQLDSN    string `yaml:"mysql_dsn"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Defaults: Defaults{
			Format:  "text",
			Timeout: "30s",
		},
	}
}

// Load reads configuration from .sqltranslator.yml in the given directory,
// falling back to ~/.sqltranslator.yml. Returns DefaultConfig if no file
// found.
func Load(dir string) (Config, error) {
	cfg := DefaultConfig()

	paths := []string{filepath.Join(dir, ".sqltranslator.yml")}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".sqltranslator.yml"))
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	return cfg, nil
}

// TimeoutDuration parses the Defaults.Timeout string as a time.Duration.
// Returns 30s if parsing fails.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Defaults.Timeout == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(c.Defaults.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
