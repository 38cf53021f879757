// Package removals loads custom-removal rules: text patterns stripped from
// every statement during cleaning. Rules come from a project-local
// .sqltranslator-removals.yml plus the removals list in the main config.
package removals

import (
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Removal is a single rule in the removals file. Pattern is either a literal
// string or a regular expression; the cleaner decides which.
type Removal struct {
	Pattern string `yaml:"pattern"`
	Reason  string `yaml:"reason,omitempty"`
}

// removalsFile is the structure of .sqltranslator-removals.yml.
type removalsFile struct {
	Removals []Removal `yaml:"removals"`
}

// Rules holds removal patterns from all sources.
type Rules struct {
	file           removalsFile
	configPatterns []string
}

// LoadRules loads removal rules from .sqltranslator-removals.yml in the
// given directory. A missing file is not an error.
func LoadRules(dir string) (*Rules, error) {
	r := &Rules{}

	path := filepath.Join(dir, ".sqltranslator-removals.yml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, &r.file); err != nil {
		return nil, err
	}
	return r, nil
}

// WithConfigPatterns adds removal patterns from the main config. They run
// after the file's rules.
func (r *Rules) WithConfigPatterns(patterns []string) {
	r.configPatterns = patterns
}

// Patterns returns all removal patterns in application order: file rules
// first, then config patterns.
func (r *Rules) Patterns() []string {
	out := make([]string, 0, len(r.file.Removals)+len(r.configPatterns))
	for _, rm := range r.file.Removals {
		if rm.Pattern != "" {
			out = append(out, rm.Pattern)
		}
	}
	return append(out, r.configPatterns...)
}
