// Package baseline filters known external tables out of analysis results. A
// baseline file records tables that are expected to live outside the batch
// (reference data, other teams' schemas) so repeat runs only surface new
// external dependencies.
package baseline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Baseline holds table names accepted as known external dependencies.
type Baseline struct {
	Tables []string `json:"tables"`
	set    map[string]bool
}

// Load reads a baseline file. Returns an empty baseline if the file does not
// exist.
func Load(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Baseline{set: make(map[string]bool)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read baseline: %w", err)
	}

	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse baseline: %w", err)
	}
	b.set = make(map[string]bool, len(b.Tables))
	for _, t := range b.Tables {
		b.set[strings.ToLower(t)] = true
	}
	return &b, nil
}

// Save writes the table names to a baseline file, deduplicated and sorted.
func Save(path string, tables []string) error {
	uniq := make([]string, 0, len(tables))
	seen := make(map[string]bool)
	for _, t := range tables {
		t = strings.ToLower(t)
		if !seen[t] {
			uniq = append(uniq, t)
			seen[t] = true
		}
	}
	sort.Strings(uniq)

	b := Baseline{Tables: uniq}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal baseline: %w", err)
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// Contains returns true if the table is a known external dependency.
func (b *Baseline) Contains(table string) bool {
	return b.set[strings.ToLower(table)]
}

// Filter removes baselined tables and returns the remaining ones plus the
// number filtered out.
func (b *Baseline) Filter(tables []string) ([]string, int) {
	if len(b.set) == 0 {
		return tables, 0
	}

	var filtered []string
	suppressed := 0
	for _, t := range tables {
		if b.Contains(t) {
			suppressed++
		} else {
			filtered = append(filtered, t)
		}
	}
	return filtered, suppressed
}
