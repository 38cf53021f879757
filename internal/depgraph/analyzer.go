// Package depgraph orders a batch of DDL/DML statements by inter-table
// dependency: it extracts created and referenced table names per statement,
// builds a dependency graph, and produces a topological creation order plus
// the set of tables the batch uses but never creates.
package depgraph

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

// MaxBatchStatements caps the number of statements a single analysis
// accepts.
const MaxBatchStatements = 1000

// ErrBatchTooLarge is returned when a batch exceeds MaxBatchStatements.
var ErrBatchTooLarge = errors.New("batch exceeds statement limit")

// StatementDetail records the tables one statement creates and references.
type StatementDetail struct {
	Text       string   `json:"text"`
	Creates    []string `json:"creates"`
	References []string `json:"references"`
}

// Totals summarizes an analysis.
type Totals struct {
	Statements    int `json:"statements"`
	Tables        int `json:"tables"`
	CreatedTables int `json:"created_tables"`
}

// Result is the outcome of analyzing one batch.
type Result struct {
	CreationOrder        []string          `json:"creation_order"`
	ExternalDependencies []string          `json:"external_dependencies"`
	Cycles               []string          `json:"cycles,omitempty"`
	Statements           []StatementDetail `json:"statements"`
	Totals               Totals            `json:"totals"`
}

// Analyze splits the batch, extracts per-statement table usage, and orders
// the created tables so dependencies come first. Tables referenced but never
// created are reported sorted in ExternalDependencies. Cyclic tables still
// appear in the creation order and are listed in Cycles.
func Analyze(batch string) (*Result, error) {
	stmts, err := SplitStatements(batch)
	if err != nil {
		return nil, err
	}
	if len(stmts) > MaxBatchStatements {
		return nil, fmt.Errorf("%w: %d statements, limit %d",
			ErrBatchTooLarge, len(stmts), MaxBatchStatements)
	}

	details := make([]StatementDetail, 0, len(stmts))
	created := map[string]struct{}{}
	referenced := map[string]struct{}{}
	for _, stmt := range stmts {
		creates, refs := extractTables(stmt)
		details = append(details, StatementDetail{
			Text:       stmt,
			Creates:    creates,
			References: refs,
		})
		for _, t := range creates {
			created[t] = struct{}{}
		}
		for _, t := range refs {
			referenced[t] = struct{}{}
		}
	}

	var external []string
	for t := range referenced {
		if _, ok := created[t]; !ok {
			external = append(external, t)
		}
	}
	sort.Strings(external)

	order, cycles := creationOrder(details)
	if len(cycles) > 0 {
		slog.Warn("circular table dependencies detected", "tables", cycles)
	}

	return &Result{
		CreationOrder:        order,
		ExternalDependencies: external,
		Cycles:               cycles,
		Statements:           details,
		Totals: Totals{
			Statements:    len(stmts),
			Tables:        len(created) + len(external),
			CreatedTables: len(created),
		},
	}, nil
}
