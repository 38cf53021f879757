// Package emitter renders a parsed statement in a target dialect's surface
// syntax: clause reassembly, pagination rewriting, and function-name
// substitution driven by per-pair rule tables.
package emitter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/adrenaline09/SqlTranslator/internal/dialect"
	"github.com/adrenaline09/SqlTranslator/internal/parser"
)

// EmissionError reports a pagination clause whose value cannot be rendered
// in the target dialect, typically a non-numeric LIMIT or OFFSET.
type EmissionError struct {
	Clause string
	Value  string
}

func (e *EmissionError) Error() string {
	return fmt.Sprintf("emit: %s value %q is not numeric", e.Clause, e.Value)
}

// Emitter renders a parsed statement for one target dialect.
type Emitter interface {
	Emit(st *parser.Statement) (string, error)
}

// New constructs the emitter for the target dialect, loading the
// substitution table for the (source, target) pair. The table is immutable
// after construction; emitters are safe for concurrent use.
func New(source, target dialect.Dialect) (Emitter, error) {
	rules := rulesFor(source, target)
	switch target {
	case dialect.Oracle:
		return &oracleEmitter{rules: rules}, nil
	case dialect.MySQL:
		return &mysqlEmitter{rules: rules}, nil
	case dialect.PostgreSQL:
		return &postgresEmitter{rules: rules}, nil
	case dialect.PySpark:
		return &sparkEmitter{rules: rules}, nil
	}
	return nil, fmt.Errorf("no emitter for target dialect %q", target)
}

// bodyClauses is the reassembly order for everything except pagination,
// which each emitter renders in its own syntax.
var bodyClauses = []struct {
	clause  parser.Clause
	keyword string
}{
	{parser.ClauseFrom, "FROM"},
	{parser.ClauseWhere, "WHERE"},
	{parser.ClauseGroupBy, "GROUP BY"},
	{parser.ClauseHaving, "HAVING"},
	{parser.ClauseOrderBy, "ORDER BY"},
}

// assembleSelect rebuilds the SELECT body from the intermediate clauses,
// leaving pagination to the caller.
func assembleSelect(st *parser.Statement) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	if sel, ok := st.Clauses[parser.ClauseSelect]; ok {
		b.WriteString(sel)
	} else {
		b.WriteString("*")
	}
	for _, c := range bodyClauses {
		if frag, ok := st.Clauses[c.clause]; ok {
			b.WriteString(" ")
			b.WriteString(c.keyword)
			b.WriteString(" ")
			b.WriteString(frag)
		}
	}
	return b.String()
}

// page holds the numeric pagination extracted from a statement.
type page struct {
	limit, offset       int
	hasLimit, hasOffset bool
}

// parsePage reads LIMIT and OFFSET clauses into numbers. The MySQL comma
// form `LIMIT off, lim` is recognized in the limit clause; an explicit
// OFFSET clause takes precedence over the comma form.
func parsePage(st *parser.Statement) (page, error) {
	var p page
	if raw, ok := st.Clauses[parser.ClauseLimit]; ok {
		limPart := raw
		if off, lim, found := strings.Cut(raw, ","); found {
			n, err := clauseInt(parser.ClauseLimit, off)
			if err != nil {
				return p, err
			}
			p.offset, p.hasOffset = n, true
			limPart = lim
		}
		n, err := clauseInt(parser.ClauseLimit, limPart)
		if err != nil {
			return p, err
		}
		p.limit, p.hasLimit = n, true
	}
	if raw, ok := st.Clauses[parser.ClauseOffset]; ok {
		n, err := clauseInt(parser.ClauseOffset, raw)
		if err != nil {
			return p, err
		}
		p.offset, p.hasOffset = n, true
	}
	return p, nil
}

func clauseInt(clause parser.Clause, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &EmissionError{Clause: string(clause), Value: strings.TrimSpace(raw)}
	}
	return n, nil
}
