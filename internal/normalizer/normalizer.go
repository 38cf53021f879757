// Package normalizer rewrites legacy SQL shapes into ANSI form ahead of
// parsing: comma-joins with WHERE-clause join predicates become JOIN ... ON,
// and Oracle ROWNUM pagination wrappers become LIMIT/OFFSET clauses.
package normalizer

import (
	"regexp"
	"strings"
)

var (
	selectPrefix = regexp.MustCompile(`(?i)^\s*SELECT\b`)
	joinWord     = regexp.MustCompile(`(?i)\bJOIN\b`)
	andSplit     = regexp.MustCompile(`(?i)\s+AND\s+`)
	// Equality predicate between two qualified column references.
	joinPredicate = regexp.MustCompile(`(?i)^(\w+)\.(\w+)\s*=\s*(\w+)\.(\w+)$`)
)

var boundaryKeywords = []string{"WHERE", "GROUP BY", "HAVING", "ORDER BY", "LIMIT", "OFFSET"}

// NormalizeJoins rewrites a legacy comma-join SELECT into ANSI JOIN syntax.
// Only equality predicates between two distinct table aliases are treated as
// join conditions; every other predicate stays in WHERE. Statements without
// a comma-join pattern pass through unchanged. This is a syntactic
// heuristic, not a semantic analysis.
func NormalizeJoins(sql string) string {
	if !selectPrefix.MatchString(sql) {
		return sql
	}

	fromKw := indexTopLevel(sql, "FROM", 0)
	if fromKw < 0 {
		return sql
	}
	fromStart := fromKw + len("FROM")
	fromEnd := clauseEnd(sql, fromStart, boundaryKeywords)

	fromClause := strings.TrimSpace(sql[fromStart:fromEnd])
	if !strings.Contains(fromClause, ",") || joinWord.MatchString(fromClause) {
		return sql
	}

	whereKw := indexTopLevel(sql, "WHERE", fromEnd)
	if whereKw < 0 {
		return sql
	}
	whereStart := whereKw + len("WHERE")
	whereEnd := clauseEnd(sql, whereStart, boundaryKeywords[1:])
	whereClause := strings.TrimSpace(sql[whereStart:whereEnd])

	tables := splitTables(fromClause)
	if len(tables) < 2 {
		return sql
	}

	joinConds, rest := classifyPredicates(andSplit.Split(whereClause, -1))
	if len(joinConds) == 0 {
		return sql
	}

	joinClause, leftover := buildJoinClause(tables, joinConds)
	rest = append(rest, leftover...)

	var b strings.Builder
	b.WriteString(sql[:fromStart])
	b.WriteString(" ")
	b.WriteString(joinClause)
	if len(rest) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(rest, " AND "))
	}
	if tail := strings.TrimSpace(sql[whereEnd:]); tail != "" {
		b.WriteString(" ")
		b.WriteString(tail)
	}
	return b.String()
}

// classifyPredicates separates join conditions (equality between two
// different table references) from ordinary WHERE predicates.
func classifyPredicates(predicates []string) (joins, rest []string) {
	for _, p := range predicates {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if m := joinPredicate.FindStringSubmatch(p); m != nil && !strings.EqualFold(m[1], m[3]) {
			joins = append(joins, p)
			continue
		}
		rest = append(rest, p)
	}
	return joins, rest
}

// buildJoinClause chains the comma-listed tables into JOIN ... ON steps,
// consuming join conditions as each new table becomes reachable. Conditions
// that cannot be attached are returned so the caller keeps them in WHERE.
func buildJoinClause(tables []string, joinConds []string) (string, []string) {
	used := map[string]bool{}
	markUsed(used, tables[0])

	clause := tables[0]
	pending := append([]string(nil), joinConds...)
	var leftover []string

	for progress := true; progress && len(pending) > 0; {
		progress = false
		var next []string
		for _, cond := range pending {
			m := joinPredicate.FindStringSubmatch(cond)
			left, right := strings.ToLower(m[1]), strings.ToLower(m[3])
			switch {
			case used[left] && used[right]:
				// Both sides already joined: an extra predicate, not a new edge.
				leftover = append(leftover, cond)
				progress = true
			case used[left] || used[right]:
				other := right
				if used[right] {
					other = left
				}
				entry := findTableEntry(tables, other)
				clause += " JOIN " + entry + " ON " + cond
				markUsed(used, entry)
				used[other] = true
				progress = true
			default:
				next = append(next, cond)
			}
		}
		pending = next
	}
	leftover = append(leftover, pending...)

	// Tables never reached by a join condition fall back to CROSS JOIN.
	for _, t := range tables[1:] {
		if !used[strings.ToLower(tableAlias(t))] {
			clause += " CROSS JOIN " + t
			markUsed(used, t)
		}
	}
	return clause, leftover
}

// splitTables splits a FROM clause on commas, respecting parentheses.
func splitTables(fromClause string) []string {
	var tables []string
	depth := 0
	start := 0
	for i, r := range fromClause {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				tables = append(tables, strings.TrimSpace(fromClause[start:i]))
				start = i + 1
			}
		}
	}
	tables = append(tables, strings.TrimSpace(fromClause[start:]))
	return tables
}

// tableAlias returns the name a table entry is referenced by: the alias if
// present, otherwise the unqualified table name.
func tableAlias(entry string) string {
	fields := strings.Fields(entry)
	if len(fields) == 0 {
		return entry
	}
	last := fields[len(fields)-1]
	if dot := strings.LastIndex(last, "."); dot >= 0 {
		last = last[dot+1:]
	}
	return last
}

func markUsed(used map[string]bool, entry string) {
	used[strings.ToLower(tableAlias(entry))] = true
	fields := strings.Fields(entry)
	if len(fields) > 0 {
		name := fields[0]
		if dot := strings.LastIndex(name, "."); dot >= 0 {
			name = name[dot+1:]
		}
		used[strings.ToLower(name)] = true
	}
}

// findTableEntry resolves a referenced alias back to its FROM-clause entry
// (which may carry a schema qualifier or alias).
func findTableEntry(tables []string, ref string) string {
	for _, t := range tables {
		if strings.EqualFold(tableAlias(t), ref) {
			return t
		}
		fields := strings.Fields(t)
		if len(fields) > 0 && strings.EqualFold(fields[0], ref) {
			return t
		}
	}
	return ref
}

// indexTopLevel finds the byte offset of a keyword appearing outside quotes
// and parentheses at or after the given position. Returns -1 if absent.
// Multi-word keywords must be single-space separated (cleaned input).
func indexTopLevel(sql, keyword string, from int) int {
	depth := 0
	var quote byte
	kw := strings.ToUpper(keyword)

	for i := from; i < len(sql); i++ {
		c := sql[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 && matchKeywordAt(sql, i, kw) {
				return i
			}
		}
	}
	return -1
}

// matchKeywordAt reports whether the keyword starts at offset i with word
// boundaries on both sides.
func matchKeywordAt(sql string, i int, kw string) bool {
	if i+len(kw) > len(sql) {
		return false
	}
	if !strings.EqualFold(sql[i:i+len(kw)], kw) {
		return false
	}
	if i > 0 && isWordByte(sql[i-1]) {
		return false
	}
	if end := i + len(kw); end < len(sql) && isWordByte(sql[end]) {
		return false
	}
	return true
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// clauseEnd returns the offset where the clause starting at `from` ends:
// the position of the next top-level boundary keyword, or end of statement.
func clauseEnd(sql string, from int, boundaries []string) int {
	end := len(sql)
	for _, kw := range boundaries {
		if i := indexTopLevel(sql, kw, from); i >= 0 && i < end {
			end = i
		}
	}
	return end
}
