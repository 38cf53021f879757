// Package parser classifies a cleaned SQL statement and extracts a
// dialect-neutral intermediate form: a statement kind plus a flat mapping of
// clause name to raw text fragment.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Kind classifies a statement by its leading keyword.
type Kind int

const (
	KindSelect Kind = iota
	KindInsert
	KindUpdate
	KindDelete
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "SELECT"
	case KindInsert:
		return "INSERT"
	case KindUpdate:
		return "UPDATE"
	case KindDelete:
		return "DELETE"
	default:
		return "OTHER"
	}
}

// Clause names a SELECT clause slot in the intermediate form.
type Clause string

const (
	ClauseSelect  Clause = "select"
	ClauseFrom    Clause = "from"
	ClauseWhere   Clause = "where"
	ClauseGroupBy Clause = "group_by"
	ClauseHaving  Clause = "having"
	ClauseOrderBy Clause = "order_by"
	ClauseLimit   Clause = "limit"
	ClauseOffset  Clause = "offset"
)

// Statement is the dialect-neutral intermediate representation.
// Clauses holds only the clauses present in the source; a missing key means
// the clause was absent, never that it was empty. Original retains the
// verbatim source text, which non-SELECT emitters pass through.
type Statement struct {
	Kind     Kind
	Clauses  map[Clause]string
	Original string
}

// Has reports whether the statement carries the given clause.
func (s *Statement) Has(c Clause) bool {
	_, ok := s.Clauses[c]
	return ok
}

// ErrEmptyStatement is returned for empty or whitespace-only input.
var ErrEmptyStatement = errors.New("empty or whitespace-only statement")

// ParseError reports a statement the parser could not structure.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return "parse: " + e.Message }

var leadingWord = regexp.MustCompile(`^\s*([A-Za-z]+)`)

// clauseBoundaries lists the top-level SELECT keywords in canonical order.
var clauseBoundaries = []struct {
	keyword string
	clause  Clause
}{
	{"FROM", ClauseFrom},
	{"WHERE", ClauseWhere},
	{"GROUP BY", ClauseGroupBy},
	{"HAVING", ClauseHaving},
	{"ORDER BY", ClauseOrderBy},
	{"LIMIT", ClauseLimit},
	{"OFFSET", ClauseOffset},
}

// Parse classifies a cleaned statement and, for SELECT, splits it into
// clauses at top-level keyword boundaries. Keywords inside parenthesized
// subqueries or string literals are not boundaries. INSERT/UPDATE/DELETE and
// unrecognized statements carry only their original text.
func Parse(sql string) (*Statement, error) {
	trimmed := strings.TrimSpace(sql)
	if trimmed == "" {
		return nil, ErrEmptyStatement
	}
	if err := checkBalanced(trimmed); err != nil {
		return nil, err
	}

	st := &Statement{
		Kind:     classify(trimmed),
		Clauses:  map[Clause]string{},
		Original: trimmed,
	}

	if st.Kind == KindSelect {
		if err := splitSelect(trimmed, st.Clauses); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func classify(sql string) Kind {
	m := leadingWord.FindStringSubmatch(sql)
	if m == nil {
		return KindOther
	}
	switch strings.ToUpper(m[1]) {
	case "SELECT":
		return KindSelect
	case "INSERT":
		return KindInsert
	case "UPDATE":
		return KindUpdate
	case "DELETE":
		return KindDelete
	default:
		return KindOther
	}
}

// splitSelect cuts the statement into clause fragments. Text between two
// keyword boundaries (or end of statement) belongs to the earlier keyword;
// text between SELECT and the first boundary is the select list.
func splitSelect(sql string, clauses map[Clause]string) error {
	type boundary struct {
		clause     Clause
		start, end int // keyword span
	}

	var found []boundary
	pos := len("SELECT")
	for _, cb := range clauseBoundaries {
		i := indexTopLevel(sql, cb.keyword, pos)
		if i < 0 {
			continue
		}
		found = append(found, boundary{cb.clause, i, i + len(cb.keyword)})
		pos = i + len(cb.keyword)
	}

	selEnd := len(sql)
	if len(found) > 0 {
		selEnd = found[0].start
	}
	if sel := strings.TrimSpace(sql[len("SELECT"):selEnd]); sel != "" {
		clauses[ClauseSelect] = sel
	}

	for i, b := range found {
		end := len(sql)
		if i+1 < len(found) {
			end = found[i+1].start
		}
		frag := strings.TrimSpace(sql[b.end:end])
		if frag == "" {
			return &ParseError{Message: fmt.Sprintf("clause %s has no content", b.clause)}
		}
		clauses[b.clause] = frag
	}
	return nil
}

// checkBalanced verifies parentheses are balanced outside string literals.
func checkBalanced(sql string) error {
	depth := 0
	var quote byte
	for i := 0; i < len(sql); i++ {
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
			depth--
			if depth < 0 {
				return &ParseError{Message: "unbalanced parentheses"}
			}
		}
	}
	if depth != 0 {
		return &ParseError{Message: "unbalanced parentheses"}
	}
	if quote != 0 {
		return &ParseError{Message: "unterminated string literal"}
	}
	return nil
}

// indexTopLevel finds a keyword outside quotes and parentheses at or after
// the given offset. Multi-word keywords must be single-space separated,
// which the cleaner guarantees.
func indexTopLevel(sql, keyword string, from int) int {
	depth := 0
	var quote byte
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
			if depth == 0 && matchKeywordAt(sql, i, keyword) {
				return i
			}
		}
	}
	return -1
}

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
