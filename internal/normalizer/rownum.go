package normalizer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Oracle pagination shapes, innermost query captured greedily because the
// expressions are anchored at both ends of the cleaned statement.
var (
	doubleWrap = regexp.MustCompile(`(?i)^SELECT\s+\*\s+FROM\s*\(\s*SELECT\s+a\.\*\s*,\s*ROWNUM\s+rnum\s+FROM\s*\((.*)\)\s*a\s+WHERE\s+ROWNUM\s*(<=?)\s*(\d+)\s*\)\s*WHERE\s+rnum\s*>\s*(\d+)\s*$`)
	singleWrap = regexp.MustCompile(`(?i)^SELECT\s+\*\s+FROM\s*\((.*)\)\s*WHERE\s+ROWNUM\s*(<=?)\s*(\d+)\s*$`)
	trailing   = regexp.MustCompile(`(?i)\s+(WHERE|AND)\s+ROWNUM\s*(<=?)\s*(\d+)\s*$`)
)

// UnwrapRownum rewrites Oracle ROWNUM pagination into LIMIT/OFFSET so the
// downstream emitters only ever see the ANSI shape. Recognizes the nested
// subquery wrappers Oracle uses for OFFSET pagination as well as a bare
// trailing ROWNUM predicate. Extraction is heuristic; unrecognized shapes
// pass through unchanged.
func UnwrapRownum(sql string) string {
	if m := doubleWrap.FindStringSubmatch(sql); m != nil {
		inner := strings.TrimSpace(m[1])
		total := rownumBound(m[2], m[3])
		offset, _ := strconv.Atoi(m[4])
		limit := total - offset
		if limit < 0 {
			return sql
		}
		if offset > 0 {
			return fmt.Sprintf("%s LIMIT %d OFFSET %d", inner, limit, offset)
		}
		return fmt.Sprintf("%s LIMIT %d", inner, limit)
	}

	if m := singleWrap.FindStringSubmatch(sql); m != nil {
		inner := strings.TrimSpace(m[1])
		return fmt.Sprintf("%s LIMIT %d", inner, rownumBound(m[2], m[3]))
	}

	if m := trailing.FindStringSubmatch(sql); m != nil {
		limit := rownumBound(m[2], m[3])
		stripped := strings.TrimSpace(trailing.ReplaceAllString(sql, ""))
		return fmt.Sprintf("%s LIMIT %d", stripped, limit)
	}

	return sql
}

// rownumBound converts a ROWNUM comparison into a row count: ROWNUM <= n
// keeps n rows, ROWNUM < n keeps n-1.
func rownumBound(op, value string) int {
	n, _ := strconv.Atoi(value)
	if op == "<" {
		return n - 1
	}
	return n
}
