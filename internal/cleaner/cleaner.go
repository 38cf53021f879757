// Package cleaner strips comments, optimizer hints, and user-specified
// removal patterns from raw SQL text before parsing.
package cleaner

import (
	"fmt"
	"regexp"
	"strings"
)

// PatternError reports a custom removal pattern that failed to compile.
// The offending pattern is skipped; cleaning continues with the rest.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid removal pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

var (
	controlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F-\x9F]`)
	lineComment  = regexp.MustCompile(`(?m)--.*$`)
	oracleHint   = regexp.MustCompile(`(?s)/\*\+.*?\*/`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineBreaks   = regexp.MustCompile(`[\t\n\r]+`)
	multiSpace   = regexp.MustCompile(`\s{2,}`)
	openParenWS  = regexp.MustCompile(`\(\s+`)
	closeParenWS = regexp.MustCompile(`\s+\)`)
	tightComma   = regexp.MustCompile(`,(\S)`)
)

// Clean normalizes a raw SQL string: control characters, line and block
// comments, and Oracle-style optimizer hints are removed, whitespace is
// collapsed, and custom removal patterns are applied in their listed order.
// Each step is idempotent, so cleaning already-clean SQL is a no-op.
//
// A pattern without regex metacharacters is matched literally; anything else
// must compile as a regex. Invalid patterns are reported as *PatternError
// values and skipped; cleaning is never aborted.
func Clean(sql string, customRemovals []string) (string, []error) {
	sql = strings.ReplaceAll(sql, "\x00", "")
	sql = controlChars.ReplaceAllString(sql, "")

	var errs []error
	for _, pat := range customRemovals {
		re, err := compileRemoval(pat)
		if err != nil {
			errs = append(errs, &PatternError{Pattern: pat, Err: err})
			continue
		}
		sql = re.ReplaceAllString(sql, "")
	}

	sql = lineComment.ReplaceAllString(sql, " ")
	sql = oracleHint.ReplaceAllString(sql, " ")
	sql = blockComment.ReplaceAllString(sql, " ")

	sql = lineBreaks.ReplaceAllString(sql, " ")
	sql = multiSpace.ReplaceAllString(sql, " ")
	sql = openParenWS.ReplaceAllString(sql, "(")
	sql = closeParenWS.ReplaceAllString(sql, ")")
	sql = tightComma.ReplaceAllString(sql, ", $1")

	return strings.TrimSpace(sql), errs
}

// compileRemoval builds a case-insensitive matcher for a removal pattern.
// Plain strings (no regex metacharacters) are escaped and matched literally.
func compileRemoval(pat string) (*regexp.Regexp, error) {
	if regexp.QuoteMeta(pat) == pat {
		return regexp.Compile(`(?i)` + regexp.QuoteMeta(pat))
	}
	return regexp.Compile(`(?i)` + pat)
}
