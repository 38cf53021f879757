package depgraph

import (
	"regexp"
	"strings"
)

// Compiled extraction patterns, all case-insensitive. Schema-qualified
// names are captured whole; table names are compared lowercase.
var createPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bCREATE\s+(?:OR\s+REPLACE\s+)?(?:GLOBAL\s+TEMPORARY\s+)?TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?(\w+(?:\.\w+)?)`),
	regexp.MustCompile(`(?i)\bCREATE\s+(?:OR\s+REPLACE\s+)?(?:MATERIALIZED\s+)?VIEW\s+(?:IF\s+NOT\s+EXISTS\s+)?(\w+(?:\.\w+)?)`),
}

var referencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bFROM\s+(\w+(?:\.\w+)?)`),
	regexp.MustCompile(`(?i)\bJOIN\s+(\w+(?:\.\w+)?)`),
	regexp.MustCompile(`(?i)\bREFERENCES\s+(\w+(?:\.\w+)?)`),
	regexp.MustCompile(`(?i)\bINSERT\s+INTO\s+(\w+(?:\.\w+)?)`),
	regexp.MustCompile(`(?i)\bUPDATE\s+(\w+(?:\.\w+)?)\s+SET\b`),
	regexp.MustCompile(`(?i)\bDELETE\s+FROM\s+(\w+(?:\.\w+)?)`),
}

// Words a reference pattern can capture that are never table names,
// typically SQL keywords that follow FROM in non-table positions
// (EXTRACT(... FROM col), SUBSTRING(... FROM n), DELETE FROM inside text).
var keywordStopList = map[string]struct{}{
	"select":   {},
	"where":    {},
	"dual":     {},
	"values":   {},
	"set":      {},
	"interval": {},
	"unnest":   {},
	"lateral":  {},
}

// extractTables pulls created and referenced table names out of one
// statement. Names are lowercased; references to a table the same statement
// creates are dropped; order of first appearance is preserved.
func extractTables(stmt string) (creates, references []string) {
	created := map[string]struct{}{}
	for _, re := range createPatterns {
		for _, m := range re.FindAllStringSubmatch(stmt, -1) {
			name := strings.ToLower(m[1])
			if _, dup := created[name]; dup {
				continue
			}
			created[name] = struct{}{}
			creates = append(creates, name)
		}
	}

	seen := map[string]struct{}{}
	for _, re := range referencePatterns {
		for _, m := range re.FindAllStringSubmatch(stmt, -1) {
			name := strings.ToLower(m[1])
			if _, stop := keywordStopList[name]; stop {
				continue
			}
			if _, self := created[name]; self {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			references = append(references, name)
		}
	}
	return creates, references
}
