package depgraph

import (
	"fmt"
	"strings"
)

// BatchParseError reports a batch that cannot be split into statements,
// carrying the byte offset of the offending construct.
type BatchParseError struct {
	Offset  int
	Message string
}

func (e *BatchParseError) Error() string {
	return fmt.Sprintf("batch parse error at offset %d: %s", e.Offset, e.Message)
}

// SplitStatements cuts a batch into individual statements at semicolons,
// ignoring semicolons inside string literals, comments, and parentheses.
// Whitespace-only statements are dropped; an empty batch yields nil. An
// unterminated string literal aborts the whole batch.
func SplitStatements(batch string) ([]string, error) {
	var (
		stmts      []string
		start      int
		quote      byte
		quoteStart int
		depth      int
	)

	for i := 0; i < len(batch); i++ {
		c := batch[i]

		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}

		switch {
		case c == '\'' || c == '"':
			quote = c
			quoteStart = i

		case c == '-' && i+1 < len(batch) && batch[i+1] == '-':
			// Line comment runs to end of line.
			for i < len(batch) && batch[i] != '\n' {
				i++
			}

		case c == '/' && i+1 < len(batch) && batch[i+1] == '*':
			end := strings.Index(batch[i+2:], "*/")
			if end < 0 {
				i = len(batch)
				break
			}
			i += 2 + end + 1

		case c == '(':
			depth++

		case c == ')':
			if depth > 0 {
				depth--
			}

		case c == ';' && depth == 0:
			if s := strings.TrimSpace(batch[start:i]); s != "" {
				stmts = append(stmts, s)
			}
			start = i + 1
		}
	}

	if quote != 0 {
		return nil, &BatchParseError{Offset: quoteStart, Message: "unterminated string literal"}
	}

	if start < len(batch) {
		if s := strings.TrimSpace(batch[start:]); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts, nil
}
