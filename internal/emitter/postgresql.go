package emitter

import (
	"fmt"
	"regexp"

	"github.com/adrenaline09/SqlTranslator/internal/parser"
)

// returningInto collapses Oracle's `RETURNING expr INTO var` into the
// PostgreSQL `RETURNING expr` form.
var returningInto = regexp.MustCompile(`(?i)\bRETURNING\s+(.+?)\s+INTO\s+\S+`)

// postgresEmitter renders statements for PostgreSQL with native
// LIMIT/OFFSET, each valid independently of the other.
type postgresEmitter struct {
	rules RuleSet
}

func (e *postgresEmitter) Emit(st *parser.Statement) (string, error) {
	if st.Kind != parser.KindSelect {
		out := e.rules.Apply(st.Original)
		return returningInto.ReplaceAllString(out, "RETURNING $1"), nil
	}

	body := assembleSelect(st)
	p, err := parsePage(st)
	if err != nil {
		return "", err
	}
	if p.hasLimit {
		body = fmt.Sprintf("%s LIMIT %d", body, p.limit)
	}
	if p.hasOffset {
		body = fmt.Sprintf("%s OFFSET %d", body, p.offset)
	}
	return e.rules.Apply(body), nil
}
