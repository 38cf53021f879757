package emitter

import (
	"fmt"

	"github.com/adrenaline09/SqlTranslator/internal/parser"
)

// mysqlEmitter renders statements for MySQL with native LIMIT/OFFSET.
type mysqlEmitter struct {
	rules RuleSet
}

func (e *mysqlEmitter) Emit(st *parser.Statement) (string, error) {
	if st.Kind != parser.KindSelect {
		return e.rules.Apply(st.Original), nil
	}

	body := assembleSelect(st)
	p, err := parsePage(st)
	if err != nil {
		return "", err
	}
	if p.hasLimit {
		body = fmt.Sprintf("%s LIMIT %d", body, p.limit)
		// MySQL requires a LIMIT for OFFSET to be valid.
		if p.hasOffset {
			body = fmt.Sprintf("%s OFFSET %d", body, p.offset)
		}
	}
	return e.rules.Apply(body), nil
}
