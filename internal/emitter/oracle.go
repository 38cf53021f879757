package emitter

import (
	"fmt"

	"github.com/adrenaline09/SqlTranslator/internal/parser"
)

// oracleEmitter renders statements for Oracle. Oracle has no LIMIT/OFFSET,
// so pagination becomes ROWNUM wrapping: a single wrap for LIMIT alone, a
// nested double wrap when an OFFSET is involved.
type oracleEmitter struct {
	rules RuleSet
}

func (e *oracleEmitter) Emit(st *parser.Statement) (string, error) {
	if st.Kind != parser.KindSelect {
		return e.rules.Apply(st.Original), nil
	}

	body := e.rules.Apply(assembleSelect(st))
	p, err := parsePage(st)
	if err != nil {
		return "", err
	}

	switch {
	case p.hasOffset:
		return fmt.Sprintf(
			"SELECT * FROM ( SELECT a.*, ROWNUM rnum FROM ( %s ) a WHERE ROWNUM <= %d ) WHERE rnum > %d",
			body, p.offset+p.limit, p.offset), nil
	case p.hasLimit:
		return fmt.Sprintf("SELECT * FROM ( %s ) WHERE ROWNUM <= %d", body, p.limit), nil
	}
	return body, nil
}
