package emitter

import (
	"fmt"

	"github.com/adrenaline09/SqlTranslator/internal/parser"
)

// sparkEmitter renders statements for Spark SQL. LIMIT is native; OFFSET has
// no Spark SQL equivalent and is preserved as a trailing comment so the
// dropped window is visible in the output. UPDATE and DELETE depend on the
// table format (Delta and friends), so they carry an advisory note.
type sparkEmitter struct {
	rules RuleSet
}

func (e *sparkEmitter) Emit(st *parser.Statement) (string, error) {
	switch st.Kind {
	case parser.KindSelect:
		body := assembleSelect(st)
		p, err := parsePage(st)
		if err != nil {
			return "", err
		}
		if p.hasLimit {
			body = fmt.Sprintf("%s LIMIT %d", body, p.limit)
		}
		body = e.rules.Apply(body)
		if p.hasOffset {
			body = fmt.Sprintf("%s -- OFFSET %d (unsupported in Spark SQL)", body, p.offset)
		}
		return body, nil

	case parser.KindUpdate:
		return "-- Note: Spark SQL supports UPDATE only on compatible table formats.\n" +
			e.rules.Apply(st.Original), nil
	case parser.KindDelete:
		return "-- Note: Spark SQL supports DELETE only on compatible table formats.\n" +
			e.rules.Apply(st.Original), nil
	}
	return e.rules.Apply(st.Original), nil
}
