package converter

import (
	"errors"
	"strings"
	"testing"

	"github.com/adrenaline09/SqlTranslator/internal/dialect"
	"github.com/adrenaline09/SqlTranslator/internal/emitter"
	"github.com/adrenaline09/SqlTranslator/internal/parser"
)

func TestConvertEndToEnd(t *testing.T) {
	tests := []struct {
		name           string
		sql            string
		source, target dialect.Dialect
		want           string
	}{
		{
			name:   "oracle comma join with rownum to mysql",
			sql:    "SELECT e.name, d.name FROM employees e, departments d WHERE e.dept_id = d.id AND ROWNUM <= 10",
			source: dialect.Oracle,
			target: dialect.MySQL,
			want:   "SELECT e.name, d.name FROM employees e JOIN departments d ON e.dept_id = d.id LIMIT 10",
		},
		{
			name:   "mysql pagination to postgresql",
			sql:    "SELECT * FROM t LIMIT 5, 10",
			source: dialect.MySQL,
			target: dialect.PostgreSQL,
			want:   "SELECT * FROM t LIMIT 10 OFFSET 5",
		},
		{
			name:   "comments stripped before translation",
			sql:    "SELECT /*+ FULL(t) */ NVL(a, 0) -- default zero\nFROM t",
			source: dialect.Oracle,
			target: dialect.PostgreSQL,
			want:   "SELECT COALESCE(a, 0) FROM t",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.sql, tt.source, tt.target, nil)
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertSameDialectCleansOnly(t *testing.T) {
	got, err := Convert("SELECT  a   FROM t -- note", dialect.MySQL, dialect.MySQL, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "SELECT a FROM t" {
		t.Errorf("got %q", got)
	}
}

func TestConvertOracleRownumRoundTrip(t *testing.T) {
	// The double-wrapped pagination the Oracle emitter produces should come
	// back out as LIMIT/OFFSET.
	wrapped, err := Convert("SELECT * FROM t LIMIT 10 OFFSET 5", dialect.MySQL, dialect.Oracle, nil)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Convert(wrapped, dialect.Oracle, dialect.MySQL, nil)
	if err != nil {
		t.Fatal(err)
	}
	if back != "SELECT * FROM t LIMIT 10 OFFSET 5" {
		t.Errorf("round trip produced %q", back)
	}
}

func TestConvertParseFailure(t *testing.T) {
	_, err := Convert("SELECT * FROM (t", dialect.MySQL, dialect.Oracle, nil)
	var ce *ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("want *ConversionError, got %v", err)
	}
	if ce.Stage != StageParse {
		t.Errorf("stage = %q, want %q", ce.Stage, StageParse)
	}
	var pe *parser.ParseError
	if !errors.As(err, &pe) {
		t.Errorf("wrapped error should be *parser.ParseError, got %v", ce.Err)
	}
}

func TestConvertEmitFailure(t *testing.T) {
	_, err := Convert("SELECT * FROM t LIMIT :n", dialect.MySQL, dialect.Oracle, nil)
	var ce *ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("want *ConversionError, got %v", err)
	}
	if ce.Stage != StageEmit {
		t.Errorf("stage = %q, want %q", ce.Stage, StageEmit)
	}
	var ee *emitter.EmissionError
	if !errors.As(err, &ee) {
		t.Errorf("wrapped error should be *emitter.EmissionError, got %v", ce.Err)
	}
}

func TestConvertEmptyStatement(t *testing.T) {
	_, err := Convert("   ", dialect.MySQL, dialect.Oracle, nil)
	if !errors.Is(err, parser.ErrEmptyStatement) {
		t.Errorf("want ErrEmptyStatement, got %v", err)
	}
}

func TestConvertInvalidRemovalSkipped(t *testing.T) {
	got, err := Convert("SELECT a FROM t", dialect.MySQL, dialect.PostgreSQL, []string{"[unclosed"})
	if err != nil {
		t.Fatalf("invalid pattern must not abort conversion: %v", err)
	}
	if !strings.Contains(got, "FROM t") {
		t.Errorf("got %q", got)
	}
}
