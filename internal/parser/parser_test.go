package parser

import (
	"errors"
	"testing"
)

func TestParseSelectClauses(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want map[Clause]string
	}{
		{
			name: "full select",
			sql:  "SELECT id, name FROM users WHERE age > 21 GROUP BY name HAVING COUNT(*) > 1 ORDER BY name LIMIT 10 OFFSET 5",
			want: map[Clause]string{
				ClauseSelect:  "id, name",
				ClauseFrom:    "users",
				ClauseWhere:   "age > 21",
				ClauseGroupBy: "name",
				ClauseHaving:  "COUNT(*) > 1",
				ClauseOrderBy: "name",
				ClauseLimit:   "10",
				ClauseOffset:  "5",
			},
		},
		{
			name: "minimal select",
			sql:  "SELECT * FROM t",
			want: map[Clause]string{
				ClauseSelect: "*",
				ClauseFrom:   "t",
			},
		},
		{
			name: "keyword in subquery is not a boundary",
			sql:  "SELECT * FROM (SELECT id FROM a LIMIT 5) sub WHERE id > 0",
			want: map[Clause]string{
				ClauseSelect: "*",
				ClauseFrom:   "(SELECT id FROM a LIMIT 5) sub",
				ClauseWhere:  "id > 0",
			},
		},
		{
			name: "keyword in string literal is not a boundary",
			sql:  "SELECT 'where limit' AS label FROM t WHERE x = 1",
			want: map[Clause]string{
				ClauseSelect: "'where limit' AS label",
				ClauseFrom:   "t",
				ClauseWhere:  "x = 1",
			},
		},
		{
			name: "column named order_by is not a boundary",
			sql:  "SELECT order_by FROM t",
			want: map[Clause]string{
				ClauseSelect: "order_by",
				ClauseFrom:   "t",
			},
		},
		{
			name: "lowercase keywords",
			sql:  "select a from t where a = 1 order by a",
			want: map[Clause]string{
				ClauseSelect:  "a",
				ClauseFrom:    "t",
				ClauseWhere:   "a = 1",
				ClauseOrderBy: "a",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := Parse(tt.sql)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.sql, err)
			}
			if st.Kind != KindSelect {
				t.Fatalf("kind = %v, want SELECT", st.Kind)
			}
			if len(st.Clauses) != len(tt.want) {
				t.Errorf("got %d clauses, want %d: %v", len(st.Clauses), len(tt.want), st.Clauses)
			}
			for clause, want := range tt.want {
				got, ok := st.Clauses[clause]
				if !ok {
					t.Errorf("missing clause %s", clause)
					continue
				}
				if got != want {
					t.Errorf("clause %s = %q, want %q", clause, got, want)
				}
			}
		})
	}
}

func TestParseKinds(t *testing.T) {
	tests := []struct {
		sql  string
		want Kind
	}{
		{"SELECT 1", KindSelect},
		{"INSERT INTO t (a) VALUES (1)", KindInsert},
		{"UPDATE t SET a = 1", KindUpdate},
		{"DELETE FROM t WHERE a = 1", KindDelete},
		{"CREATE TABLE t (a INT)", KindOther},
		{"WITH cte AS (SELECT 1) SELECT * FROM cte", KindOther},
	}
	for _, tt := range tests {
		st, err := Parse(tt.sql)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.sql, err)
		}
		if st.Kind != tt.want {
			t.Errorf("Parse(%q) kind = %v, want %v", tt.sql, st.Kind, tt.want)
		}
		if st.Original != tt.sql {
			t.Errorf("Original = %q, want %q", st.Original, tt.sql)
		}
	}
}

func TestParseNonSelectHasNoClauses(t *testing.T) {
	st, err := Parse("INSERT INTO t (a) VALUES (1)")
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Clauses) != 0 {
		t.Errorf("INSERT should carry no clauses, got %v", st.Clauses)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, sql := range []string{"", "   ", "\n\t"} {
		if _, err := Parse(sql); !errors.Is(err, ErrEmptyStatement) {
			t.Errorf("Parse(%q) = %v, want ErrEmptyStatement", sql, err)
		}
	}
}

func TestParseUnbalanced(t *testing.T) {
	tests := []string{
		"SELECT * FROM (SELECT 1",
		"SELECT COUNT(* FROM t",
		"SELECT 1) FROM t",
		"SELECT 'unterminated FROM t",
	}
	for _, sql := range tests {
		_, err := Parse(sql)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q) = %v, want *ParseError", sql, err)
		}
	}
}

func TestParseBalancedParensInString(t *testing.T) {
	st, err := Parse("SELECT ':-)' FROM t")
	if err != nil {
		t.Fatalf("paren inside literal should not count: %v", err)
	}
	if st.Clauses[ClauseFrom] != "t" {
		t.Errorf("from = %q", st.Clauses[ClauseFrom])
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindSelect: "SELECT",
		KindInsert: "INSERT",
		KindUpdate: "UPDATE",
		KindDelete: "DELETE",
		KindOther:  "OTHER",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}
