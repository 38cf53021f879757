package normalizer

import (
	"strings"
	"testing"
)

func TestNormalizeJoins(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"basic two-table join",
			"SELECT * FROM a, b WHERE a.id = b.a_id AND b.active = 1",
			"SELECT * FROM a JOIN b ON a.id = b.a_id WHERE b.active = 1",
		},
		{
			"all predicates are join conditions",
			"SELECT e.name FROM emp e, dept d WHERE e.dept_id = d.id",
			"SELECT e.name FROM emp e JOIN dept d ON e.dept_id = d.id",
		},
		{
			"three-way chain",
			"SELECT * FROM a, b, c WHERE a.id = b.a_id AND b.id = c.b_id",
			"SELECT * FROM a JOIN b ON a.id = b.a_id JOIN c ON b.id = c.b_id",
		},
		{
			"single-table predicate stays in WHERE",
			"SELECT * FROM t1, t2 WHERE t1.k = t2.k AND t1.x = t1.y",
			"SELECT * FROM t1 JOIN t2 ON t1.k = t2.k WHERE t1.x = t1.y",
		},
		{
			"boundary clauses preserved",
			"SELECT * FROM a, b WHERE a.id = b.a_id ORDER BY a.id",
			"SELECT * FROM a JOIN b ON a.id = b.a_id ORDER BY a.id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeJoins(tt.in); got != tt.want {
				t.Errorf("NormalizeJoins(%q)\n got: %q\nwant: %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeJoins_PassThrough(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"no comma join", "SELECT * FROM users WHERE id = 1"},
		{"already ANSI", "SELECT * FROM a JOIN b ON a.id = b.a_id"},
		{"no where clause", "SELECT * FROM a, b"},
		{"no join conditions", "SELECT * FROM a, b WHERE a.x = 1"},
		{"non-select", "UPDATE a, b SET a.x = 1 WHERE a.id = b.a_id"},
		{"comma inside subquery", "SELECT * FROM t WHERE id IN (SELECT x FROM a, b WHERE a.i = b.i)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeJoins(tt.in); got != tt.in {
				t.Errorf("expected pass-through, got %q", got)
			}
		})
	}
}

func TestNormalizeJoins_UnjoinedTableCrossJoins(t *testing.T) {
	got := NormalizeJoins("SELECT * FROM a, b, c WHERE a.id = b.a_id")
	if !strings.Contains(got, "JOIN b ON a.id = b.a_id") {
		t.Errorf("missing join for b: %q", got)
	}
	if !strings.Contains(got, "CROSS JOIN c") {
		t.Errorf("missing cross join for c: %q", got)
	}
}

func TestUnwrapRownum(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"double wrap with offset",
			"SELECT * FROM (SELECT a.*, ROWNUM rnum FROM (SELECT * FROM t) a WHERE ROWNUM <= 15) WHERE rnum > 5",
			"SELECT * FROM t LIMIT 10 OFFSET 5",
		},
		{
			"single wrap limit only",
			"SELECT * FROM (SELECT * FROM t ORDER BY id) WHERE ROWNUM <= 10",
			"SELECT * FROM t ORDER BY id LIMIT 10",
		},
		{
			"trailing where predicate",
			"SELECT * FROM t WHERE ROWNUM <= 7",
			"SELECT * FROM t LIMIT 7",
		},
		{
			"trailing and predicate",
			"SELECT * FROM t WHERE x = 1 AND ROWNUM <= 3",
			"SELECT * FROM t WHERE x = 1 LIMIT 3",
		},
		{
			"strict less-than",
			"SELECT * FROM t WHERE ROWNUM < 5",
			"SELECT * FROM t LIMIT 4",
		},
		{
			"unrecognized shape passes through",
			"SELECT * FROM t WHERE ROWNUM > 5",
			"SELECT * FROM t WHERE ROWNUM > 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnwrapRownum(tt.in); got != tt.want {
				t.Errorf("UnwrapRownum(%q)\n got: %q\nwant: %q", tt.in, got, tt.want)
			}
		})
	}
}
