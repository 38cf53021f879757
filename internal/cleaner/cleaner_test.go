package cleaner

import (
	"errors"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"line comment",
			"SELECT id -- pick the key\nFROM users",
			"SELECT id FROM users",
		},
		{
			"block comment",
			"SELECT /* all columns */ * FROM users",
			"SELECT * FROM users",
		},
		{
			"oracle hint",
			"SELECT /*+ FULL(e) PARALLEL(4) */ name FROM emp e",
			"SELECT name FROM emp e",
		},
		{
			"whitespace collapse",
			"SELECT  *\n\tFROM   users",
			"SELECT * FROM users",
		},
		{
			"paren spacing",
			"SELECT COUNT( id ) FROM users",
			"SELECT COUNT(id) FROM users",
		},
		{
			"comma spacing",
			"SELECT a,b,c FROM t",
			"SELECT a, b, c FROM t",
		},
		{
			"control characters",
			"SELECT 1\x00\x08 FROM dual",
			"SELECT 1 FROM dual",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errs := Clean(tt.in, nil)
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"SELECT a, b FROM t WHERE x = 1",
		"SELECT COUNT(id) FROM users GROUP BY status",
		"INSERT INTO t (a, b) VALUES (1, 'x, y')",
	}
	for _, in := range inputs {
		once, _ := Clean(in, nil)
		twice, _ := Clean(once, nil)
		if once != twice {
			t.Errorf("Clean not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestClean_CustomRemovals(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		removals []string
		want     string
	}{
		{
			"literal string",
			"SELECT NOLOGGING * FROM t",
			[]string{"NOLOGGING "},
			"SELECT * FROM t",
		},
		{
			"literal is case-insensitive",
			"SELECT nologging * FROM t",
			[]string{"NOLOGGING "},
			"SELECT * FROM t",
		},
		{
			"regex pattern",
			"SELECT * FROM t PARALLEL 8",
			[]string{`\s+PARALLEL \d+`},
			"SELECT * FROM t",
		},
		{
			"ordered application",
			"SELECT AB * FROM t",
			[]string{"AB", "B"},
			"SELECT * FROM t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errs := Clean(tt.in, tt.removals)
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if got != tt.want {
				t.Errorf("Clean = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClean_InvalidPatternSkipped(t *testing.T) {
	got, errs := Clean("SELECT NOLOGGING * FROM t", []string{"([bad", "NOLOGGING "})

	if len(errs) != 1 {
		t.Fatalf("expected 1 pattern error, got %d", len(errs))
	}
	var pe *PatternError
	if !errors.As(errs[0], &pe) {
		t.Fatalf("expected *PatternError, got %T", errs[0])
	}
	if pe.Pattern != "([bad" {
		t.Errorf("PatternError names %q, want %q", pe.Pattern, "([bad")
	}
	// The valid pattern after the bad one is still applied.
	if got != "SELECT * FROM t" {
		t.Errorf("Clean = %q, want %q", got, "SELECT * FROM t")
	}
}
