package baseline

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_NoFile(t *testing.T) {
	b, err := Load("/nonexistent/path.json")
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Tables) != 0 {
		t.Errorf("expected empty baseline, got %d tables", len(b.Tables))
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "baseline.json")

	if err := Save(path, []string{"salary_grades", "Audit_Log"}); err != nil {
		t.Fatal(err)
	}

	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Tables) != 2 {
		t.Errorf("expected 2 tables, got %d", len(b.Tables))
	}
	if !b.Contains("salary_grades") {
		t.Error("baseline should contain salary_grades")
	}
	// Case-insensitive.
	if !b.Contains("AUDIT_LOG") {
		t.Error("baseline lookup should ignore case")
	}
	if b.Contains("payments") {
		t.Error("baseline should not contain payments")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestSave_Deduplicate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "baseline.json")

	if err := Save(path, []string{"users", "Users", "users"}); err != nil {
		t.Fatal(err)
	}

	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Tables) != 1 {
		t.Errorf("expected 1 unique table, got %d", len(b.Tables))
	}
}

func TestFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "baseline.json")
	if err := Save(path, []string{"salary_grades"}); err != nil {
		t.Fatal(err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	filtered, suppressed := b.Filter([]string{"salary_grades", "audit_log", "holidays"})
	if suppressed != 1 {
		t.Errorf("expected 1 suppressed, got %d", suppressed)
	}
	if len(filtered) != 2 {
		t.Errorf("expected 2 remaining, got %v", filtered)
	}
}

func TestFilter_EmptyBaseline(t *testing.T) {
	b := &Baseline{set: make(map[string]bool)}
	filtered, suppressed := b.Filter([]string{"users"})
	if suppressed != 0 || len(filtered) != 1 {
		t.Errorf("empty baseline must pass everything through, got %v / %d", filtered, suppressed)
	}
}
