//go:build integration

package dbverify

import (
	"context"
	"testing"
	"time"

	"github.com/adrenaline09/SqlTranslator/internal/converter"
	"github.com/adrenaline09/SqlTranslator/internal/dialect"
	"github.com/adrenaline09/SqlTranslator/internal/testutil"
)

func TestIntegration_PostgresVerify(t *testing.T) {
	connStr, cleanup := testutil.SetupPostgres(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	v, err := New(ctx, dialect.PostgreSQL, connStr)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer v.Close(ctx)

	tests := []struct {
		name    string
		sql     string
		wantErr bool
	}{
		{
			name: "valid select",
			sql:  "SELECT name, salary FROM employees WHERE dept_id = 1",
		},
		{
			name: "valid join",
			sql:  "SELECT e.name, d.name FROM employees e JOIN departments d ON e.dept_id = d.id",
		},
		{
			name:    "unknown table",
			sql:     "SELECT * FROM not_a_table",
			wantErr: true,
		},
		{
			name:    "syntax error",
			sql:     "SELECT FROM WHERE",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Verify(ctx, tt.sql)
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Verify: %v", err)
			}
		})
	}
}

func TestIntegration_VerifyConvertedOracle(t *testing.T) {
	connStr, cleanup := testutil.SetupPostgres(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	v, err := New(ctx, dialect.PostgreSQL, connStr)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer v.Close(ctx)

	// Convert an Oracle statement and prove the target accepts it.
	oracleSQL := "SELECT name, NVL(salary, 0) FROM employees WHERE ROWNUM <= 10"
	converted, err := converter.Convert(oracleSQL, dialect.Oracle, dialect.PostgreSQL, nil)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if err := v.Verify(ctx, converted); err != nil {
		t.Errorf("converted statement rejected: %v\nsql: %s", err, converted)
	}
}

func TestIntegration_VerifyRepeated(t *testing.T) {
	connStr, cleanup := testutil.SetupPostgres(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	v, err := New(ctx, dialect.PostgreSQL, connStr)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer v.Close(ctx)

	// Prepared statement names must not collide across calls.
	for range 5 {
		if err := v.Verify(ctx, "SELECT id FROM departments"); err != nil {
			t.Fatalf("Verify: %v", err)
		}
	}
}
