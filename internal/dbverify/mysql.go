package dbverify

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

// mysqlVerifier prepares statements through database/sql.
type mysqlVerifier struct {
	db *sql.DB
}

func newMySQLVerifier(ctx context.Context, dsn string) (*mysqlVerifier, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &mysqlVerifier{db: db}, nil
}

func (v *mysqlVerifier) Verify(ctx context.Context, sql string) error {
	stmt, err := v.db.PrepareContext(ctx, sql)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	return stmt.Close()
}

func (v *mysqlVerifier) Close(context.Context) error {
	return v.db.Close()
}
