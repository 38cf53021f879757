package dbverify

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// postgresVerifier prepares statements on a single pgx connection.
type postgresVerifier struct {
	conn *pgx.Conn
	seq  int
}

func newPostgresVerifier(ctx context.Context, dsn string) (*postgresVerifier, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &postgresVerifier{conn: conn}, nil
}

func (v *postgresVerifier) Verify(ctx context.Context, sql string) error {
	v.seq++
	name := fmt.Sprintf("sqltranslator_verify_%d", v.seq)

	if _, err := v.conn.Prepare(ctx, name, sql); err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	if err := v.conn.Deallocate(ctx, name); err != nil {
		return fmt.Errorf("deallocate: %w", err)
	}
	return nil
}

func (v *postgresVerifier) Close(ctx context.Context) error {
	return v.conn.Close(ctx)
}
