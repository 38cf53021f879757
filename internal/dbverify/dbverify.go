// Package dbverify checks converted SQL against a live database by
// preparing each statement server-side without executing it.
package dbverify

import (
	"context"
	"fmt"

	"github.com/adrenaline09/SqlTranslator/internal/dialect"
)

// Verifier prepares statements against a live database.
type Verifier interface {
	// Verify asks the server to prepare the statement. A nil return
	// means the server accepted the syntax and resolved all objects.
	Verify(ctx context.Context, sql string) error

	// Close releases the connection.
	Close(ctx context.Context) error
}

// New connects to the database for the given dialect and returns a
// Verifier. Transient connection failures are retried with backoff.
func New(ctx context.Context, d dialect.Dialect, dsn string) (Verifier, error) {
	if dsn == "" {
		return nil, fmt.Errorf("verify: no connection string configured for %s", d)
	}

	switch d {
	case dialect.PostgreSQL:
		return connectWithRetry(ctx, func(ctx context.Context) (Verifier, error) {
			return newPostgresVerifier(ctx, dsn)
		})
	case dialect.MySQL:
		return connectWithRetry(ctx, func(ctx context.Context) (Verifier, error) {
			return newMySQLVerifier(ctx, dsn)
		})
	default:
		return nil, fmt.Errorf("verify: live verification is not supported for %s", d)
	}
}
