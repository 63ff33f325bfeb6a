package postgres

import (
	"context"
	"database/sql"

	"github.com/solarsmart/account-service/internal/domain"
)

// EnsureSchema creates the users table if it does not exist. Safe to run on
// every startup; the unique index on email is what closes the registration
// check-then-insert race.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS users (
    id            BIGSERIAL PRIMARY KEY,
    name          TEXT        NOT NULL,
    email         TEXT        NOT NULL UNIQUE,
    password_hash TEXT        NOT NULL,
    gender        TEXT        NOT NULL DEFAULT 'unknown',
    role          TEXT        NOT NULL DEFAULT 'user',
    last_login    TIMESTAMPTZ,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}
