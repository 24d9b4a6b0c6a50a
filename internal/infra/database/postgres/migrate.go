package postgres

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// migrations holds the schema statements in execution order. The
// watchlist unique index on (user_id, symbol) is the authoritative
// duplicate guard for concurrent adds.
var migrations = []struct {
	name string
	sql  string
}{
	{
		name: "create user table",
		sql: `
			CREATE TABLE IF NOT EXISTS "user" (
				id            text PRIMARY KEY,
				email         text NOT NULL UNIQUE,
				name          text NOT NULL,
				password_hash text NOT NULL,
				created_at    timestamptz NOT NULL DEFAULT now()
			)
		`,
	},
	{
		name: "create session table",
		sql: `
			CREATE TABLE IF NOT EXISTS "session" (
				token      text PRIMARY KEY,
				user_id    text NOT NULL REFERENCES "user"(id) ON DELETE CASCADE,
				expires_at timestamptz NOT NULL,
				created_at timestamptz NOT NULL DEFAULT now()
			)
		`,
	},
	{
		name: "create watchlist table",
		sql: `
			CREATE TABLE IF NOT EXISTS watchlist (
				id       text PRIMARY KEY,
				user_id  text NOT NULL,
				symbol   text NOT NULL,
				company  text NOT NULL,
				added_at timestamp NOT NULL DEFAULT now()
			)
		`,
	},
	{
		name: "create watchlist unique index",
		sql:  `CREATE UNIQUE INDEX IF NOT EXISTS user_id_symbol_idx ON watchlist (user_id, symbol)`,
	},
	{
		name: "create watchlist user index",
		sql:  `CREATE INDEX IF NOT EXISTS user_id_idx ON watchlist (user_id)`,
	},
}

// Migrate creates the application schema. Statements are idempotent,
// so re-running is safe.
func Migrate(ctx context.Context, pool *Pool) error {
	for _, m := range migrations {
		log.Info().Str("migration", m.name).Msg("Applying migration")
		if _, err := pool.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("migration %q failed: %w", m.name, err)
		}
	}

	log.Info().Int("count", len(migrations)).Msg("✅ Schema migrations applied")
	return nil
}
