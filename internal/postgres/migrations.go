package postgres

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	migrate "github.com/rubenv/sql-migrate"
)

var Migrations = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "0001_wallet_sessions",
			Up: []string{`CREATE TABLE IF NOT EXISTS wallet_sessions (
				name       TEXT PRIMARY KEY,
				wallet_id  TEXT NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`},
			Down: []string{"DROP TABLE IF EXISTS wallet_sessions"},
		},
	},
}

// Migrate applies pending migrations and returns how many ran.
func Migrate(db *sqlx.DB) (int, error) {
	n, err := migrate.Exec(db.DB, "postgres", Migrations, migrate.Up)
	if err != nil {
		return n, fmt.Errorf("%w: can't apply migrations", err)
	}
	return n, nil
}
