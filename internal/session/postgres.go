package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const (
	_querySession  = "SELECT wallet_id FROM wallet_sessions WHERE name = $1"
	_upsertSession = `INSERT INTO wallet_sessions (
							name, wallet_id, updated_at
						) VALUES ($1, $2, now())
						ON CONFLICT (name)
						DO UPDATE SET
							wallet_id = EXCLUDED.wallet_id,
							updated_at = EXCLUDED.updated_at;`
)

// PostgresStore shares sessions between machines through the
// wallet_sessions table.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) Load(ctx context.Context, name string) (string, error) {
	var walletID string
	if err := p.db.GetContext(ctx, &walletID, _querySession, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("%w: can't query session", err)
	}
	return walletID, nil
}

func (p *PostgresStore) Save(ctx context.Context, name, walletID string) error {
	if _, err := p.db.ExecContext(ctx, _upsertSession, name, walletID); err != nil {
		return fmt.Errorf("%w: can't upsert session", err)
	}
	return nil
}
