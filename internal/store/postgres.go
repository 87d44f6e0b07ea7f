package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// PgStore backs the KeyValueStore port with a single Postgres table. It is
// used where no Redis is available at the edge; the table is treated as an
// opaque kv namespace and gets none of the relational features.
type PgStore struct {
	db *sqlx.DB
}

func NewPgStore(db *sql.DB) *PgStore {
	return &PgStore{db: sqlx.NewDb(db, "postgres")}
}

// RunMigrations creates the kv table if it does not exist yet.
func RunMigrations(db *sql.DB) error {
	initSQL := `
CREATE TABLE IF NOT EXISTS kv(
  key TEXT PRIMARY KEY,
  value BYTEA NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`
	_, err := db.Exec(initSQL)
	return err
}

func (s *PgStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, `SELECT value FROM kv WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *PgStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO kv (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET
 value=EXCLUDED.value,
 updated_at=EXCLUDED.updated_at;
`, key, value)
	return err
}
