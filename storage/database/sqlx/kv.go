package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/registrar/core"
)

const (
	kvGetQuery    = `SELECT name, value, updated_at FROM client_storage WHERE name = ?`
	kvDeleteQuery = `DELETE FROM client_storage WHERE name = ?`
	kvUpsertQuery = `INSERT INTO client_storage (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// NowFunc is mockable in tests.
var NowFunc = func() time.Time { return time.Now().UTC() }

type kvRow struct {
	Name      string      `db:"name"`
	Value     null.String `db:"value"`
	UpdatedAt time.Time   `db:"updated_at"`
}

type kvRepository struct {
	db *sqlx.DB
}

var _ core.KVStore = (*kvRepository)(nil) // interface compliance check

// NewKVRepository expects the client_storage migration to have been applied.
func NewKVRepository(db *sqlx.DB) *kvRepository {
	return &kvRepository{db: db}
}

func (repo *kvRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var row kvRow
	if err := repo.db.GetContext(ctx, &row, repo.db.Rebind(kvGetQuery), key); err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrKeyNotFound
		}
		return nil, errors.Wrapf(err, "selecting %q", key)
	}
	if !row.Value.Valid {
		return nil, core.ErrKeyNotFound
	}
	return []byte(row.Value.String), nil
}

func (repo *kvRepository) Set(ctx context.Context, key string, value []byte) error {
	val := null.NewString(string(value), value != nil)
	if _, err := repo.db.ExecContext(ctx, repo.db.Rebind(kvUpsertQuery), key, val, NowFunc()); err != nil {
		return errors.Wrapf(err, "upserting %q", key)
	}
	return nil
}

func (repo *kvRepository) Delete(ctx context.Context, key string) error {
	if _, err := repo.db.ExecContext(ctx, repo.db.Rebind(kvDeleteQuery), key); err != nil {
		return errors.Wrapf(err, "deleting %q", key)
	}
	return nil
}
