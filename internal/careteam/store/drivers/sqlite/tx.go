package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/careteamhq/careteam/internal/careteam/store"
)

// txStore is a Store scoped to an open transaction. Nested transactions are
// refused rather than silently flattened.
type txStore struct {
	Store
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{
		Store: Store{q: tx},
		tx:    tx,
	}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, errors.New("sqlite: nested transactions are not supported")
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return errors.New("sqlite: nested transactions are not supported")
}

func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) ApplyMigrations() error {
	return errors.New("sqlite: migrations cannot run inside a transaction")
}
