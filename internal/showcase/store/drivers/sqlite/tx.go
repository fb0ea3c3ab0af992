package sqlite

import (
	"context"
	"database/sql"

	"github.com/LauchlanT/brickshowcase/internal/showcase/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // caller will commit/rollback; outer DB stays open

// Ping is a no-op for transactions; the connection already exists.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return sql.ErrTxDone
}

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx starts

func (t *txStore) Users() store.Users                 { return &usersRepo{db: t.tx} }
func (t *txStore) Usernames() store.Usernames         { return &usernamesRepo{db: t.tx} }
func (t *txStore) Sessions() store.Sessions           { return &sessionsRepo{db: t.tx} }
func (t *txStore) Verifications() store.Verifications { return &verificationsRepo{db: t.tx} }
func (t *txStore) Mocs() store.Mocs                   { return &mocsRepo{db: t.tx} }
func (t *txStore) Likes() store.Reactions             { return likesRepo(t.tx) }
func (t *txStore) Treasures() store.Reactions         { return treasuresRepo(t.tx) }
func (t *txStore) Comments() store.Comments           { return &commentsRepo{db: t.tx} }
