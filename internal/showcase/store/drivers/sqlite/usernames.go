package sqlite

import (
	"context"
	"database/sql"
	"errors"
)

type usernamesRepo struct {
	db dbtx
}

func (r *usernamesRepo) IsClaimed(ctx context.Context, username string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `
		SELECT 1 FROM usernames WHERE username = ?`,
		username,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *usernamesRepo) Claim(ctx context.Context, username string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO usernames (username) VALUES (?)`,
		username,
	)
	return mapConflict(err)
}

func (r *usernamesRepo) Release(ctx context.Context, username string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM usernames WHERE username = ?`,
		username,
	)
	return err
}

func (r *usernamesRepo) LatestDeletedPlaceholder(ctx context.Context) (string, error) {
	// BINARY collation here on purpose: placeholder names are machine
	// generated with a fixed case, and MAX over the NOCASE column would
	// still compare the numeric suffix the same way.
	var name string
	err := r.db.QueryRowContext(ctx, `
		SELECT username FROM usernames
		WHERE username LIKE 'DeletedUser%'
		ORDER BY username DESC
		LIMIT 1`,
	).Scan(&name)
	if err != nil {
		return "", mapNotFound(err)
	}
	return name, nil
}
