package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// reactionsRepo serves both likes and treasures. The two tables are identical
// bare (moc, user) relations apart from the table and date column names, which
// come from the constructors below and never from input.
type reactionsRepo struct {
	db      dbtx
	table   string
	dateCol string
}

func likesRepo(db dbtx) *reactionsRepo {
	return &reactionsRepo{db: db, table: "moclikes", dateCol: "likedate"}
}

func treasuresRepo(db dbtx) *reactionsRepo {
	return &reactionsRepo{db: db, table: "moctreasures", dateCol: "treasuredate"}
}

func (r *reactionsRepo) Add(ctx context.Context, mocID, userID string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT OR IGNORE INTO %s (mocid, userid, %s) VALUES (?, ?, ?)`, r.table, r.dateCol),
		mocID, userID, at.UTC().Unix(),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *reactionsRepo) Remove(ctx context.Context, mocID, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`
		DELETE FROM %s WHERE mocid = ? AND userid = ?`, r.table),
		mocID, userID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *reactionsRepo) Exists(ctx context.Context, mocID, userID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT 1 FROM %s WHERE mocid = ? AND userid = ?`, r.table),
		mocID, userID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
