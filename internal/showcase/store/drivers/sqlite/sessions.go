package sqlite

import (
	"context"
	"time"

	"github.com/LauchlanT/brickshowcase/internal/showcase/domain"
)

type sessionsRepo struct {
	db dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (sessionid, userid, expiry)
		VALUES (?, ?, ?)`,
		s.ID, s.UserID, s.Expiry.UTC().Unix(),
	)
	return mapConflict(err)
}

func (r *sessionsRepo) GetSession(ctx context.Context, sessionID string) (domain.Session, error) {
	var (
		s      domain.Session
		expiry int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT sessionid, userid, expiry FROM sessions WHERE sessionid = ?`,
		sessionID,
	).Scan(&s.ID, &s.UserID, &expiry)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	s.Expiry = time.Unix(expiry, 0).UTC()
	return s, nil
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM sessions WHERE sessionid = ?`,
		sessionID,
	)
	return err
}

func (r *sessionsRepo) DeleteUserSessions(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM sessions WHERE userid = ?`,
		userID,
	)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM sessions WHERE expiry <= ?`,
		now.UTC().Unix(),
	)
	return err
}
