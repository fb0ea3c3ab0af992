package sqlite

import (
	"context"
	"time"

	"github.com/LauchlanT/brickshowcase/internal/showcase/domain"
)

type verificationsRepo struct {
	db dbtx
}

func (r *verificationsRepo) CreateVerification(ctx context.Context, v domain.VerificationRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO verificationcodes (verificationcode, userid, expiry)
		VALUES (?, ?, ?)`,
		v.Code, v.UserID, v.Expiry.UTC().Unix(),
	)
	return mapConflict(err)
}

func (r *verificationsRepo) GetVerification(ctx context.Context, code string) (domain.VerificationRecord, error) {
	var (
		v      domain.VerificationRecord
		expiry int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT verificationcode, userid, expiry
		FROM verificationcodes WHERE verificationcode = ?`,
		code,
	).Scan(&v.Code, &v.UserID, &expiry)
	if err != nil {
		return domain.VerificationRecord{}, mapNotFound(err)
	}
	v.Expiry = time.Unix(expiry, 0).UTC()
	return v, nil
}

func (r *verificationsRepo) DeleteVerification(ctx context.Context, code string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM verificationcodes WHERE verificationcode = ?`,
		code,
	)
	return err
}

func (r *verificationsRepo) DeleteUserVerifications(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM verificationcodes WHERE userid = ?`,
		userID,
	)
	return err
}

func (r *verificationsRepo) DeleteExpiredVerifications(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM verificationcodes WHERE expiry <= ?`,
		now.UTC().Unix(),
	)
	return err
}
