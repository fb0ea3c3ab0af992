package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/LauchlanT/brickshowcase/internal/showcase/domain"
)

type mocsRepo struct {
	db dbtx
}

func (r *mocsRepo) CreateMoc(ctx context.Context, m domain.Moc) error {
	privacy := 0
	if m.Privacy {
		privacy = 1
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO mocs (mocid, userid, title, thumbnail, content, privacy, filter,
		                  postdate, lastedit, numcomments, numlikes, numviews, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL, 0, 0, 0, ?)`,
		m.ID, m.UserID, m.Title, m.Thumbnail, m.Content, privacy, m.Filter,
		m.PostDate.UTC().Unix(), int(domain.ContentStatusActive),
	)
	return mapConflict(err)
}

func (r *mocsRepo) GetMoc(ctx context.Context, id string) (domain.Moc, error) {
	var (
		m        domain.Moc
		privacy  int
		postdate int64
		lastedit sql.NullInt64
		status   int
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT mocid, userid, title, thumbnail, content, privacy, filter,
		       postdate, lastedit, numcomments, numlikes, numviews, status
		FROM mocs
		WHERE mocid = ? AND status != ?`,
		id, int(domain.ContentStatusDeleted),
	).Scan(&m.ID, &m.UserID, &m.Title, &m.Thumbnail, &m.Content, &privacy, &m.Filter,
		&postdate, &lastedit, &m.NumComments, &m.NumLikes, &m.NumViews, &status)
	if err != nil {
		return domain.Moc{}, mapNotFound(err)
	}
	m.Privacy = privacy != 0
	m.PostDate = time.Unix(postdate, 0).UTC()
	if lastedit.Valid {
		t := time.Unix(lastedit.Int64, 0).UTC()
		m.LastEdit = &t
	}
	m.Status = domain.ContentStatus(status)
	return m, nil
}

func (r *mocsRepo) GetMocOwner(ctx context.Context, id string) (string, error) {
	var owner string
	err := r.db.QueryRowContext(ctx, `
		SELECT userid FROM mocs WHERE mocid = ? AND status != ?`,
		id, int(domain.ContentStatusDeleted),
	).Scan(&owner)
	if err != nil {
		return "", mapNotFound(err)
	}
	return owner, nil
}

func (r *mocsRepo) UpdateMoc(ctx context.Context, m domain.Moc) error {
	privacy := 0
	if m.Privacy {
		privacy = 1
	}
	var lastedit sql.NullInt64
	if m.LastEdit != nil {
		lastedit = sql.NullInt64{Int64: m.LastEdit.UTC().Unix(), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE mocs
		SET title = ?, thumbnail = ?, content = ?, privacy = ?, filter = ?, lastedit = ?
		WHERE mocid = ? AND status != ?`,
		m.Title, m.Thumbnail, m.Content, privacy, m.Filter, lastedit,
		m.ID, int(domain.ContentStatusDeleted),
	)
	return err
}

func (r *mocsRepo) SoftDeleteMoc(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE mocs SET status = ? WHERE mocid = ?`,
		int(domain.ContentStatusDeleted), id,
	)
	return err
}

func (r *mocsRepo) AddToLikeCount(ctx context.Context, id string, delta int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE mocs SET numlikes = numlikes + ? WHERE mocid = ?`,
		delta, id,
	)
	return err
}

func (r *mocsRepo) AddToCommentCount(ctx context.Context, id string, delta int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE mocs SET numcomments = numcomments + ? WHERE mocid = ?`,
		delta, id,
	)
	return err
}
