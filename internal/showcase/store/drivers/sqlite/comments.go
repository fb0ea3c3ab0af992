package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/LauchlanT/brickshowcase/internal/showcase/domain"
)

type commentsRepo struct {
	db dbtx
}

func (r *commentsRepo) CreateComment(ctx context.Context, c domain.Comment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO moccomments (commentid, mocid, userid, content, postdate, lastedit, status)
		VALUES (?, ?, ?, ?, ?, NULL, ?)`,
		c.ID, c.MocID, c.UserID, c.Content, c.PostDate.UTC().Unix(),
		int(domain.ContentStatusActive),
	)
	return mapConflict(err)
}

func (r *commentsRepo) GetComment(ctx context.Context, id string) (domain.Comment, error) {
	var (
		c        domain.Comment
		postdate int64
		lastedit sql.NullInt64
		status   int
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT commentid, mocid, userid, content, postdate, lastedit, status
		FROM moccomments
		WHERE commentid = ? AND status != ?`,
		id, int(domain.ContentStatusDeleted),
	).Scan(&c.ID, &c.MocID, &c.UserID, &c.Content, &postdate, &lastedit, &status)
	if err != nil {
		return domain.Comment{}, mapNotFound(err)
	}
	c.PostDate = time.Unix(postdate, 0).UTC()
	if lastedit.Valid {
		t := time.Unix(lastedit.Int64, 0).UTC()
		c.LastEdit = &t
	}
	c.Status = domain.ContentStatus(status)
	return c, nil
}

func (r *commentsRepo) GetCommentAuthor(ctx context.Context, id string) (string, error) {
	var author string
	err := r.db.QueryRowContext(ctx, `
		SELECT userid FROM moccomments WHERE commentid = ? AND status != ?`,
		id, int(domain.ContentStatusDeleted),
	).Scan(&author)
	if err != nil {
		return "", mapNotFound(err)
	}
	return author, nil
}

func (r *commentsRepo) UpdateComment(ctx context.Context, id string, content string, editedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE moccomments
		SET content = ?, lastedit = ?
		WHERE commentid = ? AND status != ?`,
		content, editedAt.UTC().Unix(), id, int(domain.ContentStatusDeleted),
	)
	return err
}

func (r *commentsRepo) SoftDeleteComment(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE moccomments SET status = ? WHERE commentid = ?`,
		int(domain.ContentStatusDeleted), id,
	)
	return err
}
