package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/LauchlanT/brickshowcase/internal/showcase/domain"
	"github.com/LauchlanT/brickshowcase/internal/showcase/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `userid, username, email, usericon, password, description, joindate, status`

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u        domain.User
		joindate int64
		status   int
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Icon, &u.PasswordHash, &u.Description, &joindate, &status)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.JoinDate = time.Unix(joindate, 0).UTC()
	u.Status = domain.UserStatus(status)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE userid = ?`,
		id,
	)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	// email column is COLLATE NOCASE, so = is case-insensitive. Deleted rows
	// park a mangled address there and are excluded regardless.
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = ? AND status != ?`,
		email, int(domain.UserStatusDeleted),
	)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (userid, username, email, usericon, password, description, joindate, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.Icon, u.PasswordHash, u.Description,
		u.JoinDate.UTC().Unix(), int(u.Status),
	)
	return mapConflict(err)
}

func (r *usersRepo) UpdateStatus(ctx context.Context, userID string, status domain.UserStatus) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET status = ? WHERE userid = ?`,
		int(status), userID,
	)
	return err
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET password = ? WHERE userid = ? AND status != ?`,
		newHash, userID, int(domain.UserStatusDeleted),
	)
	return err
}

func (r *usersRepo) UpdateEmail(ctx context.Context, userID string, email string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET email = ? WHERE userid = ? AND status != ?`,
		email, userID, int(domain.UserStatusDeleted),
	)
	return mapConflict(err)
}

func (r *usersRepo) UpdateUsername(ctx context.Context, userID string, username string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET username = ? WHERE userid = ?`,
		username, userID,
	)
	return err
}

func (r *usersRepo) Anonymize(ctx context.Context, userID string, username string, email string) error {
	// The row is overwritten in place so foreign keys from MOCs and comments
	// stay intact. The password column holds a literal that can never verify
	// as an argon2id hash.
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET username = ?,
		    email = ?,
		    usericon = 'default.jpg',
		    password = 'deleted',
		    description = 'Deleted Account',
		    status = ?
		WHERE userid = ?`,
		username, email, int(domain.UserStatusDeleted), userID,
	)
	return err
}

func (r *usersRepo) Search(ctx context.Context, q store.UserSearch) ([]domain.Profile, error) {
	var orderBy string
	switch q.SortBy {
	case store.UserSortName:
		orderBy = "u.username COLLATE NOCASE"
	case store.UserSortMocCount:
		orderBy = "mocs"
	default:
		orderBy = "u.joindate"
	}
	direction := "ASC"
	if q.Descending {
		direction = "DESC"
	}

	var joinedAfter int64
	if !q.JoinedAfter.IsZero() {
		joinedAfter = q.JoinedAfter.UTC().Unix()
	}

	// orderBy and direction come from the whitelist above, never from input.
	query := fmt.Sprintf(`
		SELECT u.userid, u.username, u.usericon, u.description, u.joindate,
		       COUNT(m.mocid) AS mocs
		FROM users u
		LEFT JOIN mocs m ON m.userid = u.userid AND m.status != 0
		WHERE u.status = ?
		  AND instr(lower(u.username), lower(?)) > 0
		  AND u.joindate >= ?
		GROUP BY u.userid
		ORDER BY %s %s
		LIMIT ? OFFSET ?`, orderBy, direction)

	// instr(x, '') is 1 for any x, so an empty term matches everyone.
	rows, err := r.db.QueryContext(ctx, query,
		int(domain.UserStatusActive), q.Term, joinedAfter, q.Limit, q.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var (
			p        domain.Profile
			joindate int64
			mocs     int64
		)
		if err := rows.Scan(&p.UserID, &p.Username, &p.Icon, &p.Description, &joindate, &mocs); err != nil {
			return nil, err
		}
		p.JoinDate = time.Unix(joindate, 0).UTC().Format(time.RFC3339)
		p.MocCount = &mocs
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
