package store

import (
	"context"
	"errors"
	"time"

	"github.com/LauchlanT/brickshowcase/internal/showcase/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and a Tx so multi-step flows (registration, username swap,
// account deletion) can be made atomic.
type Store interface {
	Users() Users
	Usernames() Usernames
	Sessions() Sessions
	Verifications() Verifications
	Mocs() Mocs
	Likes() Reactions
	Treasures() Reactions
	Comments() Comments

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle transactions.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id regardless of status. The service
	// layer decides what each status means to the caller.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail returns a non-deleted user by email (case-insensitive).
	// Used by login, password reset and the email-uniqueness checks.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists if the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateStatus moves the user through its lifecycle.
	UpdateStatus(ctx context.Context, userID string, status domain.UserStatus) error

	// UpdatePasswordHash sets the password hash. No-op for deleted users.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// UpdateEmail sets the email. No-op for deleted users.
	// Returns ErrAlreadyExists if the email is taken.
	UpdateEmail(ctx context.Context, userID string, email string) error

	// UpdateUsername sets the username on the user row. Claim bookkeeping is
	// the Usernames repo's job; callers run both inside one transaction.
	UpdateUsername(ctx context.Context, userID string, username string) error

	// Anonymize overwrites the row in place for account deletion: placeholder
	// username, mangled email, default icon, unusable password hash,
	// "Deleted Account" description, status deleted.
	Anonymize(ctx context.Context, userID string, username string, email string) error

	// Search returns public profiles with MOC counts per UserSearch.
	Search(ctx context.Context, q UserSearch) ([]domain.Profile, error)
}

// Usernames is the claim table enforcing username uniqueness, kept separate
// from the user row so renames and deletions can release and re-claim names
// transactionally.
type Usernames interface {
	// IsClaimed reports whether the username is taken (case-insensitive).
	IsClaimed(ctx context.Context, username string) (bool, error)

	// Claim inserts the username. Returns ErrAlreadyExists on conflict; the
	// unique index is the authoritative backstop for racing claims.
	Claim(ctx context.Context, username string) error

	// Release removes a claim (rename, account deletion).
	Release(ctx context.Context, username string) error

	// LatestDeletedPlaceholder returns the lexicographically greatest
	// "DeletedUser*" claim, or ErrNotFound when no account was deleted yet.
	LatestDeletedPlaceholder(ctx context.Context) (string, error)
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error

	GetSession(ctx context.Context, sessionID string) (domain.Session, error)

	DeleteSession(ctx context.Context, sessionID string) error

	// DeleteUserSessions drops every session for a user (account deletion).
	DeleteUserSessions(ctx context.Context, userID string) error

	// DeleteExpiredSessions is housekeeping.
	DeleteExpiredSessions(ctx context.Context, now time.Time) error
}

type Verifications interface {
	CreateVerification(ctx context.Context, v domain.VerificationRecord) error

	GetVerification(ctx context.Context, code string) (domain.VerificationRecord, error)

	DeleteVerification(ctx context.Context, code string) error

	// DeleteUserVerifications drops every pending code for a user.
	DeleteUserVerifications(ctx context.Context, userID string) error

	// DeleteExpiredVerifications is housekeeping.
	DeleteExpiredVerifications(ctx context.Context, now time.Time) error
}

type Mocs interface {
	CreateMoc(ctx context.Context, m domain.Moc) error

	// GetMoc returns an active MOC. Soft-deleted rows report ErrNotFound.
	GetMoc(ctx context.Context, id string) (domain.Moc, error)

	// GetMocOwner returns the owner id of an active MOC. Ownership is always
	// fetched fresh here, never trusted from client input.
	GetMocOwner(ctx context.Context, id string) (string, error)

	// UpdateMoc rewrites title/thumbnail/content/privacy/filter and lastedit
	// for an active MOC.
	UpdateMoc(ctx context.Context, m domain.Moc) error

	// SoftDeleteMoc flips the status flag; the row stays.
	SoftDeleteMoc(ctx context.Context, id string) error

	// AddToLikeCount adjusts the denormalized like counter by delta.
	AddToLikeCount(ctx context.Context, id string, delta int64) error

	// AddToCommentCount adjusts the denormalized comment counter by delta.
	AddToCommentCount(ctx context.Context, id string, delta int64) error
}

// Reactions covers likes and treasures; both are bare (moc, user) relations
// whose existence is the fact.
type Reactions interface {
	// Add inserts the relation if absent. Reports whether a row was actually
	// inserted so duplicate reactions stay idempotent no-ops.
	Add(ctx context.Context, mocID, userID string, at time.Time) (bool, error)

	// Remove deletes the relation if present, reporting whether it existed.
	Remove(ctx context.Context, mocID, userID string) (bool, error)

	// Exists reports whether the relation is present. A verification seam:
	// the service reads reaction state through Add/Remove's reports, while
	// tests use this to assert what actually landed in the table.
	Exists(ctx context.Context, mocID, userID string) (bool, error)
}

type Comments interface {
	CreateComment(ctx context.Context, c domain.Comment) error

	// GetComment returns an active comment. Soft-deleted rows report ErrNotFound.
	GetComment(ctx context.Context, id string) (domain.Comment, error)

	// GetCommentAuthor returns the author id of an active comment.
	GetCommentAuthor(ctx context.Context, id string) (string, error)

	UpdateComment(ctx context.Context, id string, content string, editedAt time.Time) error

	SoftDeleteComment(ctx context.Context, id string) error
}

// UserSort selects the ordering column for user searches.
type UserSort string

const (
	UserSortDate     UserSort = "date"
	UserSortName     UserSort = "name"
	UserSortMocCount UserSort = "mocnumber"
)

// UserSearch describes a user search. Only active users are matched.
type UserSearch struct {
	Term        string    // substring match on username; empty matches all
	JoinedAfter time.Time // zero time = all timeframes
	SortBy      UserSort
	Descending  bool
	Limit       int64
	Offset      int64
}
