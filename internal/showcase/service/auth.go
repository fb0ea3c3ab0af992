package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/LauchlanT/brickshowcase/internal/showcase/domain"
	"github.com/LauchlanT/brickshowcase/internal/showcase/store"
	"github.com/LauchlanT/brickshowcase/pkg/cryptox"
	"github.com/LauchlanT/brickshowcase/pkg/slogx"
)

var (
	ErrAlreadyLoggedIn   = Fault("You are already logged in")
	ErrAlreadyLoggedOut  = Fault("You are already logged out")
	ErrUserNotFound      = Fault("This user could not be found")
	ErrNotActivated      = Fault("This account is not currently activated")
	ErrIncorrectPassword = Fault("Incorrect password")
	ErrLoginServer       = Fault("Unable to log in due to server error")
)

type AuthService struct {
	Store      store.Store
	SessionTTL time.Duration
}

// Login verifies credentials and creates a server-side session. The returned
// session id goes into the cookie; nothing else leaves the server.
func (s *AuthService) Login(ctx context.Context, callerID, email, password string) (domain.Session, error) {
	l := slogx.FromContext(ctx)

	// 1. Only anonymous callers can log in
	if callerID != "" {
		return domain.Session{}, ErrAlreadyLoggedIn
	}

	// 2. Look up the account; deleted rows are invisible here
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrUserNotFound
		}
		return domain.Session{}, err
	}

	// 3. Pending and deleted accounts cannot log in; flagged still can
	if user.Status == domain.UserStatusDeleted || user.Status == domain.UserStatusPending {
		return domain.Session{}, ErrNotActivated
	}

	// 4. Verify the password
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.Session{}, ErrIncorrectPassword
	}

	// 5. Create the session row
	sessionID, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.Session{}, ErrLoginServer
	}
	session := domain.Session{
		ID:     sessionID,
		UserID: user.ID,
		Expiry: time.Now().UTC().Add(s.SessionTTL),
	}
	if err := s.Store.Sessions().CreateSession(ctx, session); err != nil {
		l.Error("failed to create session", slog.String("user_id", user.ID), slog.Any("error", err))
		return domain.Session{}, ErrLoginServer
	}

	return session, nil
}

// Logout deletes the caller's session. The handler clears the cookie either way.
func (s *AuthService) Logout(ctx context.Context, callerID, sessionID string) error {
	if callerID == "" {
		return ErrAlreadyLoggedOut
	}
	return s.Store.Sessions().DeleteSession(ctx, sessionID)
}

// ResolveCaller maps a session cookie value to a user id. Expired or unknown
// sessions resolve to anonymous; expired rows are dropped on sight.
func (s *AuthService) ResolveCaller(ctx context.Context, sessionID string) (string, bool) {
	if sessionID == "" {
		return "", false
	}
	session, err := s.Store.Sessions().GetSession(ctx, sessionID)
	if err != nil {
		return "", false
	}
	if session.Expired(time.Now().UTC()) {
		_ = s.Store.Sessions().DeleteSession(ctx, sessionID)
		return "", false
	}
	return session.UserID, true
}
