package service

import (
	"context"
	"testing"
	"time"

	"github.com/LauchlanT/brickshowcase/internal/showcase/domain"
	"github.com/LauchlanT/brickshowcase/internal/showcase/store"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := &AuthService{Store: st, SessionTTL: 2 * time.Hour}

	createActiveUser(t, st, "builder", "builder@example.com", "hunter2")

	t.Run("success creates a session", func(t *testing.T) {
		session, err := auth.Login(ctx, "", "builder@example.com", "hunter2")
		require.NoError(t, err)
		require.NotEmpty(t, session.ID)
		require.True(t, session.Expiry.After(time.Now().UTC()))

		stored, err := st.Sessions().GetSession(ctx, session.ID)
		require.NoError(t, err)
		require.Equal(t, session.UserID, stored.UserID)
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		_, err := auth.Login(ctx, "", "BUILDER@EXAMPLE.COM", "hunter2")
		require.NoError(t, err)
	})

	t.Run("rejects logged-in callers", func(t *testing.T) {
		_, err := auth.Login(ctx, "some-user", "builder@example.com", "hunter2")
		require.ErrorIs(t, err, ErrAlreadyLoggedIn)
	})

	t.Run("rejects unknown emails", func(t *testing.T) {
		_, err := auth.Login(ctx, "", "nobody@example.com", "hunter2")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("rejects wrong passwords", func(t *testing.T) {
		_, err := auth.Login(ctx, "", "builder@example.com", "wrong")
		require.ErrorIs(t, err, ErrIncorrectPassword)
	})

	t.Run("rejects pending accounts", func(t *testing.T) {
		id := createActiveUser(t, st, "pending", "pending@example.com", "hunter2")
		require.NoError(t, st.Users().UpdateStatus(ctx, id, domain.UserStatusPending))

		_, err := auth.Login(ctx, "", "pending@example.com", "hunter2")
		require.ErrorIs(t, err, ErrNotActivated)
	})

	t.Run("allows flagged accounts", func(t *testing.T) {
		id := createActiveUser(t, st, "flagged", "flagged@example.com", "hunter2")
		require.NoError(t, st.Users().UpdateStatus(ctx, id, domain.UserStatusFlagged))

		_, err := auth.Login(ctx, "", "flagged@example.com", "hunter2")
		require.NoError(t, err)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := &AuthService{Store: st, SessionTTL: 2 * time.Hour}

	createActiveUser(t, st, "builder", "builder@example.com", "hunter2")

	t.Run("anonymous callers are already logged out", func(t *testing.T) {
		require.ErrorIs(t, auth.Logout(ctx, "", "whatever"), ErrAlreadyLoggedOut)
	})

	t.Run("deletes the session row", func(t *testing.T) {
		session, err := auth.Login(ctx, "", "builder@example.com", "hunter2")
		require.NoError(t, err)

		require.NoError(t, auth.Logout(ctx, session.UserID, session.ID))

		_, err = st.Sessions().GetSession(ctx, session.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestResolveCaller(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := &AuthService{Store: st, SessionTTL: 2 * time.Hour}

	userID := createActiveUser(t, st, "builder", "builder@example.com", "hunter2")

	t.Run("resolves a live session", func(t *testing.T) {
		session, err := auth.Login(ctx, "", "builder@example.com", "hunter2")
		require.NoError(t, err)

		resolved, ok := auth.ResolveCaller(ctx, session.ID)
		require.True(t, ok)
		require.Equal(t, userID, resolved)
	})

	t.Run("unknown and empty ids are anonymous", func(t *testing.T) {
		_, ok := auth.ResolveCaller(ctx, "no-such-session")
		require.False(t, ok)
		_, ok = auth.ResolveCaller(ctx, "")
		require.False(t, ok)
	})

	t.Run("expired sessions are dropped on sight", func(t *testing.T) {
		require.NoError(t, st.Sessions().CreateSession(ctx, domain.Session{
			ID:     "stale-session",
			UserID: userID,
			Expiry: time.Now().UTC().Add(-time.Minute),
		}))

		_, ok := auth.ResolveCaller(ctx, "stale-session")
		require.False(t, ok)

		_, err := st.Sessions().GetSession(ctx, "stale-session")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
