package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/LauchlanT/brickshowcase/internal/showcase/domain"
	"github.com/LauchlanT/brickshowcase/internal/showcase/store"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingSweep(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := createActiveUser(t, st, "builder", "builder@example.com", "pw")

	now := time.Now().UTC()
	require.NoError(t, st.Sessions().CreateSession(ctx, domain.Session{
		ID: "live-session", UserID: userID, Expiry: now.Add(time.Hour),
	}))
	require.NoError(t, st.Sessions().CreateSession(ctx, domain.Session{
		ID: "dead-session", UserID: userID, Expiry: now.Add(-time.Hour),
	}))
	require.NoError(t, st.Verifications().CreateVerification(ctx, domain.VerificationRecord{
		Code: "live-code", UserID: userID, Expiry: now.Add(time.Hour),
	}))
	require.NoError(t, st.Verifications().CreateVerification(ctx, domain.VerificationRecord{
		Code: "dead-code", UserID: userID, Expiry: now.Add(-time.Hour),
	}))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewHousekeepingService(st, logger, time.Hour)

	// The first sweep runs on startup, so a start/stop cycle is enough
	svc.Start()
	svc.Stop()

	_, err := st.Sessions().GetSession(ctx, "live-session")
	require.NoError(t, err)
	_, err = st.Sessions().GetSession(ctx, "dead-session")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Verifications().GetVerification(ctx, "live-code")
	require.NoError(t, err)
	_, err = st.Verifications().GetVerification(ctx, "dead-code")
	require.ErrorIs(t, err, store.ErrNotFound)
}
