package service

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/LauchlanT/brickshowcase/internal/showcase/domain"
	"github.com/LauchlanT/brickshowcase/internal/showcase/store"
	"github.com/LauchlanT/brickshowcase/internal/showcase/store/drivers/sqlite"
	"github.com/LauchlanT/brickshowcase/pkg/cryptox"
	"github.com/LauchlanT/brickshowcase/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// newTestStore opens a migrated store on a throwaway database file. A file
// rather than :memory: so every pooled connection sees the same database.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// createActiveUser seeds a verified account directly in the store and returns
// its id.
func createActiveUser(t *testing.T, st store.Store, username, email, password string) string {
	t.Helper()
	ctx := context.Background()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	userID := idx.New().String()
	require.NoError(t, st.Usernames().Claim(ctx, username))
	require.NoError(t, st.Users().CreateUser(ctx, domain.User{
		ID:           userID,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Icon:         "default.jpg",
		Description:  "Welcome to my homepage!",
		JoinDate:     time.Now().UTC(),
		Status:       domain.UserStatusActive,
	}))
	return userID
}

// testMailer records outgoing mail so tests can pluck verification codes out
// of the message bodies.
type testMailer struct {
	mu       sync.Mutex
	messages []testMessage
}

type testMessage struct {
	To      string
	Subject string
	Body    string
}

func (m *testMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, testMessage{To: to, Subject: subject, Body: body})
	return nil
}

var codePattern = regexp.MustCompile(`/verify/[a-z]+/(\S+)`)

// lastCode extracts the verification code from the most recent message.
func (m *testMailer) lastCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.messages)

	match := codePattern.FindStringSubmatch(m.messages[len(m.messages)-1].Body)
	require.Len(t, match, 2)
	return match[1]
}

func (m *testMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}
