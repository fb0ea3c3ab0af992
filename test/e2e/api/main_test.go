package api_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	showcasehttp "github.com/LauchlanT/brickshowcase/internal/showcase/http"
	"github.com/LauchlanT/brickshowcase/internal/showcase/service"
	"github.com/LauchlanT/brickshowcase/internal/showcase/store/drivers/sqlite"
	"github.com/LauchlanT/brickshowcase/pkg/apisdk"
	"github.com/LauchlanT/brickshowcase/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "e2e-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// captureMailer records message bodies so tests can pull verification codes.
type captureMailer struct {
	mu       sync.Mutex
	messages []string
}

func (m *captureMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, body)
	return nil
}

var linkCodePattern = regexp.MustCompile(`/verify/[a-z]+/(\S+)`)

func (m *captureMailer) lastCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.messages)

	match := linkCodePattern.FindStringSubmatch(m.messages[len(m.messages)-1])
	require.Len(t, match, 2)
	return match[1]
}

// setupServer runs the full HTTP stack over a migrated throwaway database and
// returns a client pointed at it. TLS because the session cookie is Secure.
func setupServer(t *testing.T) (*apisdk.SDKClient, *captureMailer) {
	t.Helper()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "e2e.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	mail := &captureMailer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := showcasehttp.NewRouter("e2e", st, logger)
	router.AuthService = &service.AuthService{Store: st, SessionTTL: 2 * time.Hour}
	router.AccountService = &service.AccountService{Store: st, Mailer: mail, RootDomain: "mocshare.test"}
	router.ContentService = &service.ContentService{Store: st, RootDomain: "mocshare.test"}
	router.ApplyRoutes()

	server := httptest.NewTLSServer(router)
	t.Cleanup(server.Close)

	client := apisdk.NewSDKClient(server.URL)
	client.HTTPClient = server.Client()
	return client, mail
}

// registerAndLogin walks a fresh account through registration, activation and
// login, returning the authenticated session.
func registerAndLogin(t *testing.T, client *apisdk.SDKClient, mail *captureMailer, username, email, password string) *apisdk.Session {
	t.Helper()
	ctx := t.Context()

	_, err := client.Register(ctx, username, email, password, password)
	require.NoError(t, err)

	_, err = client.VerifyRegistration(ctx, mail.lastCode(t))
	require.NoError(t, err)

	session, err := client.Login(ctx, email, password)
	require.NoError(t, err)
	return session
}
