package mailer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type sendRequest struct {
	From struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"from"`
	Subject          string `json:"subject"`
	Personalizations []struct {
		To []struct {
			Email string `json:"email"`
		} `json:"to"`
	} `json:"personalizations"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func TestSendGridMailerSend(t *testing.T) {
	var (
		got        sendRequest
		authHeader string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	m := &SendGridMailer{
		APIKey:   "test-key",
		From:     "registration@mocshare.test",
		FromName: "MOCShare",
		Host:     server.URL,
	}

	err := m.Send(context.Background(), "builder@example.com", "Verify your account", "click the link")
	require.NoError(t, err)

	require.Equal(t, "Bearer test-key", authHeader)
	require.Equal(t, "registration@mocshare.test", got.From.Email)
	require.Equal(t, "MOCShare", got.From.Name)
	require.Equal(t, "Verify your account", got.Subject)
	require.Len(t, got.Personalizations, 1)
	require.Len(t, got.Personalizations[0].To, 1)
	require.Equal(t, "builder@example.com", got.Personalizations[0].To[0].Email)
	require.Len(t, got.Content, 1)
	require.Equal(t, "text/plain", got.Content[0].Type)
	require.Equal(t, "click the link", got.Content[0].Value)
}

func TestSendGridMailerSendRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	m := &SendGridMailer{
		APIKey: "bad-key",
		From:   "registration@mocshare.test",
		Host:   server.URL,
	}

	err := m.Send(context.Background(), "builder@example.com", "Verify your account", "click the link")
	require.ErrorContains(t, err, "status 401")
}
