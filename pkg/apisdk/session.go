package apisdk

import (
	"context"
	"net/http"
)

// Session is an authenticated client. Its cookie jar carries the opaque
// session id issued at login; every operation rides on it. Sessions are safe
// for concurrent use.
type Session struct {
	client     *SDKClient
	httpClient *http.Client
}

// Logout ends the session server-side and drops the cookie.
func (s *Session) Logout(ctx context.Context) error {
	_, err := dispatchString(ctx, s.httpClient, s.client.url(userPath), map[string]any{
		"endpoint": "logout",
	})
	return err
}

// DeleteAccount anonymizes the account after a password re-check. The session
// is gone afterwards.
func (s *Session) DeleteAccount(ctx context.Context, password string) (string, error) {
	return dispatchString(ctx, s.httpClient, s.client.url(userPath), map[string]any{
		"endpoint": "deleteAccount",
		"password": password,
	})
}

// ChangePassword rotates the account password.
func (s *Session) ChangePassword(ctx context.Context, password, newPassword, newPasswordConfirm string) (string, error) {
	return dispatchString(ctx, s.httpClient, s.client.url(userPath), map[string]any{
		"endpoint":           "changePassword",
		"password":           password,
		"newPassword":        newPassword,
		"newPasswordConfirm": newPasswordConfirm,
	})
}

// ChangeEmail starts the two-phase email change. The confirmation code is
// mailed to the new address; complete it with SDKClient.VerifyChangeEmail.
func (s *Session) ChangeEmail(ctx context.Context, password, newEmail string) (string, error) {
	return dispatchString(ctx, s.httpClient, s.client.url(userPath), map[string]any{
		"endpoint": "changeEmail",
		"password": password,
		"newEmail": newEmail,
	})
}

// ChangeUsername renames the account after a password re-check.
func (s *Session) ChangeUsername(ctx context.Context, password, newUsername string) (string, error) {
	return dispatchString(ctx, s.httpClient, s.client.url(userPath), map[string]any{
		"endpoint":    "changeUsername",
		"password":    password,
		"newUsername": newUsername,
	})
}
