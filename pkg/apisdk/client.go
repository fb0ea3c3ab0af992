package apisdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

const (
	userPath = "/api/user"
	mocPath  = "/api/moc"
)

// SDKClient is a client for the MOCShare API. It provides the unauthenticated
// operations and can create authenticated Sessions via Login.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new API client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login authenticates with email and password and returns a Session holding
// the issued session cookie. The Session uses its own cookie jar so multiple
// sessions can coexist on one SDKClient.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	httpClient := &http.Client{
		Transport: c.HTTPClient.Transport,
		Timeout:   c.HTTPClient.Timeout,
		Jar:       jar,
	}

	_, err = dispatchString(ctx, httpClient, c.url(userPath), map[string]any{
		"endpoint": "login",
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return &Session{client: c, httpClient: httpClient}, nil
}

// Register creates a pending account. The returned message names the address
// the verification code was mailed to.
func (c *SDKClient) Register(ctx context.Context, username, email, password, passwordConfirm string) (string, error) {
	return dispatchString(ctx, c.HTTPClient, c.url(userPath), map[string]any{
		"endpoint":        "register",
		"username":        username,
		"email":           email,
		"password":        password,
		"passwordConfirm": passwordConfirm,
	})
}

// VerifyRegistration activates a pending account from an emailed code.
func (c *SDKClient) VerifyRegistration(ctx context.Context, code string) (string, error) {
	return dispatchString(ctx, c.HTTPClient, c.url(userPath), map[string]any{
		"endpoint":         "verifyRegistration",
		"verificationCode": code,
	})
}

// ResendVerification mails a fresh registration code to a pending account.
func (c *SDKClient) ResendVerification(ctx context.Context, email string) (string, error) {
	return dispatchString(ctx, c.HTTPClient, c.url(userPath), map[string]any{
		"endpoint": "resendVerification",
		"email":    email,
	})
}

// CancelRegistration deletes a pending account via its verification code.
func (c *SDKClient) CancelRegistration(ctx context.Context, code string) (string, error) {
	return dispatchString(ctx, c.HTTPClient, c.url(userPath), map[string]any{
		"endpoint":         "cancelRegistration",
		"verificationCode": code,
	})
}

// RequestPasswordReset mails a reset code to the account's address.
func (c *SDKClient) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	return dispatchString(ctx, c.HTTPClient, c.url(userPath), map[string]any{
		"endpoint": "requestPasswordReset",
		"email":    email,
	})
}

// VerifyPasswordReset sets a new password from an emailed reset code.
func (c *SDKClient) VerifyPasswordReset(ctx context.Context, code, password, passwordConfirm string) (string, error) {
	return dispatchString(ctx, c.HTTPClient, c.url(userPath), map[string]any{
		"endpoint":        "verifyPasswordReset",
		"code":            code,
		"password":        password,
		"passwordConfirm": passwordConfirm,
	})
}

// VerifyChangeEmail completes a pending email change. The password belongs to
// the account that requested the change.
func (c *SDKClient) VerifyChangeEmail(ctx context.Context, code, password string) (string, error) {
	return dispatchString(ctx, c.HTTPClient, c.url(userPath), map[string]any{
		"endpoint": "verifyChangeEmail",
		"code":     code,
		"password": password,
	})
}

// GetUser fetches a public profile. For accounts that are not active the
// profile is nil and the note describes why.
func (c *SDKClient) GetUser(ctx context.Context, userID string) (*Profile, string, error) {
	raw, err := dispatch(ctx, c.HTTPClient, c.url(userPath), map[string]any{
		"endpoint": "getUser",
		"userId":   userID,
	})
	if err != nil {
		return nil, "", err
	}
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		var profile Profile
		if err := json.Unmarshal(raw, &profile); err != nil {
			return nil, "", fmt.Errorf("failed to decode result: %w", err)
		}
		return &profile, "", nil
	}
	var note string
	if err := json.Unmarshal(raw, &note); err != nil {
		return nil, "", fmt.Errorf("failed to decode result: %w", err)
	}
	return nil, note, nil
}

// SearchUsers lists active user profiles. Sorting accepts "date", "name" or
// "mocnumber"; timeframe one of "hour", "day", "week", "month", "year", "all";
// order "asc" or "desc". Pages are a fixed 12 entries starting at offset.
func (c *SDKClient) SearchUsers(ctx context.Context, sortType, timeframe, sortOrder, searchTerm string, offset int) ([]Profile, error) {
	raw, err := dispatch(ctx, c.HTTPClient, c.url(userPath), map[string]any{
		"endpoint":   "searchUsers",
		"sortType":   sortType,
		"timeframe":  timeframe,
		"sortOrder":  sortOrder,
		"searchTerm": searchTerm,
		"offset":     offset,
	})
	if err != nil {
		return nil, err
	}
	var profiles []Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return profiles, nil
}
