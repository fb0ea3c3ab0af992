package apisdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// envelope mirrors the server's uniform response body.
type envelope struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// dispatch posts one operation to a dispatcher endpoint and unwraps the
// envelope. A non-null envelope error comes back as *APIError.
func dispatch(ctx context.Context, httpClient *http.Client, url string, payload map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if env.Error != nil {
		return nil, &APIError{Message: *env.Error}
	}
	return env.Result, nil
}

// dispatchString unwraps an operation whose result is a plain message string.
func dispatchString(ctx context.Context, httpClient *http.Client, url string, payload map[string]any) (string, error) {
	raw, err := dispatch(ctx, httpClient, url, payload)
	if err != nil {
		return "", err
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil {
		return "", fmt.Errorf("failed to decode result: %w", err)
	}
	return msg, nil
}
