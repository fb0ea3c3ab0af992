package apisdk

import "errors"

// APIError is a domain failure reported through the response envelope. The
// Message is the server's caller-facing text, verbatim.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrRateLimited is returned when the server answers 429.
var ErrRateLimited = errors.New("apisdk: rate limited, retry later")
