package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/LauchlanT/brickshowcase/internal/showcase/service"
	"github.com/LauchlanT/brickshowcase/pkg/httpx"
	"github.com/LauchlanT/brickshowcase/pkg/slogx"
)

// Envelope is the uniform response body: exactly one of Result or Error is
// non-null, and domain-level outcomes always ship with HTTP 200. Clients
// branch on the envelope, not the status code.
type Envelope struct {
	Result any     `json:"result"`
	Error  *string `json:"error"`
}

func writeResult(w http.ResponseWriter, v any) {
	httpx.WriteJSON(w, http.StatusOK, Envelope{Result: v})
}

func writeError(w http.ResponseWriter, msg string) {
	httpx.WriteJSON(w, http.StatusOK, Envelope{Error: &msg})
}

// writeServiceError maps a service failure into the envelope. Faults carry
// caller-facing messages verbatim; anything else is logged and reported
// generically.
func writeServiceError(r *http.Request, w http.ResponseWriter, err error) {
	var fault service.Fault
	if errors.As(err, &fault) {
		writeError(w, string(fault))
		return
	}
	slogx.FromContext(r.Context()).Error("request failed",
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	writeError(w, "Something went wrong, please try again")
}

// request is a decoded envelope body. Field presence drives the per-operation
// required checks; JSON null counts as absent.
type request map[string]json.RawMessage

func (req request) has(key string) bool {
	raw, ok := req[key]
	return ok && string(raw) != "null"
}

// str returns the field as a string. Non-string scalars (numbers, booleans)
// come back as their literal text, so a numeric offset or privacy flag still
// reads sensibly.
func (req request) str(key string) string {
	raw, ok := req[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// boolean returns the field as a bool, accepting JSON booleans as well as the
// 0/1 and "true"/"1" forms older clients send.
func (req request) boolean(key string) bool {
	raw, ok := req[key]
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0
	}
	s := req.str(key)
	return s == "1" || strings.EqualFold(s, "true")
}

// decodeRequest parses a dispatcher body. A non-nil error message means the
// caller already got a response.
func decodeRequest(w http.ResponseWriter, r *http.Request) (request, bool) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req == nil {
		writeError(w, "Error decoding input JSON")
		return nil, false
	}
	if !req.has("endpoint") {
		writeError(w, "Requests must include an endpoint")
		return nil, false
	}
	return req, true
}
