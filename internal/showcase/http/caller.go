package http

import (
	"net/http"

	"github.com/LauchlanT/brickshowcase/internal/showcase/service"
	"github.com/LauchlanT/brickshowcase/pkg/httpx"
)

// SessionCookieName is the cookie carrying the opaque session id.
const SessionCookieName = "sessionId"

// CallerMiddleware resolves the session cookie to a user id once per request
// and stores it in the request context. Handlers and services receive the
// caller explicitly; an empty id means anonymous.
func CallerMiddleware(auth *service.AuthService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				if userID, ok := auth.ResolveCaller(r.Context(), cookie.Value); ok {
					r = r.WithContext(httpx.WithCallerID(r.Context(), userID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// sessionCookieValue returns the raw session cookie, or empty when absent.
func sessionCookieValue(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// setSessionCookie installs the session cookie for a fresh login.
func setSessionCookie(w http.ResponseWriter, sessionID string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
