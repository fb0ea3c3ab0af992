package domain

import "time"

// Session is a server-side login session. The ID is the opaque token carried
// by the session cookie; the user id never leaves the server.
type Session struct {
	ID     string
	UserID string
	Expiry time.Time
}

// Expired reports whether the session is past its expiry at the given time.
// Expiry is checked lazily at read time, there is no background invalidation
// beyond housekeeping.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.Expiry)
}
