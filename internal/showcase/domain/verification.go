package domain

import "time"

// VerificationRecord is a single-use, time-limited code binding an action to
// a user: registration confirmation, password reset, or email change. For
// email changes the code embeds the pending address (see service.EmailChangeCode).
type VerificationRecord struct {
	Code   string
	UserID string
	Expiry time.Time
}

// Expired reports whether the code is past its expiry at the given time.
func (v VerificationRecord) Expired(now time.Time) bool {
	return !now.Before(v.Expiry)
}
