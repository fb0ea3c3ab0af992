package domain

import "time"

// UserStatus is the lifecycle state of an account. The numeric values are
// part of the persisted schema, so the ordering here is load-bearing.
type UserStatus int

const (
	UserStatusDeleted UserStatus = iota // anonymized in place, terminal
	UserStatusActive
	UserStatusPending // registered but not yet email-verified
	UserStatusFlagged // flagged for review, can still log in
)

// User is the full account row, including credential material. Only ever
// handed to the service layer; public reads go through Profile.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // argon2id PHC encoded
	Icon         string
	Description  string
	JoinDate     time.Time
	Status       UserStatus
}

// Profile is the public projection of a user, safe to return to any caller.
// MocCount is only populated by searches.
type Profile struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Icon        string `json:"userIcon"`
	Description string `json:"description"`
	JoinDate    string `json:"joinDate"`
	MocCount    *int64 `json:"mocs,omitempty"`
}

// NewProfile builds the public projection of a user.
func NewProfile(u User) Profile {
	return Profile{
		UserID:      u.ID,
		Username:    u.Username,
		Icon:        u.Icon,
		Description: u.Description,
		JoinDate:    u.JoinDate.UTC().Format(time.RFC3339),
	}
}
