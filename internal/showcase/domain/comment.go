package domain

import "time"

// Comment is a user comment on a MOC.
type Comment struct {
	ID       string
	MocID    string
	UserID   string
	Content  string
	PostDate time.Time
	LastEdit *time.Time
	Status   ContentStatus
}
