package domain

import "time"

// ContentStatus is the lifecycle state of a MOC or comment. Deletion is a
// soft flag flip; rows are never removed.
type ContentStatus int

const (
	ContentStatusDeleted ContentStatus = iota
	ContentStatusActive
)

// Moc is a user-submitted content item ("My Own Creation").
type Moc struct {
	ID          string
	UserID      string
	Title       string
	Thumbnail   string
	Content     string
	Privacy     bool // true = visible to owner only
	Filter      string
	PostDate    time.Time
	LastEdit    *time.Time
	NumComments int64
	NumLikes    int64
	NumViews    int64
	Status      ContentStatus
}
