package apisdk

import "context"

// CreateMoc posts a new MOC and returns its canonical URL.
func (s *Session) CreateMoc(ctx context.Context, moc MocFields) (string, error) {
	return dispatchString(ctx, s.httpClient, s.client.url(mocPath), map[string]any{
		"endpoint": "createMoc",
		"title":    moc.Title,
		"text":     moc.Text,
		"thumb":    moc.Thumb,
		"privacy":  moc.Privacy,
		"filter":   moc.Filter,
	})
}

// EditMoc rewrites a MOC's fields. Owner only.
func (s *Session) EditMoc(ctx context.Context, mocID string, moc MocFields) (string, error) {
	return dispatchString(ctx, s.httpClient, s.client.url(mocPath), map[string]any{
		"endpoint": "editMoc",
		"mocId":    mocID,
		"title":    moc.Title,
		"text":     moc.Text,
		"thumb":    moc.Thumb,
		"privacy":  moc.Privacy,
		"filter":   moc.Filter,
	})
}

// DeleteMoc removes a MOC after a password re-check. Owner only.
func (s *Session) DeleteMoc(ctx context.Context, mocID, password string) (string, error) {
	return dispatchString(ctx, s.httpClient, s.client.url(mocPath), map[string]any{
		"endpoint": "deleteMoc",
		"mocId":    mocID,
		"password": password,
	})
}

// LikeMoc likes a MOC. Liking twice is a no-op success; own MOCs are refused.
func (s *Session) LikeMoc(ctx context.Context, mocID string) (string, error) {
	return s.reactToMoc(ctx, "likeMoc", mocID)
}

// UnlikeMoc removes a like.
func (s *Session) UnlikeMoc(ctx context.Context, mocID string) (string, error) {
	return s.reactToMoc(ctx, "unlikeMoc", mocID)
}

// TreasureMoc adds a MOC to the caller's treasured collection.
func (s *Session) TreasureMoc(ctx context.Context, mocID string) (string, error) {
	return s.reactToMoc(ctx, "treasureMoc", mocID)
}

// UntreasureMoc removes a MOC from the caller's treasured collection.
func (s *Session) UntreasureMoc(ctx context.Context, mocID string) (string, error) {
	return s.reactToMoc(ctx, "untreasureMoc", mocID)
}

func (s *Session) reactToMoc(ctx context.Context, endpoint, mocID string) (string, error) {
	return dispatchString(ctx, s.httpClient, s.client.url(mocPath), map[string]any{
		"endpoint": endpoint,
		"mocId":    mocID,
	})
}

// AddComment posts a comment on a MOC.
func (s *Session) AddComment(ctx context.Context, mocID, text string) (string, error) {
	return dispatchString(ctx, s.httpClient, s.client.url(mocPath), map[string]any{
		"endpoint": "addComment",
		"mocId":    mocID,
		"text":     text,
	})
}

// EditComment rewrites a comment's text. Author only.
func (s *Session) EditComment(ctx context.Context, commentID, text string) (string, error) {
	return dispatchString(ctx, s.httpClient, s.client.url(mocPath), map[string]any{
		"endpoint":  "editComment",
		"commentId": commentID,
		"text":      text,
	})
}

// DeleteComment removes a comment. Author only.
func (s *Session) DeleteComment(ctx context.Context, commentID string) (string, error) {
	return dispatchString(ctx, s.httpClient, s.client.url(mocPath), map[string]any{
		"endpoint":  "deleteComment",
		"commentId": commentID,
	})
}
