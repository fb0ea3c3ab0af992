package httpx

import "context"

type ctxKey string

// CtxKeyUserID carries the authenticated caller's user id, if any.
const CtxKeyUserID ctxKey = "user_id"

// WithCallerID stores the resolved caller id in the context.
func WithCallerID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, userID)
}

// CallerID returns the authenticated caller's user id, or "" for anonymous
// requests. Absence of identity is a normal outcome, not an error.
func CallerID(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
