package middleware

import "context"

type contextKey string

const (
	ctxSubjectID contextKey = "subject_id"
	ctxRole      contextKey = "actor_role"
)

func SubjectIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSubjectID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// WithSubject injects an authenticated subject into the context. Used by
// tests to skip the token round-trip.
func WithSubject(ctx context.Context, subjectID, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxSubjectID, subjectID)
	return context.WithValue(ctx, ctxRole, role)
}
