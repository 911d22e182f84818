package context

import (
	"context"
)

// UserContext contains authenticated user information.
type UserContext struct {
	UserID   int64
	Email    string
	FullName string
	Role     string
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or zero.
func GetUserID(ctx context.Context) int64 {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return 0
}

// IsAdmin checks if the authenticated user has the admin role.
func IsAdmin(ctx context.Context) bool {
	u := GetUser(ctx)
	return u != nil && u.Role == "admin"
}
