package auth

import (
	"context"

	"github.com/dukerupert/familyflow/internal/model"
)

type contextKey struct{}

// WithUser returns a context carrying a copy of the caller's identity.
func WithUser(ctx context.Context, u model.User) context.Context {
	return context.WithValue(ctx, contextKey{}, u.Clone())
}

// FromContext returns the caller, or false for an anonymous context.
func FromContext(ctx context.Context) (model.User, bool) {
	u, ok := ctx.Value(contextKey{}).(model.User)
	if !ok {
		return model.User{}, false
	}
	return u.Clone(), true
}

func UserID(ctx context.Context) string {
	u, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return u.ID
}

func IsParent(ctx context.Context) bool {
	u, ok := FromContext(ctx)
	return ok && u.IsParent()
}

func IsChild(ctx context.Context) bool {
	u, ok := FromContext(ctx)
	return ok && u.IsChild()
}
