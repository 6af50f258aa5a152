package httpx

import (
	"context"

	"github.com/mbolis/quick-feedback/store"
)

type ctxKey int

const userKey ctxKey = iota

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, user store.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFrom returns the authenticated user, if any.
func UserFrom(ctx context.Context) (store.User, bool) {
	user, ok := ctx.Value(userKey).(store.User)
	return user, ok
}
