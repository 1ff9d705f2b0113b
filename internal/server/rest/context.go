package rest

import (
	"context"

	"github.com/dmitrijs2005/bookmarks/internal/server/models"
)

type ctxKey struct{}

func withUser(ctx context.Context, u *models.UserView) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext returns the authenticated account attached by requireAuth.
func UserFromContext(ctx context.Context) (*models.UserView, bool) {
	u, ok := ctx.Value(ctxKey{}).(*models.UserView)
	return u, ok && u != nil
}
