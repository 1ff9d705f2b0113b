package client

import (
	"context"

	"github.com/dmitrijs2005/bookmarks/internal/client/models"
)

type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) error
	Logout()
	LoggedIn() bool
	Me(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, patch models.UserPatch) (*models.User, error)
	ListBookmarks(ctx context.Context) ([]*models.Bookmark, error)
	CreateBookmark(ctx context.Context, b models.NewBookmark) (*models.Bookmark, error)
	GetBookmark(ctx context.Context, id int64) (*models.Bookmark, error)
	UpdateBookmark(ctx context.Context, id int64, patch models.BookmarkPatch) (*models.Bookmark, error)
	DeleteBookmark(ctx context.Context, id int64) error
	Export(ctx context.Context) (*models.Export, error)
}
