package bookmarks

import (
	"context"

	"github.com/dmitrijs2005/bookmarks/internal/server/models"
)

// Repository stores bookmarks. Every method is scoped to the owning user; a
// bookmark that belongs to someone else is reported as common.ErrorNotFound.
type Repository interface {
	List(ctx context.Context, userID int64) ([]*models.Bookmark, error)
	Create(ctx context.Context, b *models.Bookmark) (*models.Bookmark, error)
	Get(ctx context.Context, userID, id int64) (*models.Bookmark, error)
	LockByID(ctx context.Context, userID, id int64) (*models.Bookmark, error)
	Update(ctx context.Context, b *models.Bookmark) (*models.Bookmark, error)
	Delete(ctx context.Context, userID, id int64) error
}
