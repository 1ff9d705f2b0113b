package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/bookmarks/internal/dbx"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/repomanager"
)

// BookmarkService is owner-scoped CRUD over bookmarks.
type BookmarkService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewBookmarkService(db *sql.DB, m repomanager.RepositoryManager) *BookmarkService {
	return &BookmarkService{db: db, repomanager: m}
}

func (s *BookmarkService) List(ctx context.Context, userID int64) ([]*models.Bookmark, error) {
	list, err := s.repomanager.Bookmarks(s.db).List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing bookmarks: %w", err)
	}
	if list == nil {
		list = []*models.Bookmark{}
	}
	return list, nil
}

func (s *BookmarkService) Create(ctx context.Context, userID int64, title, link, description string) (*models.Bookmark, error) {
	b := &models.Bookmark{UserID: userID, Title: title, Link: link, Description: description}

	created, err := s.repomanager.Bookmarks(s.db).Create(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("error creating bookmark: %w", err)
	}
	return created, nil
}

func (s *BookmarkService) Get(ctx context.Context, userID, id int64) (*models.Bookmark, error) {
	b, err := s.repomanager.Bookmarks(s.db).Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("error loading bookmark: %w", err)
	}
	return b, nil
}

// Update applies patch to the bookmark under a row lock.
func (s *BookmarkService) Update(ctx context.Context, userID, id int64, patch models.BookmarkPatch) (*models.Bookmark, error) {
	var updated *models.Bookmark
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Bookmarks(tx)

		b, err := repo.LockByID(ctx, userID, id)
		if err != nil {
			return err
		}
		patch.Apply(b)

		updated, err = repo.Update(ctx, b)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error updating bookmark: %w", err)
	}
	return updated, nil
}

func (s *BookmarkService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repomanager.Bookmarks(s.db).Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("error deleting bookmark: %w", err)
	}
	return nil
}
