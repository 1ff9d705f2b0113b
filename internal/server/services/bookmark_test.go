package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmarkService_CRUD(t *testing.T) {
	db, mock := newSQLMockDB(t)
	rm := newFakeRepoManager()
	s := NewBookmarkService(db, rm)
	ctx := context.Background()

	list, err := s.List(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	b, err := s.Create(ctx, 1, "Go", "https://go.dev", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.UserID)

	got, err := s.Get(ctx, 1, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", got.Title)

	mock.ExpectBegin()
	mock.ExpectCommit()
	desc := "the language"
	updated, err := s.Update(ctx, 1, b.ID, models.BookmarkPatch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Go", updated.Title)
	assert.Equal(t, "the language", updated.Description)
	require.NoError(t, mock.ExpectationsWereMet())

	list, err = s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.Delete(ctx, 1, b.ID))
	_, err = s.Get(ctx, 1, b.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, s.Delete(ctx, 1, b.ID), common.ErrorNotFound)
}

func TestBookmarkService_OtherOwnerLooksMissing(t *testing.T) {
	db, mock := newSQLMockDB(t)
	s := NewBookmarkService(db, newFakeRepoManager())
	ctx := context.Background()

	b, err := s.Create(ctx, 1, "Go", "https://go.dev", "")
	require.NoError(t, err)

	_, err = s.Get(ctx, 2, b.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	mock.ExpectBegin()
	mock.ExpectRollback()
	title := "stolen"
	_, err = s.Update(ctx, 2, b.ID, models.BookmarkPatch{Title: &title})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.ErrorIs(t, s.Delete(ctx, 2, b.ID), common.ErrorNotFound)

	list, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, list)

	still, err := s.Get(ctx, 1, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", still.Title)
}

func TestBookmarkService_ListError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.b.listErr = errBoom{}

	_, err := NewBookmarkService(db, rm).List(context.Background(), 1)
	assert.ErrorContains(t, err, "error listing bookmarks: boom")
}
