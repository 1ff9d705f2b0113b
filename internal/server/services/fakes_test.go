package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/dbx"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/bookmarks"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// fakeUsersRepo keeps accounts in memory and enforces unique emails.
type fakeUsersRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.User

	getErr    error
	updateErr error
	locked    []int64
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[int64]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrDuplicateEmail
		}
	}
	f.nextID++
	cp := *u
	cp.ID = f.nextID
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	f.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) LockUserByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	f.locked = append(f.locked, id)
	f.mu.Unlock()
	return f.GetUserByID(ctx, id)
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if _, ok := f.byID[u.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	for id, existing := range f.byID {
		if id != u.ID && existing.Email == u.Email {
			return nil, common.ErrDuplicateEmail
		}
	}
	cp := *u
	cp.UpdatedAt = time.Now().UTC()
	f.byID[u.ID] = &cp
	out := cp
	return &out, nil
}

// fakeBookmarksRepo keeps bookmarks in memory, scoped by owner.
type fakeBookmarksRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.Bookmark

	listErr error
}

func newFakeBookmarksRepo() *fakeBookmarksRepo {
	return &fakeBookmarksRepo{byID: map[int64]*models.Bookmark{}}
}

func (f *fakeBookmarksRepo) List(ctx context.Context, userID int64) ([]*models.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.Bookmark
	for _, b := range f.byID {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBookmarksRepo) Create(ctx context.Context, b *models.Bookmark) (*models.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	cp := *b
	cp.ID = f.nextID
	f.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeBookmarksRepo) Get(ctx context.Context, userID, id int64) (*models.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.byID[id]
	if !ok || b.UserID != userID {
		return nil, common.ErrorNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookmarksRepo) LockByID(ctx context.Context, userID, id int64) (*models.Bookmark, error) {
	return f.Get(ctx, userID, id)
}

func (f *fakeBookmarksRepo) Update(ctx context.Context, b *models.Bookmark) (*models.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.byID[b.ID]
	if !ok || existing.UserID != b.UserID {
		return nil, common.ErrorNotFound
	}
	cp := *b
	f.byID[b.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeBookmarksRepo) Delete(ctx context.Context, userID, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.byID[id]
	if !ok || b.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	b *fakeBookmarksRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), b: newFakeBookmarksRepo()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                { return m.u }
func (m *fakeRepoManager) Bookmarks(dbx.DBTX) bookmarks.Repository        { return m.b }
