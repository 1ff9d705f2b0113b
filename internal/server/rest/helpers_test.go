package rest

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/dbx"
	"github.com/dmitrijs2005/bookmarks/internal/logging"
	"github.com/dmitrijs2005/bookmarks/internal/server/auth"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/bookmarks"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/users"
	"github.com/dmitrijs2005/bookmarks/internal/server/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.User
}

func (m *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Email == u.Email {
			return nil, common.ErrDuplicateEmail
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	m.rows[u.ID] = *u
	return u, nil
}

func (m *memUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Email == email {
			return &r, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memUsers) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &r, nil
}

func (m *memUsers) LockUserByID(ctx context.Context, id int64) (*models.User, error) {
	return m.GetUserByID(ctx, id)
}

func (m *memUsers) Update(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[u.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	for id, r := range m.rows {
		if id != u.ID && r.Email == u.Email {
			return nil, common.ErrDuplicateEmail
		}
	}
	m.rows[u.ID] = *u
	return u, nil
}

func (m *memUsers) remove(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
}

type memBookmarks struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Bookmark
}

func (m *memBookmarks) List(ctx context.Context, userID int64) ([]*models.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Bookmark{}
	for _, r := range m.rows {
		if r.UserID == userID {
			b := r
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memBookmarks) Create(ctx context.Context, b *models.Bookmark) (*models.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	b.ID = m.nextID
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	m.rows[b.ID] = *b
	return b, nil
}

func (m *memBookmarks) Get(ctx context.Context, userID, id int64) (*models.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok || r.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &r, nil
}

func (m *memBookmarks) LockByID(ctx context.Context, userID, id int64) (*models.Bookmark, error) {
	return m.Get(ctx, userID, id)
}

func (m *memBookmarks) Update(ctx context.Context, b *models.Bookmark) (*models.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[b.ID]
	if !ok || r.UserID != b.UserID {
		return nil, common.ErrorNotFound
	}
	m.rows[b.ID] = *b
	return b, nil
}

func (m *memBookmarks) Delete(ctx context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok || r.UserID != userID {
		return common.ErrorNotFound
	}
	delete(m.rows, id)
	return nil
}

type memRepoManager struct {
	users     *memUsers
	bookmarks *memBookmarks
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Users(dbx.DBTX) users.Repository              { return m.users }
func (m *memRepoManager) Bookmarks(dbx.DBTX) bookmarks.Repository      { return m.bookmarks }

type stubExporter struct {
	out *models.Export
	err error
	got int64
}

func (s *stubExporter) Export(ctx context.Context, userID int64) (*models.Export, error) {
	s.got = userID
	return s.out, s.err
}

type testEnv struct {
	srv     *Server
	codec   *auth.TokenCodec
	repos   *memRepoManager
	mock    sqlmock.Sqlmock
	exports *stubExporter
	logs    *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repos := &memRepoManager{
		users:     &memUsers{rows: map[int64]models.User{}},
		bookmarks: &memBookmarks{rows: map[int64]models.Bookmark{}},
	}
	codec := auth.NewTokenCodec("test-secret", 15*time.Minute)
	logs := &bytes.Buffer{}
	exports := &stubExporter{}

	srv := NewServer(":0",
		logging.NewJSONLogger(logs, slog.LevelDebug),
		services.NewUserService(db, repos, auth.NewBcryptHasher(bcrypt.MinCost), codec),
		services.NewBookmarkService(db, repos),
		exports,
		codec,
	)

	return &testEnv{srv: srv, codec: codec, repos: repos, mock: mock, exports: exports, logs: logs}
}

// do sends a request through the fiber app and returns the status and body.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.srv.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

// registerAndLogin creates an account and returns its id and access token.
func (e *testEnv) registerAndLogin(t *testing.T, email, password string) (int64, string) {
	t.Helper()

	status, body := e.do(t, http.MethodPost, "/auth/register", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, status, string(body))
	var u models.UserView
	require.NoError(t, json.Unmarshal(body, &u))

	status, body = e.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, status, string(body))
	var lr loginResponse
	require.NoError(t, json.Unmarshal(body, &lr))

	return u.ID, lr.AccessToken
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()
	var er errorResponse
	require.NoError(t, json.Unmarshal(body, &er))
	return er.Error
}
