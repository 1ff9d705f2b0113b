package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/bookmarks/internal/client/client"
	"github.com/dmitrijs2005/bookmarks/internal/client/config"
	"github.com/dmitrijs2005/bookmarks/internal/client/models"
)

// fakeAPI is an in-memory client.Client.
type fakeAPI struct {
	mu sync.Mutex

	pingErr  error
	pings    int
	loggedIn bool

	regEmail, regPass     string
	loginEmail, loginPass string
	loginErr              error

	user      models.User
	userPatch models.UserPatch

	bookmarks   map[int64]*models.Bookmark
	nextID      int64
	lastPatch   models.BookmarkPatch
	lastCreated models.NewBookmark

	export *models.Export
}

var _ client.Client = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{bookmarks: map[int64]*models.Bookmark{}, nextID: 1}
}

func (f *fakeAPI) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeAPI) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

func (f *fakeAPI) pingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pings
}

func (f *fakeAPI) Register(_ context.Context, email, password string) (*models.User, error) {
	f.regEmail, f.regPass = email, password
	return &models.User{ID: 7, Email: email}, nil
}

func (f *fakeAPI) Login(_ context.Context, email, password string) error {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return f.loginErr
	}
	f.loggedIn = true
	f.user = models.User{ID: 7, Email: email}
	return nil
}

func (f *fakeAPI) Logout()        { f.loggedIn = false }
func (f *fakeAPI) LoggedIn() bool { return f.loggedIn }

func (f *fakeAPI) Me(context.Context) (*models.User, error) {
	if !f.loggedIn {
		return nil, client.ErrUnauthorized
	}
	u := f.user
	return &u, nil
}

func (f *fakeAPI) UpdateProfile(_ context.Context, p models.UserPatch) (*models.User, error) {
	f.userPatch = p
	if p.Email != nil {
		f.user.Email = *p.Email
	}
	if p.FirstName != nil {
		f.user.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		f.user.LastName = *p.LastName
	}
	u := f.user
	return &u, nil
}

func (f *fakeAPI) ListBookmarks(context.Context) ([]*models.Bookmark, error) {
	out := []*models.Bookmark{}
	for id := int64(1); id < f.nextID; id++ {
		if b, ok := f.bookmarks[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreateBookmark(_ context.Context, nb models.NewBookmark) (*models.Bookmark, error) {
	f.lastCreated = nb
	b := &models.Bookmark{ID: f.nextID, UserID: 7, Title: nb.Title, Link: nb.Link, Description: nb.Description}
	f.bookmarks[b.ID] = b
	f.nextID++
	return b, nil
}

func (f *fakeAPI) GetBookmark(_ context.Context, id int64) (*models.Bookmark, error) {
	b, ok := f.bookmarks[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	return b, nil
}

func (f *fakeAPI) UpdateBookmark(_ context.Context, id int64, p models.BookmarkPatch) (*models.Bookmark, error) {
	f.lastPatch = p
	b, ok := f.bookmarks[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	return b, nil
}

func (f *fakeAPI) DeleteBookmark(_ context.Context, id int64) error {
	if _, ok := f.bookmarks[id]; !ok {
		return client.ErrNotFound
	}
	delete(f.bookmarks, id)
	return nil
}

func (f *fakeAPI) Export(context.Context) (*models.Export, error) {
	return f.export, nil
}

// syncBuffer is a bytes.Buffer safe for the watcher and the REPL writing at once.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testApp(t *testing.T, api *fakeAPI, input string) (*App, *syncBuffer) {
	t.Helper()
	out := &syncBuffer{}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return newApp(cfg, api, strings.NewReader(input), out), out
}

// stubAnswers replaces interactive input with canned answers, in order.
func stubAnswers(t *testing.T, answers ...string) {
	t.Helper()
	origST, origML := getSimpleText, getMultiline
	next := func() string {
		if len(answers) == 0 {
			t.Fatalf("unexpected prompt")
		}
		a := answers[0]
		answers = answers[1:]
		return a
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getMultiline = origML
	})
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}
