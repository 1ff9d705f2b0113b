package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/client/models"
	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/gofiber/fiber/v2"
)

type HTTPClient struct {
	baseURL string
	timeout time.Duration

	mu          sync.RWMutex
	accessToken string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *HTTPClient) setToken(t string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = t
}

func (c *HTTPClient) LoggedIn() bool {
	return c.token() != ""
}

func (c *HTTPClient) Logout() {
	c.setToken("")
}

// requestTimeout returns the configured timeout, shortened to the context
// deadline when that comes first.
func (c *HTTPClient) requestTimeout(ctx context.Context) time.Duration {
	d := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); d <= 0 || left < d {
			d = left
		}
	}
	return d
}

func (c *HTTPClient) do(ctx context.Context, method, path string, auth bool, in, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var token string
	if auth {
		if token = c.token(); token == "" {
			return ErrUnauthorized
		}
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)

	if auth {
		a.Set(fiber.HeaderAuthorization, common.BearerScheme+" "+token)
	}
	if in != nil {
		a.JSON(in)
	}
	if d := c.requestTimeout(ctx); d > 0 {
		a.Timeout(d)
	}

	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// Bytes releases the agent.
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrUnavailable, errors.Join(errs...))
	}

	if err := statusError(code, body); err != nil {
		if auth && errors.Is(err, ErrUnauthorized) {
			c.setToken("")
		}
		return err
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func statusError(code int, body []byte) error {
	if code >= 200 && code < 300 {
		return nil
	}

	var sentinel error
	switch code {
	case http.StatusBadRequest:
		sentinel = ErrBadRequest
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusConflict:
		sentinel = ErrConflict
	default:
		sentinel = ErrServer
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || eb.Error == "" {
		eb.Error = http.StatusText(code)
	}
	return fmt.Errorf("%w: %s", sentinel, eb.Error)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, fiber.MethodGet, "/ping", false, nil, nil)
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) (*models.User, error) {
	u := &models.User{}
	if err := c.do(ctx, fiber.MethodPost, "/auth/register", false, credentials{Email: email, Password: password}, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	var resp tokenResponse
	if err := c.do(ctx, fiber.MethodPost, "/auth/login", false, credentials{Email: email, Password: password}, &resp); err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return fmt.Errorf("%w: empty access token", ErrServer)
	}
	c.setToken(resp.AccessToken)
	return nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	u := &models.User{}
	if err := c.do(ctx, fiber.MethodGet, "/users/me", true, nil, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, patch models.UserPatch) (*models.User, error) {
	u := &models.User{}
	if err := c.do(ctx, fiber.MethodPatch, "/users/me", true, patch, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (c *HTTPClient) ListBookmarks(ctx context.Context) ([]*models.Bookmark, error) {
	items := []*models.Bookmark{}
	if err := c.do(ctx, fiber.MethodGet, "/bookmarks", true, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) CreateBookmark(ctx context.Context, b models.NewBookmark) (*models.Bookmark, error) {
	out := &models.Bookmark{}
	if err := c.do(ctx, fiber.MethodPost, "/bookmarks", true, b, out); err != nil {
		return nil, err
	}
	return out, nil
}

func bookmarkPath(id int64) string {
	return "/bookmarks/" + strconv.FormatInt(id, 10)
}

func (c *HTTPClient) GetBookmark(ctx context.Context, id int64) (*models.Bookmark, error) {
	out := &models.Bookmark{}
	if err := c.do(ctx, fiber.MethodGet, bookmarkPath(id), true, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateBookmark(ctx context.Context, id int64, patch models.BookmarkPatch) (*models.Bookmark, error) {
	out := &models.Bookmark{}
	if err := c.do(ctx, fiber.MethodPatch, bookmarkPath(id), true, patch, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) DeleteBookmark(ctx context.Context, id int64) error {
	return c.do(ctx, fiber.MethodDelete, bookmarkPath(id), true, nil, nil)
}

func (c *HTTPClient) Export(ctx context.Context) (*models.Export, error) {
	out := &models.Export{}
	if err := c.do(ctx, fiber.MethodPost, "/bookmarks/export", true, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}
