// Package rest exposes the bookmarks API over HTTP using fiber.
package rest

import (
	"context"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/logging"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const shutdownTimeout = 5 * time.Second

type userService interface {
	Register(ctx context.Context, email, password string) (*models.UserView, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, id int64) (*models.UserView, error)
	UpdateProfile(ctx context.Context, id int64, patch models.UserPatch) (*models.UserView, error)
}

type bookmarkService interface {
	List(ctx context.Context, userID int64) ([]*models.Bookmark, error)
	Create(ctx context.Context, userID int64, title, link, description string) (*models.Bookmark, error)
	Get(ctx context.Context, userID, id int64) (*models.Bookmark, error)
	Update(ctx context.Context, userID, id int64, patch models.BookmarkPatch) (*models.Bookmark, error)
	Delete(ctx context.Context, userID, id int64) error
}

type exportService interface {
	Export(ctx context.Context, userID int64) (*models.Export, error)
}

type tokenVerifier interface {
	Verify(token string) (int64, error)
}

type Server struct {
	address   string
	app       *fiber.App
	users     userService
	bookmarks bookmarkService
	exports   exportService
	tokens    tokenVerifier
	logger    logging.Logger
}

func NewServer(addr string, l logging.Logger, us userService, bs bookmarkService, es exportService, tv tokenVerifier) *Server {
	s := &Server{
		address:   addr,
		users:     us,
		bookmarks: bs,
		exports:   es,
		tokens:    tv,
		logger:    l.With("module", "http_server"),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "bookmarks",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})
	s.routes()

	return s
}

func (s *Server) routes() {
	s.app.Use(requestid.New())
	s.app.Use(s.accessLog)
	s.app.Use(recover.New())

	s.app.Get("/ping", s.ping)

	a := s.app.Group("/auth")
	a.Post("/register", s.register)
	a.Post("/login", s.login)

	u := s.app.Group("/users", s.requireAuth)
	u.Get("/me", s.me)
	u.Patch("/me", s.updateMe)

	b := s.app.Group("/bookmarks", s.requireAuth)
	b.Get("/", s.listBookmarks)
	b.Post("/", s.createBookmark)
	b.Post("/export", s.exportBookmarks)
	b.Get("/:id", s.getBookmark)
	b.Patch("/:id", s.updateBookmark)
	b.Delete("/:id", s.deleteBookmark)
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- s.app.Listen(s.address)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info(ctx, "Stopping HTTP server...")
		return s.app.ShutdownWithTimeout(shutdownTimeout)
	}
}

func (s *Server) ping(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "OK"})
}
