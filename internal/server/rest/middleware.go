package rest

import (
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/logging"
	"github.com/gofiber/fiber/v2"
)

// accessLog tags the request context with its request id and writes one line
// per request. Handler errors are rendered here so the logged status is the
// one the client sees.
func (s *Server) accessLog(c *fiber.Ctx) error {
	start := time.Now()
	c.SetUserContext(logging.WithAttrs(c.UserContext(), "request_id", c.GetRespHeader(fiber.HeaderXRequestID)))

	if err := c.Next(); err != nil {
		if herr := s.errorHandler(c, err); herr != nil {
			return herr
		}
	}

	s.logger.Info(c.UserContext(), "request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"latency", time.Since(start).String(),
	)

	return nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// requireAuth admits a request only with a valid bearer token whose subject
// still exists, and attaches that account to the request context.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	ctx := c.UserContext()

	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return common.ErrUnauthenticated
	}

	id, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.Warn(ctx, "token rejected", "reason", err.Error(), "path", c.Path())
		return common.ErrUnauthenticated
	}

	user, err := s.users.Me(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "token subject not found", "user_id", id)
			return common.ErrUnauthenticated
		}
		return err
	}

	c.SetUserContext(withUser(ctx, user))
	return c.Next()
}
