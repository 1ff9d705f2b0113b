package rest

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/gofiber/fiber/v2"
)

type errorResponse struct {
	Error string `json:"error"`
}

func validationError(err error) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, err.Error())
}

// classify maps an error to its HTTP status and the message safe to return.
func classify(err error) (int, string) {
	var fe *fiber.Error

	switch {
	case errors.Is(err, common.ErrValidation):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrDuplicateEmail):
		return fiber.StatusConflict, common.ErrDuplicateEmail.Error()
	case errors.Is(err, common.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, common.ErrInvalidCredentials.Error()
	case errors.Is(err, common.ErrUnauthenticated),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return fiber.StatusUnauthorized, common.ErrUnauthenticated.Error()
	case errors.Is(err, common.ErrorNotFound):
		return fiber.StatusNotFound, common.ErrorNotFound.Error()
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	default:
		return fiber.StatusInternalServerError, common.ErrorInternal.Error()
	}
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code, msg := classify(err)
	if code >= fiber.StatusInternalServerError {
		s.logger.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err.Error())
	}
	return c.Status(code).JSON(errorResponse{Error: msg})
}
