package rest

import (
	"fmt"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

type validatable interface {
	Validate() error
}

// bind decodes the JSON body into dst and validates it.
func bind(c *fiber.Ctx, dst validatable) error {
	if len(c.Body()) == 0 {
		return fmt.Errorf("%w: request body is required", common.ErrValidation)
	}
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", common.ErrValidation)
	}
	if err := dst.Validate(); err != nil {
		return validationError(err)
	}
	return nil
}

func currentUser(c *fiber.Ctx) (*models.UserView, error) {
	u, ok := UserFromContext(c.UserContext())
	if !ok {
		return nil, common.ErrUnauthenticated
	}
	return u, nil
}

func bookmarkID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: id must be a positive integer", common.ErrValidation)
	}
	return int64(id), nil
}

func (s *Server) register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	u, err := s.users.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(u)
}

func (s *Server) login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, err := s.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(loginResponse{AccessToken: token})
}

func (s *Server) me(c *fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(u)
}

func (s *Server) updateMe(c *fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	updated, err := s.users.UpdateProfile(c.UserContext(), u.ID, req.patch())
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

func (s *Server) listBookmarks(c *fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	list, err := s.bookmarks.List(c.UserContext(), u.ID)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*models.Bookmark{}
	}

	return c.JSON(list)
}

func (s *Server) createBookmark(c *fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createBookmarkRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	b, err := s.bookmarks.Create(c.UserContext(), u.ID, req.Title, req.Link, req.Description)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(b)
}

func (s *Server) getBookmark(c *fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := bookmarkID(c)
	if err != nil {
		return err
	}

	b, err := s.bookmarks.Get(c.UserContext(), u.ID, id)
	if err != nil {
		return err
	}

	return c.JSON(b)
}

func (s *Server) updateBookmark(c *fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := bookmarkID(c)
	if err != nil {
		return err
	}

	var req updateBookmarkRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	b, err := s.bookmarks.Update(c.UserContext(), u.ID, id, req.patch())
	if err != nil {
		return err
	}

	return c.JSON(b)
}

func (s *Server) deleteBookmark(c *fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := bookmarkID(c)
	if err != nil {
		return err
	}

	if err := s.bookmarks.Delete(c.UserContext(), u.ID, id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) exportBookmarks(c *fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	e, err := s.exports.Export(c.UserContext(), u.ID)
	if err != nil {
		return err
	}

	return c.JSON(e)
}
