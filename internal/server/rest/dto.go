package rest

import (
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes.
	maxPasswordLength = 72
	maxNameLength     = 100
	maxTitleLength    = 200
	maxDescLength     = 2000
)

// credentialsRequest is the body of both /auth/register and /auth/login.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r credentialsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(minPasswordLength, maxPasswordLength)),
	)
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type updateProfileRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

func (r updateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&r.FirstName, validation.RuneLength(0, maxNameLength)),
		validation.Field(&r.LastName, validation.RuneLength(0, maxNameLength)),
	)
}

func (r updateProfileRequest) patch() models.UserPatch {
	return models.UserPatch{Email: r.Email, FirstName: r.FirstName, LastName: r.LastName}
}

type createBookmarkRequest struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

func (r createBookmarkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.RuneLength(1, maxTitleLength)),
		validation.Field(&r.Link, validation.Required, is.URL),
		validation.Field(&r.Description, validation.RuneLength(0, maxDescLength)),
	)
}

type updateBookmarkRequest struct {
	Title       *string `json:"title"`
	Link        *string `json:"link"`
	Description *string `json:"description"`
}

func (r updateBookmarkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.RuneLength(1, maxTitleLength)),
		validation.Field(&r.Link, validation.NilOrNotEmpty, is.URL),
		validation.Field(&r.Description, validation.RuneLength(0, maxDescLength)),
	)
}

func (r updateBookmarkRequest) patch() models.BookmarkPatch {
	return models.BookmarkPatch{Title: r.Title, Link: r.Link, Description: r.Description}
}
