// Package services contains server-side business logic. UserService covers
// registration, login and the current user's profile.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/dbx"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/repomanager"
)

// PasswordHasher is implemented by auth.BcryptHasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer is implemented by auth.TokenCodec.
type TokenIssuer interface {
	Issue(subjectID int64) (string, error)
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
	}
}

// NormalizeEmail trims and lowercases an address before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register stores a new account with a bcrypt hash of password.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.UserView, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, &models.User{Email: NormalizeEmail(email), PasswordHash: hash})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return u.View(), nil
}

// Login checks the credentials and returns a signed access token. An unknown
// email and a wrong password both fail with common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// keep the response time close to that of an existing account
			_ = s.hasher.Compare(s.dummy(), password)
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("error loading user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("error issuing token: %w", err)
	}

	return token, nil
}

// Me returns the account identified by id.
func (s *UserService) Me(ctx context.Context, id int64) (*models.UserView, error) {
	u, err := s.repomanager.Users(s.db).GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return u.View(), nil
}

// UpdateProfile applies patch to the account in a single transaction.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, patch models.UserPatch) (*models.UserView, error) {
	if patch.Email != nil {
		e := NormalizeEmail(*patch.Email)
		patch.Email = &e
	}

	var updated *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		u, err := repo.LockUserByID(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(u)

		updated, err = repo.Update(ctx, u)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return updated.View(), nil
}

func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("dummy-password-for-timing")
	})
	return s.dummyHash
}
