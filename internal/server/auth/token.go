// Package auth issues and verifies access tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenCodec signs and verifies HS256 access tokens whose subject is an
// account id. The key is fixed at construction.
type TokenCodec struct {
	key      []byte
	validity time.Duration
	now      func() time.Time
}

// NewTokenCodec returns a codec that issues tokens valid for validity.
func NewTokenCodec(secretKey string, validity time.Duration) *TokenCodec {
	return &TokenCodec{
		key:      []byte(secretKey),
		validity: validity,
		now:      time.Now,
	}
}

// WithClock returns a copy of c that reads the time from now.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	cp := *c
	cp.now = now
	return &cp
}

// Issue returns a signed token for subjectID.
func (c *TokenCodec) Issue(subjectID int64) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(subjectID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.validity)),
	})

	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of tokenString and returns its
// subject. It fails with common.ErrTokenExpired for a correctly signed but
// expired token and common.ErrInvalidToken for anything else.
func (c *TokenCodec) Verify(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, common.ErrTokenExpired
		}
		return 0, common.ErrInvalidToken
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.ErrInvalidToken
	}

	return id, nil
}
