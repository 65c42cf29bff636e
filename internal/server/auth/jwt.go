// Package auth implements the credential primitives of the server: signed
// access tokens and salted password hashing.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tasklist/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Both wrap common.ErrInvalidToken; the distinction is only for logs.
var (
	ErrInvalidSignature = fmt.Errorf("%w: signature mismatch", common.ErrInvalidToken)
	ErrTokenExpired     = fmt.Errorf("%w: token expired", common.ErrInvalidToken)
)

// Claims carries the owner identity in the standard subject claim. UserID
// mirrors it under "id" for clients that read the payload directly.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// TokenService issues and verifies HS256 access tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl, now: time.Now}
}

// WithClock replaces the time source. Intended for tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue returns a token asserting ownerID, valid for the configured TTL.
func (s *TokenService) Issue(ownerID string) (string, error) {
	issuedAt := s.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ownerID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
		UserID: ownerID,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the owner identity.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w (%v)", ErrInvalidSignature, err)
	}
	if !token.Valid {
		return "", ErrInvalidSignature
	}

	ownerID := claims.Subject
	if ownerID == "" {
		ownerID = claims.UserID
	}
	if ownerID == "" {
		return "", fmt.Errorf("%w: no subject", ErrInvalidSignature)
	}
	return ownerID, nil
}
