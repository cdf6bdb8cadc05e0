package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMissing indicates no token was supplied at all.
	ErrTokenMissing = errors.New("token missing")
	// ErrTokenInvalid covers malformed tokens, bad signatures and expiry.
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims carries the registered claim set; the subject is the user's email.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless HS256 identity tokens. The
// signing secret is fixed at startup; rotating it invalidates every
// outstanding token.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token naming email as subject, valid for the configured TTL.
func (s *TokenService) Issue(email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	return token.SignedString(s.secret)
}

// Verify returns the subject email of a valid token. A blank token yields
// ErrTokenMissing; any parse, signature or expiry failure yields
// ErrTokenInvalid.
func (s *TokenService) Verify(tokenString string) (string, error) {
	if strings.TrimSpace(tokenString) == "" {
		return "", ErrTokenMissing
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}
