package auth

import (
	"errors"
	"time"

	"storefront/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates the session token could not be validated.
var ErrInvalidToken = errors.New("invalid token")

// Claims embeds the registered JWT claims plus the identity fields the
// auth middleware needs to rebuild a domain.Identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Sessions signs and verifies HS256 session tokens.
type Sessions struct {
	secret []byte
	ttl    time.Duration
}

// NewSessions builds a Sessions signer with the given secret and token TTL.
func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl}
}

// Issue signs a session token for the identity.
func (s *Sessions) Issue(identity domain.Identity) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: identity.UserID,
		Email:  identity.Email,
		Role:   identity.Role,
	})
	return token.SignedString(s.secret)
}

// Verify parses the token and returns the identity it was issued for.
func (s *Sessions) Verify(tokenString string) (domain.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Identity{}, ErrInvalidToken
	}
	if !token.Valid || claims.UserID == 0 {
		return domain.Identity{}, ErrInvalidToken
	}
	return domain.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// TTLSeconds reports the configured token lifetime in whole seconds.
func (s *Sessions) TTLSeconds() int {
	return int(s.ttl / time.Second)
}
