package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/morleaf/leaf_chain/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Codec signs and verifies all tokens with a single shared HS256 secret.
// The secret comes from configuration and is read-only after startup.
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

func (c *Codec) IssueAccessToken(username, email string, userID uint, role models.Role, ttl time.Duration) (string, error) {
	claims := AccessClaims{
		Email:  email,
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

func (c *Codec) IssueRefreshToken(userID uint, ttl time.Duration) (string, error) {
	claims := RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

func (c *Codec) ParseAccessToken(raw string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := c.parse(raw, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

func (c *Codec) ParseRefreshToken(raw string) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := c.parse(raw, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

func (c *Codec) parse(raw string, claims jwt.Claims) error {
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		return ErrInvalidToken
	}
	return nil
}
