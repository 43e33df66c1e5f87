package tokens

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/morleaf/leaf_chain/internal/models"
)

// AccessClaims is the self-contained identity carried by an access token.
// The role claim is informational only: authorization reads the stored role.
type AccessClaims struct {
	Email  string      `json:"email"`
	UserID uint        `json:"id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims carries only the owning user id. The persisted row, not the
// signed expiry, decides whether the token is still usable.
type RefreshClaims struct {
	UserID uint `json:"id"`
	jwt.RegisteredClaims
}
