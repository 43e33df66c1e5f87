package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/morleaf/leaf_chain/internal/models"
	"github.com/morleaf/leaf_chain/internal/repo"
	"github.com/morleaf/leaf_chain/internal/tokens"
)

const userContextKey = "current_user"

// RoleGate resolves the caller from a bearer token and enforces a single
// required role in front of a route group. The role comparison always uses
// the role stored in the database, not the token's role claim, so a stale
// token never grants more than the account currently has.
type RoleGate struct {
	Repo  *repo.GormRepo
	Codec *tokens.Codec
}

func NewRoleGate(r *repo.GormRepo, codec *tokens.Codec) *RoleGate {
	return &RoleGate{Repo: r, Codec: codec}
}

// RequireRole demands an exact match with one role. There is no hierarchy
// and no bypass role.
func (g *RoleGate) RequireRole(required models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := g.resolve(c)
			if err != nil {
				return err
			}

			if user.Role != required {
				return echo.NewHTTPError(http.StatusForbidden,
					fmt.Sprintf("user with role %s is not authorized to access this resource, role %s is required", user.Role, required))
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// resolve recovers the authenticated identity from the request's access
// token: Authorization header first, login cookie as fallback.
func (g *RoleGate) resolve(c echo.Context) (*models.User, error) {
	raw := extractToken(c)
	if raw == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	claims, err := g.Codec.ParseAccessToken(raw)
	if err != nil || claims.UserID == 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}

	user, err := g.Repo.UserByID(c.Request().Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "user not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "cannot load user")
	}

	return user, nil
}

func extractToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

// CurrentUser returns the identity stored by RequireRole.
func CurrentUser(c echo.Context) *models.User {
	if u, ok := c.Get(userContextKey).(*models.User); ok {
		return u
	}
	return nil
}
