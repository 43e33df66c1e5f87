package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/morleaf/leaf_chain/internal/logging"
	"github.com/morleaf/leaf_chain/internal/models"
	"github.com/morleaf/leaf_chain/internal/service"
	"github.com/morleaf/leaf_chain/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func CreateCookie(name, value, path string, expTime time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expTime,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Register(ctx, req.Username, req.Email, req.Password, models.Role(req.Role))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("register_error", "status", 400, "reason", "invalid username, email, password or role")
			return echo.NewHTTPError(http.StatusBadRequest, "invalid username, email, password or role")
		}
		if errors.Is(err, service.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusConflict, "email already registered")
		}
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create user")
	}

	l.Info("register_successful", "username", res.Username)
	return c.JSON(http.StatusCreated, transport.TokenResponse{
		AccessToken: res.AccessToken,
		TokenType:   "bearer",
		Username:    res.Username,
		Role:        string(res.Role),
	})
}

// Login reads form-encoded credentials; the username field carries the email.
// The access token is also set as an HTTP-only cookie as a second transport,
// it is not a separate credential.
func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	email := c.FormValue("username")
	password := c.FormValue("password")

	res, err := h.Svc.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusUnauthorized, "incorrect email or password")
		}
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "unexpected error during login")
	}

	c.SetCookie(CreateCookie("token", res.AccessToken, "/", res.AccessExp))

	return c.JSON(http.StatusOK, transport.TokenResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		TokenType:    "bearer",
		Username:     res.Username,
		Role:         string(res.Role),
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	raw := c.QueryParam("refresh_token")
	if raw == "" {
		raw = c.FormValue("refresh_token")
	}

	res, err := h.Svc.Refresh(ctx, raw)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			l.Warn("refresh_error", "status", 401, "reason", "invalid or expired refresh token")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired refresh token")
		}
		l.Error("refresh_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "unexpected error during refresh")
	}

	return c.JSON(http.StatusOK, transport.TokenResponse{
		AccessToken: res.AccessToken,
		TokenType:   "bearer",
		Username:    res.Username,
		Role:        string(res.Role),
	})
}
