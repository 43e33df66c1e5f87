package auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/morleaf/leaf_chain/internal/hash"
	"github.com/morleaf/leaf_chain/internal/models"
	"github.com/morleaf/leaf_chain/internal/repo"
	"github.com/morleaf/leaf_chain/internal/tokens"
)

type gateEnv struct {
	DB    *gorm.DB
	Gate  *RoleGate
	Codec *tokens.Codec
}

func newGateEnv(t *testing.T) *gateEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	codec := tokens.NewCodec([]byte("test-jwt-secret"))
	return &gateEnv{
		DB:    db,
		Gate:  NewRoleGate(&repo.GormRepo{DB: db}, codec),
		Codec: codec,
	}
}

func (env *gateEnv) createUser(t *testing.T, username string, role models.Role) *models.User {
	t.Helper()

	pwHash, err := hash.HashPassword("password")
	require.NoError(t, err)

	user := models.User{
		Username:     username,
		Email:        username + "@x.com",
		PasswordHash: pwHash,
		Role:         role,
	}
	require.NoError(t, env.DB.Create(&user).Error)
	return &user
}

func (env *gateEnv) accessToken(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := env.Codec.IssueAccessToken(user.Username, user.Email, user.ID, user.Role, time.Hour)
	require.NoError(t, err)
	return token
}

func doGated(t *testing.T, env *gateEnv, required models.Role, setup func(*http.Request)) (error, *models.User) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *models.User
	handler := env.Gate.RequireRole(required)(func(c echo.Context) error {
		seen = CurrentUser(c)
		return c.NoContent(http.StatusOK)
	})
	return handler(c), seen
}

func TestRoleGate_MatchingRolePasses(t *testing.T) {
	env := newGateEnv(t)
	user := env.createUser(t, "centra_user", models.RoleCentra)
	token := env.accessToken(t, user)

	err, seen := doGated(t, env, models.RoleCentra, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, user.ID, seen.ID)
}

func TestRoleGate_WrongRoleForbidden_NamesBothRoles(t *testing.T) {
	env := newGateEnv(t)
	user := env.createUser(t, "harbor_user", models.RoleGuardHarbor)
	token := env.accessToken(t, user)

	err, _ := doGated(t, env, models.RoleCentra, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	assert.Equal(t, http.StatusForbidden, he.Code)

	msg := fmt.Sprint(he.Message)
	assert.Contains(t, msg, string(models.RoleGuardHarbor))
	assert.Contains(t, msg, string(models.RoleCentra))
}

func TestRoleGate_MissingToken(t *testing.T) {
	env := newGateEnv(t)

	err, _ := doGated(t, env, models.RoleCentra, nil)
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRoleGate_InvalidToken(t *testing.T) {
	env := newGateEnv(t)

	err, _ := doGated(t, env, models.RoleCentra, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-valid-jwt")
	})
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRoleGate_StaleTokenForDeletedUser(t *testing.T) {
	env := newGateEnv(t)
	user := env.createUser(t, "gone_user", models.RoleCentra)
	token := env.accessToken(t, user)

	require.NoError(t, env.DB.Delete(&models.User{}, user.ID).Error)

	err, _ := doGated(t, env, models.RoleCentra, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRoleGate_StoredRoleWins(t *testing.T) {
	env := newGateEnv(t)
	user := env.createUser(t, "moved_user", models.RoleCentra)
	token := env.accessToken(t, user)

	// The token still claims centra; the gate must read the stored role.
	require.NoError(t, env.DB.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("role", models.RoleGuardHarbor).Error)

	err, _ := doGated(t, env, models.RoleCentra, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)

	err, _ = doGated(t, env, models.RoleGuardHarbor, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	require.NoError(t, err)
}

func TestRoleGate_CookieFallback(t *testing.T) {
	env := newGateEnv(t)
	user := env.createUser(t, "cookie_user", models.RoleXYZ)
	token := env.accessToken(t, user)

	err, seen := doGated(t, env, models.RoleXYZ, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	})
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, user.ID, seen.ID)
}
