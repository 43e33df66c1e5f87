package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/morleaf/leaf_chain/internal/hash"
	"github.com/morleaf/leaf_chain/internal/logging"
	"github.com/morleaf/leaf_chain/internal/models"
	"github.com/morleaf/leaf_chain/internal/repo"
	"github.com/morleaf/leaf_chain/internal/tokens"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrInvalidCredentials  = repo.ErrInvalidCredentials
	ErrEmailTaken          = repo.ErrEmailTaken
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

type AuthService struct {
	Repo       *repo.GormRepo
	Codec      *tokens.Codec
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenResult carries the issued credentials back to the handler layer.
// RefreshToken and its expiry are only set by Login.
type TokenResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	Username     string
	Role         models.Role
}

// Register creates the account and immediately issues an access token, so
// registration doubles as a login. No refresh token is issued here; that
// only happens on an explicit login.
func (s *AuthService) Register(ctx context.Context, username, email, password string, role models.Role) (*TokenResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if username == "" || email == "" || password == "" || !role.Valid() {
		return nil, ErrValidation
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		Role:         role,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			l.Warn("register_error", "status", 409, "reason", "email already registered")
			return nil, ErrEmailTaken
		}
		l.Error("register_error", "status", 500, "error", err)
		return nil, err
	}

	accessToken, err := s.Codec.IssueAccessToken(user.Username, user.Email, user.ID, user.Role, s.AccessTTL)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot sign access token", "error", err)
		return nil, err
	}

	return &TokenResult{
		AccessToken: accessToken,
		AccessExp:   time.Now().Add(s.AccessTTL),
		Username:    user.Username,
		Role:        user.Role,
	}, nil
}

// Login authenticates by email and, on success, issues an access token and a
// refresh token, persisting the refresh token row. Nothing is persisted on
// failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return nil, ErrValidation
	}

	user, err := s.Repo.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 401, "reason", "incorrect email or password")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	accessExp := time.Now().Add(s.AccessTTL)
	accessToken, err := s.Codec.IssueAccessToken(user.Username, user.Email, user.ID, user.Role, s.AccessTTL)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign access token", "error", err)
		return nil, err
	}

	refreshExp := time.Now().Add(s.RefreshTTL)
	refreshToken, err := s.Codec.IssueRefreshToken(user.ID, s.RefreshTTL)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign refresh token", "error", err)
		return nil, err
	}

	if err := s.Repo.SaveRefreshToken(ctx, refreshToken, user.ID, refreshExp); err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot persist refresh token", "error", err)
		return nil, err
	}

	l.Info("login_successful", "user_id", user.ID)
	return &TokenResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		Username:     user.Username,
		Role:         user.Role,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The stored
// row's expiry is authoritative: a token whose signature still verifies is
// rejected once the persisted expires_at has passed. The row itself is left
// untouched, so the refresh token stays usable until that expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := s.Codec.ParseRefreshToken(refreshToken)
	if err != nil || claims.UserID == 0 {
		return nil, ErrInvalidRefreshToken
	}

	row, err := s.Repo.FindRefreshToken(ctx, refreshToken, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		l.Error("refresh_failed", "status", 500, "error", err)
		return nil, err
	}
	if !row.ExpiresAt.After(time.Now()) {
		l.Warn("refresh_failed", "status", 401, "reason", "stored refresh token expired")
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.Repo.UserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		l.Error("refresh_failed", "status", 500, "error", err)
		return nil, err
	}

	accessToken, err := s.Codec.IssueAccessToken(user.Username, user.Email, user.ID, user.Role, s.AccessTTL)
	if err != nil {
		l.Error("refresh_failed", "status", 500, "reason", "cannot sign access token", "error", err)
		return nil, err
	}

	return &TokenResult{
		AccessToken: accessToken,
		AccessExp:   time.Now().Add(s.AccessTTL),
		Username:    user.Username,
		Role:        user.Role,
	}, nil
}
