package repo

import (
	"context"
	"time"

	"github.com/morleaf/leaf_chain/internal/models"
)

func (r *GormRepo) SaveRefreshToken(ctx context.Context, token string, userID uint, expiresAt time.Time) error {
	row := models.RefreshToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	return r.DB.WithContext(ctx).Create(&row).Error
}

// FindRefreshToken loads the row matching the exact (token, user) pair.
// Callers must treat the stored ExpiresAt as authoritative.
func (r *GormRepo) FindRefreshToken(ctx context.Context, token string, userID uint) (*models.RefreshToken, error) {
	var row models.RefreshToken
	if err := r.DB.WithContext(ctx).
		Where("token = ? AND user_id = ?", token, userID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
