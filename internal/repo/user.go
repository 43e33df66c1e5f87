package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/morleaf/leaf_chain/internal/hash"
	"github.com/morleaf/leaf_chain/internal/models"
)

// CreateUser inserts the user and translates the email unique-constraint
// conflict into ErrEmailTaken. Concurrent registrations with the same email
// race on the constraint; the loser gets ErrEmailTaken, never a generic error.
func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// Authenticate looks the user up by email and verifies the password against
// the stored bcrypt hash. Both a missing user and a wrong password collapse
// into ErrInvalidCredentials.
func (r *GormRepo) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (r *GormRepo) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
