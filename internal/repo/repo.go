package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

type GormRepo struct {
	DB *gorm.DB
}
