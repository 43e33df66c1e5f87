package models

import (
	"time"
)

// Role is the organizational role a user holds in the custody chain.
// It is assigned at registration and never changes afterwards.
type Role string

const (
	RoleCentra      Role = "centra"
	RoleXYZ         Role = "xyz"
	RoleGuardHarbor Role = "guard_harbor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCentra, RoleXYZ, RoleGuardHarbor:
		return true
	}
	return false
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"not null"                 json:"username"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         Role   `gorm:"not null"                 json:"role"`
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"      json:"id"`
	Token     string    `gorm:"unique;not null" json:"token"`
	UserID    uint      `gorm:"index;not null"  json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"        json:"expires_at"`
}

// WetLeaves is the collection record for freshly retrieved raw material.
type WetLeaves struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RetrievalDate time.Time `gorm:"not null"   json:"retrieval_date"`
	Weight        float64   `gorm:"not null"   json:"weight"`
}

type DryLeaves struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	ExpDate time.Time `gorm:"not null"   json:"exp_date"`
	Weight  float64   `gorm:"not null"   json:"weight"`
}

type Flour struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FinishTime time.Time `gorm:"not null"   json:"finish_time"`
	Weight     float64   `gorm:"not null"   json:"weight"`
}

type Expedition struct {
	ID   uint   `gorm:"primaryKey"     json:"id"`
	Name string `gorm:"not null;index" json:"name"`
}

type Shipping struct {
	ID            uint      `gorm:"primaryKey"     json:"id"`
	DepartureDate time.Time `gorm:"not null"       json:"departure_date"`
	ExpeditionID  uint      `gorm:"index;not null" json:"expedition_id"`
}

type Checkpoint struct {
	ID            uint      `gorm:"primaryKey"     json:"id"`
	ArrivalDate   time.Time `gorm:"not null"       json:"arrival_date"`
	TotalWeight   float64   `gorm:"not null"       json:"total_weight"`
	TotalPackages int       `gorm:"not null"       json:"total_packages"`
	ShippingID    uint      `gorm:"index;not null" json:"shipping_id"`
}
