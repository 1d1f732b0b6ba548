package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User rows are written by the identity provider integration; the storefront
// only reads them to resolve roles.
type User struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Email     string `gorm:"size:100;not null;uniqueIndex"`
	FullName  string `gorm:"size:200"`
	Role      string `gorm:"size:20;default:'customer';not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)
