package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID        string     `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name      string     `gorm:"size:100;not null;uniqueIndex"`
	Slug      string     `gorm:"size:100;not null;uniqueIndex"`
	ParentID  *string    `gorm:"size:36;index"`
	Parent    *Category  `gorm:"foreignKey:ParentID"`
	Children  []Category `gorm:"foreignKey:ParentID"`
	Products  []Product  `gorm:"foreignKey:CategoryID"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
