package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Promotion struct {
	ID              string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name            string          `gorm:"size:255;not null"`
	IsActive        bool            `gorm:"not null;index"`
	StartDate       time.Time       `gorm:"not null;index"`
	EndDate         time.Time       `gorm:"not null;index"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Products        []Product       `gorm:"many2many:promotion_products;"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (p *Promotion) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// IsActiveAt reports whether the promotion is switched on and now falls
// inside its validity window, both ends inclusive.
func (p Promotion) IsActiveAt(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	return !now.Before(p.StartDate) && !now.After(p.EndDate)
}

func (p Promotion) Covers(productID string) bool {
	for _, prod := range p.Products {
		if prod.ID == productID {
			return true
		}
	}
	return false
}
