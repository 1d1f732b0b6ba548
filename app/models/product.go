package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const DefaultLowStockThreshold = 5

type Product struct {
	ID                string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name              string          `gorm:"size:255;not null"`
	Slug              string          `gorm:"size:255;not null;uniqueIndex"`
	Description       string          `gorm:"type:text"`
	Price             decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	Stock             int             `gorm:"not null;default:0"`
	QuantitySold      int             `gorm:"not null;default:0;index"`
	LowStockThreshold int             `gorm:"not null;default:5"`
	IsNew             bool            `gorm:"default:false"`
	IsActive          bool            `gorm:"not null;index"`
	// Overwritten on every storefront request from the active promotions.
	DiscountPercent decimal.Decimal `gorm:"type:decimal(10,2);default:0.00"`
	StyleID         *string         `gorm:"size:36;index"`
	Style           *Style          `gorm:"foreignKey:StyleID"`
	CategoryID      *string         `gorm:"size:36;index"`
	Category        *Category       `gorm:"foreignKey:CategoryID"`
	ImageURL        string          `gorm:"size:500"`
	Colors          []string        `gorm:"type:text;serializer:json"`
	Ratings         []Rating        `gorm:"foreignKey:ProductID"`
	CreatedAt       time.Time       `gorm:"index"`
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`

	AverageRating float64         `gorm:"-"`
	FinalPrice    decimal.Decimal `gorm:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.LowStockThreshold == 0 {
		p.LowStockThreshold = DefaultLowStockThreshold
	}
	return
}

func (p Product) IsLowStock() bool {
	return p.Stock <= p.LowStockThreshold
}

func (p Product) HasDiscount() bool {
	return p.DiscountPercent.IsPositive()
}

type Style struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name      string `gorm:"size:100;not null"`
	CSSClass  string `gorm:"size:100"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Style) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
