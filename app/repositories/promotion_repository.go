package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
	"gorm.io/gorm"
)

type PromotionRepositoryImpl interface {
	GetActiveAt(ctx context.Context, now time.Time) ([]models.Promotion, error)
	Create(ctx context.Context, promotion *models.Promotion) error
}

type promotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) PromotionRepositoryImpl {
	return &promotionRepository{db}
}

func (r *promotionRepository) GetActiveAt(ctx context.Context, now time.Time) ([]models.Promotion, error) {
	var promotions []models.Promotion
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
		Preload("Products").
		Find(&promotions).Error
	if err != nil {
		return nil, fmt.Errorf("get active promotions: %w", err)
	}
	return promotions, nil
}

func (r *promotionRepository) Create(ctx context.Context, promotion *models.Promotion) error {
	return r.db.WithContext(ctx).Create(promotion).Error
}
