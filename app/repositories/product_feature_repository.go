package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductFeatureRepositoryImpl interface {
	Upsert(ctx context.Context, feature *models.ProductFeature) error
	Count(ctx context.Context) (int64, error)
	LastExtractedAt(ctx context.Context) (*time.Time, error)
}

type productFeatureRepository struct {
	db *gorm.DB
}

func NewProductFeatureRepository(db *gorm.DB) ProductFeatureRepositoryImpl {
	return &productFeatureRepository{db}
}

func (r *productFeatureRepository) Upsert(ctx context.Context, feature *models.ProductFeature) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"image_url", "vector", "status", "extracted_at"}),
		}).
		Create(feature).Error
	if err != nil {
		return fmt.Errorf("upsert feature for %s: %w", feature.ProductID, err)
	}
	return nil
}

func (r *productFeatureRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ProductFeature{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count features: %w", err)
	}
	return total, nil
}

func (r *productFeatureRepository) LastExtractedAt(ctx context.Context) (*time.Time, error) {
	var feature models.ProductFeature
	err := r.db.WithContext(ctx).Order("extracted_at DESC").Limit(1).Find(&feature).Error
	if err != nil {
		return nil, fmt.Errorf("last extraction: %w", err)
	}
	if feature.ProductID == "" {
		return nil, nil
	}
	return &feature.ExtractedAt, nil
}
