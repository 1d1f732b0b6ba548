package repositories

import (
	"context"
	"fmt"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
	"gorm.io/gorm"
)

type RatingRepositoryImpl interface {
	AverageByProduct(ctx context.Context, productIDs []string) (map[string]float64, error)
	GetByProduct(ctx context.Context, productID string, limit int) ([]models.Rating, error)
	CountByProduct(ctx context.Context, productID string) (int64, error)
	Create(ctx context.Context, rating *models.Rating) error
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepositoryImpl {
	return &ratingRepository{db}
}

type productAverage struct {
	ProductID string
	Average   float64
}

// AverageByProduct omits products without ratings from the returned map.
func (r *ratingRepository) AverageByProduct(ctx context.Context, productIDs []string) (map[string]float64, error) {
	averages := make(map[string]float64, len(productIDs))
	if len(productIDs) == 0 {
		return averages, nil
	}

	var rows []productAverage
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("product_id, AVG(stars) AS average").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("average ratings: %w", err)
	}

	for _, row := range rows {
		averages[row.ProductID] = row.Average
	}
	return averages, nil
}

func (r *ratingRepository) GetByProduct(ctx context.Context, productID string, limit int) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("get ratings for %s: %w", productID, err)
	}
	return ratings, nil
}

func (r *ratingRepository) CountByProduct(ctx context.Context, productID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count ratings for %s: %w", productID, err)
	}
	return count, nil
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}
