package repositories

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
	"gorm.io/gorm"
)

type ProductRepositoryImpl interface {
	GetNewProducts(ctx context.Context, since time.Time, limit int) ([]models.Product, error)
	GetBestSellers(ctx context.Context, limit int) ([]models.Product, error)
	GetPaginated(ctx context.Context, categorySlug string, limit, offset int) ([]models.Product, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetRandomActive(ctx context.Context, limit int) ([]models.Product, error)
	ListActive(ctx context.Context) ([]models.Product, error)
	CountActive(ctx context.Context) (int64, error)
	Create(ctx context.Context, product *models.Product) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) active(ctx context.Context) *gorm.DB {
	return p.db.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true)
}

func (p *productRepository) GetNewProducts(ctx context.Context, since time.Time, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.active(ctx).
		Preload("Style").
		Where("(created_at >= ? OR is_new = ?)", since, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("get new products: %w", err)
	}
	return products, nil
}

func (p *productRepository) GetBestSellers(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.active(ctx).
		Preload("Style").
		Order("quantity_sold DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("get best sellers: %w", err)
	}
	return products, nil
}

func (p *productRepository) inCategory(q *gorm.DB, slug string) *gorm.DB {
	if slug == "" {
		return q
	}
	category := p.db.Model(&models.Category{}).Select("id").Where("slug = ?", slug)
	children := p.db.Model(&models.Category{}).Select("id").Where("parent_id IN (?)", category)
	return q.Where("(category_id IN (?) OR category_id IN (?))", category, children)
}

func (p *productRepository) GetPaginated(ctx context.Context, categorySlug string, limit, offset int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	if err := p.inCategory(p.active(ctx), categorySlug).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	err := p.inCategory(p.active(ctx), categorySlug).
		Preload("Category").
		Preload("Style").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("get products page: %w", err)
	}

	return products, total, nil
}

func (p *productRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := p.active(ctx).
		Preload("Category").
		Preload("Style").
		Where("slug = ?", slug).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).
		Preload("Category").
		Preload("Style").
		Where("id = ?", id).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetRandomActive shuffles in Go so the query stays portable across MySQL
// and SQLite.
func (p *productRepository) GetRandomActive(ctx context.Context, limit int) ([]models.Product, error) {
	var ids []string
	if err := p.active(ctx).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list active product ids: %w", err)
	}
	if len(ids) == 0 || limit <= 0 {
		return []models.Product{}, nil
	}

	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	if len(ids) > limit {
		ids = ids[:limit]
	}

	var products []models.Product
	if err := p.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("load random products: %w", err)
	}

	byID := make(map[string]models.Product, len(products))
	for _, prod := range products {
		byID[prod.ID] = prod
	}
	shuffled := make([]models.Product, 0, len(products))
	for _, id := range ids {
		if prod, ok := byID[id]; ok {
			shuffled = append(shuffled, prod)
		}
	}
	return shuffled, nil
}

func (p *productRepository) ListActive(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := p.active(ctx).Order("created_at ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	return products, nil
}

func (p *productRepository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	if err := p.active(ctx).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count active products: %w", err)
	}
	return total, nil
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Create(product).Error
}
