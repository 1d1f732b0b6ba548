package services

import (
	"context"
	"sort"
	"time"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/models/other"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/repositories"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/utils/calc"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	NewProductsLimit = 10
	BestSellersLimit = 20
	NewProductWindow = 7 * 24 * time.Hour
)

type HomeCatalog struct {
	Categories  []other.CategoryNode
	NewProducts []models.Product
	BestSellers []models.Product
}

// EmptyHomeCatalog is what the home page shows when aggregation fails.
func EmptyHomeCatalog() *HomeCatalog {
	return &HomeCatalog{
		Categories:  []other.CategoryNode{},
		NewProducts: []models.Product{},
		BestSellers: []models.Product{},
	}
}

type CatalogService struct {
	productRepo   repositories.ProductRepositoryImpl
	promotionRepo repositories.PromotionRepositoryImpl
	ratingRepo    repositories.RatingRepositoryImpl
	categoryRepo  repositories.CategoryRepositoryImpl
	log           logrus.FieldLogger
}

func NewCatalogService(
	productRepo repositories.ProductRepositoryImpl,
	promotionRepo repositories.PromotionRepositoryImpl,
	ratingRepo repositories.RatingRepositoryImpl,
	categoryRepo repositories.CategoryRepositoryImpl,
	log logrus.FieldLogger,
) *CatalogService {
	return &CatalogService{
		productRepo:   productRepo,
		promotionRepo: promotionRepo,
		ratingRepo:    ratingRepo,
		categoryRepo:  categoryRepo,
		log:           log,
	}
}

func (s *CatalogService) BuildHomePage(ctx context.Context, now time.Time) (*HomeCatalog, error) {
	newProducts, err := s.productRepo.GetNewProducts(ctx, now.Add(-NewProductWindow), NewProductsLimit)
	if err != nil {
		return nil, errors.Wrap(err, "could not retrieve new products")
	}

	bestSellers, err := s.productRepo.GetBestSellers(ctx, BestSellersLimit)
	if err != nil {
		return nil, errors.Wrap(err, "could not retrieve best sellers")
	}

	if err := s.Decorate(ctx, now, newProducts, bestSellers); err != nil {
		return nil, err
	}

	categories, err := s.CategoryTree(ctx)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"new":         len(newProducts),
		"bestSellers": len(bestSellers),
		"categories":  len(categories),
	}).Debug("BuildHomePage: catalog assembled")

	return &HomeCatalog{
		Categories:  categories,
		NewProducts: newProducts,
		BestSellers: bestSellers,
	}, nil
}

// Decorate stamps the effective discount, final price and average rating on
// every product in the given lists.
func (s *CatalogService) Decorate(ctx context.Context, now time.Time, lists ...[]models.Product) error {
	promotions, err := s.promotionRepo.GetActiveAt(ctx, now)
	if err != nil {
		// stored discounts never reach the page, even when promotions are unreadable
		for _, list := range lists {
			calc.ApplyPromotions(list, nil, now)
		}
		return errors.Wrap(err, "could not retrieve active promotions")
	}
	for _, list := range lists {
		calc.ApplyPromotions(list, promotions, now)
	}

	seen := map[string]struct{}{}
	ids := []string{}
	for _, list := range lists {
		for _, p := range list {
			if _, ok := seen[p.ID]; !ok {
				seen[p.ID] = struct{}{}
				ids = append(ids, p.ID)
			}
		}
	}

	averages, err := s.ratingRepo.AverageByProduct(ctx, ids)
	if err != nil {
		return errors.Wrap(err, "could not retrieve ratings")
	}

	for _, list := range lists {
		for i := range list {
			list[i].AverageRating = averages[list[i].ID]
		}
	}
	return nil
}

func (s *CatalogService) CategoryTree(ctx context.Context) ([]other.CategoryNode, error) {
	categories, err := s.categoryRepo.GetTopLevelWithChildren(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "could not retrieve categories")
	}
	top := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if c.ParentID == nil {
			top = append(top, c)
		}
	}
	return toCategoryNodes(top), nil
}

func toCategoryNodes(categories []models.Category) []other.CategoryNode {
	nodes := make([]other.CategoryNode, 0, len(categories))
	for _, c := range categories {
		nodes = append(nodes, other.CategoryNode{
			ID:       c.ID,
			Name:     c.Name,
			Slug:     c.Slug,
			Children: toCategoryNodes(c.Children),
		})
	}
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })
	return nodes
}
