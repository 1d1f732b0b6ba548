package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/models/migrations"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, p models.Product) models.Product {
	t.Helper()
	if p.Slug == "" {
		p.Slug = p.Name
	}
	if p.Price.IsZero() {
		p.Price = decimal.NewFromInt(100000)
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestProductRepository_GetNewProducts(t *testing.T) {
	db := setupDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	now := time.Now()

	seedProduct(t, db, models.Product{Name: "fresh", IsActive: true, CreatedAt: now.Add(-2 * 24 * time.Hour)})
	seedProduct(t, db, models.Product{Name: "flagged", IsActive: true, IsNew: true, CreatedAt: now.Add(-30 * 24 * time.Hour)})
	seedProduct(t, db, models.Product{Name: "old", IsActive: true, CreatedAt: now.Add(-30 * 24 * time.Hour)})
	seedProduct(t, db, models.Product{Name: "hidden", IsActive: false, CreatedAt: now.Add(-time.Hour)})

	products, err := repo.GetNewProducts(ctx, now.Add(-7*24*time.Hour), 10)
	require.NoError(t, err)

	names := []string{}
	for _, p := range products {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"fresh", "flagged"}, names)
}

func TestProductRepository_GetNewProductsHonoursLimit(t *testing.T) {
	db := setupDB(t)
	repo := NewProductRepository(db)

	for i := 0; i < 15; i++ {
		seedProduct(t, db, models.Product{Name: fmt.Sprintf("p%02d", i), IsActive: true, IsNew: true})
	}

	products, err := repo.GetNewProducts(context.Background(), time.Now().Add(-7*24*time.Hour), 10)
	require.NoError(t, err)
	assert.Len(t, products, 10)
}

func TestProductRepository_GetBestSellers(t *testing.T) {
	db := setupDB(t)
	repo := NewProductRepository(db)

	for i := 0; i < 25; i++ {
		seedProduct(t, db, models.Product{Name: fmt.Sprintf("p%02d", i), IsActive: true, QuantitySold: i * 3})
	}
	seedProduct(t, db, models.Product{Name: "inactive-hit", IsActive: false, QuantitySold: 1000})

	products, err := repo.GetBestSellers(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, products, 20)
	assert.Equal(t, 72, products[0].QuantitySold)
	for i := 1; i < len(products); i++ {
		assert.GreaterOrEqual(t, products[i-1].QuantitySold, products[i].QuantitySold)
	}
}

func TestProductRepository_ColorsRoundTrip(t *testing.T) {
	db := setupDB(t)
	repo := NewProductRepository(db)

	created := seedProduct(t, db, models.Product{Name: "tulip", IsActive: true, Colors: []string{"vàng", "trắng"}})

	loaded, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"vàng", "trắng"}, loaded.Colors)
	assert.Equal(t, models.DefaultLowStockThreshold, loaded.LowStockThreshold)
}

func TestProductRepository_GetRandomActive(t *testing.T) {
	db := setupDB(t)
	repo := NewProductRepository(db)

	for i := 0; i < 6; i++ {
		seedProduct(t, db, models.Product{Name: fmt.Sprintf("p%d", i), IsActive: true})
	}
	seedProduct(t, db, models.Product{Name: "off", IsActive: false})

	products, err := repo.GetRandomActive(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, products, 4)
	for _, p := range products {
		assert.True(t, p.IsActive)
	}

	all, err := repo.GetRandomActive(context.Background(), 50)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestProductRepository_GetPaginatedByCategory(t *testing.T) {
	db := setupDB(t)
	repo := NewProductRepository(db)
	cats := NewCategoryRepository(db)
	ctx := context.Background()

	roses := &models.Category{Name: "Hoa hồng", Slug: "hoa-hong"}
	require.NoError(t, cats.Create(ctx, roses))
	red := &models.Category{Name: "Hồng đỏ", Slug: "hong-do", ParentID: &roses.ID}
	require.NoError(t, cats.Create(ctx, red))
	lilies := &models.Category{Name: "Hoa ly", Slug: "hoa-ly"}
	require.NoError(t, cats.Create(ctx, lilies))

	seedProduct(t, db, models.Product{Name: "a", IsActive: true, CategoryID: &roses.ID})
	seedProduct(t, db, models.Product{Name: "b", IsActive: true, CategoryID: &red.ID})
	seedProduct(t, db, models.Product{Name: "c", IsActive: true, CategoryID: &lilies.ID})

	products, total, err := repo.GetPaginated(ctx, "hoa-hong", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, products, 2)

	_, total, err = repo.GetPaginated(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestCategoryRepository_TopLevelChildrenSortedByName(t *testing.T) {
	db := setupDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	root := &models.Category{Name: "Hoa tươi", Slug: "hoa-tuoi"}
	require.NoError(t, repo.Create(ctx, root))
	for _, name := range []string{"Tulip", "Cẩm chướng", "Lan"} {
		require.NoError(t, repo.Create(ctx, &models.Category{Name: name, Slug: name, ParentID: &root.ID}))
	}
	require.NoError(t, repo.Create(ctx, &models.Category{Name: "Giỏ hoa", Slug: "gio-hoa"}))

	tree, err := repo.GetTopLevelWithChildren(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 2)

	var fresh models.Category
	for _, c := range tree {
		assert.Nil(t, c.ParentID)
		if c.ID == root.ID {
			fresh = c
		}
	}
	require.Len(t, fresh.Children, 3)
	assert.Equal(t, "Cẩm chướng", fresh.Children[0].Name)
	assert.Equal(t, "Lan", fresh.Children[1].Name)
	assert.Equal(t, "Tulip", fresh.Children[2].Name)
}

func TestPromotionRepository_GetActiveAt(t *testing.T) {
	db := setupDB(t)
	repo := NewPromotionRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	rose := seedProduct(t, db, models.Product{Name: "rose", IsActive: true})

	require.NoError(t, repo.Create(ctx, &models.Promotion{
		Name: "live", IsActive: true, StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour),
		DiscountPercent: decimal.NewFromInt(10), Products: []models.Product{rose},
	}))
	require.NoError(t, repo.Create(ctx, &models.Promotion{
		Name: "switched-off", IsActive: false, StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour),
		DiscountPercent: decimal.NewFromInt(50), Products: []models.Product{rose},
	}))
	require.NoError(t, repo.Create(ctx, &models.Promotion{
		Name: "expired", IsActive: true, StartDate: now.Add(-48 * time.Hour), EndDate: now.Add(-24 * time.Hour),
		DiscountPercent: decimal.NewFromInt(40), Products: []models.Product{rose},
	}))

	promotions, err := repo.GetActiveAt(ctx, now)
	require.NoError(t, err)
	require.Len(t, promotions, 1)
	assert.Equal(t, "live", promotions[0].Name)
	require.Len(t, promotions[0].Products, 1)
	assert.Equal(t, rose.ID, promotions[0].Products[0].ID)
}

func TestRatingRepository_AverageByProduct(t *testing.T) {
	db := setupDB(t)
	repo := NewRatingRepository(db)
	ctx := context.Background()

	rated := seedProduct(t, db, models.Product{Name: "rated", IsActive: true})
	unrated := seedProduct(t, db, models.Product{Name: "unrated", IsActive: true})

	for _, stars := range []int{5, 4, 3} {
		require.NoError(t, repo.Create(ctx, &models.Rating{ProductID: rated.ID, Stars: stars}))
	}

	averages, err := repo.AverageByProduct(ctx, []string{rated.ID, unrated.ID})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, averages[rated.ID], 0.0001)
	_, ok := averages[unrated.ID]
	assert.False(t, ok)

	empty, err := repo.AverageByProduct(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRatingRepository_CountByProduct(t *testing.T) {
	db := setupDB(t)
	repo := NewRatingRepository(db)
	ctx := context.Background()

	popular := seedProduct(t, db, models.Product{Name: "popular", IsActive: true})
	for i := 0; i < 25; i++ {
		require.NoError(t, repo.Create(ctx, &models.Rating{ProductID: popular.ID, Stars: 5}))
	}

	count, err := repo.CountByProduct(ctx, popular.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), count)

	recent, err := repo.GetByProduct(ctx, popular.ID, 20)
	require.NoError(t, err)
	assert.Len(t, recent, 20)

	count, err = repo.CountByProduct(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProductFeatureRepository_Upsert(t *testing.T) {
	db := setupDB(t)
	repo := NewProductFeatureRepository(db)
	ctx := context.Background()

	last, err := repo.LastExtractedAt(ctx)
	require.NoError(t, err)
	assert.Nil(t, last)

	first := time.Now().Add(-time.Hour).UTC()
	require.NoError(t, repo.Upsert(ctx, &models.ProductFeature{ProductID: "p1", Status: models.FeatureStatusPlaceholder, ExtractedAt: first}))
	second := time.Now().UTC()
	require.NoError(t, repo.Upsert(ctx, &models.ProductFeature{ProductID: "p1", Status: models.FeatureStatusPlaceholder, ExtractedAt: second}))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	last, err = repo.LastExtractedAt(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.WithinDuration(t, second, *last, time.Second)
}
