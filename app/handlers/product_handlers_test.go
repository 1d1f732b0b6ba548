package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/handlers"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/repositories"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProductHandler(db *gorm.DB) *handlers.ProductHandler {
	log := logrus.New()
	log.Out = io.Discard

	products := repositories.NewProductRepository(db)
	ratings := repositories.NewRatingRepository(db)
	catalog := services.NewCatalogService(
		products,
		repositories.NewPromotionRepository(db),
		ratings,
		repositories.NewCategoryRepository(db),
		log,
	)
	return handlers.NewProductHandler(products, ratings, catalog, validator.New(), newRender())
}

func withSlug(r *http.Request, slug string) *http.Request {
	return mux.SetURLVars(r, map[string]string{"slug": slug})
}

func TestProductHandler_Products(t *testing.T) {
	db := setupDB(t)
	seedProduct(t, db, models.Product{Name: "Bó hồng", Slug: "bo-hong", IsActive: true, Stock: 10})
	seedProduct(t, db, models.Product{Name: "Ẩn", Slug: "an", IsActive: false, Stock: 10})

	rec := httptest.NewRecorder()
	newProductHandler(db).Products(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bó hồng")
	assert.NotContains(t, rec.Body.String(), "/products/an\"")
}

func TestProductHandler_ProductDetail(t *testing.T) {
	db := setupDB(t)
	rose := seedProduct(t, db, models.Product{Name: "Hồng Ecuador", Slug: "hong-ecuador", IsActive: true, Stock: 3, Price: decimal.NewFromInt(250000), Colors: []string{"đỏ", "hồng"}})
	require.NoError(t, db.Create(&models.Rating{ProductID: rose.ID, Stars: 4, Comment: "Hoa tươi lâu"}).Error)
	require.NoError(t, db.Create(&models.Rating{ProductID: rose.ID, Stars: 5}).Error)

	h := newProductHandler(db)

	rec := httptest.NewRecorder()
	h.ProductDetail(rec, withSlug(httptest.NewRequest(http.MethodGet, "/products/hong-ecuador", nil), "hong-ecuador"))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Hồng Ecuador")
	assert.Contains(t, body, "250.000 ₫")
	assert.Contains(t, body, "4.5")
	assert.Contains(t, body, "(2 đánh giá)")
	assert.Contains(t, body, "Hoa tươi lâu")
	assert.Contains(t, body, "Chỉ còn 3 sản phẩm")

	rec = httptest.NewRecorder()
	h.ProductDetail(rec, withSlug(httptest.NewRequest(http.MethodGet, "/products/missing", nil), "missing"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_AddRating(t *testing.T) {
	db := setupDB(t)
	seedProduct(t, db, models.Product{Name: "Tulip", Slug: "tulip", IsActive: true, Stock: 5})
	h := newProductHandler(db)

	post := func(stars string) *httptest.ResponseRecorder {
		form := url.Values{"stars": {stars}, "comment": {"  đẹp  "}}
		req := httptest.NewRequest(http.MethodPost, "/products/tulip/ratings", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h.AddRating(rec, withSlug(req, "tulip"))
		return rec
	}

	rec := post("9")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "error", loc.Query().Get("status"))

	var count int64
	require.NoError(t, db.Model(&models.Rating{}).Count(&count).Error)
	assert.Zero(t, count)

	rec = post("4")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err = url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/products/tulip", loc.Path)
	assert.Equal(t, "success", loc.Query().Get("status"))

	var stored models.Rating
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, 4, stored.Stars)
	assert.Equal(t, "đẹp", stored.Comment)
}

func TestProductHandler_StoredDiscountIgnoredWhenPromotionsUnavailable(t *testing.T) {
	db := setupDB(t)
	seedProduct(t, db, models.Product{
		Name:            "Lan hồ điệp",
		Slug:            "lan-ho-diep",
		IsActive:        true,
		Stock:           4,
		Price:           decimal.NewFromInt(200000),
		DiscountPercent: decimal.NewFromInt(30),
	})
	require.NoError(t, db.Migrator().DropTable("promotion_products", &models.Promotion{}))
	h := newProductHandler(db)

	rec := httptest.NewRecorder()
	h.ProductDetail(rec, withSlug(httptest.NewRequest(http.MethodGet, "/products/lan-ho-diep", nil), "lan-ho-diep"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "200.000 ₫")
	assert.NotContains(t, rec.Body.String(), "30%")
	assert.NotContains(t, rec.Body.String(), "<del>")

	rec = httptest.NewRecorder()
	h.Products(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<strong>200.000 ₫</strong>")
	assert.NotContains(t, rec.Body.String(), "<strong>0 ₫</strong>")
}
