package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/helpers"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/models/other"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/repositories"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/services"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/utils/breadcrumb"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

const (
	productsPerPage = 9
	ratingsPerPage  = 20
)

type ratingForm struct {
	Stars   int    `validate:"min=1,max=5"`
	Comment string `validate:"max=1000"`
}

type ProductHandler struct {
	repo       repositories.ProductRepositoryImpl
	ratingRepo repositories.RatingRepositoryImpl
	catalog    *services.CatalogService
	validator  *validator.Validate
	render     *render.Render
	now        func() time.Time
}

func NewProductHandler(p repositories.ProductRepositoryImpl, rt repositories.RatingRepositoryImpl, c *services.CatalogService, v *validator.Validate, r *render.Render) *ProductHandler {
	return &ProductHandler{repo: p, ratingRepo: rt, catalog: c, validator: v, render: r, now: time.Now}
}

func (h *ProductHandler) Products(w http.ResponseWriter, r *http.Request) {
	log := helpers.LoggerFrom(r.Context())

	slug := r.URL.Query().Get("category")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * productsPerPage

	data := &other.ProductListPageData{
		BasePageData: other.BasePageData{
			Title:       "Sản phẩm",
			Breadcrumbs: breadcrumb.With(breadcrumb.Breadcrumb{Name: "Sản phẩm", URL: "/products"}),
		},
		Products:     []models.Product{},
		Categories:   []other.CategoryNode{},
		CategorySlug: slug,
		CurrentPage:  page,
		TotalPages:   1,
	}
	helpers.PopulateBaseData(r, &data.BasePageData)

	products, total, err := h.repo.GetPaginated(r.Context(), slug, productsPerPage, offset)
	if err != nil {
		log.Errorf("Products: failed to load products: %v", err)
		data.MessageStatus = "error"
		data.Message = "Không thể tải danh sách sản phẩm."
		_ = h.render.HTML(w, http.StatusOK, "products", data)
		return
	}

	if err := h.catalog.Decorate(r.Context(), h.now(), products); err != nil {
		log.Warnf("Products: could not apply promotions and ratings: %v", err)
	}
	data.Products = products
	if pages := int((total + productsPerPage - 1) / productsPerPage); pages > 1 {
		data.TotalPages = pages
	}

	categories, err := h.catalog.CategoryTree(r.Context())
	if err != nil {
		log.Warnf("Products: could not load categories: %v", err)
	} else {
		data.Categories = categories
	}

	_ = h.render.HTML(w, http.StatusOK, "products", data)
}

func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	log := helpers.LoggerFrom(r.Context())
	productSlug := mux.Vars(r)["slug"]
	if productSlug == "" {
		http.NotFound(w, r)
		return
	}

	product, err := h.repo.GetBySlug(r.Context(), productSlug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Errorf("ProductDetail: failed to load %s: %v", productSlug, err)
		http.Error(w, "Không thể tải sản phẩm", http.StatusInternalServerError)
		return
	}

	list := []models.Product{*product}
	if err := h.catalog.Decorate(r.Context(), h.now(), list); err != nil {
		log.Warnf("ProductDetail: could not apply promotions and ratings: %v", err)
	}

	ratings, err := h.ratingRepo.GetByProduct(r.Context(), product.ID, ratingsPerPage)
	if err != nil {
		log.Warnf("ProductDetail: could not load ratings for %s: %v", product.ID, err)
		ratings = []models.Rating{}
	}
	ratingCount, err := h.ratingRepo.CountByProduct(r.Context(), product.ID)
	if err != nil {
		log.Warnf("ProductDetail: could not count ratings for %s: %v", product.ID, err)
		ratingCount = int64(len(ratings))
	}

	crumbs := []breadcrumb.Breadcrumb{{Name: "Sản phẩm", URL: "/products"}}
	if product.Category != nil {
		crumbs = append(crumbs, breadcrumb.Breadcrumb{Name: product.Category.Name, URL: "/products?category=" + product.Category.Slug})
	}
	crumbs = append(crumbs, breadcrumb.Breadcrumb{Name: product.Name, URL: "/products/" + product.Slug})

	data := &other.ProductDetailPageData{
		BasePageData: other.BasePageData{Title: product.Name, Breadcrumbs: breadcrumb.With(crumbs...)},
		Product:      list[0],
		Ratings:      ratings,
		RatingCount:  ratingCount,
		Errors:       map[string]string{},
	}
	helpers.PopulateBaseData(r, &data.BasePageData)

	_ = h.render.HTML(w, http.StatusOK, "product", data)
}

func (h *ProductHandler) AddRating(w http.ResponseWriter, r *http.Request) {
	log := helpers.LoggerFrom(r.Context())
	productSlug := mux.Vars(r)["slug"]
	target := "/products/" + productSlug

	product, err := h.repo.GetBySlug(r.Context(), productSlug)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		helpers.RedirectWithMessage(w, r, target, "error", "Dữ liệu gửi lên không hợp lệ.")
		return
	}

	form := ratingForm{Comment: strings.TrimSpace(r.PostFormValue("comment"))}
	form.Stars, _ = strconv.Atoi(r.PostFormValue("stars"))
	if err := h.validator.Struct(&form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			helpers.RedirectWithMessage(w, r, target, "error", helpers.FirstValidationError(verrs))
			return
		}
		helpers.RedirectWithMessage(w, r, target, "error", "Đánh giá không hợp lệ.")
		return
	}

	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)
	rating := &models.Rating{
		ProductID: product.ID,
		UserID:    userID,
		Stars:     form.Stars,
		Comment:   form.Comment,
	}
	if err := h.ratingRepo.Create(r.Context(), rating); err != nil {
		log.Errorf("AddRating: failed to store rating for %s: %v", product.ID, err)
		helpers.RedirectWithMessage(w, r, target, "error", "Không thể lưu đánh giá.")
		return
	}

	helpers.RedirectWithMessage(w, r, target, "success", "Cảm ơn bạn đã đánh giá sản phẩm!")
}
