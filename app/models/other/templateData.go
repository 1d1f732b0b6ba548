package other

import (
	"html/template"
	"net/url"
	"time"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/utils/breadcrumb"
	"github.com/shopspring/decimal"
)

type UserForTemplate struct {
	ID       string
	FullName string
	Email    string
	Role     string
}

type BasePageData struct {
	Title         string
	IsLoggedIn    bool
	User          *UserForTemplate
	UserID        string
	CartCount     int
	CSRFField     template.HTML
	Message       string
	MessageStatus string
	Query         url.Values
	Breadcrumbs   []breadcrumb.Breadcrumb
	IsAdminPage   bool
	CurrentPath   string
}

type CategoryNode struct {
	ID       string
	Name     string
	Slug     string
	Children []CategoryNode
}

type HomePageData struct {
	BasePageData
	Categories  []CategoryNode
	NewProducts []models.Product
	BestSellers []models.Product
}

// ImageSearchResult is a view DTO and is never persisted.
type ImageSearchResult struct {
	ProductID       string          `json:"product_id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	ImageURL        string          `json:"image_url"`
	Price           decimal.Decimal `json:"price"`
	SimilarityScore float64         `json:"similarity_score"`
}

type ImageSearchPageData struct {
	BasePageData
	Results []ImageSearchResult
	Limit   int
}

type ImageIndexPageData struct {
	BasePageData
	IndexedCount    int64
	ActiveProducts  int64
	LastExtractedAt *time.Time
}

type ProductListPageData struct {
	BasePageData
	Products     []models.Product
	Categories   []CategoryNode
	CategorySlug string
	CurrentPage  int
	TotalPages   int
}

type ProductDetailPageData struct {
	BasePageData
	Product     models.Product
	Ratings     []models.Rating
	RatingCount int64
	Errors      map[string]string
}

type CartPageData struct {
	BasePageData
	Cart *models.ShoppingCart
}
