package fakers

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/helpers"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	flowerNames = []string{"Hoa hồng", "Hoa ly", "Hoa tulip", "Hoa cúc", "Hoa lan", "Hướng dương", "Cẩm tú cầu", "Baby trắng"}
	arrangement = []string{"Bó", "Giỏ", "Lẵng", "Hộp", "Bình"}
	colors      = []string{"đỏ", "hồng", "trắng", "vàng", "tím", "cam"}
	imagePaths  = []string{
		"/static/images/products/rose.jpg",
		"/static/images/products/lily.jpg",
		"/static/images/products/tulip.jpg",
		"/static/images/products/orchid.jpg",
	}
)

func UserFaker(role string) *models.User {
	return &models.User{
		ID:       uuid.New().String(),
		Email:    faker.Email(),
		FullName: faker.Name(),
		Role:     role,
	}
}

func CategoryFaker(name string, parent *models.Category) *models.Category {
	category := &models.Category{
		ID:   uuid.New().String(),
		Name: name,
		Slug: helpers.GenerateSlug(name),
	}
	if parent != nil {
		category.ParentID = &parent.ID
	}
	return category
}

func StyleFaker(name, cssClass string) *models.Style {
	return &models.Style{ID: uuid.New().String(), Name: name, CSSClass: cssClass}
}

func ProductFaker(category *models.Category, style *models.Style) *models.Product {
	flower := flowerNames[rand.Intn(len(flowerNames))]
	color := colors[rand.Intn(len(colors))]
	name := fmt.Sprintf("%s %s %s", arrangement[rand.Intn(len(arrangement))], flower, color)

	// up to 20 days old so some land inside the new-products window
	created := time.Now().Add(-time.Duration(rand.Intn(20*24)) * time.Hour)

	product := &models.Product{
		ID:                uuid.New().String(),
		Name:              name,
		Slug:              helpers.GenerateSlug(name + "-" + uuid.NewString()[:6]),
		Description:       faker.Paragraph(),
		Price:             fakePrice(),
		Stock:             rand.Intn(40) + 1,
		QuantitySold:      rand.Intn(300),
		LowStockThreshold: models.DefaultLowStockThreshold,
		IsNew:             rand.Intn(5) == 0,
		IsActive:          rand.Intn(10) != 0,
		ImageURL:          imagePaths[rand.Intn(len(imagePaths))],
		Colors:            pickColors(),
		CreatedAt:         created,
		UpdatedAt:         created,
	}
	if category != nil {
		product.CategoryID = &category.ID
	}
	if style != nil {
		product.StyleID = &style.ID
	}
	return product
}

func PromotionFaker(products []models.Product, now time.Time) *models.Promotion {
	start := now.Add(-time.Duration(rand.Intn(5)+1) * 24 * time.Hour)
	return &models.Promotion{
		ID:              uuid.New().String(),
		Name:            "Khuyến mãi " + faker.Word(),
		IsActive:        true,
		StartDate:       start,
		EndDate:         start.Add(time.Duration(rand.Intn(14)+3) * 24 * time.Hour),
		DiscountPercent: decimal.NewFromInt(int64(5 * (rand.Intn(8) + 1))),
		Products:        products,
	}
}

func RatingFaker(productID string) *models.Rating {
	return &models.Rating{
		ID:        uuid.New().String(),
		ProductID: productID,
		UserID:    uuid.New().String(),
		Stars:     rand.Intn(models.MaxRatingStars-models.MinRatingStars+1) + models.MinRatingStars,
		Comment:   faker.Sentence(),
	}
}

// fakePrice returns a price between 150.000 and 2.000.000 dong in steps of 10.000.
func fakePrice() decimal.Decimal {
	return decimal.NewFromInt(int64(rand.Intn(186)+15) * 10000)
}

func pickColors() []string {
	n := rand.Intn(3) + 1
	picked := make([]string, 0, n)
	for _, i := range rand.Perm(len(colors))[:n] {
		picked = append(picked, colors[i])
	}
	return picked
}
