package services

import (
	"context"
	"net/http"
	"time"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/repositories"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/utils/calc"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/utils/sessions"
	"github.com/pkg/errors"
)

var (
	ErrInsufficientStock = errors.New("không đủ hàng trong kho")
	ErrInvalidQuantity   = errors.New("số lượng không hợp lệ")
	ErrProductNotFound   = errors.New("không tìm thấy sản phẩm")
)

type CartService struct {
	carts         sessions.CartStore
	productRepo   repositories.ProductRepositoryImpl
	promotionRepo repositories.PromotionRepositoryImpl
}

func NewCartService(carts sessions.CartStore, productRepo repositories.ProductRepositoryImpl, promotionRepo repositories.PromotionRepositoryImpl) *CartService {
	return &CartService{carts: carts, productRepo: productRepo, promotionRepo: promotionRepo}
}

func (s *CartService) GetCart(r *http.Request, visitorID string) (*models.ShoppingCart, error) {
	return s.carts.GetCart(r, visitorID)
}

// ItemCount is the number shown on the header cart badge.
func (s *CartService) ItemCount(r *http.Request, visitorID string) (int, error) {
	cart, err := s.carts.GetCart(r, visitorID)
	if err != nil {
		return 0, err
	}
	return cart.TotalItems(), nil
}

func (s *CartService) AddItem(ctx context.Context, w http.ResponseWriter, r *http.Request, visitorID, productID string, qty int, now time.Time) (*models.ShoppingCart, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil || product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}

	cart, err := s.carts.GetCart(r, visitorID)
	if err != nil {
		return nil, errors.Wrap(err, "could not load cart")
	}

	inCart := 0
	for _, item := range cart.Items {
		if item.ProductID == productID {
			inCart = item.Quantity
		}
	}
	if inCart+qty > product.Stock {
		return nil, ErrInsufficientStock
	}

	promotions, err := s.promotionRepo.GetActiveAt(ctx, now)
	if err != nil {
		return nil, errors.Wrap(err, "could not load promotions")
	}
	discount := calc.EffectiveDiscount(*product, promotions, now)

	cart.Add(models.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Slug:      product.Slug,
		ImageURL:  product.ImageURL,
		Price:     calc.DiscountedPrice(product.Price, discount),
		Quantity:  qty,
	})

	if err := s.carts.SaveCart(w, r, cart); err != nil {
		return nil, errors.Wrap(err, "could not save cart")
	}
	return cart, nil
}

func (s *CartService) RemoveItem(w http.ResponseWriter, r *http.Request, visitorID, productID string) (*models.ShoppingCart, error) {
	cart, err := s.carts.GetCart(r, visitorID)
	if err != nil {
		return nil, errors.Wrap(err, "could not load cart")
	}
	cart.Remove(productID)
	if err := s.carts.SaveCart(w, r, cart); err != nil {
		return nil, errors.Wrap(err, "could not save cart")
	}
	return cart, nil
}
