package calc

import (
	"time"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func CalculateDiscount(baseTotal, discountPercent decimal.Decimal) decimal.Decimal {
	return baseTotal.Mul(discountPercent).Div(hundred)
}

// DiscountedPrice rounds to whole dong.
func DiscountedPrice(price, discountPercent decimal.Decimal) decimal.Decimal {
	if !discountPercent.IsPositive() {
		return price
	}
	return price.Sub(CalculateDiscount(price, discountPercent)).Round(0)
}

// EffectiveDiscount returns the highest discount among promotions that are
// active at now and include the product, or zero.
func EffectiveDiscount(product models.Product, promotions []models.Promotion, now time.Time) decimal.Decimal {
	best := decimal.Zero
	for _, promo := range promotions {
		if !promo.IsActiveAt(now) || !promo.Covers(product.ID) {
			continue
		}
		if promo.DiscountPercent.GreaterThan(best) {
			best = promo.DiscountPercent
		}
	}
	return best
}

// ApplyPromotions stamps DiscountPercent and FinalPrice on every product.
func ApplyPromotions(products []models.Product, promotions []models.Promotion, now time.Time) {
	for i := range products {
		products[i].DiscountPercent = EffectiveDiscount(products[i], promotions, now)
		products[i].FinalPrice = DiscountedPrice(products[i].Price, products[i].DiscountPercent)
	}
}
