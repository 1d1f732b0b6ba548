package models

import "github.com/shopspring/decimal"

// ShoppingCart lives in the visitor's session, not in the database.
type ShoppingCart struct {
	UserID string     `json:"user_id"`
	Items  []CartLine `json:"items"`
}

type CartLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	ImageURL  string          `json:"image_url"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func NewShoppingCart(userID string) *ShoppingCart {
	return &ShoppingCart{UserID: userID, Items: []CartLine{}}
}

func (c *ShoppingCart) TotalItems() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

func (c *ShoppingCart) Total() decimal.Decimal {
	total := decimal.Zero
	if c == nil {
		return total
	}
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Add merges qty into an existing line for the same product.
func (c *ShoppingCart) Add(line CartLine) {
	for i := range c.Items {
		if c.Items[i].ProductID == line.ProductID {
			c.Items[i].Quantity += line.Quantity
			c.Items[i].Price = line.Price
			return
		}
	}
	c.Items = append(c.Items, line)
}

func (c *ShoppingCart) Remove(productID string) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}
