package cart

import (
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"time"
)

// CartItem is one product line in a user's cart. Product is filled from the
// catalog on read, so its price and stock are always current.
type CartItem struct {
	ID        uint
	UserID    uint
	ProductID string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time

	Product *product.Product
}

// Cart is a user's cart priced against the live catalog. Totals uses the
// same rules as order intake, so a client can submit them unchanged.
type Cart struct {
	UserID uint
	Items  []CartItem
	Totals order.Totals
}

type AddToCartInput struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartInput struct {
	Quantity int `json:"quantity"`
}
