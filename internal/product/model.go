package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string
	Name        string
	Description *string
	ImageURL    *string
	Price       decimal.Decimal
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StockAdjustment decrements a product's stock by Amount.
type StockAdjustment struct {
	ProductID string
	Amount    int
}

type CreateProductInput struct {
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	ImageURL    *string          `json:"imageUrl,omitempty"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
}
