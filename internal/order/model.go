package order

import (
	"storefront-be/internal/product"
	"storefront-be/internal/user"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "card"
	PaymentPaypal       PaymentMethod = "paypal"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

var paymentMethods = []PaymentMethod{PaymentCard, PaymentPaypal, PaymentBankTransfer}

func (p PaymentMethod) IsValid() bool {
	for _, m := range paymentMethods {
		if p == m {
			return true
		}
	}
	return false
}

type ShippingAddress struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// OrderItem is one order line. Price is the unit price captured at order
// time and is never recomputed from the catalog afterwards.
type OrderItem struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal

	// Set when the order is loaded hydrated.
	Product *product.Product
}

type Order struct {
	ID              uuid.UUID
	UserID          uint
	User            *user.User
	Items           []OrderItem
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod

	ItemsPrice    decimal.Decimal
	ShippingPrice decimal.Decimal
	TaxPrice      decimal.Decimal
	TotalPrice    decimal.Decimal

	IsPaid      bool
	PaidAt      *time.Time
	IsDelivered bool
	DeliveredAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// --- Input ---

type OrderItemInput struct {
	Product  string           `json:"product"`
	Quantity *int             `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
}

type ShippingAddressInput struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type CreateOrderInput struct {
	OrderItems      []OrderItemInput      `json:"orderItems"`
	ShippingAddress *ShippingAddressInput `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod"`
	ItemsPrice      *decimal.Decimal      `json:"itemsPrice"`
	ShippingPrice   *decimal.Decimal      `json:"shippingPrice"`
	TaxPrice        *decimal.Decimal      `json:"taxPrice"`
	TotalPrice      *decimal.Decimal      `json:"totalPrice"`

	// Wrong-typed values seen while decoding JSON.
	typeErrors []FieldError
}
