package order

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidOrderItems = errors.New("invalid order items")
	ErrTotalMismatch     = errors.New("order totals do not match")
	ErrOrderNotFound     = errors.New("order not found")
	ErrForbidden         = errors.New("forbidden")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a rejected intake request. Kind is one of the sentinels above.
type Error struct {
	Kind    error
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, msg string, fields ...FieldError) *Error {
	return &Error{Kind: kind, Message: msg, Fields: fields}
}

// -- Constants (External Systems) --
const pgIntegrityViolationClass = "23"

var constraintFields = map[string]string{
	"orders_payment_method_check": "paymentMethod",
	"orders_items_price_check":    "itemsPrice",
	"orders_shipping_price_check": "shippingPrice",
	"orders_tax_price_check":      "taxPrice",
	"orders_total_price_check":    "totalPrice",
	"order_items_quantity_check":  "orderItems.quantity",
	"order_items_price_check":     "orderItems.price",
	"order_items_product_id_fkey": "orderItems.product",
	"orders_user_id_fkey":         "user",
}

var columnFields = map[string]string{
	"user_id":           "user",
	"shipping_street":   "shippingAddress.street",
	"shipping_city":     "shippingAddress.city",
	"shipping_state":    "shippingAddress.state",
	"shipping_zip_code": "shippingAddress.zipCode",
	"shipping_country":  "shippingAddress.country",
	"payment_method":    "paymentMethod",
	"product_id":        "orderItems.product",
	"quantity":          "orderItems.quantity",
	"price":             "orderItems.price",
}

// PersistenceFieldErrors maps a Postgres integrity violation to field errors.
// It returns nil when err is not one or cannot be attributed to a field.
func PersistenceFieldErrors(err error) []FieldError {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code.Class() != pgIntegrityViolationClass {
		return nil
	}

	field, ok := constraintFields[pqErr.Constraint]
	if !ok {
		field, ok = columnFields[pqErr.Column]
	}
	if !ok {
		return nil
	}

	return []FieldError{{Field: field, Message: pqErr.Message}}
}
