package order

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validate checks the payload's shape and reports every violation found,
// not just the first. Type errors recorded during decoding come first; a
// field that already has one is not reported again as missing.
func (in CreateOrderInput) Validate() []FieldError {
	fields := append([]FieldError(nil), in.typeErrors...)
	add := func(field, msg string) {
		if in.hasTypeError(field) {
			return
		}
		fields = append(fields, FieldError{Field: field, Message: msg})
	}

	if len(in.OrderItems) == 0 {
		add("orderItems", "Order must contain at least one item")
	}
	for i, item := range in.OrderItems {
		prefix := fmt.Sprintf("orderItems[%d]", i)

		if strings.TrimSpace(item.Product) == "" {
			add(prefix+".product", "Product is required")
		}

		switch {
		case item.Quantity == nil:
			add(prefix+".quantity", "Quantity is required")
		case *item.Quantity < 1:
			add(prefix+".quantity", "Quantity must be a positive integer")
		}

		switch {
		case item.Price == nil:
			add(prefix+".price", "Price is required")
		case item.Price.IsNegative():
			add(prefix+".price", "Price must be a non-negative number")
		}
	}

	addr := in.ShippingAddress
	if addr == nil {
		addr = &ShippingAddressInput{}
	}
	for _, f := range []struct {
		field, label, value string
	}{
		{"street", "Street", addr.Street},
		{"city", "City", addr.City},
		{"state", "State", addr.State},
		{"zipCode", "Zip code", addr.ZipCode},
		{"country", "Country", addr.Country},
	} {
		if strings.TrimSpace(f.value) == "" {
			add("shippingAddress."+f.field, f.label+" is required")
		}
	}

	switch {
	case in.PaymentMethod == "":
		add("paymentMethod", "Payment method is required")
	case !PaymentMethod(in.PaymentMethod).IsValid():
		add("paymentMethod", "Payment method must be one of: card, paypal, bank_transfer")
	}

	checkAmount := func(field, label string, v *decimal.Decimal) {
		switch {
		case v == nil:
			add(field, label+" is required")
		case v.IsNegative():
			add(field, label+" must be a non-negative number")
		}
	}
	checkAmount("itemsPrice", "Items price", in.ItemsPrice)
	checkAmount("shippingPrice", "Shipping price", in.ShippingPrice)
	checkAmount("taxPrice", "Tax price", in.TaxPrice)
	checkAmount("totalPrice", "Total price", in.TotalPrice)
	if in.TotalPrice != nil && in.TotalPrice.IsZero() {
		add("totalPrice", "Total price must be greater than zero")
	}

	return fields
}

// hasTypeError reports whether field, or an enclosing object, failed to decode.
func (in CreateOrderInput) hasTypeError(field string) bool {
	for _, f := range in.typeErrors {
		if f.Field == field ||
			strings.HasPrefix(field, f.Field+".") ||
			strings.HasPrefix(field, f.Field+"[") {
			return true
		}
	}
	return false
}
