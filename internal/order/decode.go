package order

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// UnmarshalJSON decodes the order payload field by field. A value of the
// wrong JSON type does not abort decoding; it is recorded against its field
// path and reported by Validate together with every other violation. Only a
// body that is not a JSON object fails here.
func (in *CreateOrderInput) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d := &payloadDecoder{}
	*in = CreateOrderInput{
		OrderItems:      d.items(raw["orderItems"]),
		ShippingAddress: d.address(raw["shippingAddress"]),
		PaymentMethod:   d.str("paymentMethod", "Payment method", raw["paymentMethod"]),
		ItemsPrice:      d.amount("itemsPrice", "Items price", raw["itemsPrice"]),
		ShippingPrice:   d.amount("shippingPrice", "Shipping price", raw["shippingPrice"]),
		TaxPrice:        d.amount("taxPrice", "Tax price", raw["taxPrice"]),
		TotalPrice:      d.amount("totalPrice", "Total price", raw["totalPrice"]),
	}
	in.typeErrors = d.fields
	return nil
}

type payloadDecoder struct {
	fields []FieldError
}

func (d *payloadDecoder) fail(field, msg string) {
	d.fields = append(d.fields, FieldError{Field: field, Message: msg})
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// kind returns the first byte of a JSON value, which identifies its type.
func kind(raw json.RawMessage) byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}

func isNumber(raw json.RawMessage) bool {
	c := kind(raw)
	return c == '-' || (c >= '0' && c <= '9')
}

func (d *payloadDecoder) str(field, label string, raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if kind(raw) != '"' || json.Unmarshal(raw, &s) != nil {
		d.fail(field, label+" must be a string")
		return ""
	}
	return s
}

// amount accepts JSON numbers only; "20.00" as a string is rejected.
func (d *payloadDecoder) amount(field, label string, raw json.RawMessage) *decimal.Decimal {
	if isNull(raw) {
		return nil
	}
	if !isNumber(raw) {
		d.fail(field, label+" must be a number")
		return nil
	}
	v, err := decimal.NewFromString(string(bytes.TrimSpace(raw)))
	if err != nil {
		d.fail(field, label+" must be a number")
		return nil
	}
	return &v
}

func (d *payloadDecoder) quantity(field string, raw json.RawMessage) *int {
	if isNull(raw) {
		return nil
	}
	v := d.amount(field, "Quantity", raw)
	if v == nil {
		return nil
	}
	if !v.IsInteger() {
		d.fail(field, "Quantity must be a whole number")
		return nil
	}
	if v.GreaterThan(decimal.NewFromInt(math.MaxInt32)) || v.LessThan(decimal.NewFromInt(math.MinInt32)) {
		d.fail(field, "Quantity is out of range")
		return nil
	}
	q := int(v.IntPart())
	return &q
}

func (d *payloadDecoder) object(field, label string, raw json.RawMessage) (map[string]json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if kind(raw) != '{' || json.Unmarshal(raw, &obj) != nil {
		d.fail(field, label+" must be an object")
		return nil, false
	}
	return obj, true
}

func (d *payloadDecoder) items(raw json.RawMessage) []OrderItemInput {
	if isNull(raw) {
		return nil
	}
	var elems []json.RawMessage
	if kind(raw) != '[' || json.Unmarshal(raw, &elems) != nil {
		d.fail("orderItems", "Order items must be an array")
		return nil
	}

	items := make([]OrderItemInput, len(elems))
	for i, elem := range elems {
		prefix := fmt.Sprintf("orderItems[%d]", i)
		obj, ok := d.object(prefix, "Order item", elem)
		if !ok {
			continue
		}
		items[i] = OrderItemInput{
			Product:  d.str(prefix+".product", "Product", obj["product"]),
			Quantity: d.quantity(prefix+".quantity", obj["quantity"]),
			Price:    d.amount(prefix+".price", "Price", obj["price"]),
		}
	}
	return items
}

func (d *payloadDecoder) address(raw json.RawMessage) *ShippingAddressInput {
	if isNull(raw) {
		return nil
	}
	obj, ok := d.object("shippingAddress", "Shipping address", raw)
	if !ok {
		return nil
	}
	return &ShippingAddressInput{
		Street:  d.str("shippingAddress.street", "Street", obj["street"]),
		City:    d.str("shippingAddress.city", "City", obj["city"]),
		State:   d.str("shippingAddress.state", "State", obj["state"]),
		ZipCode: d.str("shippingAddress.zipCode", "Zip code", obj["zipCode"]),
		Country: d.str("shippingAddress.country", "Country", obj["country"]),
	}
}
