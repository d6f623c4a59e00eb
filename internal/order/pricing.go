package order

import "github.com/shopspring/decimal"

var (
	freeShippingThreshold = decimal.NewFromInt(100)
	flatShippingPrice     = decimal.NewFromInt(10)
	taxRate               = decimal.RequireFromString("0.10")
	priceTolerance        = decimal.RequireFromString("0.01")
)

type Totals struct {
	ItemsPrice    decimal.Decimal
	ShippingPrice decimal.Decimal
	TaxPrice      decimal.Decimal
	TotalPrice    decimal.Decimal
}

// CalculateTotals derives the order totals from verified items. Every value
// is rounded to 2 decimal places, half away from zero.
func CalculateTotals(items []OrderItem) Totals {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	itemsPrice := sum.Round(2)

	shipping := flatShippingPrice
	if itemsPrice.GreaterThanOrEqual(freeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := itemsPrice.Mul(taxRate).Round(2)

	return Totals{
		ItemsPrice:    itemsPrice,
		ShippingPrice: shipping,
		TaxPrice:      tax,
		TotalPrice:    itemsPrice.Add(shipping).Add(tax).Round(2),
	}
}

func withinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(priceTolerance)
}

// Mismatches compares the submitted totals with t. Validate must have
// passed first, so none of the submitted values are nil.
func (t Totals) Mismatches(in CreateOrderInput) []FieldError {
	var fields []FieldError
	for _, c := range []struct {
		field     string
		submitted decimal.Decimal
		computed  decimal.Decimal
	}{
		{"itemsPrice", *in.ItemsPrice, t.ItemsPrice},
		{"shippingPrice", *in.ShippingPrice, t.ShippingPrice},
		{"taxPrice", *in.TaxPrice, t.TaxPrice},
		{"totalPrice", *in.TotalPrice, t.TotalPrice},
	} {
		if !withinTolerance(c.submitted, c.computed) {
			fields = append(fields, FieldError{
				Field:   c.field,
				Message: "Submitted " + c.submitted.StringFixed(2) + ", expected " + c.computed.StringFixed(2),
			})
		}
	}
	return fields
}
