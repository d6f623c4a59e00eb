package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(price string, qty int) OrderItem {
	return OrderItem{ProductID: "p", Quantity: qty, Price: decimal.RequireFromString(price)}
}

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name                             string
		lines                            []OrderItem
		itemsPrice, shipping, tax, total string
	}{
		{"Below free shipping", []OrderItem{item("20.00", 2)}, "40.00", "10.00", "4.00", "54.00"},
		{"Free shipping", []OrderItem{item("75.00", 2)}, "150.00", "0.00", "15.00", "165.00"},
		{"Exactly at threshold", []OrderItem{item("50", 1), item("25", 2)}, "100.00", "0.00", "10.00", "110.00"},
		{"Just below threshold", []OrderItem{item("99.99", 1)}, "99.99", "10.00", "10.00", "119.99"},
		{"Tax rounds half away from zero", []OrderItem{item("0.05", 1)}, "0.05", "10.00", "0.01", "10.06"},
		{"Many lines", []OrderItem{item("1.10", 3), item("2.25", 4)}, "12.30", "10.00", "1.23", "23.53"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotals(tt.lines)
			assert.Equal(t, tt.itemsPrice, got.ItemsPrice.StringFixed(2))
			assert.Equal(t, tt.shipping, got.ShippingPrice.StringFixed(2))
			assert.Equal(t, tt.tax, got.TaxPrice.StringFixed(2))
			assert.Equal(t, tt.total, got.TotalPrice.StringFixed(2))

			sum := got.ItemsPrice.Add(got.ShippingPrice).Add(got.TaxPrice).Round(2)
			assert.True(t, got.TotalPrice.Equal(sum))
		})
	}
}

func TestTotals_Mismatches(t *testing.T) {
	totals := CalculateTotals([]OrderItem{item("20.00", 2)})
	in := CreateOrderInput{
		ItemsPrice:    dec("40.00"),
		ShippingPrice: dec("10"),
		TaxPrice:      dec("4.00"),
		TotalPrice:    dec("54.00"),
	}

	t.Run("Exact match", func(t *testing.T) {
		assert.Empty(t, totals.Mismatches(in))
	})

	t.Run("Within tolerance", func(t *testing.T) {
		loose := in
		loose.ItemsPrice = dec("40.01")
		loose.TotalPrice = dec("53.99")
		assert.Empty(t, totals.Mismatches(loose))
	})

	t.Run("Beyond tolerance", func(t *testing.T) {
		stale := in
		stale.ItemsPrice = dec("41.00")
		stale.TaxPrice = dec("4.02")

		fields := totals.Mismatches(stale)
		assert.Equal(t, []string{"itemsPrice", "taxPrice"}, fieldNames(fields))
		assert.Equal(t, "Submitted 41.00, expected 40.00", fields[0].Message)
	})
}
