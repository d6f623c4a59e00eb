package cart

import (
	"storefront-be/internal/product"
	"time"

	"github.com/shopspring/decimal"
)

type ItemResponse struct {
	ID        uint              `json:"id"`
	Product   *product.Response `json:"product"`
	Quantity  int               `json:"quantity"`
	LineTotal float64           `json:"lineTotal"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type Response struct {
	Items         []*ItemResponse `json:"items"`
	ItemsPrice    float64         `json:"itemsPrice"`
	ShippingPrice float64         `json:"shippingPrice"`
	TaxPrice      float64         `json:"taxPrice"`
	TotalPrice    float64         `json:"totalPrice"`
}

func ToItemResponse(item *CartItem) *ItemResponse {
	resp := &ItemResponse{
		ID:        item.ID,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	if item.Product != nil {
		resp.Product = product.ToResponse(item.Product)
		resp.LineTotal = item.Product.Price.
			Mul(decimal.NewFromInt(int64(item.Quantity))).
			Round(2).
			InexactFloat64()
	}
	return resp
}

func ToResponse(c *Cart) *Response {
	items := make([]*ItemResponse, 0, len(c.Items))
	for i := range c.Items {
		items = append(items, ToItemResponse(&c.Items[i]))
	}
	return &Response{
		Items:         items,
		ItemsPrice:    c.Totals.ItemsPrice.InexactFloat64(),
		ShippingPrice: c.Totals.ShippingPrice.InexactFloat64(),
		TaxPrice:      c.Totals.TaxPrice.InexactFloat64(),
		TotalPrice:    c.Totals.TotalPrice.InexactFloat64(),
	}
}
