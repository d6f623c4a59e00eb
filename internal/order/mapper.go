package order

import (
	"storefront-be/internal/user"
	"time"
)

type ItemProductResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

type OrderItemResponse struct {
	Product  ItemProductResponse `json:"product"`
	Quantity int                 `json:"quantity"`
	Price    float64             `json:"price"`
}

type ShippingAddressResponse struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type Response struct {
	ID              string                  `json:"id"`
	User            *user.Summary           `json:"user"`
	OrderItems      []OrderItemResponse     `json:"orderItems"`
	ShippingAddress ShippingAddressResponse `json:"shippingAddress"`
	PaymentMethod   string                  `json:"paymentMethod"`
	ItemsPrice      float64                 `json:"itemsPrice"`
	ShippingPrice   float64                 `json:"shippingPrice"`
	TaxPrice        float64                 `json:"taxPrice"`
	TotalPrice      float64                 `json:"totalPrice"`
	IsPaid          bool                    `json:"isPaid"`
	PaidAt          *time.Time              `json:"paidAt,omitempty"`
	IsDelivered     bool                    `json:"isDelivered"`
	DeliveredAt     *time.Time              `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

func ToResponse(o *Order) *Response {
	if o == nil {
		return nil
	}

	u := o.User.Summary()
	if u == nil {
		u = &user.Summary{ID: o.UserID}
	}

	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		ref := ItemProductResponse{ID: item.ProductID}
		if item.Product != nil {
			ref.Name = item.Product.Name
			ref.ImageURL = item.Product.ImageURL
		}
		items = append(items, OrderItemResponse{
			Product:  ref,
			Quantity: item.Quantity,
			Price:    item.Price.InexactFloat64(),
		})
	}

	return &Response{
		ID:         o.ID.String(),
		User:       u,
		OrderItems: items,
		ShippingAddress: ShippingAddressResponse{
			Street:  o.ShippingAddress.Street,
			City:    o.ShippingAddress.City,
			State:   o.ShippingAddress.State,
			ZipCode: o.ShippingAddress.ZipCode,
			Country: o.ShippingAddress.Country,
		},
		PaymentMethod: string(o.PaymentMethod),
		ItemsPrice:    o.ItemsPrice.InexactFloat64(),
		ShippingPrice: o.ShippingPrice.InexactFloat64(),
		TaxPrice:      o.TaxPrice.InexactFloat64(),
		TotalPrice:    o.TotalPrice.InexactFloat64(),
		IsPaid:        o.IsPaid,
		PaidAt:        o.PaidAt,
		IsDelivered:   o.IsDelivered,
		DeliveredAt:   o.DeliveredAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func ToResponses(orders []*Order) []*Response {
	out := make([]*Response, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToResponse(o))
	}
	return out
}
