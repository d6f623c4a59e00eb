package order

import (
	"encoding/json"
	"storefront-be/internal/product"
	"storefront-be/internal/user"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToResponse(t *testing.T) {
	img := "http://img.test/mug.png"
	o := sampleOrder()
	o.User = &user.User{ID: 7, Name: "John", Email: "john@example.com", Password: "hash"}
	o.Items[0].Product = &product.Product{ID: "p1", Name: "Mug", ImageURL: &img}

	resp := ToResponse(o)
	require.NotNil(t, resp)

	assert.Equal(t, o.ID.String(), resp.ID)
	assert.Equal(t, "John", resp.User.Name)
	assert.Equal(t, 60.05, resp.TotalPrice)
	assert.Equal(t, "Mug", resp.OrderItems[0].Product.Name)
	assert.Equal(t, "p2", resp.OrderItems[1].Product.ID)
	assert.Empty(t, resp.OrderItems[1].Product.Name)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")
	assert.Contains(t, string(raw), `"zipCode":"62701"`)
	assert.Contains(t, string(raw), `"isPaid":false`)
	assert.NotContains(t, string(raw), "paidAt")
}

func TestToResponse_WithoutUser(t *testing.T) {
	o := &Order{ID: uuid.New(), UserID: 3, TotalPrice: decimal.NewFromInt(11)}

	resp := ToResponse(o)
	assert.Equal(t, uint(3), resp.User.ID)
	assert.Empty(t, resp.OrderItems)
	assert.Nil(t, ToResponse(nil))
	assert.Len(t, ToResponses([]*Order{o, o}), 2)
}
