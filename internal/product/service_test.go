package product

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) BulkDecrementStock(ctx context.Context, adjustments []StockAdjustment) error {
	args := m.Called(ctx, adjustments)
	return args.Error(0)
}

func intPtr(i int) *int { return &i }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, mock.MatchedBy(func(p *Product) bool {
			return p.ID != "" && p.Name == "Mug" && p.Stock == 3 &&
				p.Price.Equal(decimal.RequireFromString("19.99"))
		})).Return(nil)

		p, err := svc.Create(ctx, CreateProductInput{
			Name:  "  Mug ",
			Price: decPtr("19.99"),
			Stock: intPtr(3),
		})
		require.NoError(t, err)
		assert.Equal(t, "Mug", p.Name)
		repo.AssertExpectations(t)
	})

	t.Run("CollectsAllViolations", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Create(ctx, CreateProductInput{Price: decPtr("-1"), Stock: intPtr(-2)})

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.ErrorIs(t, err, ErrInvalidProduct)
		assert.ElementsMatch(t, []string{"name", "price", "stock"}, fieldNames(vErr.Fields))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, mock.Anything).Return(errors.New("db error"))

		_, err := svc.Create(ctx, CreateProductInput{Name: "Mug", Price: decPtr("1"), Stock: intPtr(1)})
		assert.Error(t, err)
	})
}

func TestService_GetAndList(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("FindByID", ctx, "p1").Return(&Product{ID: "p1"}, nil)
	repo.On("FindByID", ctx, "nope").Return(nil, ErrProductNotFound)
	repo.On("List", ctx).Return([]Product{{ID: "p1"}, {ID: "p2"}}, nil)

	p, err := svc.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)

	_, err = svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCreateProductInput_Validate(t *testing.T) {
	t.Run("Missing price and stock", func(t *testing.T) {
		fields := CreateProductInput{Name: "Mug"}.Validate()
		assert.ElementsMatch(t, []string{"price", "stock"}, fieldNames(fields))
	})

	t.Run("Zero price is allowed", func(t *testing.T) {
		fields := CreateProductInput{Name: "Freebie", Price: decPtr("0"), Stock: intPtr(0)}.Validate()
		assert.Empty(t, fields)
	})
}

func TestToResponse(t *testing.T) {
	assert.Nil(t, ToResponse(nil))

	resp := ToResponse(&Product{ID: "p1", Name: "Mug", Price: decimal.RequireFromString("20.50"), Stock: 4})
	assert.Equal(t, 20.5, resp.Price)
	assert.Equal(t, 4, resp.Stock)

	list := ToResponses([]Product{{ID: "a"}, {ID: "b"}})
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[1].ID)
}

func fieldNames(fields []FieldError) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	return names
}
