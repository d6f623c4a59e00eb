package product

import (
	"context"
	"storefront-be/internal/logger"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, input CreateProductInput) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*Product, error) {
	log := logger.ForLayer(ctx, "service", "CreateProduct")

	if fields := input.Validate(); len(fields) > 0 {
		log.Warn("invalid product payload", zap.Int("violations", len(fields)))
		return nil, &ValidationError{Fields: fields}
	}

	p := &Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Price:       input.Price.Round(2),
		Stock:       *input.Stock,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Info("product created", zap.String("product_id", p.ID))
	return p, nil
}

// Validate reports every problem with the payload at once.
func (in CreateProductInput) Validate() []FieldError {
	var fields []FieldError

	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Message: "Name is required"})
	}

	switch {
	case in.Price == nil:
		fields = append(fields, FieldError{Field: "price", Message: "Price is required"})
	case in.Price.IsNegative():
		fields = append(fields, FieldError{Field: "price", Message: "Price must be a non-negative number"})
	}

	switch {
	case in.Stock == nil:
		fields = append(fields, FieldError{Field: "stock", Message: "Stock is required"})
	case *in.Stock < 0:
		fields = append(fields, FieldError{Field: "stock", Message: "Stock must be a non-negative integer"})
	}

	return fields
}
