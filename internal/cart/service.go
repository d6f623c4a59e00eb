package cart

import (
	"context"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"strings"

	"go.uber.org/zap"
)

// Service defines the business logic for carts. Order intake never reads the
// cart; a client checks out by submitting the cart's lines and totals.
type Service interface {
	AddToCart(ctx context.Context, userID uint, input AddToCartInput) (*CartItem, error)
	GetCart(ctx context.Context, userID uint) (*Cart, error)
	UpdateQuantity(ctx context.Context, userID uint, productID string, quantity int) error
	RemoveFromCart(ctx context.Context, userID uint, productID string) error
	ClearCart(ctx context.Context, userID uint) error
}

type service struct {
	repo    Repository
	catalog product.Repository
}

func NewService(repo Repository, catalog product.Repository) Service {
	return &service{repo: repo, catalog: catalog}
}

// AddToCart adds quantity of a product, merging with an existing line.
func (s *service) AddToCart(ctx context.Context, userID uint, input AddToCartInput) (*CartItem, error) {
	if userID == 0 {
		return nil, ErrUserNotAuthenticated
	}
	productID := strings.TrimSpace(input.ProductID)
	if productID == "" {
		return nil, ErrInvalidProductID
	}
	if input.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	log := logger.ForLayer(ctx, "service", "AddToCart").With(
		zap.Uint("user_id", userID),
		zap.String("product_id", productID),
	)

	p, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindItem(ctx, userID, productID)
	if err != nil {
		log.Error("failed to load cart item", zap.Error(err))
		return nil, err
	}

	finalQty := input.Quantity
	if existing != nil {
		finalQty += existing.Quantity
	}
	if p.Stock < finalQty {
		log.Info("add to cart rejected: insufficient stock",
			zap.Int("stock", p.Stock),
			zap.Int("requested", finalQty),
		)
		return nil, ErrInsufficientStock
	}

	var item *CartItem
	if existing == nil {
		item, err = s.repo.CreateItem(ctx, userID, productID, finalQty)
	} else {
		item, err = s.repo.UpdateItemQuantity(ctx, existing.ID, finalQty)
	}
	if err != nil {
		return nil, err
	}

	item.Product = p
	log.Info("cart item saved", zap.Int("quantity", item.Quantity))
	return item, nil
}

// GetCart prices the cart with current catalog values.
func (s *service) GetCart(ctx context.Context, userID uint) (*Cart, error) {
	if userID == 0 {
		return nil, ErrUserNotAuthenticated
	}

	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]order.OrderItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, order.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		})
	}

	c := &Cart{UserID: userID, Items: items}
	if len(lines) > 0 {
		c.Totals = order.CalculateTotals(lines)
	}
	return c, nil
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line.
func (s *service) UpdateQuantity(ctx context.Context, userID uint, productID string, quantity int) error {
	if userID == 0 {
		return ErrUserNotAuthenticated
	}
	if strings.TrimSpace(productID) == "" {
		return ErrInvalidProductID
	}

	if quantity <= 0 {
		return s.repo.RemoveItem(ctx, userID, productID)
	}

	p, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if p.Stock < quantity {
		return ErrInsufficientStock
	}

	return s.repo.SetQuantity(ctx, userID, productID, quantity)
}

func (s *service) RemoveFromCart(ctx context.Context, userID uint, productID string) error {
	if userID == 0 {
		return ErrUserNotAuthenticated
	}
	if strings.TrimSpace(productID) == "" {
		return ErrInvalidProductID
	}
	return s.repo.RemoveItem(ctx, userID, productID)
}

func (s *service) ClearCart(ctx context.Context, userID uint) error {
	if userID == 0 {
		return ErrUserNotAuthenticated
	}
	return s.repo.Clear(ctx, userID)
}
