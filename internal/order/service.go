package order

import (
	"context"
	"errors"
	"fmt"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/product"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	CreateOrder(ctx context.Context, userID uint, input CreateOrderInput) (*Order, error)
	GetOrder(ctx context.Context, userID uint, orderID string, isAdmin bool) (*Order, error)
	ListUserOrders(ctx context.Context, userID uint) ([]*Order, error)
	MarkAsPaid(ctx context.Context, orderID string) (*Order, error)
	MarkAsDelivered(ctx context.Context, orderID string) (*Order, error)
}

type service struct {
	repo    Repository
	catalog product.Repository
	metrics *metrics.Intake
	now     func() time.Time
}

func NewService(repo Repository, catalog product.Repository, m *metrics.Intake) Service {
	if m == nil {
		m = &metrics.Intake{}
	}
	return &service{
		repo:    repo,
		catalog: catalog,
		metrics: m,
		now:     time.Now,
	}
}

// CreateOrder runs the intake pipeline: authenticate, validate the payload,
// verify every line against the catalog, cross-check totals, persist, then
// decrement stock. Each step stops the pipeline on failure except the stock
// decrement, whose failure is logged and does not undo the order.
func (s *service) CreateOrder(ctx context.Context, userID uint, input CreateOrderInput) (*Order, error) {
	timer := metrics.StartTimer()
	log := logger.ForLayer(ctx, "service", "CreateOrder").With(
		zap.Uint("user_id", userID),
		zap.Int("item_count", len(input.OrderItems)),
	)

	if userID == 0 {
		s.metrics.Unauthorized.Inc()
		log.Warn("create order rejected: no session")
		return nil, newError(ErrUnauthorized, "Authentication required")
	}

	if fields := input.Validate(); len(fields) > 0 {
		s.metrics.ValidationRejected.Inc()
		log.Warn("create order rejected: invalid payload", zap.Int("violations", len(fields)))
		return nil, newError(ErrValidation, "Validation failed", fields...)
	}

	items, err := s.verifyItems(ctx, input.OrderItems)
	if err != nil {
		var rejected *Error
		if errors.As(err, &rejected) {
			s.metrics.InvalidItemsRejected.Inc()
			log.Warn("create order rejected: invalid items", zap.String("reason", rejected.Message))
		} else {
			s.metrics.ServerErrors.Inc()
			log.Error("catalog lookup failed", zap.Error(err))
		}
		return nil, err
	}

	totals := CalculateTotals(items)
	if fields := totals.Mismatches(input); len(fields) > 0 {
		s.metrics.TotalMismatchRejected.Inc()
		log.Warn("create order rejected: totals mismatch",
			zap.String("items_price", totals.ItemsPrice.StringFixed(2)),
			zap.String("total_price", totals.TotalPrice.StringFixed(2)),
			zap.String("submitted_total_price", input.TotalPrice.StringFixed(2)),
		)
		return nil, newError(ErrTotalMismatch, "Order totals do not match server calculation", fields...)
	}

	addr := input.ShippingAddress
	o := &Order{
		ID:     uuid.New(),
		UserID: userID,
		Items:  items,
		ShippingAddress: ShippingAddress{
			Street:  strings.TrimSpace(addr.Street),
			City:    strings.TrimSpace(addr.City),
			State:   strings.TrimSpace(addr.State),
			ZipCode: strings.TrimSpace(addr.ZipCode),
			Country: strings.TrimSpace(addr.Country),
		},
		PaymentMethod: PaymentMethod(input.PaymentMethod),
		ItemsPrice:    totals.ItemsPrice,
		ShippingPrice: totals.ShippingPrice,
		TaxPrice:      totals.TaxPrice,
		TotalPrice:    totals.TotalPrice,
	}
	log = log.With(zap.String("order_id", o.ID.String()))

	if err := s.repo.Create(ctx, o); err != nil {
		s.metrics.ServerErrors.Inc()
		log.Error("failed to persist order", zap.Error(err))
		return nil, err
	}

	// Best-effort: the order stands even if stock bookkeeping fails.
	if err := s.catalog.BulkDecrementStock(ctx, stockAdjustments(items)); err != nil {
		s.metrics.StockDecrementFailures.Inc()
		log.Error("stock decrement failed, order kept", zap.Error(err))
	}

	created, err := s.repo.FindByIDHydrated(ctx, o.ID)
	if err != nil {
		s.metrics.ServerErrors.Inc()
		log.Error("failed to load created order", zap.Error(err))
		return nil, fmt.Errorf("load created order %s: %w", o.ID, err)
	}

	s.metrics.ObserveCreated(timer)
	log.Info("order created",
		zap.String("total_price", created.TotalPrice.StringFixed(2)),
		zap.Duration("duration", timer.Duration()),
	)
	return created, nil
}

// verifyItems checks each line against the catalog in submission order and
// returns the lines priced at the catalog's current price.
func (s *service) verifyItems(ctx context.Context, inputs []OrderItemInput) ([]OrderItem, error) {
	items := make([]OrderItem, 0, len(inputs))

	for i, in := range inputs {
		id := strings.TrimSpace(in.Product)
		field := fmt.Sprintf("orderItems[%d]", i)

		p, err := s.catalog.FindByID(ctx, id)
		if errors.Is(err, product.ErrProductNotFound) {
			msg := "Product not found: " + id
			return nil, newError(ErrInvalidOrderItems, msg, FieldError{Field: field + ".product", Message: msg})
		}
		if err != nil {
			return nil, err
		}

		if p.Stock < *in.Quantity {
			msg := fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d", p.Name, p.Stock, *in.Quantity)
			return nil, newError(ErrInvalidOrderItems, msg, FieldError{Field: field + ".quantity", Message: msg})
		}

		if !withinTolerance(p.Price, *in.Price) {
			msg := fmt.Sprintf("Price mismatch for %s. Current price: %s, Submitted: %s",
				p.Name, p.Price.StringFixed(2), in.Price.StringFixed(2))
			return nil, newError(ErrInvalidOrderItems, msg, FieldError{Field: field + ".price", Message: msg})
		}

		items = append(items, OrderItem{
			ProductID: p.ID,
			Quantity:  *in.Quantity,
			Price:     p.Price,
		})
	}

	return items, nil
}

// stockAdjustments sums quantities per product, keeping first-seen order.
func stockAdjustments(items []OrderItem) []product.StockAdjustment {
	index := make(map[string]int, len(items))
	adjustments := make([]product.StockAdjustment, 0, len(items))

	for _, item := range items {
		if i, ok := index[item.ProductID]; ok {
			adjustments[i].Amount += item.Quantity
			continue
		}
		index[item.ProductID] = len(adjustments)
		adjustments = append(adjustments, product.StockAdjustment{
			ProductID: item.ProductID,
			Amount:    item.Quantity,
		})
	}
	return adjustments
}

func (s *service) GetOrder(ctx context.Context, userID uint, orderID string, isAdmin bool) (*Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	o, err := s.repo.FindByIDHydrated(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && o.UserID != userID {
		logger.FromCtx(ctx).Warn("order access denied",
			zap.String("order_id", orderID),
			zap.Uint("user_id", userID),
		)
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *service) ListUserOrders(ctx context.Context, userID uint) ([]*Order, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) MarkAsPaid(ctx context.Context, orderID string) (*Order, error) {
	return s.updateStatus(ctx, orderID, "MarkAsPaid", s.repo.MarkPaid)
}

func (s *service) MarkAsDelivered(ctx context.Context, orderID string) (*Order, error) {
	return s.updateStatus(ctx, orderID, "MarkAsDelivered", s.repo.MarkDelivered)
}

func (s *service) updateStatus(
	ctx context.Context,
	orderID string,
	method string,
	mark func(context.Context, uuid.UUID, time.Time) error,
) (*Order, error) {
	log := logger.ForLayer(ctx, "service", method).With(
		zap.String("order_id", orderID),
	)

	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	if err := mark(ctx, id, s.now()); err != nil {
		if !errors.Is(err, ErrOrderNotFound) {
			log.Error("failed to update order status", zap.Error(err))
		}
		return nil, err
	}

	log.Info("order status updated")
	return s.repo.FindByIDHydrated(ctx, id)
}
