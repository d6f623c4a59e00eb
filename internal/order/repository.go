package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"storefront-be/internal/product"
	"storefront-be/internal/user"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Repository is the order store.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	FindByIDHydrated(ctx context.Context, id uuid.UUID) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
	MarkPaid(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkDelivered(ctx context.Context, id uuid.UUID, at time.Time) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Create inserts the order and its lines in one transaction. Line order is
// kept through the position column.
func (r *repository) Create(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			id, user_id,
			shipping_street, shipping_city, shipping_state, shipping_zip_code, shipping_country,
			payment_method, items_price, shipping_price, tax_price, total_price,
			is_paid, is_delivered
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING created_at, updated_at
	`,
		o.ID,
		o.UserID,
		o.ShippingAddress.Street,
		o.ShippingAddress.City,
		o.ShippingAddress.State,
		o.ShippingAddress.ZipCode,
		o.ShippingAddress.Country,
		string(o.PaymentMethod),
		o.ItemsPrice,
		o.ShippingPrice,
		o.TaxPrice,
		o.TotalPrice,
		o.IsPaid,
		o.IsDelivered,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, position, quantity, price)
			VALUES ($1,$2,$3,$4,$5)
		`,
			o.ID,
			item.ProductID,
			i,
			item.Quantity,
			item.Price,
		)
		if err != nil {
			return fmt.Errorf("insert order item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order tx: %w", err)
	}
	return nil
}

const orderSelect = `
	SELECT
		o.id, o.user_id,
		o.shipping_street, o.shipping_city, o.shipping_state, o.shipping_zip_code, o.shipping_country,
		o.payment_method, o.items_price, o.shipping_price, o.tax_price, o.total_price,
		o.is_paid, o.paid_at, o.is_delivered, o.delivered_at,
		o.created_at, o.updated_at,
		u.name, u.email
	FROM orders o
	JOIN users u ON u.id = o.user_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o         Order
		method    string
		userName  string
		userEmail string
	)
	err := row.Scan(
		&o.ID, &o.UserID,
		&o.ShippingAddress.Street, &o.ShippingAddress.City, &o.ShippingAddress.State,
		&o.ShippingAddress.ZipCode, &o.ShippingAddress.Country,
		&method, &o.ItemsPrice, &o.ShippingPrice, &o.TaxPrice, &o.TotalPrice,
		&o.IsPaid, &o.PaidAt, &o.IsDelivered, &o.DeliveredAt,
		&o.CreatedAt, &o.UpdatedAt,
		&userName, &userEmail,
	)
	if err != nil {
		return nil, err
	}
	o.PaymentMethod = PaymentMethod(method)
	o.User = &user.User{ID: o.UserID, Name: userName, Email: userEmail}
	return &o, nil
}

// FindByIDHydrated loads an order with its user and each line's product.
func (r *repository) FindByIDHydrated(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, orderSelect+` WHERE o.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}

	if err := r.loadItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx,
		orderSelect+` WHERE o.user_id = $1 ORDER BY o.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// loadItems fills Items for every order with a single query.
func (r *repository) loadItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID.String())
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			oi.order_id, oi.product_id, oi.quantity, oi.price,
			p.name, p.description, p.image_url, p.price, p.stock
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1::uuid[])
		ORDER BY oi.order_id, oi.position
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID      uuid.UUID
			item         OrderItem
			name         sql.NullString
			description  sql.NullString
			imageURL     sql.NullString
			catalogPrice decimal.NullDecimal
			stock        sql.NullInt64
		)
		if err := rows.Scan(
			&orderID, &item.ProductID, &item.Quantity, &item.Price,
			&name, &description, &imageURL, &catalogPrice, &stock,
		); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}

		if name.Valid {
			p := &product.Product{
				ID:    item.ProductID,
				Name:  name.String,
				Price: catalogPrice.Decimal,
				Stock: int(stock.Int64),
			}
			if description.Valid {
				p.Description = &description.String
			}
			if imageURL.Valid {
				p.ImageURL = &imageURL.String
			}
			item.Product = p
		}

		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

func (r *repository) MarkPaid(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.setFlag(ctx, `
		UPDATE orders SET is_paid = TRUE, paid_at = $2, updated_at = $2 WHERE id = $1
	`, id, at)
}

func (r *repository) MarkDelivered(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.setFlag(ctx, `
		UPDATE orders SET is_delivered = TRUE, delivered_at = $2, updated_at = $2 WHERE id = $1
	`, id, at)
}

func (r *repository) setFlag(ctx context.Context, query string, id uuid.UUID, at time.Time) error {
	res, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("update order %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}
