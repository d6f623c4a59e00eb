package cart

import (
	"context"
	"database/sql"
	"errors"
	"storefront-be/internal/logger"
	"storefront-be/internal/product"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	FindItem(ctx context.Context, userID uint, productID string) (*CartItem, error)
	CreateItem(ctx context.Context, userID uint, productID string, quantity int) (*CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) (*CartItem, error)
	SetQuantity(ctx context.Context, userID uint, productID string, quantity int) error
	RemoveItem(ctx context.Context, userID uint, productID string) error
	Clear(ctx context.Context, userID uint) error
	ListItems(ctx context.Context, userID uint) ([]CartItem, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const itemColumns = `id, user_id, product_id, quantity, created_at, updated_at`

func scanItem(row *sql.Row) (*CartItem, error) {
	var item CartItem
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindItem returns nil, nil when the product is not in the user's cart.
func (r *repository) FindItem(ctx context.Context, userID uint, productID string) (*CartItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+itemColumns+`
		FROM carts
		WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return item, err
}

func (r *repository) CreateItem(ctx context.Context, userID uint, productID string, quantity int) (*CartItem, error) {
	log := logger.ForLayer(ctx, "repository", "CreateItem").With(
		zap.Uint("user_id", userID),
		zap.String("product_id", productID),
	)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO carts (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING `+itemColumns,
		userID, productID, quantity,
	)

	item, err := scanItem(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			return nil, ErrCartItemAlreadyExist
		}
		log.Error("failed to create cart item", zap.Error(err))
		return nil, err
	}
	return item, nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) (*CartItem, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE carts
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+itemColumns,
		quantity, itemID,
	)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartItemNotFound
	}
	return item, err
}

func (r *repository) SetQuantity(ctx context.Context, userID uint, productID string, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE carts
		SET quantity = $1, updated_at = NOW()
		WHERE user_id = $2 AND product_id = $3`,
		quantity, userID, productID,
	)
	return affectedOne(res, err)
}

func (r *repository) RemoveItem(ctx context.Context, userID uint, productID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM carts WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	return affectedOne(res, err)
}

// Clear empties the cart. Clearing an empty cart is not an error.
func (r *repository) Clear(ctx context.Context, userID uint) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	return err
}

func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// ListItems returns the cart joined with the catalog, newest line first.
func (r *repository) ListItems(ctx context.Context, userID uint) ([]CartItem, error) {
	log := logger.ForLayer(ctx, "repository", "ListItems").With(zap.Uint("user_id", userID))
	start := time.Now()

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			c.id, c.user_id, c.product_id, c.quantity, c.created_at, c.updated_at,
			p.name, p.description, p.image_url, p.price, p.stock, p.created_at, p.updated_at
		FROM carts c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC, c.id DESC`,
		userID,
	)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := []CartItem{}
	for rows.Next() {
		var (
			item        CartItem
			p           product.Product
			description sql.NullString
			imageURL    sql.NullString
		)
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
			&p.Name, &description, &imageURL, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		p.ID = item.ProductID
		if description.Valid {
			p.Description = &description.String
		}
		if imageURL.Valid {
			p.ImageURL = &imageURL.String
		}
		item.Product = &p
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Debug("query success",
		zap.Int("rows", len(items)),
		zap.Duration("duration", time.Since(start)),
	)
	return items, nil
}
