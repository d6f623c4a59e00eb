package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"storefront-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Repository is the catalog store. It is the source of truth for price and
// stock at order time.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, p *Product) error
	BulkDecrementStock(ctx context.Context, adjustments []StockAdjustment) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, description, image_url, price, stock, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var (
		p           Product
		description sql.NullString
		imageURL    sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.Name, &description, &imageURL,
		&p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		p.Description = &description.String
	}
	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	return &p, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}
	return p, nil
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (id, name, description, image_url, price, stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`,
		p.ID, p.Name, p.Description, p.ImageURL, p.Price, p.Stock,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert product",
			zap.String("product_id", p.ID),
			zap.Error(err),
		)
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// BulkDecrementStock subtracts every adjustment in one statement. The update
// is unconditional: it does not re-check that enough stock remains.
func (r *repository) BulkDecrementStock(ctx context.Context, adjustments []StockAdjustment) error {
	if len(adjustments) == 0 {
		return nil
	}

	ids := make([]string, 0, len(adjustments))
	amounts := make([]int64, 0, len(adjustments))
	for _, a := range adjustments {
		ids = append(ids, a.ProductID)
		amounts = append(amounts, int64(a.Amount))
	}

	_, err := r.db.ExecContext(ctx, `
		UPDATE products AS p
		SET stock = p.stock - v.amount,
		    updated_at = NOW()
		FROM (
			SELECT UNNEST($1::text[]) AS id, UNNEST($2::bigint[]) AS amount
		) AS v
		WHERE p.id = v.id
	`, pq.Array(ids), pq.Array(amounts))
	if err != nil {
		return fmt.Errorf("bulk decrement stock: %w", err)
	}
	return nil
}
