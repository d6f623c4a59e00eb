//go:build integration

package integration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/metrics"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/user"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestOrderIntakeIntegration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	pgC, cfg := startPostgres(ctx, t)
	defer terminateContainer(t, pgC)

	database, err := db.NewDatabase(cfg)
	require.NoError(t, err)
	defer database.Close()

	version, err := db.RunMigrations(database, db.DirectionUp)
	require.NoError(t, err)
	require.Equal(t, uint(1), version)

	users := user.NewRepository(database)
	buyer, err := users.Create(ctx, "Buyer", "buyer@example.com", "hashed", user.RoleUser)
	require.NoError(t, err)

	_, err = users.Create(ctx, "Again", "buyer@example.com", "hashed", user.RoleUser)
	require.ErrorIs(t, err, user.ErrEmailExists)

	catalog := product.NewRepository(database)
	mug := &product.Product{ID: "mug", Name: "Mug", Price: decimal.RequireFromString("20.00"), Stock: 5}
	require.NoError(t, catalog.Create(ctx, mug))

	intake := &metrics.Intake{}
	orders := order.NewRepository(database)
	svc := order.NewService(orders, catalog, intake)

	input := order.CreateOrderInput{
		OrderItems: []order.OrderItemInput{{Product: "mug", Quantity: intPtr(2), Price: dec("20.00")}},
		ShippingAddress: &order.ShippingAddressInput{
			Street: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701", Country: "US",
		},
		PaymentMethod: "card",
		ItemsPrice:    dec("40.00"),
		ShippingPrice: dec("10.00"),
		TaxPrice:      dec("4.00"),
		TotalPrice:    dec("54.00"),
	}

	first, err := svc.CreateOrder(ctx, buyer.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "54.00", first.TotalPrice.StringFixed(2))
	assert.Equal(t, "buyer@example.com", first.User.Email)
	require.Len(t, first.Items, 1)
	require.NotNil(t, first.Items[0].Product)
	assert.Equal(t, 3, stockOf(ctx, t, database, "mug"))

	// Same payload again is a second, distinct order.
	second, err := svc.CreateOrder(ctx, buyer.ID, input)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 1, stockOf(ctx, t, database, "mug"))

	// A later catalog price change leaves stored lines untouched.
	_, err = database.ExecContext(ctx, `UPDATE products SET price = 25 WHERE id = 'mug'`)
	require.NoError(t, err)
	reloaded, err := orders.FindByIDHydrated(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "20.00", reloaded.Items[0].Price.StringFixed(2))

	// Any failing line rejects the whole order.
	bad := input
	bad.OrderItems = append([]order.OrderItemInput{}, input.OrderItems...)
	bad.OrderItems[0].Price = dec("25.00")
	bad.OrderItems[0].Quantity = intPtr(1)
	bad.OrderItems = append(bad.OrderItems, order.OrderItemInput{Product: "ghost", Quantity: intPtr(1), Price: dec("1")})
	_, err = svc.CreateOrder(ctx, buyer.ID, bad)
	require.ErrorIs(t, err, order.ErrInvalidOrderItems)
	assert.Equal(t, 2, countOrders(ctx, t, database))
	assert.Equal(t, 1, stockOf(ctx, t, database, "mug"))

	listed, err := svc.ListUserOrders(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	paid, err := svc.MarkAsPaid(ctx, first.ID.String())
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	assert.NotNil(t, paid.PaidAt)

	assert.Equal(t, uint64(2), intake.OrdersCreated.Load())
	assert.Equal(t, uint64(1), intake.InvalidItemsRejected.Load())
}

func startPostgres(ctx context.Context, t *testing.T) (testcontainers.Container, *config.Config) {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		Env:          map[string]string{"POSTGRES_PASSWORD": "postgres", "POSTGRES_USER": "postgres", "POSTGRES_DB": "storefront"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return container, &config.Config{
		DBHost:     host,
		DBPort:     mappedPort.Port(),
		DBUser:     "postgres",
		DBPassword: "postgres",
		DBName:     "storefront",
		DBSSLMode:  "disable",
	}
}

func terminateContainer(t *testing.T, c testcontainers.Container) {
	t.Helper()
	terminateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, c.Terminate(terminateCtx))
}

func stockOf(ctx context.Context, t *testing.T, database *sql.DB, id string) int {
	t.Helper()
	var stock int
	require.NoError(t, database.QueryRowContext(ctx, `SELECT stock FROM products WHERE id = $1`, id).Scan(&stock))
	return stock
}

func countOrders(ctx context.Context, t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n))
	return n
}

func intPtr(i int) *int { return &i }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
