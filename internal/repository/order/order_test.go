package order

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web-larek/internal/domain"
	"web-larek/internal/migrate"
)

func TestPostgres_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	resetTables(ctx, t, pool)

	_, err := pool.Exec(ctx, `INSERT INTO products (id, title, price) VALUES ('p1', 'Timer', 750), ('p2', 'Pill', 1500)`)
	require.NoError(t, err, "insert products")

	repo := NewPostgres(pool, nil)
	id := uuid.NewString()
	created, err := repo.Create(ctx, CreateOrderInput{
		ID:      id,
		Payment: domain.PaymentCash,
		Email:   "a@b.co",
		Phone:   "89991234567",
		Address: "Main St",
		Total:   2250,
		Lines:   []Line{{ProductID: "p2", Price: 1500}, {ProductID: "p1", Price: 750}},
	})
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1"}, fetched.Items)
	assert.Equal(t, domain.PaymentCash, fetched.Payment)
	assert.Equal(t, int64(2250), fetched.Total)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgres_CreateRollsBackOnUnknownProduct(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	id := uuid.NewString()
	_, err := repo.Create(ctx, CreateOrderInput{
		ID:      id,
		Payment: domain.PaymentCard,
		Total:   1,
		Lines:   []Line{{ProductID: "ghost", Price: 1}},
	})
	require.Error(t, err)

	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err, "connect db")
	t.Cleanup(pool.Close)
	require.NoError(t, migrate.Apply(ctx, pool, nil), "apply migrations")
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(ctx, `TRUNCATE order_items, orders, products CASCADE`)
	require.NoError(t, err, "truncate tables")
}
