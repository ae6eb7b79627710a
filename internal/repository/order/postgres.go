package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"web-larek/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zerolog.Logger) Repository {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &postgresRepo{pool: pool, logger: l.With().Str("repo", "order").Logger()}
}

// Create stores the order and its lines in one transaction.
func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*domain.PlacedOrder, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	placed := domain.PlacedOrder{
		ID: in.ID,
		Order: domain.Order{
			Payment: in.Payment,
			Email:   in.Email,
			Phone:   in.Phone,
			Address: in.Address,
			Total:   in.Total,
		},
	}
	err = tx.QueryRow(ctx, `
INSERT INTO orders (id, payment, email, phone, address, total)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at
`, in.ID, string(in.Payment), in.Email, in.Phone, in.Address, in.Total).Scan(&placed.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("id", in.ID).Msg("insert order")
		return nil, fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for i, line := range in.Lines {
		batch.Queue(`
INSERT INTO order_items (order_id, line_no, product_id, price)
VALUES ($1, $2, $3, $4)
`, in.ID, i+1, line.ProductID, line.Price)
		placed.Items = append(placed.Items, line.ProductID)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		r.logger.Error().Err(err).Str("id", in.ID).Msg("insert order items")
		return nil, fmt.Errorf("insert order items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	r.logger.Info().Str("id", in.ID).Int64("total", in.Total).Int("items", len(in.Lines)).Msg("order stored")
	return &placed, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.PlacedOrder, error) {
	var placed domain.PlacedOrder
	var payment string
	err := r.pool.QueryRow(ctx, `
SELECT id::text, payment, email, phone, address, total, created_at
FROM orders
WHERE id = $1
`, id).Scan(&placed.ID, &payment, &placed.Email, &placed.Phone, &placed.Address, &placed.Total, &placed.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	placed.Payment = domain.Payment(payment)

	rows, err := r.pool.Query(ctx, `
SELECT product_id
FROM order_items
WHERE order_id = $1
ORDER BY line_no ASC
`, id)
	if err != nil {
		return nil, fmt.Errorf("get order items %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID string
		if err := rows.Scan(&productID); err != nil {
			return nil, err
		}
		placed.Items = append(placed.Items, productID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &placed, nil
}
