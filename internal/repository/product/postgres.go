package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"web-larek/internal/domain"
)

const selectColumns = `SELECT id, title, description, price, image, category, position FROM products`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zerolog.Logger) Repository {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &postgresRepo{pool: pool, logger: l.With().Str("repo", "product").Logger()}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, selectColumns+` ORDER BY position, id`)
	if err != nil {
		r.logger.Error().Err(err).Msg("list")
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	result, err := scanProducts(rows)
	if err != nil {
		r.logger.Error().Err(err).Msg("list rows")
		return nil, fmt.Errorf("list products: %w", err)
	}
	r.logger.Debug().Int("count", len(result)).Msg("list")
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := scanProduct(r.pool.QueryRow(ctx, selectColumns+` WHERE id = $1`, id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("id", id).Msg("get: not found")
			return nil, domain.ErrNotFound
		}
		r.logger.Error().Err(err).Str("id", id).Msg("get")
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return &p, nil
}

func (r *postgresRepo) GetMany(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	out := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, selectColumns+` WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	defer rows.Close()

	list, err := scanProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, title, description, price, image, category, position)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    image = EXCLUDED.image,
    category = EXCLUDED.category,
    position = EXCLUDED.position,
    updated_at = now()
RETURNING id, title, description, price, image, category, position
`
	description := []string(product.Description)
	if description == nil {
		description = []string{}
	}
	var res domain.Product
	err := scanProduct(r.pool.QueryRow(ctx, q,
		product.ID,
		product.Title,
		description,
		product.Price,
		product.Image,
		string(product.Category),
		product.Position,
	), &res)
	if err != nil {
		r.logger.Error().Err(err).Str("id", product.ID).Msg("upsert")
		return nil, fmt.Errorf("upsert product %s: %w", product.ID, err)
	}
	r.logger.Debug().Str("id", res.ID).Msg("upserted")
	return &res, nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func scanProduct(row pgx.Row, p *domain.Product) error {
	var description []string
	var category string
	if err := row.Scan(&p.ID, &p.Title, &description, &p.Price, &p.Image, &category, &p.Position); err != nil {
		return err
	}
	p.Description = domain.StringList(description)
	p.Category = domain.ParseCategory(category)
	return nil
}
