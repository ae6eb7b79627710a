package order

import (
	"context"

	"web-larek/internal/domain"
)

// Line is one ordered product with the price it was sold at.
type Line struct {
	ProductID string
	Price     int64
}

type CreateOrderInput struct {
	ID      string
	Payment domain.Payment
	Email   string
	Phone   string
	Address string
	Total   int64
	Lines   []Line
}

type Repository interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.PlacedOrder, error)
	GetByID(ctx context.Context, id string) (*domain.PlacedOrder, error)
}
