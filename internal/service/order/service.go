package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"web-larek/internal/domain"
	orderrepo "web-larek/internal/repository/order"
)

type Service struct {
	orders   orderRepo
	products productRepo
	newID    func() string
	logger   zerolog.Logger
}

type orderRepo interface {
	Create(ctx context.Context, in orderrepo.CreateOrderInput) (*domain.PlacedOrder, error)
}

type productRepo interface {
	GetMany(ctx context.Context, ids []string) (map[string]domain.Product, error)
}

func New(orders orderRepo, products productRepo, logger *zerolog.Logger) *Service {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &Service{orders: orders, products: products, newID: uuid.NewString, logger: l}
}

// Place checks the order against the catalog and stores it. Business
// rejections are returned as *domain.OrderError.
func (s *Service) Place(ctx context.Context, in domain.Order) (*domain.OrderResult, error) {
	if err := validateFields(in); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, domain.RejectOrder("No items in order")
	}

	products, err := s.products.GetMany(ctx, in.Items)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	seen := make(map[string]struct{}, len(in.Items))
	lines := make([]orderrepo.Line, 0, len(in.Items))
	var total int64
	for _, id := range in.Items {
		if _, dup := seen[id]; dup {
			return nil, domain.RejectOrder(fmt.Sprintf("Duplicate item %s", id))
		}
		seen[id] = struct{}{}

		p, ok := products[id]
		if !ok {
			return nil, domain.RejectOrder(fmt.Sprintf("Item %s not found", id))
		}
		if !p.Priced() {
			return nil, domain.RejectOrder(fmt.Sprintf("Item %s is not for sale", id))
		}
		lines = append(lines, orderrepo.Line{ProductID: id, Price: p.PriceValue()})
		total += p.PriceValue()
	}
	if total != in.Total {
		s.logger.Info().Int64("want", total).Int64("got", in.Total).Msg("order total mismatch")
		return nil, domain.RejectOrder("Incorrect order total")
	}

	placed, err := s.orders.Create(ctx, orderrepo.CreateOrderInput{
		ID:      s.newID(),
		Payment: in.Payment,
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
		Total:   total,
		Lines:   lines,
	})
	if err != nil {
		return nil, err
	}
	return &domain.OrderResult{ID: domain.StringList{placed.ID}, Total: placed.Total}, nil
}

func validateFields(in domain.Order) error {
	switch {
	case !in.Payment.Valid():
		return domain.RejectOrder("Invalid payment method")
	case strings.TrimSpace(in.Address) == "":
		return domain.RejectOrder("Address required")
	case !domain.EmailPattern.MatchString(in.Email):
		return domain.RejectOrder("Invalid email")
	case !domain.PhonePattern.MatchString(in.Phone):
		return domain.RejectOrder("Invalid phone")
	}
	return nil
}
