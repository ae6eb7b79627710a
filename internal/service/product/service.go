package product

import (
	"context"

	"web-larek/internal/domain"
	productrepo "web-larek/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// List returns the whole catalog in display order.
func (s *Service) List(ctx context.Context) (*domain.ProductList, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Product{}
	}
	return &domain.ProductList{Total: len(items), Items: items}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Save creates or replaces a product.
func (s *Service) Save(ctx context.Context, p domain.Product) (*domain.Product, error) {
	p.Category = domain.ParseCategory(string(p.Category))
	return s.repo.Upsert(ctx, p)
}
