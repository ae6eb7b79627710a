package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web-larek/internal/domain"
	orderrepo "web-larek/internal/repository/order"
)

type stubOrderRepo struct {
	created   []orderrepo.CreateOrderInput
	createErr error
}

func (s *stubOrderRepo) Create(_ context.Context, in orderrepo.CreateOrderInput) (*domain.PlacedOrder, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = append(s.created, in)
	return &domain.PlacedOrder{ID: in.ID, Order: domain.Order{Total: in.Total}}, nil
}

type stubProductRepo struct {
	products map[string]domain.Product
	err      error
}

func (s *stubProductRepo) GetMany(_ context.Context, ids []string) (map[string]domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]domain.Product)
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func price(v int64) *int64 {
	return &v
}

func newService() (*Service, *stubOrderRepo) {
	orders := &stubOrderRepo{}
	products := &stubProductRepo{products: map[string]domain.Product{
		"p1": {ID: "p1", Price: price(750)},
		"p2": {ID: "p2", Price: nil},
		"p3": {ID: "p3", Price: price(1500)},
	}}
	svc := New(orders, products, nil)
	svc.newID = func() string { return "order-1" }
	return svc, orders
}

func validOrder() domain.Order {
	return domain.Order{
		Payment: domain.PaymentCard,
		Email:   "a@b.co",
		Phone:   "+7 (999) 123-45-67",
		Address: "Main St",
		Total:   2250,
		Items:   []string{"p1", "p3"},
	}
}

func TestPlace_Success(t *testing.T) {
	svc, orders := newService()

	res, err := svc.Place(context.Background(), validOrder())
	require.NoError(t, err)

	assert.Equal(t, domain.StringList{"order-1"}, res.ID)
	assert.Equal(t, int64(2250), res.Total)
	require.Len(t, orders.created, 1)
	assert.Equal(t, []orderrepo.Line{{ProductID: "p1", Price: 750}, {ProductID: "p3", Price: 1500}}, orders.created[0].Lines)
}

func TestPlace_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *domain.Order)
		reason string
	}{
		{name: "payment", mutate: func(o *domain.Order) { o.Payment = "" }, reason: "Invalid payment method"},
		{name: "address", mutate: func(o *domain.Order) { o.Address = "  " }, reason: "Address required"},
		{name: "email", mutate: func(o *domain.Order) { o.Email = "nope" }, reason: "Invalid email"},
		{name: "phone", mutate: func(o *domain.Order) { o.Phone = "123" }, reason: "Invalid phone"},
		{name: "no_items", mutate: func(o *domain.Order) { o.Items = nil }, reason: "No items in order"},
		{name: "unknown_item", mutate: func(o *domain.Order) { o.Items = []string{"ghost"} }, reason: "Item ghost not found"},
		{name: "unpriced_item", mutate: func(o *domain.Order) { o.Items = []string{"p2"} }, reason: "Item p2 is not for sale"},
		{name: "duplicate", mutate: func(o *domain.Order) { o.Items = []string{"p1", "p1"} }, reason: "Duplicate item p1"},
		{name: "total", mutate: func(o *domain.Order) { o.Total = 1 }, reason: "Incorrect order total"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, orders := newService()
			in := validOrder()
			tt.mutate(&in)

			_, err := svc.Place(context.Background(), in)

			var rejected *domain.OrderError
			require.True(t, errors.As(err, &rejected), "got %v", err)
			assert.Equal(t, tt.reason, rejected.Reason)
			assert.Empty(t, orders.created)
		})
	}
}

func TestPlace_RepositoryErrorIsNotRejection(t *testing.T) {
	svc, orders := newService()
	orders.createErr = errors.New("db down")

	_, err := svc.Place(context.Background(), validOrder())

	require.Error(t, err)
	var rejected *domain.OrderError
	assert.False(t, errors.As(err, &rejected))
}
