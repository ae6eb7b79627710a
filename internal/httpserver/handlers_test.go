package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web-larek/internal/domain"
)

type stubProductService struct {
	list    *domain.ProductList
	product *domain.Product
	err     error
}

func (s *stubProductService) List(_ context.Context) (*domain.ProductList, error) {
	return s.list, s.err
}

func (s *stubProductService) Get(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

type stubOrderService struct {
	result *domain.OrderResult
	err    error
	got    []domain.Order
}

func (s *stubOrderService) Place(_ context.Context, in domain.Order) (*domain.OrderResult, error) {
	s.got = append(s.got, in)
	return s.result, s.err
}

func logDiscard() zerolog.Logger {
	return zerolog.Nop()
}

func price(v int64) *int64 {
	return &v
}

func newRouter(t *testing.T, products *stubProductService, orders *stubOrderService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, Deps{ProductSvc: products, OrderSvc: orders})
	require.NoError(t, err)
	return router
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestBuildRouter_RequiresServices(t *testing.T) {
	_, err := buildRouter(logDiscard(), nil, Deps{})
	assert.Error(t, err)
}

func TestListProducts(t *testing.T) {
	router := newRouter(t, &stubProductService{list: &domain.ProductList{
		Total: 2,
		Items: []domain.Product{
			{ID: "p1", Title: "Timer", Description: domain.StringList{"Keeps time"}, Price: price(750), Category: domain.CategorySoftSkill},
			{ID: "p2", Title: "HEX", Description: domain.StringList{"a", "b"}, Category: domain.CategoryOther},
		},
	}}, &stubOrderService{})

	rec := serve(router, http.MethodGet, "/product/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":2,"items":[
		{"id":"p1","title":"Timer","description":"Keeps time","price":750,"image":"","category":"soft-skill"},
		{"id":"p2","title":"HEX","description":["a","b"],"price":null,"image":"","category":"other"}
	]}`, rec.Body.String())
}

func TestGetProduct(t *testing.T) {
	tests := []struct {
		name   string
		svc    *stubProductService
		status int
		body   string
	}{
		{
			name:   "found",
			svc:    &stubProductService{product: &domain.Product{ID: "p1", Title: "Timer", Category: domain.CategoryButton}},
			status: http.StatusOK,
			body:   `{"id":"p1","title":"Timer","description":[],"price":null,"image":"","category":"button"}`,
		},
		{name: "missing", svc: &stubProductService{err: domain.ErrNotFound}, status: http.StatusNotFound, body: `{"error":"Not found"}`},
		{name: "failure", svc: &stubProductService{err: errors.New("db down")}, status: http.StatusInternalServerError, body: `{"error":"Internal error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newRouter(t, tt.svc, &stubOrderService{}), http.MethodGet, "/product/p1", "")
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestCreateOrder(t *testing.T) {
	const valid = `{"payment":"card","email":"a@b.co","phone":"+7 (999) 123-45-67","address":" Main St ","total":750,"items":["p1"]}`

	tests := []struct {
		name   string
		body   string
		svc    *stubOrderService
		status int
		want   string
		placed bool
	}{
		{
			name:   "success",
			body:   valid,
			svc:    &stubOrderService{result: &domain.OrderResult{ID: domain.StringList{"o-1"}, Total: 750}},
			status: http.StatusOK,
			want:   `{"id":["o-1"],"total":750}`,
			placed: true,
		},
		{
			name:   "rejected",
			body:   valid,
			svc:    &stubOrderService{err: domain.RejectOrder("Incorrect order total")},
			status: http.StatusBadRequest,
			want:   `{"error":"Incorrect order total"}`,
			placed: true,
		},
		{
			name:   "bad_phone",
			body:   strings.Replace(valid, "+7 (999) 123-45-67", "12345", 1),
			svc:    &stubOrderService{},
			status: http.StatusBadRequest,
			want:   `{"error":"Invalid phone"}`,
		},
		{
			name:   "bad_payment",
			body:   strings.Replace(valid, `"card"`, `"crypto"`, 1),
			svc:    &stubOrderService{},
			status: http.StatusBadRequest,
			want:   `{"error":"Invalid payment method"}`,
		},
		{
			name:   "no_items",
			body:   strings.Replace(valid, `["p1"]`, `[]`, 1),
			svc:    &stubOrderService{},
			status: http.StatusBadRequest,
			want:   `{"error":"No items in order"}`,
		},
		{
			name:   "malformed",
			body:   `{"payment":`,
			svc:    &stubOrderService{},
			status: http.StatusBadRequest,
			want:   `{"error":"Invalid request body"}`,
		},
		{
			name:   "failure",
			body:   valid,
			svc:    &stubOrderService{err: errors.New("db down")},
			status: http.StatusInternalServerError,
			want:   `{"error":"Internal error"}`,
			placed: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newRouter(t, &stubProductService{}, tt.svc), http.MethodPost, "/order", tt.body)

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
			if !tt.placed {
				assert.Empty(t, tt.svc.got)
				return
			}
			require.Len(t, tt.svc.got, 1)
			assert.Equal(t, "Main St", tt.svc.got[0].Address)
		})
	}
}

func TestHealthAndReady(t *testing.T) {
	router := newRouter(t, &stubProductService{}, &stubOrderService{})

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(router, http.MethodGet, "/readyz", "").Code)
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, Deps{
		ProductSvc:  &stubProductService{list: &domain.ProductList{Items: []domain.Product{}}},
		OrderSvc:    &stubOrderService{},
		CORSOrigins: []string{"https://shop.test"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/product/", nil)
	req.Header.Set("Origin", "https://shop.test")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://shop.test", rec.Header().Get("Access-Control-Allow-Origin"))
}
