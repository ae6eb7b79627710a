package httpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"web-larek/internal/domain"
)

type productService interface {
	List(ctx context.Context) (*domain.ProductList, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type orderService interface {
	Place(ctx context.Context, in domain.Order) (*domain.OrderResult, error)
}

// Deps are the services the router dispatches to.
type Deps struct {
	ProductSvc  productService
	OrderSvc    orderService
	CORSOrigins []string
	// ContentDir, when set, is served under /content for product images.
	ContentDir string
}

// buildRouter wires routes for the API.
func buildRouter(logger zerolog.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.ProductSvc == nil || deps.OrderSvc == nil {
		return nil, fmt.Errorf("httpserver: product and order services are required")
	}
	if err := registerValidators(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger), gin.Recovery())
	router.Use(cors.New(corsConfig(deps.CORSOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{products: deps.ProductSvc, orders: deps.OrderSvc, logger: logger}
	router.GET("/product/", h.listProducts)
	router.GET("/product/:id", h.getProduct)
	router.POST("/order", h.createOrder)

	if deps.ContentDir != "" {
		router.Static("/content", deps.ContentDir)
	}

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
