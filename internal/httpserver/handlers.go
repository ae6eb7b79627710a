package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"web-larek/internal/domain"
)

type handlers struct {
	products productService
	orders   orderService
	logger   zerolog.Logger
}

func (h *handlers) listProducts(c *gin.Context) {
	list, err := h.products.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "list products")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: "Not found"})
			return
		}
		h.internalError(c, err, "get product")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) createOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: bindingMessage(err)})
		return
	}

	res, err := h.orders.Place(c.Request.Context(), req.toDomain())
	if err != nil {
		var rejected *domain.OrderError
		if errors.As(err, &rejected) {
			h.logger.Info().Str("reason", rejected.Reason).Msg("order rejected")
			c.JSON(http.StatusBadRequest, errorResponse{Error: rejected.Reason})
			return
		}
		h.internalError(c, err, "place order")
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*res))
}

func (h *handlers) internalError(c *gin.Context, err error, op string) {
	h.logger.Error().Err(err).Str("op", op).Msg("request failed")
	c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal error"})
}
