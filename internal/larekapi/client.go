// Package larekapi is the HTTP client of the storefront backend.
package larekapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"web-larek/internal/domain"
)

// Error is a non-2xx answer that is not an order business failure.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("larek api: status %d: %s", e.Status, e.Message)
}

// Client performs the three backend calls. Requests are single-shot: no
// retries and no de-duplication.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// New builds a Client for baseURL. A nil httpClient uses http.DefaultClient.
func New(baseURL string, httpClient *http.Client, logger *zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  l,
	}
}

// GetProducts lists the catalog.
func (c *Client) GetProducts(ctx context.Context) (*domain.ProductList, error) {
	var out domain.ProductList
	if _, err := c.do(ctx, http.MethodGet, "/product/", nil, &out); err != nil {
		return nil, err
	}
	c.logger.Debug().Int("count", len(out.Items)).Msg("larek api: products fetched")
	return &out, nil
}

// GetProduct fetches one product. A 404 maps to domain.ErrNotFound.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var out domain.Product
	status, err := c.do(ctx, http.MethodGet, "/product/"+url.PathEscape(id), nil, &out)
	if err != nil {
		if status == http.StatusNotFound {
			return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &out, nil
}

// CreateOrder posts the order. A body carrying an error field is returned as
// a result with Error set, whatever the status code.
func (c *Client) CreateOrder(ctx context.Context, order domain.Order) (*domain.OrderResult, error) {
	var out domain.OrderResult
	status, err := c.do(ctx, http.MethodPost, "/order", order, &out)
	var apiErr *Error
	if errors.As(err, &apiErr) && out.Error != "" {
		c.logger.Info().Int("status", status).Str("error", out.Error).Msg("larek api: order rejected")
		return &out, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends the request and decodes the body into out, also for error
// statuses, so callers can inspect business errors.
func (c *Client) do(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, out)
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(raw, &errBody) == nil && errBody.Error != "" {
			msg = errBody.Error
		}
		return resp.StatusCode, &Error{Status: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}
