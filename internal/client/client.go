// Package client is a typed HTTP client for the catalog service.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ashendes/catalog-service/internal/models"
	"github.com/go-resty/resty/v2"
)

// Fields is a partial-update body. Keys left out are not touched; a nil value
// clears the field.
type Fields map[string]interface{}

// APIError is a non-2xx reply from the service
type APIError struct {
	StatusCode int
	Detail     json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog returned %d: %s", e.StatusCode, e.Message())
}

// Message returns the detail as plain text when it is a string
func (e *APIError) Message() string {
	var s string
	if err := json.Unmarshal(e.Detail, &s); err == nil {
		return s
	}
	return string(e.Detail)
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// Client talks to one catalog service instance
type Client struct {
	http *resty.Client
}

// New creates a client for the service at baseURL
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetRetryCount(0).
			SetHeader("Content-Type", "application/json"),
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var eb errorBody
	req := c.http.R().SetContext(ctx).SetError(&eb)
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return &APIError{StatusCode: resp.StatusCode(), Detail: eb.Detail}
	}
	return nil
}

func call[T any](ctx context.Context, c *Client, method, path string, body interface{}) (T, error) {
	var out T
	err := c.do(ctx, method, path, body, &out)
	return out, err
}

func itemPath(collection string, id uint) string {
	return fmt.Sprintf("/%s/%d", collection, id)
}

// Health returns the status reported by /health
func (c *Client) Health(ctx context.Context) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

// Delete removes the row id from collection, e.g. "brands"
func (c *Client) Delete(ctx context.Context, collection string, id uint) error {
	return c.do(ctx, http.MethodDelete, itemPath(collection, id), nil, nil)
}

func (c *Client) ListBrands(ctx context.Context) ([]models.BrandResponse, error) {
	return call[[]models.BrandResponse](ctx, c, http.MethodGet, "/brands/", nil)
}

func (c *Client) GetBrand(ctx context.Context, id uint) (models.BrandResponse, error) {
	return call[models.BrandResponse](ctx, c, http.MethodGet, itemPath("brands", id), nil)
}

func (c *Client) CreateBrand(ctx context.Context, req models.BrandCreate) (models.BrandResponse, error) {
	return call[models.BrandResponse](ctx, c, http.MethodPost, "/brands/", req)
}

func (c *Client) PatchBrand(ctx context.Context, id uint, f Fields) (models.BrandResponse, error) {
	return call[models.BrandResponse](ctx, c, http.MethodPatch, itemPath("brands", id), f)
}

func (c *Client) ListCategories(ctx context.Context) ([]models.CategoryResponse, error) {
	return call[[]models.CategoryResponse](ctx, c, http.MethodGet, "/categories/", nil)
}

func (c *Client) GetCategory(ctx context.Context, id uint) (models.CategoryResponse, error) {
	return call[models.CategoryResponse](ctx, c, http.MethodGet, itemPath("categories", id), nil)
}

func (c *Client) CreateCategory(ctx context.Context, req models.CategoryCreate) (models.CategoryResponse, error) {
	return call[models.CategoryResponse](ctx, c, http.MethodPost, "/categories/", req)
}

func (c *Client) PatchCategory(ctx context.Context, id uint, f Fields) (models.CategoryResponse, error) {
	return call[models.CategoryResponse](ctx, c, http.MethodPatch, itemPath("categories", id), f)
}

func (c *Client) ListUsers(ctx context.Context) ([]models.UserResponse, error) {
	return call[[]models.UserResponse](ctx, c, http.MethodGet, "/users/", nil)
}

func (c *Client) GetUser(ctx context.Context, id uint) (models.UserResponse, error) {
	return call[models.UserResponse](ctx, c, http.MethodGet, itemPath("users", id), nil)
}

func (c *Client) CreateUser(ctx context.Context, req models.UserCreate) (models.UserResponse, error) {
	return call[models.UserResponse](ctx, c, http.MethodPost, "/users/", req)
}

func (c *Client) UpdateUser(ctx context.Context, id uint, req models.UserCreate) (models.UserResponse, error) {
	return call[models.UserResponse](ctx, c, http.MethodPut, itemPath("users", id), req)
}

func (c *Client) PatchUser(ctx context.Context, id uint, f Fields) (models.UserResponse, error) {
	return call[models.UserResponse](ctx, c, http.MethodPatch, itemPath("users", id), f)
}

func (c *Client) ListProducts(ctx context.Context) ([]models.ProductResponse, error) {
	return call[[]models.ProductResponse](ctx, c, http.MethodGet, "/products/", nil)
}

func (c *Client) GetProduct(ctx context.Context, id uint) (models.ProductResponse, error) {
	return call[models.ProductResponse](ctx, c, http.MethodGet, itemPath("products", id), nil)
}

func (c *Client) CreateProduct(ctx context.Context, req models.ProductCreate) (models.ProductResponse, error) {
	return call[models.ProductResponse](ctx, c, http.MethodPost, "/products/", req)
}

func (c *Client) UpdateProduct(ctx context.Context, id uint, req models.ProductCreate) (models.ProductResponse, error) {
	return call[models.ProductResponse](ctx, c, http.MethodPut, itemPath("products", id), req)
}

func (c *Client) PatchProduct(ctx context.Context, id uint, f Fields) (models.ProductResponse, error) {
	return call[models.ProductResponse](ctx, c, http.MethodPatch, itemPath("products", id), f)
}

func (c *Client) ListOrders(ctx context.Context) ([]models.OrderResponse, error) {
	return call[[]models.OrderResponse](ctx, c, http.MethodGet, "/orders/", nil)
}

func (c *Client) GetOrder(ctx context.Context, id uint) (models.OrderResponse, error) {
	return call[models.OrderResponse](ctx, c, http.MethodGet, itemPath("orders", id), nil)
}

func (c *Client) CreateOrder(ctx context.Context, req models.OrderCreate) (models.OrderResponse, error) {
	return call[models.OrderResponse](ctx, c, http.MethodPost, "/orders/", req)
}

func (c *Client) PatchOrder(ctx context.Context, id uint, f Fields) (models.OrderResponse, error) {
	return call[models.OrderResponse](ctx, c, http.MethodPatch, itemPath("orders", id), f)
}

func (c *Client) ListOrderItems(ctx context.Context) ([]models.OrderItemResponse, error) {
	return call[[]models.OrderItemResponse](ctx, c, http.MethodGet, "/order_items/", nil)
}

func (c *Client) GetOrderItem(ctx context.Context, id uint) (models.OrderItemResponse, error) {
	return call[models.OrderItemResponse](ctx, c, http.MethodGet, itemPath("order_items", id), nil)
}

func (c *Client) CreateOrderItem(ctx context.Context, req models.OrderItemCreate) (models.OrderItemResponse, error) {
	return call[models.OrderItemResponse](ctx, c, http.MethodPost, "/order_items/", req)
}

func (c *Client) PatchOrderItem(ctx context.Context, id uint, f Fields) (models.OrderItemResponse, error) {
	return call[models.OrderItemResponse](ctx, c, http.MethodPatch, itemPath("order_items", id), f)
}
