package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"quicksell-pos/internal/apperr"
	"quicksell-pos/internal/model"
)

// RemoteStore talks to the QuickSell HTTP API at SERVER_URL:
//
//	GET    /products        POST /products    PUT /products/:id    DELETE /products/:id
//	GET    /sales           POST /sales       DELETE /sales/:id
type RemoteStore struct {
	baseURL string
	timeout time.Duration
}

var _ Store = (*RemoteStore)(nil)

func NewRemoteStore(baseURL string, timeout time.Duration) (*RemoteStore, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q", baseURL)
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RemoteStore{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}, nil
}

func (s *RemoteStore) Name() string { return "remote" }

func (s *RemoteStore) Close() error { return nil }

// Ping issues a cheap read to decide whether the API is reachable.
func (s *RemoteStore) Ping(ctx context.Context) error {
	_, err := s.ListProducts(ctx)
	return err
}

func (s *RemoteStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := s.do(ctx, "list products", fiber.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *RemoteStore) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	var created model.Product
	if err := s.do(ctx, "create product", fiber.MethodPost, "/products", p, &created); err != nil {
		return model.Product{}, err
	}
	if created.ID == "" {
		return model.Product{}, apperr.StoreUnavailable("create product", fmt.Errorf("server returned a product without id"))
	}
	return created, nil
}

func (s *RemoteStore) UpdateProduct(ctx context.Context, p model.Product) error {
	return s.do(ctx, "update product", fiber.MethodPut, "/products/"+url.PathEscape(p.ID), p, nil)
}

func (s *RemoteStore) DeleteProduct(ctx context.Context, id string) error {
	return s.do(ctx, "delete product", fiber.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}

func (s *RemoteStore) ListSales(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	if err := s.do(ctx, "list sales", fiber.MethodGet, "/sales", nil, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (s *RemoteStore) CreateSale(ctx context.Context, sale model.Sale) error {
	return s.do(ctx, "create sale", fiber.MethodPost, "/sales", sale, nil)
}

func (s *RemoteStore) DeleteSale(ctx context.Context, id string) error {
	return s.do(ctx, "delete sale", fiber.MethodDelete, "/sales/"+url.PathEscape(id), nil, nil)
}

func (s *RemoteStore) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return apperr.StoreUnavailable(op, err)
	}

	a := s.agent(method, s.baseURL+path)
	a.Timeout(s.requestTimeout(ctx))
	if body != nil {
		a.JSON(body)
	}

	code, respBody, errs := a.Bytes()
	if len(errs) > 0 {
		return apperr.StoreUnavailable(op, errs[0])
	}

	switch {
	case code == fiber.StatusNotFound:
		return apperr.NotFound("REMOTE_NOT_FOUND", op+": not found")
	case code == fiber.StatusBadRequest || code == fiber.StatusConflict || code == fiber.StatusUnprocessableEntity:
		return apperr.Validation("REMOTE_REJECTED", fmt.Sprintf("%s: %s", op, strings.TrimSpace(string(respBody))))
	case code < 200 || code >= 300:
		return apperr.StoreUnavailable(op, fmt.Errorf("unexpected status %d", code))
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return apperr.StoreUnavailable(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (s *RemoteStore) agent(method, uri string) *fiber.Agent {
	switch method {
	case fiber.MethodPost:
		return fiber.Post(uri)
	case fiber.MethodPut:
		return fiber.Put(uri)
	case fiber.MethodDelete:
		return fiber.Delete(uri)
	default:
		return fiber.Get(uri)
	}
}

// requestTimeout honors a tighter context deadline than the configured one.
func (s *RemoteStore) requestTimeout(ctx context.Context) time.Duration {
	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	return timeout
}
