package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"strings"

	"quicksell-pos/internal/apperr"
	"quicksell-pos/internal/model"
	"quicksell-pos/internal/repository"
	"quicksell-pos/internal/ws"
	"quicksell-pos/pkg/validator"
)

var (
	ErrProductNotFound = apperr.NotFound("PRODUCT_NOT_FOUND", "product not found")
	ErrInvalidRestock  = apperr.Validation("INVALID_RESTOCK_AMOUNT", "restock amount must be greater than zero")
)

// ProductFilter narrows a catalog listing. Empty fields match everything.
type ProductFilter struct {
	Search   string // case-insensitive substring of name or sku
	Category string
	Company  string
}

func (f ProductFilter) match(p model.Product) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.SKU), q) {
			return false
		}
	}
	if f.Category != "" && f.Category != p.Category {
		return false
	}
	if f.Company != "" && f.Company != p.Company {
		return false
	}
	return true
}

type CatalogService interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (model.Product, error)
	CreateProduct(ctx context.Context, p model.Product) (model.Product, error)
	UpdateProduct(ctx context.Context, p model.Product) (model.Product, error)
	Restock(ctx context.Context, id string, amount int) (model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
	Companies(ctx context.Context) ([]string, error)
}

type catalogService struct {
	store    repository.CatalogStore
	notifier Notifier
	logger   *slog.Logger
}

func NewCatalogService(store repository.CatalogStore, notifier Notifier, logger *slog.Logger) CatalogService {
	return &catalogService{store: store, notifier: orNop(notifier), logger: logger}
}

func (s *catalogService) ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if filter.match(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (model.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return model.Product{}, err
	}
	return findProduct(products, id)
}

func (s *catalogService) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.SKU = strings.TrimSpace(p.SKU)
	if p.SKU == "" {
		p.SKU = generateSKU()
	}
	if err := validator.Validate(p, "INVALID_PRODUCT", "product is invalid"); err != nil {
		return model.Product{}, err
	}

	existing, err := s.store.ListProducts(ctx)
	if err != nil {
		return model.Product{}, err
	}
	for _, e := range existing {
		if strings.EqualFold(e.SKU, p.SKU) {
			return model.Product{}, apperr.Validation("SKU_TAKEN", fmt.Sprintf("SKU %s already exists", p.SKU))
		}
	}

	created, err := s.store.CreateProduct(ctx, p)
	if err != nil {
		return model.Product{}, err
	}

	s.logger.Info("product created", slog.String("product_id", created.ID), slog.String("sku", created.SKU))
	s.notifier.Publish(ws.ProductEvent(ws.ActionProductCreated, created, fmt.Sprintf("product '%s' created", created.Name)))
	return created, nil
}

// UpdateProduct replaces the stored product with the same id.
func (s *catalogService) UpdateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.SKU = strings.TrimSpace(p.SKU)
	if err := validator.Validate(p, "INVALID_PRODUCT", "product is invalid"); err != nil {
		return model.Product{}, err
	}

	existing, err := s.store.ListProducts(ctx)
	if err != nil {
		return model.Product{}, err
	}
	if _, err := findProduct(existing, p.ID); err != nil {
		return model.Product{}, err
	}
	for _, e := range existing {
		if e.ID != p.ID && strings.EqualFold(e.SKU, p.SKU) {
			return model.Product{}, apperr.Validation("SKU_TAKEN", fmt.Sprintf("SKU %s already exists", p.SKU))
		}
	}

	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return model.Product{}, err
	}

	s.notifier.Publish(ws.ProductEvent(ws.ActionProductUpdated, p, fmt.Sprintf("product '%s' updated", p.Name)))
	return p, nil
}

func (s *catalogService) Restock(ctx context.Context, id string, amount int) (model.Product, error) {
	if amount <= 0 {
		return model.Product{}, ErrInvalidRestock
	}

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return model.Product{}, err
	}
	p, err := findProduct(products, id)
	if err != nil {
		return model.Product{}, err
	}

	p.StockQty += amount
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return model.Product{}, err
	}

	s.logger.Info("product restocked",
		slog.String("product_id", p.ID),
		slog.Int("amount", amount),
		slog.Int("stock_qty", p.StockQty))
	s.notifier.Publish(ws.ProductEvent(ws.ActionProductRestocked, p, fmt.Sprintf("restocked %d x '%s'", amount, p.Name)))
	return p, nil
}

// DeleteProduct removes the product from the catalog. Recorded sales keep
// their own snapshot and are not touched.
func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.notifier.Publish(ws.ProductEvent(ws.ActionProductDeleted, model.Product{ID: id}, "product deleted"))
	return nil
}

func (s *catalogService) Categories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, func(p model.Product) string { return p.Category })
}

func (s *catalogService) Companies(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, func(p model.Product) string { return p.Company })
}

func (s *catalogService) distinct(ctx context.Context, field func(model.Product) string) ([]string, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range products {
		v := field(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

func findProduct(products []model.Product, id string) (model.Product, error) {
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, ErrProductNotFound
}

// generateSKU returns SKU-#### with a four digit number in [1000, 9999].
func generateSKU() string {
	return fmt.Sprintf("SKU-%d", 1000+rand.IntN(9000))
}
