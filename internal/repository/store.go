package repository

import (
	"context"

	"quicksell-pos/internal/model"
)

// CatalogStore is the persistence contract for products.
type CatalogStore interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	// CreateProduct stores p, assigning an ID when p.ID is empty.
	CreateProduct(ctx context.Context, p model.Product) (model.Product, error)
	// UpdateProduct replaces the product with the same ID.
	UpdateProduct(ctx context.Context, p model.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// SaleStore is the persistence contract for sales.
type SaleStore interface {
	ListSales(ctx context.Context) ([]model.Sale, error)
	CreateSale(ctx context.Context, s model.Sale) error
	DeleteSale(ctx context.Context, id string) error
}

// Store bundles both collections of one backend.
type Store interface {
	CatalogStore
	SaleStore
	// Name identifies the backend in logs.
	Name() string
	Close() error
}
