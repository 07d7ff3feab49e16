package service

import (
	"context"
	"sort"

	"quicksell-pos/internal/model"
	"quicksell-pos/internal/repository"
)

type SaleService interface {
	ListSales(ctx context.Context) ([]model.Sale, error)
	GetSale(ctx context.Context, id string) (model.Sale, error)
}

type saleService struct {
	store repository.SaleStore
}

func NewSaleService(store repository.SaleStore) SaleService {
	return &saleService{store: store}
}

// ListSales returns the sale log newest first.
func (s *saleService) ListSales(ctx context.Context) ([]model.Sale, error) {
	sales, err := s.store.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sales, func(i, j int) bool { return sales[i].Timestamp > sales[j].Timestamp })
	return sales, nil
}

func (s *saleService) GetSale(ctx context.Context, id string) (model.Sale, error) {
	sales, err := s.store.ListSales(ctx)
	if err != nil {
		return model.Sale{}, err
	}
	sale, ok := findSale(sales, id)
	if !ok {
		return model.Sale{}, ErrSaleNotFound
	}
	return sale, nil
}
