package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"quicksell-pos/internal/apperr"
	"quicksell-pos/internal/model"
	"quicksell-pos/internal/repository"
	"quicksell-pos/internal/ws"
)

var ErrSaleNotFound = apperr.NotFound("SALE_NOT_FOUND", "sale not found")

type VoidService interface {
	Void(ctx context.Context, saleID string) (model.Sale, error)
}

type voidService struct {
	store    repository.Store
	lock     *WriteLock
	notifier Notifier
	logger   *slog.Logger
}

func NewVoidService(store repository.Store, lock *WriteLock, notifier Notifier, logger *slog.Logger) VoidService {
	return &voidService{store: store, lock: lock, notifier: orNop(notifier), logger: logger}
}

// Void returns every sold quantity to stock and deletes the sale. If any
// write fails, products already written are put back to their previous
// values before the error is returned.
func (s *voidService) Void(ctx context.Context, saleID string) (model.Sale, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	sales, err := s.store.ListSales(ctx)
	if err != nil {
		return model.Sale{}, err
	}
	sale, ok := findSale(sales, saleID)
	if !ok {
		return model.Sale{}, ErrSaleNotFound
	}

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return model.Sale{}, err
	}
	current := make(map[string]model.Product, len(products))
	for _, p := range products {
		current[p.ID] = p
	}

	// originals holds the pre-void state of every product written so far.
	var originals []model.Product
	written := make(map[string]bool)

	for _, item := range sale.Items {
		p, ok := current[item.ID]
		if !ok {
			s.logger.Warn("voided product no longer in catalog", slog.String("product_id", item.ID))
			continue
		}
		if !written[p.ID] {
			originals = append(originals, p)
		}

		p.StockQty += item.Quantity
		if err := s.store.UpdateProduct(ctx, p); err != nil {
			s.compensate(ctx, saleID, originals)
			return model.Sale{}, err
		}
		current[p.ID] = p
		written[p.ID] = true
	}

	if err := s.store.DeleteSale(ctx, saleID); err != nil {
		s.compensate(ctx, saleID, originals)
		return model.Sale{}, err
	}

	s.logger.Info("sale voided", slog.String("sale_id", saleID), slog.Int("items", len(sale.Items)))
	for id := range written {
		s.notifier.Publish(ws.ProductEvent(ws.ActionProductUpdated, current[id], ""))
	}
	s.notifier.Publish(ws.SaleEvent(ws.ActionSaleVoided, sale, fmt.Sprintf("sale %s voided", saleID)))
	return sale, nil
}

// compensate restores products in reverse write order. Failures are logged;
// the caller already returns the original error.
func (s *voidService) compensate(ctx context.Context, saleID string, originals []model.Product) {
	var errs []error
	for i := len(originals) - 1; i >= 0; i-- {
		if err := s.store.UpdateProduct(ctx, originals[i]); err != nil {
			errs = append(errs, fmt.Errorf("restore %s: %w", originals[i].ID, err))
		}
	}
	if len(errs) > 0 {
		s.logger.Error("void compensation incomplete",
			slog.String("sale_id", saleID),
			slog.Any("error", errors.Join(errs...)))
	}
}

func findSale(sales []model.Sale, id string) (model.Sale, bool) {
	for _, s := range sales {
		if s.ID == id {
			return s, true
		}
	}
	return model.Sale{}, false
}
