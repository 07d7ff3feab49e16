package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"quicksell-pos/internal/apperr"
	"quicksell-pos/internal/cart"
	"quicksell-pos/internal/model"
	"quicksell-pos/internal/repository"
	"quicksell-pos/internal/ws"
	"quicksell-pos/pkg/validator"
)

var ErrEmptyCart = apperr.Validation("EMPTY_CART", "cart is empty")

type CheckoutService interface {
	Checkout(ctx context.Context, c *cart.Cart, method model.PaymentMethod) (model.Sale, error)
}

type checkoutService struct {
	store    repository.Store
	lock     *WriteLock
	notifier Notifier
	clock    Clock
	logger   *slog.Logger
}

func NewCheckoutService(store repository.Store, lock *WriteLock, notifier Notifier, clock Clock, logger *slog.Logger) CheckoutService {
	return &checkoutService{
		store:    store,
		lock:     lock,
		notifier: orNop(notifier),
		clock:    orNow(clock),
		logger:   logger,
	}
}

// Checkout turns the cart into a recorded sale and takes the sold
// quantities out of stock.
//
// The sale is written before the catalog. When a catalog write fails the
// sale stays recorded and the cart is kept, so the caller sees the error
// with the cart intact.
func (s *checkoutService) Checkout(ctx context.Context, c *cart.Cart, method model.PaymentMethod) (model.Sale, error) {
	if c.IsEmpty() {
		return model.Sale{}, ErrEmptyCart
	}

	sale, err := s.buildSale(c, method)
	if err != nil {
		return model.Sale{}, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.store.CreateSale(ctx, sale); err != nil {
		s.logger.Error("failed to record sale", slog.String("sale_id", sale.ID), slog.Any("error", err))
		return model.Sale{}, err
	}

	if err := s.decrementStock(ctx, sale.Items); err != nil {
		s.logger.Error("sale recorded but stock update failed",
			slog.String("sale_id", sale.ID),
			slog.Any("error", err))
		return model.Sale{}, err
	}

	c.Clear()

	s.logger.Info("sale settled",
		slog.String("sale_id", sale.ID),
		slog.String("payment_method", string(sale.PaymentMethod)),
		slog.String("total_amount", sale.TotalAmount.String()),
		slog.Int("items", len(sale.Items)))
	s.notifier.Publish(ws.SaleEvent(ws.ActionSaleSettled, sale, fmt.Sprintf("sale %s settled", sale.ID)))
	return sale, nil
}

func (s *checkoutService) buildSale(c *cart.Cart, method model.PaymentMethod) (model.Sale, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.Sale{}, apperr.New(apperr.KindInternal, "SALE_ID_FAILED", "failed to generate sale id").Wrap(err)
	}

	items := c.Lines()
	totals := cart.Sum(items)
	sale := model.Sale{
		ID:            id.String(),
		Timestamp:     s.clock().UnixMilli(),
		TotalAmount:   totals.Amount,
		Profit:        totals.Profit,
		PaymentMethod: method,
		Discount:      totals.Discount,
		Items:         items,
	}

	if err := validator.Validate(sale, "INVALID_SALE", "sale is invalid"); err != nil {
		return model.Sale{}, err
	}
	return sale, nil
}

// decrementStock floors every sold product at zero. Products deleted since
// they were added to the cart are skipped.
func (s *checkoutService) decrementStock(ctx context.Context, items []model.CartItem) error {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return err
	}
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, item := range items {
		p, ok := byID[item.ID]
		if !ok {
			s.logger.Warn("sold product no longer in catalog", slog.String("product_id", item.ID))
			continue
		}
		p.StockQty = max(0, p.StockQty-item.Quantity)
		if err := s.store.UpdateProduct(ctx, p); err != nil {
			return err
		}
		byID[p.ID] = p
		s.notifier.Publish(ws.ProductEvent(ws.ActionProductUpdated, p, ""))
	}
	return nil
}
