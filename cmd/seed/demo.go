package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"quicksell-pos/internal/cart"
	"quicksell-pos/internal/model"
	"quicksell-pos/internal/repository"
)

var demoPayments = []model.PaymentMethod{model.PaymentCash, model.PaymentCard, model.PaymentTransfer}

// demoSales generates three to eight sales for every month of now's year up
// to now, each with one to three random lines. Newest first.
func demoSales(products []model.Product, now time.Time, rng *rand.Rand) []model.Sale {
	if len(products) == 0 {
		return nil
	}

	var sales []model.Sale
	for m := time.January; m <= now.Month(); m++ {
		count := rng.IntN(6) + 3
		for i := 0; i < count; i++ {
			day := rng.IntN(28) + 1
			if m == now.Month() && day > now.Day() {
				continue
			}
			at := time.Date(now.Year(), m, day, 10+rng.IntN(8), rng.IntN(60), 0, 0, now.Location())
			if at.After(now) {
				continue
			}

			items := make([]model.CartItem, rng.IntN(3)+1)
			for j := range items {
				discount := decimal.Zero
				if rng.Float64() > 0.8 {
					discount = decimal.NewFromInt(10)
				}
				items[j] = model.CartItem{
					Product:  products[rng.IntN(len(products))],
					Quantity: rng.IntN(3) + 1,
					Discount: discount,
				}
			}

			totals := cart.Sum(items)
			sales = append(sales, model.Sale{
				ID:            uuid.Must(uuid.NewV7()).String(),
				Timestamp:     at.UnixMilli(),
				TotalAmount:   totals.Amount,
				Profit:        totals.Profit,
				PaymentMethod: demoPayments[rng.IntN(len(demoPayments))],
				Discount:      totals.Discount,
				Items:         items,
			})
		}
	}

	sort.Slice(sales, func(i, j int) bool { return sales[i].Timestamp > sales[j].Timestamp })
	return sales
}

// seedDemoSales writes sales only into a store that has none yet.
func seedDemoSales(ctx context.Context, store repository.SaleStore, sales []model.Sale, dryRun bool) (int, error) {
	existing, err := store.ListSales(ctx)
	if err != nil {
		return 0, fmt.Errorf("error listing sales: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, s := range sales {
		if dryRun {
			continue
		}
		if err := store.CreateSale(ctx, s); err != nil {
			return i, fmt.Errorf("error creating sale %s: %w", s.ID, err)
		}
	}
	return len(sales), nil
}
