package repository

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicksell-pos/internal/apperr"
	"quicksell-pos/internal/model"
)

// fakeAPI is an in-memory implementation of the remote QuickSell API.
type fakeAPI struct {
	mu       sync.Mutex
	products map[string]model.Product
	sales    map[string]model.Sale
}

func startFakeAPI(t *testing.T) (string, *fakeAPI) {
	t.Helper()

	api := &fakeAPI{products: map[string]model.Product{}, sales: map[string]model.Sale{}}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/products", func(c *fiber.Ctx) error {
		api.mu.Lock()
		defer api.mu.Unlock()
		out := []model.Product{}
		for _, p := range api.products {
			out = append(out, p)
		}
		return c.JSON(out)
	})
	app.Post("/products", func(c *fiber.Ctx) error {
		var p model.Product
		if err := c.BodyParser(&p); err != nil {
			return c.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		api.mu.Lock()
		defer api.mu.Unlock()
		if p.ID == "" {
			p.ID = "R-" + p.SKU
		}
		api.products[p.ID] = p
		return c.Status(fiber.StatusCreated).JSON(p)
	})
	app.Put("/products/:id", func(c *fiber.Ctx) error {
		var p model.Product
		if err := c.BodyParser(&p); err != nil {
			return c.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		api.mu.Lock()
		defer api.mu.Unlock()
		if _, ok := api.products[c.Params("id")]; !ok {
			return c.SendStatus(fiber.StatusNotFound)
		}
		api.products[c.Params("id")] = p
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Delete("/products/:id", func(c *fiber.Ctx) error {
		api.mu.Lock()
		defer api.mu.Unlock()
		delete(api.products, c.Params("id"))
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/sales", func(c *fiber.Ctx) error {
		api.mu.Lock()
		defer api.mu.Unlock()
		out := []model.Sale{}
		for _, s := range api.sales {
			out = append(out, s)
		}
		return c.JSON(out)
	})
	app.Post("/sales", func(c *fiber.Ctx) error {
		var s model.Sale
		if err := c.BodyParser(&s); err != nil {
			return c.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		api.mu.Lock()
		defer api.mu.Unlock()
		api.sales[s.ID] = s
		return c.SendStatus(fiber.StatusCreated)
	})
	app.Delete("/sales/:id", func(c *fiber.Ctx) error {
		api.mu.Lock()
		defer api.mu.Unlock()
		if _, ok := api.sales[c.Params("id")]; !ok {
			return c.SendStatus(fiber.StatusNotFound)
		}
		delete(api.sales, c.Params("id"))
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/broken", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusInternalServerError)
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "http://" + ln.Addr().String(), api
}

func TestNewRemoteStore(t *testing.T) {
	t.Run("Should reject an invalid server url", func(t *testing.T) {
		_, err := NewRemoteStore("not a url", time.Second)
		assert.Error(t, err)
	})

	t.Run("Should trim a trailing slash", func(t *testing.T) {
		s, err := NewRemoteStore("http://localhost:8080/", 0)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", s.baseURL)
		assert.Equal(t, 5*time.Second, s.timeout)
	})
}

func TestRemoteStore(t *testing.T) {
	ctx := context.Background()
	baseURL, api := startFakeAPI(t)

	s, err := NewRemoteStore(baseURL, 2*time.Second)
	require.NoError(t, err)

	t.Run("Should round trip products", func(t *testing.T) {
		created, err := s.CreateProduct(ctx, model.Product{Name: "Ruler", SKU: "SKU-2000", SellingPrice: decimal.RequireFromString("12.5"), StockQty: 3})
		require.NoError(t, err)
		assert.Equal(t, "R-SKU-2000", created.ID)

		created.StockQty = 1
		require.NoError(t, s.UpdateProduct(ctx, created))

		products, err := s.ListProducts(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, 1, products[0].StockQty)
		assert.True(t, decimal.RequireFromString("12.5").Equal(products[0].SellingPrice))

		require.NoError(t, s.DeleteProduct(ctx, created.ID))
		assert.Empty(t, api.products)
	})

	t.Run("Should map 404 to not found", func(t *testing.T) {
		err := s.UpdateProduct(ctx, model.Product{ID: "missing", SKU: "X"})
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		assert.ErrorIs(t, s.DeleteSale(ctx, "missing"), apperr.ErrNotFound)
	})

	t.Run("Should round trip sales", func(t *testing.T) {
		sale := model.Sale{
			ID:            "S-1",
			Timestamp:     1700000000000,
			TotalAmount:   decimal.NewFromInt(300),
			PaymentMethod: model.PaymentCash,
			Items:         []model.CartItem{{Product: model.Product{ID: "P-1", Name: "Pen", SKU: "P"}, Quantity: 3}},
		}
		require.NoError(t, s.CreateSale(ctx, sale))

		sales, err := s.ListSales(ctx)
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, "S-1", sales[0].ID)
		assert.Equal(t, 3, sales[0].Items[0].Quantity)

		require.NoError(t, s.DeleteSale(ctx, "S-1"))
	})

	t.Run("Should map server errors to store unavailable", func(t *testing.T) {
		err := s.do(ctx, "broken", fiber.MethodGet, "/broken", nil, nil)
		assert.ErrorIs(t, err, apperr.ErrStoreUnavailable)
	})

	t.Run("Should fail fast on a cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := s.ListProducts(cctx)
		assert.ErrorIs(t, err, apperr.ErrStoreUnavailable)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRemoteStore_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	s, err := NewRemoteStore("http://"+addr, 500*time.Millisecond)
	require.NoError(t, err)

	err = s.Ping(context.Background())
	assert.ErrorIs(t, err, apperr.ErrStoreUnavailable)
}
