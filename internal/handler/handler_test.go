package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"quicksell-pos/internal/repository"
	"quicksell-pos/internal/service"
)

var testNow = time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*fiber.App, *repository.LocalStore) {
	t.Helper()

	store, err := repository.NewLocalStore(context.Background(), filepath.Join(t.TempDir(), "pos.db"), true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := slog.New(slog.DiscardHandler)
	clock := func() time.Time { return testNow }
	lock := &service.WriteLock{}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger)})
	RegisterRoutes(app, Services{
		Catalog:   service.NewCatalogService(store, nil, logger),
		Sales:     service.NewSaleService(store),
		Checkout:  service.NewCheckoutService(store, lock, nil, clock, logger),
		Void:      service.NewVoidService(store, lock, nil, logger),
		Dashboard: service.NewDashboardService(store, clock),
	}, NewCartRegistry(), nil)
	return app, store
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}
