package handler

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productJSON struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Category     string  `json:"category"`
	SellingPrice float64 `json:"sellingPrice"`
	StockQty     int     `json:"stockQty"`
	ReorderLevel int     `json:"reorderLevel"`
	Status       string  `json:"status"`
}

type errorJSON struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

func TestCatalogHandler(t *testing.T) {
	app, _ := newTestApp(t)

	t.Run("Should list the seeded catalog with stock status", func(t *testing.T) {
		status, body := do(t, app, fiber.MethodGet, "/api/v1/products", nil)
		require.Equal(t, fiber.StatusOK, status)

		products := decode[[]productJSON](t, body)
		require.Len(t, products, 8)
		assert.Equal(t, "P-001", products[0].ID)
		assert.Equal(t, 899.0, products[0].SellingPrice)
		assert.Equal(t, "Healthy", products[0].Status)
		assert.Equal(t, "Critical", products[2].Status)
	})

	t.Run("Should filter by query params", func(t *testing.T) {
		status, body := do(t, app, fiber.MethodGet, "/api/v1/products?category=Office&search=tape", nil)
		require.Equal(t, fiber.StatusOK, status)

		products := decode[[]productJSON](t, body)
		require.Len(t, products, 1)
		assert.Equal(t, "P-006", products[0].ID)
	})

	t.Run("Should return 404 for an unknown product", func(t *testing.T) {
		status, body := do(t, app, fiber.MethodGet, "/api/v1/products/nope", nil)
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, "PRODUCT_NOT_FOUND", decode[errorJSON](t, body).Code)
	})

	t.Run("Should create a product with a generated SKU", func(t *testing.T) {
		status, body := do(t, app, fiber.MethodPost, "/api/v1/products", map[string]interface{}{
			"name":         "Steel Ruler 30cm",
			"category":     "Office",
			"company":      "Deli",
			"costPrice":    20,
			"sellingPrice": 55.5,
			"stockQty":     10,
			"reorderLevel": 3,
		})
		require.Equal(t, fiber.StatusCreated, status, string(body))

		resp := decode[struct {
			Data productJSON `json:"data"`
		}](t, body)
		assert.NotEmpty(t, resp.Data.ID)
		assert.Regexp(t, `^SKU-\d{4}$`, resp.Data.SKU)
		assert.Equal(t, 55.5, resp.Data.SellingPrice)
	})

	t.Run("Should reject a duplicate SKU with 400", func(t *testing.T) {
		status, body := do(t, app, fiber.MethodPost, "/api/v1/products", map[string]interface{}{
			"name": "Fake pen",
			"sku":  "EP-FONT-01",
		})
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "SKU_TAKEN", decode[errorJSON](t, body).Code)
	})

	t.Run("Should return validation details", func(t *testing.T) {
		status, body := do(t, app, fiber.MethodPost, "/api/v1/products", map[string]interface{}{
			"name":         "Broken",
			"sellingPrice": -1,
		})
		require.Equal(t, fiber.StatusBadRequest, status)

		resp := decode[errorJSON](t, body)
		assert.Equal(t, "INVALID_PRODUCT", resp.Code)
		require.Len(t, resp.Details, 1)
		assert.Equal(t, "Product.SellingPrice", resp.Details[0].Field)
	})

	t.Run("Should reject malformed JSON", func(t *testing.T) {
		status, _ := do(t, app, fiber.MethodPost, "/api/v1/products", "not an object")
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("Should restock a product", func(t *testing.T) {
		status, body := do(t, app, fiber.MethodPost, "/api/v1/products/P-003/restock", map[string]int{"amount": 10})
		require.Equal(t, fiber.StatusOK, status)

		resp := decode[struct {
			Data productJSON `json:"data"`
		}](t, body)
		assert.Equal(t, 13, resp.Data.StockQty)
		assert.Equal(t, "Healthy", resp.Data.Status)
	})

	t.Run("Should reject a zero restock", func(t *testing.T) {
		status, _ := do(t, app, fiber.MethodPost, "/api/v1/products/P-003/restock", map[string]int{"amount": 0})
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("Should update a product by id", func(t *testing.T) {
		status, body := do(t, app, fiber.MethodPut, "/api/v1/products/P-004", map[string]interface{}{
			"name":         "Neon Sticky Notes",
			"sku":          "OFF-STK-NEO",
			"category":     "Office",
			"costPrice":    45,
			"sellingPrice": 130,
			"stockQty":     80,
			"reorderLevel": 20,
		})
		require.Equal(t, fiber.StatusOK, status, string(body))

		_, body = do(t, app, fiber.MethodGet, "/api/v1/products/P-004", nil)
		assert.Equal(t, 130.0, decode[productJSON](t, body).SellingPrice)
	})

	t.Run("Should delete a product", func(t *testing.T) {
		status, _ := do(t, app, fiber.MethodDelete, "/api/v1/products/P-008", nil)
		assert.Equal(t, fiber.StatusNoContent, status)

		status, _ = do(t, app, fiber.MethodDelete, "/api/v1/products/P-008", nil)
		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("Should list categories and companies", func(t *testing.T) {
		status, body := do(t, app, fiber.MethodGet, "/api/v1/categories", nil)
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, []string{"Art Supplies", "Office", "Paper", "Writing"}, decode[[]string](t, body))

		status, body = do(t, app, fiber.MethodGet, "/api/v1/companies", nil)
		require.Equal(t, fiber.StatusOK, status)
		assert.Contains(t, decode[[]string](t, body), "Faber-Castell")
	})
}

func TestCatalogHandler_StoreUnavailable(t *testing.T) {
	app, store := newTestApp(t)
	require.NoError(t, store.Close())

	status, body := do(t, app, fiber.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "STORE_UNAVAILABLE", decode[errorJSON](t, body).Code)
}
