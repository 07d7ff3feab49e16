package handler

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"quicksell-pos/internal/service"
	"quicksell-pos/internal/ws"
)

type Services struct {
	Catalog   service.CatalogService
	Sales     service.SaleService
	Checkout  service.CheckoutService
	Void      service.VoidService
	Dashboard service.DashboardService
}

// RegisterRoutes mounts the REST API under /api/v1 and, when hub is set, the
// live update socket at /ws.
func RegisterRoutes(app *fiber.App, svc Services, carts *CartRegistry, hub *ws.Hub) {
	catalogHandler := NewCatalogHandler(svc.Catalog)
	cartHandler := NewCartHandler(carts, svc.Catalog, svc.Checkout)
	saleHandler := NewSaleHandler(svc.Sales, svc.Void)
	dashHandler := NewDashboardHandler(svc.Dashboard)

	api := app.Group("/api/v1")

	// Dashboard
	api.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	api.Get("/reports", dashHandler.GetReport)

	// Catalog
	api.Get("/categories", catalogHandler.GetCategories)
	api.Get("/companies", catalogHandler.GetCompanies)
	api.Get("/products", catalogHandler.GetProducts)
	api.Get("/products/:id", catalogHandler.GetProduct)
	api.Post("/products", catalogHandler.CreateProduct)
	api.Put("/products/:id", catalogHandler.UpdateProduct)
	api.Post("/products/:id/restock", catalogHandler.RestockProduct)
	api.Delete("/products/:id", catalogHandler.DeleteProduct)

	// Carts, one per terminal
	terminal := api.Group("/carts/:terminal")
	terminal.Get("/", cartHandler.GetCart)
	terminal.Delete("/", cartHandler.ClearCart)
	terminal.Post("/lines", cartHandler.AddLine)
	terminal.Delete("/lines/:index", cartHandler.RemoveLine)
	terminal.Put("/active", cartHandler.SelectLine)
	terminal.Put("/active/:field", cartHandler.SetField)
	terminal.Post("/checkout", cartHandler.Checkout)

	// Transactions
	api.Get("/sales", saleHandler.GetSales)
	api.Get("/sales/:id", saleHandler.GetSale)
	api.Delete("/sales/:id", saleHandler.VoidSale)

	if hub == nil {
		return
	}

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		if !hub.Join(c) {
			return
		}
		defer hub.Leave(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
