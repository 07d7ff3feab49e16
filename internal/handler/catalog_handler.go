package handler

import (
	"github.com/gofiber/fiber/v2"

	"quicksell-pos/internal/model"
	"quicksell-pos/internal/service"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// productView adds the derived stock status to a product.
type productView struct {
	model.Product
	Status model.StockStatus `json:"status"`
}

func viewOf(p model.Product) productView {
	return productView{Product: p, Status: p.Status()}
}

// GetProducts lists the catalog.
// Query params: search (name or sku), category, company
func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.UserContext(), service.ProductFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Company:  c.Query("company"),
	})
	if err != nil {
		return err
	}

	views := make([]productView, len(products))
	for i, p := range products {
		views[i] = viewOf(p)
	}
	return c.JSON(views)
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	p, err := h.service.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(viewOf(p))
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	created, err := h.service.CreateProduct(c.UserContext(), product)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product created", "data": viewOf(created)})
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	product.ID = c.Params("id")

	updated, err := h.service.UpdateProduct(c.UserContext(), product)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": viewOf(updated)})
}

type restockRequest struct {
	Amount int `json:"amount"`
}

func (h *CatalogHandler) RestockProduct(c *fiber.Ctx) error {
	var req restockRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	p, err := h.service.Restock(c.UserContext(), c.Params("id"), req.Amount)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product restocked", "data": viewOf(p)})
}

func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

func (h *CatalogHandler) GetCompanies(c *fiber.Ctx) error {
	companies, err := h.service.Companies(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(companies)
}
