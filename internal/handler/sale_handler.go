package handler

import (
	"github.com/gofiber/fiber/v2"

	"quicksell-pos/internal/service"
)

type SaleHandler struct {
	sales service.SaleService
	void  service.VoidService
}

func NewSaleHandler(sales service.SaleService, void service.VoidService) *SaleHandler {
	return &SaleHandler{sales: sales, void: void}
}

func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.sales.ListSales(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(sales)
}

func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	sale, err := h.sales.GetSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(sale)
}

// VoidSale deletes the sale and returns its quantities to stock.
func (h *SaleHandler) VoidSale(c *fiber.Ctx) error {
	sale, err := h.void.Void(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Sale voided", "data": sale})
}
