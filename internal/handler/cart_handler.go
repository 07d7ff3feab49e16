package handler

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"quicksell-pos/internal/cart"
	"quicksell-pos/internal/model"
	"quicksell-pos/internal/service"
)

type CartHandler struct {
	carts    *CartRegistry
	catalog  service.CatalogService
	checkout service.CheckoutService
}

func NewCartHandler(carts *CartRegistry, catalog service.CatalogService, checkout service.CheckoutService) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog, checkout: checkout}
}

func (h *CartHandler) summary(c *fiber.Ctx, status int) error {
	var s cart.Summary
	_ = h.carts.With(c.Params("terminal"), func(cc *cart.Cart) error {
		s = cc.Summary()
		return nil
	})
	return c.Status(status).JSON(s)
}

func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	return h.summary(c, fiber.StatusOK)
}

type addLineRequest struct {
	ProductID string `json:"productId"`
}

// AddLine adds one unit of a catalog product. Products without stock are
// ignored and the unchanged cart is returned.
func (h *CartHandler) AddLine(c *fiber.Ctx) error {
	var req addLineRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID == "" {
		return badRequest(c, "productId is required")
	}

	p, err := h.catalog.GetProduct(c.UserContext(), req.ProductID)
	if err != nil {
		return err
	}

	_ = h.carts.With(c.Params("terminal"), func(cc *cart.Cart) error {
		cc.Add(p)
		return nil
	})
	return h.summary(c, fiber.StatusOK)
}

func (h *CartHandler) RemoveLine(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return badRequest(c, "index must be an integer")
	}

	_ = h.carts.With(c.Params("terminal"), func(cc *cart.Cart) error {
		cc.Remove(index)
		return nil
	})
	return h.summary(c, fiber.StatusOK)
}

type selectRequest struct {
	Index int `json:"index"`
}

func (h *CartHandler) SelectLine(c *fiber.Ctx) error {
	var req selectRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	err := h.carts.With(c.Params("terminal"), func(cc *cart.Cart) error {
		return cc.Select(req.Index)
	})
	if err != nil {
		return err
	}
	return h.summary(c, fiber.StatusOK)
}

type setFieldRequest struct {
	Value interface{} `json:"value"`
}

// SetField edits the active line. The value is keypad input and may be sent
// as a JSON string or number.
func (h *CartHandler) SetField(c *fiber.Ctx) error {
	field, err := cart.ParseField(c.Params("field"))
	if err != nil {
		return err
	}

	var req setFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	err = h.carts.With(c.Params("terminal"), func(cc *cart.Cart) error {
		return cc.SetActiveField(field, rawValue(req.Value))
	})
	if err != nil {
		return err
	}
	return h.summary(c, fiber.StatusOK)
}

func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	_ = h.carts.With(c.Params("terminal"), func(cc *cart.Cart) error {
		cc.Clear()
		return nil
	})
	return h.summary(c, fiber.StatusOK)
}

type checkoutRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	method, err := model.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var sale model.Sale
	err = h.carts.With(c.Params("terminal"), func(cc *cart.Cart) error {
		var err error
		sale, err = h.checkout.Checkout(c.UserContext(), cc, method)
		return err
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Sale settled", "data": sale})
}

func rawValue(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
