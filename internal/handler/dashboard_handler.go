package handler

import (
	"github.com/gofiber/fiber/v2"

	"quicksell-pos/internal/service"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDashboardStats returns today's and this year's figures plus low stock alerts
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// GetReport returns yearly and lifetime revenue with the sales timeline
func (h *DashboardHandler) GetReport(c *fiber.Ctx) error {
	report, err := h.service.GetReport(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(report)
}
