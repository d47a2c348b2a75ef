package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/contadores/internal/services/admin"
)

type AdminHandler struct {
	Admin admin.Service
}

func NewAdminHandler(svc admin.Service) *AdminHandler {
	return &AdminHandler{Admin: svc}
}

func (h *AdminHandler) Logs(c *fiber.Ctx) error {
	logs, err := h.Admin.List(c.UserContext(), c.QueryInt("limit", 100))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": logs})
}
