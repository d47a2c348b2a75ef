package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/contadores/internal/apperr"
	"github.com/Windi-Fikriyansyah/contadores/internal/middleware"
	"github.com/Windi-Fikriyansyah/contadores/internal/models"
	"github.com/Windi-Fikriyansyah/contadores/internal/services/discovery"
)

type DiscoveryHandler struct {
	Discovery discovery.Service
}

func NewDiscoveryHandler(svc discovery.Service) *DiscoveryHandler {
	return &DiscoveryHandler{Discovery: svc}
}

type FilterReq struct {
	Query string   `json:"q"`
	Tags  []string `json:"tags"`
}

// Index is the public listing. Accountants land on their request inbox instead.
func (h *DiscoveryHandler) Index(c *fiber.Ctx) error {
	if middleware.Role(c) == string(models.RoleAccountant) {
		return c.Redirect("/solicitacoes_contador", fiber.StatusFound)
	}

	accs, err := h.Discovery.ListActive(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return view(c, "index", fiber.Map{"accountants": accs})
}

func (h *DiscoveryHandler) Filter(c *fiber.Ctx) error {
	var req FilterReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badBody(c)
		}
	}

	accs, err := h.Discovery.Filter(c.UserContext(), req.Query, req.Tags)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": accs})
}

func (h *DiscoveryHandler) Profile(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, apperr.ErrAccountantNotFound)
	}

	p, err := h.Discovery.GetProfile(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return view(c, "perfil_contador", fiber.Map{
		"accountant": p.Accountant,
		"ratings":    p.Ratings,
	})
}
