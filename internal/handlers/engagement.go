package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/contadores/internal/apperr"
	"github.com/Windi-Fikriyansyah/contadores/internal/middleware"
	"github.com/Windi-Fikriyansyah/contadores/internal/models"
	"github.com/Windi-Fikriyansyah/contadores/internal/services/engagement"
)

type EngagementHandler struct {
	Engagement engagement.Service
}

func NewEngagementHandler(svc engagement.Service) *EngagementHandler {
	return &EngagementHandler{Engagement: svc}
}

type ProposalReq struct {
	AccountantID string `json:"contador_id" validate:"required,uuid"`
	Message      string `json:"mensagem" validate:"required,max=5000"`
}

type RespondReq struct {
	ProposalID string `json:"proposta_id" validate:"required,uuid"`
	Status     string `json:"status" validate:"required"`
	Response   string `json:"mensagem_resposta" validate:"max=5000"`
}

type RatingReq struct {
	AccountantID string  `json:"contador_id" validate:"required,uuid"`
	Value        float64 `json:"nota" validate:"required,gte=1,lte=5"`
	Comment      string  `json:"comentario" validate:"max=2000"`
}

func (h *EngagementHandler) SendProposal(c *fiber.Ctx) error {
	uid, _ := middleware.UserID(c)

	var req ProposalReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if errs := validateStruct(&req); errs != nil {
		return validationFail(c, errs)
	}

	p, err := h.Engagement.SubmitProposal(c.UserContext(), uid, uuid.MustParse(req.AccountantID), req.Message)
	if err != nil {
		return fail(c, err)
	}
	return okMessage(c, "Proposta enviada com sucesso!", p)
}

func (h *EngagementHandler) RespondProposal(c *fiber.Ctx) error {
	uid, _ := middleware.UserID(c)

	var req RespondReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if errs := validateStruct(&req); errs != nil {
		return validationFail(c, errs)
	}

	p, err := h.Engagement.RespondToProposal(c.UserContext(), uid, uuid.MustParse(req.ProposalID), req.Status, req.Response)
	if err != nil {
		return fail(c, err)
	}
	return okMessage(c, "Proposta "+statusLabel(p.Status)+" com sucesso!", p)
}

func statusLabel(s models.ProposalStatus) string {
	switch s {
	case models.ProposalAccepted:
		return "aceita"
	case models.ProposalDeclined:
		return "recusada"
	}
	return string(s)
}

func (h *EngagementHandler) SubmitRating(c *fiber.Ctx) error {
	uid, _ := middleware.UserID(c)

	var req RatingReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if errs := validateStruct(&req); errs != nil {
		return validationFail(c, errs)
	}

	acc, err := h.Engagement.SubmitRating(c.UserContext(), uid, uuid.MustParse(req.AccountantID), req.Value, req.Comment)
	if err != nil {
		return fail(c, err)
	}
	return okMessage(c, "Avaliação enviada com sucesso!", fiber.Map{
		"score":        acc.Score,
		"rating_count": acc.RatingCount,
	})
}

func (h *EngagementHandler) MyRatings(c *fiber.Ctx) error {
	uid, _ := middleware.UserID(c)
	items, err := h.Engagement.ListMyRatings(c.UserContext(), uid)
	if err != nil {
		return fail(c, err)
	}
	return view(c, "avaliacoes", fiber.Map{"ratings": items})
}

func (h *EngagementHandler) MyProposals(c *fiber.Ctx) error {
	uid, _ := middleware.UserID(c)
	items, err := h.Engagement.ListMyProposals(c.UserContext(), uid)
	if err != nil {
		return fail(c, err)
	}
	return view(c, "solicitacoes", fiber.Map{"proposals": items})
}

// ReceivedProposals is the accountant inbox. Other roles go back to the listing.
func (h *EngagementHandler) ReceivedProposals(c *fiber.Ctx) error {
	uid, _ := middleware.UserID(c)
	rec, err := h.Engagement.ListReceivedProposals(c.UserContext(), uid)
	if errors.Is(err, apperr.ErrAccountantOnly) {
		return c.Redirect("/", fiber.StatusFound)
	}
	if err != nil {
		return fail(c, err)
	}
	return view(c, "solicitacoes_contador", fiber.Map{
		"accountant": rec.Accountant,
		"proposals":  rec.Proposals,
	})
}
