package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/contadores/internal/apperr"
	"github.com/Windi-Fikriyansyah/contadores/internal/middleware"
	"github.com/Windi-Fikriyansyah/contadores/internal/realtime"
	"github.com/Windi-Fikriyansyah/contadores/internal/services/messaging"
)

type ChatHandler struct {
	Messages messaging.Service
	Hub      *realtime.Hub
}

func NewChatHandler(svc messaging.Service, hub *realtime.Hub) *ChatHandler {
	return &ChatHandler{Messages: svc, Hub: hub}
}

type SendMessageReq struct {
	ReceiverID string `json:"destinatario_id" validate:"required,uuid"`
	Content    string `json:"conteudo" validate:"required,max=5000"`
}

func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	uid, _ := middleware.UserID(c)

	var req SendMessageReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if errs := validateStruct(&req); errs != nil {
		return validationFail(c, errs)
	}

	msg, err := h.Messages.Send(c.UserContext(), uid, uuid.MustParse(req.ReceiverID), req.Content)
	if err != nil {
		return fail(c, err)
	}
	return okMessage(c, "Mensagem enviada!", msg)
}

func (h *ChatHandler) GetConversation(c *fiber.Ctx) error {
	uid, _ := middleware.UserID(c)
	other, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return fail(c, apperr.ErrUserNotFound)
	}

	msgs, err := h.Messages.Conversation(c.UserContext(), uid, other)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": msgs, "online": h.Hub.Online(other)})
}

func (h *ChatHandler) UnreadCount(c *fiber.Ctx) error {
	uid, _ := middleware.UserID(c)
	n, err := h.Messages.UnreadCount(c.UserContext(), uid)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"count": n}})
}

// UpgradeWebSocket admits only websocket upgrades from logged-in users.
func (h *ChatHandler) UpgradeWebSocket(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	if _, ok := middleware.UserID(c); !ok {
		return fail(c, apperr.ErrUnauthenticated)
	}
	return c.Next()
}

func (h *ChatHandler) WebSocketHandler(c *websocket.Conn) {
	uid, ok := c.Locals(middleware.LocalUserID).(uuid.UUID)
	if !ok {
		_ = c.Close()
		return
	}
	h.Hub.Serve(c, uid)
}
