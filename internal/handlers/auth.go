package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/contadores/internal/middleware"
	"github.com/Windi-Fikriyansyah/contadores/internal/services/account"
)

type AuthHandler struct {
	Accounts account.Service
	Session  Session
}

func NewAuthHandler(accounts account.Service, session Session) *AuthHandler {
	return &AuthHandler{Accounts: accounts, Session: session}
}

type RegisterReq struct {
	Name     string `json:"nome" form:"nome" validate:"required,max=100"`
	Email    string `json:"email" form:"email" validate:"required,email,max=100"`
	Password string `json:"senha" form:"senha" validate:"required,min=6"`
	Role     string `json:"tipo" form:"tipo" validate:"required,oneof=cliente contador client accountant"`
}

type LoginReq struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"senha" form:"senha" validate:"required"`
}

func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if _, ok := middleware.UserID(c); ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	return view(c, "login", nil)
}

func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return view(c, "registro", nil)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if errs := validateStruct(&req); errs != nil {
		return validationFail(c, errs)
	}

	u, err := h.Accounts.Register(c.UserContext(), account.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Conta criada com sucesso! Faça login para continuar.",
		"redirect": "/login",
		"data":     fiber.Map{"user": userView(u)},
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if errs := validateStruct(&req); errs != nil {
		return validationFail(c, errs)
	}

	u, err := h.Accounts.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	if err := h.Session.Issue(c, u); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Login realizado com sucesso!",
		"redirect": "/",
		"data":     fiber.Map{"user": userView(u)},
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.Session.Clear(c)
	return c.Redirect("/", fiber.StatusFound)
}
