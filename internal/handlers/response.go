package handlers

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/Windi-Fikriyansyah/contadores/internal/apperr"
	"github.com/Windi-Fikriyansyah/contadores/internal/middleware"
	"github.com/Windi-Fikriyansyah/contadores/internal/models"
	"github.com/Windi-Fikriyansyah/contadores/internal/utils"
)

type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func validationFail(c *fiber.Ctx, errs FieldErrors) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": false,
		"message": "Erro de validação",
		"errors":  errs,
	})
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct runs the validate tags of req and renders failures per field.
func validateStruct(req interface{}) FieldErrors {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	errs := FieldErrors{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.Add("_", err.Error())
		return errs
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), fieldMessage(fe))
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório"
	case "email":
		return "Email inválido"
	case "min":
		return fmt.Sprintf("Mínimo de %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("Máximo de %s caracteres", fe.Param())
	case "gte":
		return fmt.Sprintf("Valor mínimo é %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Valor máximo é %s", fe.Param())
	case "uuid":
		return "Identificador inválido"
	case "oneof":
		return "Valor inválido"
	}
	return "Valor inválido"
}

// fail renders a domain error as the JSON failure flag.
func fail(c *fiber.Ctx, err error) error {
	status := apperr.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": apperr.Message(err),
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Requisição inválida",
	})
}

func okMessage(c *fiber.Ctx, message string, data interface{}) error {
	body := fiber.Map{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	return c.JSON(body)
}

// view renders the JSON view model of a page route.
func view(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["session"] = sessionView(c)
	return c.JSON(fiber.Map{
		"success": true,
		"view":    name,
		"data":    data,
	})
}

func sessionView(c *fiber.Ctx) fiber.Map {
	claims := middleware.Claims(c)
	if claims == nil {
		return fiber.Map{"logged_in": false}
	}
	return fiber.Map{
		"logged_in": true,
		"id":        claims.UserID,
		"name":      claims.Name,
		"role":      claims.Role,
		"email":     claims.Email,
		"photo":     claims.Photo,
	}
}

// Session issues the session cookie for u.
type Session struct {
	Secret  string
	Expires int
	Secure  bool
}

func (s Session) Issue(c *fiber.Ctx, u *models.User) error {
	token, err := utils.SignJWT(s.Secret, utils.Claims{
		UserID: u.ID.String(),
		Name:   u.Name,
		Role:   string(u.Role),
		Email:  u.Email,
		Photo:  u.Photo,
	}, s.Expires)
	if err != nil {
		return err
	}
	utils.SetSessionCookie(c, token, s.Expires, s.Secure)
	return nil
}

func (s Session) Clear(c *fiber.Ctx) {
	utils.ClearSessionCookie(c, s.Secure)
}

func userView(u *models.User) fiber.Map {
	return fiber.Map{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
		"photo": u.Photo,
	}
}
