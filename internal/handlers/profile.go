package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/contadores/internal/middleware"
	"github.com/Windi-Fikriyansyah/contadores/internal/services/account"
)

type ProfileHandler struct {
	Accounts account.Service
	Session  Session
}

func NewProfileHandler(accounts account.Service, session Session) *ProfileHandler {
	return &ProfileHandler{Accounts: accounts, Session: session}
}

type AccountantProfileReq struct {
	Name         *string  `json:"nome" validate:"omitempty,max=100"`
	Specialty    *string  `json:"especialidade" validate:"omitempty,max=200"`
	Photo        *string  `json:"foto" validate:"omitempty,max=300"`
	Tags         []string `json:"tags" validate:"omitempty,dive,max=50"`
	Location     *string  `json:"localizacao" validate:"omitempty,max=100"`
	ResponseTime *string  `json:"tempo_resposta" validate:"omitempty,max=50"`
	Description  *string  `json:"descricao"`
}

// UpsertAccountant handles the accountant's own profile form.
func (h *ProfileHandler) UpsertAccountant(c *fiber.Ctx) error {
	uid, _ := middleware.UserID(c)

	var req AccountantProfileReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if errs := validateStruct(&req); errs != nil {
		return validationFail(c, errs)
	}

	acc, err := h.Accounts.UpsertAccountantProfile(c.UserContext(), uid, account.ProfileInput{
		Name:         req.Name,
		Specialty:    req.Specialty,
		Photo:        emptyAsNil(req.Photo),
		Tags:         req.Tags,
		Location:     req.Location,
		ResponseTime: req.ResponseTime,
		Description:  req.Description,
	})
	if err != nil {
		return fail(c, err)
	}
	return okMessage(c, "Perfil atualizado com sucesso!", acc)
}

func (h *ProfileHandler) EditPage(c *fiber.Ctx) error {
	uid, _ := middleware.UserID(c)
	u, acc, err := h.Accounts.GetEditProfile(c.UserContext(), uid)
	if err != nil {
		return fail(c, err)
	}
	return view(c, "editar_perfil", fiber.Map{
		"user":       u,
		"accountant": acc,
	})
}

// Edit handles the multipart profile form. Fields that are not sent keep their value.
func (h *ProfileHandler) Edit(c *fiber.Ctx) error {
	uid, _ := middleware.UserID(c)
	fields := formFields(c)

	in := account.EditInput{
		Name:         fields.get("nome"),
		Email:        fields.get("email"),
		Phone:        fields.get("telefone"),
		Bio:          fields.get("bio"),
		Specialty:    fields.get("especialidade"),
		Location:     fields.get("localizacao"),
		Description:  fields.get("descricao"),
		ResponseTime: fields.get("tempo_resposta"),
		Experience:   fields.get("experiencia"),
		Education:    fields.get("formacao"),
		Tags:         fields["tags"],
	}

	errs := FieldErrors{}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		errs.Add("nome", "Campo obrigatório")
	}
	if in.Email != nil {
		if err := validate.Var(strings.TrimSpace(*in.Email), "required,email"); err != nil {
			errs.Add("email", "Email inválido")
		}
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	photo, _ := c.FormFile("foto")

	u, acc, err := h.Accounts.EditUserProfile(c.UserContext(), uid, in, photo)
	if err != nil {
		return fail(c, err)
	}

	if err := h.Session.Issue(c, u); err != nil {
		return fail(c, err)
	}
	return okMessage(c, "Perfil atualizado com sucesso!", fiber.Map{
		"user":       u,
		"accountant": acc,
	})
}

type formValues map[string][]string

func (f formValues) get(key string) *string {
	v, ok := f[key]
	if !ok || len(v) == 0 {
		return nil
	}
	s := v[0]
	return &s
}

// formFields collects multipart or urlencoded values, keeping repeated keys.
func formFields(c *fiber.Ctx) formValues {
	if form, err := c.MultipartForm(); err == nil {
		return formValues(form.Value)
	}
	out := formValues{}
	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		key := string(k)
		out[key] = append(out[key], string(v))
	})
	return out
}

func emptyAsNil(p *string) *string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return nil
	}
	return p
}
