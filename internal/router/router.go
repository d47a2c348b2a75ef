package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/Windi-Fikriyansyah/contadores/internal/handlers"
	"github.com/Windi-Fikriyansyah/contadores/internal/logger"
	"github.com/Windi-Fikriyansyah/contadores/internal/middleware"
	"github.com/Windi-Fikriyansyah/contadores/internal/models"
)

// Options carries the HTTP-level settings.
type Options struct {
	JWTSecret    string
	CORSOrigins  string
	MaxBodyBytes int
	UploadDir    string
	UploadPrefix string
}

// Handlers groups every route handler. Google is nil when OAuth is not configured.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Google     *handlers.GoogleOAuthHandler
	Discovery  *handlers.DiscoveryHandler
	Profile    *handlers.ProfileHandler
	Engagement *handlers.EngagementHandler
	Chat       *handlers.ChatHandler
	Admin      *handlers.AdminHandler
}

// New builds the fiber app with middleware and routes.
func New(opts Options, h Handlers) *fiber.App {
	cfg := fiber.Config{AppName: "contadores"}
	if opts.MaxBodyBytes > 0 {
		cfg.BodyLimit = opts.MaxBodyBytes
	}
	app := fiber.New(cfg)

	app.Use(recover.New())
	app.Use(logger.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))
	app.Use(middleware.LoadSession(opts.JWTSecret))

	Register(app, opts, h)
	return app
}

// Register mounts the routes on app.
func Register(app *fiber.App, opts Options, h Handlers) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "status": "ok"})
	})
	if opts.UploadDir != "" && opts.UploadPrefix != "" {
		app.Static(opts.UploadPrefix, opts.UploadDir)
	}

	page := middleware.RequireSessionPage()
	api := middleware.RequireSessionJSON()

	// auth
	app.Get("/login", h.Auth.LoginPage)
	app.Post("/login", h.Auth.Login)
	app.Get("/registro", h.Auth.RegisterPage)
	app.Post("/registro", h.Auth.Register)
	app.Get("/logout", h.Auth.Logout)
	if h.Google != nil {
		app.Get("/auth/google/start", h.Google.GoogleStart)
		app.Get("/auth/google/callback", h.Google.GoogleCallback)
	}

	// discovery
	app.Get("/", h.Discovery.Index)
	app.Post("/filtrar", h.Discovery.Filter)
	app.Get("/perfil_contador/:id", h.Discovery.Profile)

	// profile
	app.Post("/cadastrar_contador", api, h.Profile.UpsertAccountant)
	app.Get("/editar_perfil", page, h.Profile.EditPage)
	app.Post("/editar_perfil", api, h.Profile.Edit)

	// engagement
	app.Post("/enviar_proposta", api, h.Engagement.SendProposal)
	app.Post("/responder_proposta", api, h.Engagement.RespondProposal)
	app.Post("/avaliar_contador", api, h.Engagement.SubmitRating)
	app.Get("/minhas_avaliacoes", page, h.Engagement.MyRatings)
	app.Get("/minhas_solicitacoes", page, h.Engagement.MyProposals)
	app.Get("/solicitacoes_contador", page, h.Engagement.ReceivedProposals)

	// messaging
	app.Post("/mensagens", api, h.Chat.SendMessage)
	app.Get("/mensagens/nao_lidas", api, h.Chat.UnreadCount)
	app.Get("/mensagens/:user_id", api, h.Chat.GetConversation)
	app.Get("/ws/chat", h.Chat.UpgradeWebSocket, websocket.New(h.Chat.WebSocketHandler))

	// admin
	app.Get("/admin/logs", api, middleware.RequireRoles(string(models.RoleAdmin)), h.Admin.Logs)
}
