package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Windi-Fikriyansyah/contadores/internal/cache"
	"github.com/Windi-Fikriyansyah/contadores/internal/config"
	"github.com/Windi-Fikriyansyah/contadores/internal/db"
	"github.com/Windi-Fikriyansyah/contadores/internal/handlers"
	"github.com/Windi-Fikriyansyah/contadores/internal/logger"
	"github.com/Windi-Fikriyansyah/contadores/internal/realtime"
	"github.com/Windi-Fikriyansyah/contadores/internal/repository"
	"github.com/Windi-Fikriyansyah/contadores/internal/router"
	"github.com/Windi-Fikriyansyah/contadores/internal/services/account"
	"github.com/Windi-Fikriyansyah/contadores/internal/services/admin"
	"github.com/Windi-Fikriyansyah/contadores/internal/services/discovery"
	"github.com/Windi-Fikriyansyah/contadores/internal/services/engagement"
	"github.com/Windi-Fikriyansyah/contadores/internal/services/messaging"
	"github.com/Windi-Fikriyansyah/contadores/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init("contadores", cfg.AppEnv)

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer rdb.Close()

	hub := realtime.NewHub()
	go hub.Run()
	notifier := realtime.NewHubNotifier(hub, rdb)
	listingCache := cache.New(rdb)

	users := repository.NewUserRepository(gdb)
	accountants := repository.NewAccountantRepository(gdb)
	ratings := repository.NewRatingRepository(gdb)
	proposals := repository.NewProposalRepository(gdb)
	messages := repository.NewMessageRepository(gdb)
	adminLogs := repository.NewAdminLogRepository(gdb)

	audit := admin.NewService(adminLogs)
	accounts := account.NewService(users, accountants, storage.NewUploads(cfg.UploadDir, cfg.UploadURLPrefix), listingCache, audit)
	discoverySvc := discovery.NewService(accountants, ratings, listingCache, cfg.ListingCacheTTL)
	engagementSvc := engagement.NewService(users, accountants, proposals, ratings, notifier, listingCache, audit)
	messagingSvc := messaging.NewService(users, messages, notifier)

	session := handlers.Session{
		Secret:  cfg.JWTSecret,
		Expires: cfg.JWTExpiresMin,
		Secure:  cfg.SecureCookies,
	}

	h := router.Handlers{
		Auth:       handlers.NewAuthHandler(accounts, session),
		Discovery:  handlers.NewDiscoveryHandler(discoverySvc),
		Profile:    handlers.NewProfileHandler(accounts, session),
		Engagement: handlers.NewEngagementHandler(engagementSvc),
		Chat:       handlers.NewChatHandler(messagingSvc, hub),
		Admin:      handlers.NewAdminHandler(audit),
	}
	if cfg.GoogleEnabled() {
		h.Google = handlers.NewGoogleOAuthHandler(accounts, session, cfg.GoogleClientID, cfg.GoogleSecret, cfg.GoogleRedirect)
		log.Info().Msg("google login enabled")
	}

	app := router.New(router.Options{
		JWTSecret:    cfg.JWTSecret,
		CORSOrigins:  cfg.CORSOrigins,
		MaxBodyBytes: cfg.MaxBodyBytes,
		UploadDir:    cfg.UploadDir,
		UploadPrefix: cfg.UploadURLPrefix,
	}, h)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("listen")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
