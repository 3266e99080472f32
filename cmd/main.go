// Package main wires the HTTP server for the team formation service.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"team-formation/config"
	"team-formation/internal/repository"
	"team-formation/internal/transport/http/middleware"
	"team-formation/internal/transport/http/server/handlers-fiber"
	"team-formation/internal/usecase"
	"team-formation/pkg/logger"
	"team-formation/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	repo, err := repository.New(ctx, cfg.Storage.Backend, log, cfg)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "error", err)
		return
	}
	defer func() {
		_ = repo.OnStop(context.Background())
	}()

	reg := metrics.NewRegistry()
	uc := usecase.New(log, repo, cfg.HTTP.RequestTimeout, metrics.NewCollector(reg))

	serv := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.RequestTimeout,
		WriteTimeout: cfg.HTTP.RequestTimeout,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	serv.Use(middleware.RequestLogger(log))

	serv.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	serv.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(reg)))

	h := handlers_fiber.NewHandler(log, uc, cfg.Search)
	handlers_fiber.RegisterHandlers(serv, h, middleware.Auth(log, cfg.Auth.JWTSecret))

	go func() {
		log.Infow("http server starting", "addr", cfg.ServerAddr(), "storage", cfg.Storage.Backend)
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	if err := serv.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		log.Warnw("server shutdown", "error", err, "timeout", cfg.Server.ShutdownTimeout)
	}
}
