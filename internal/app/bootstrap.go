package app

import (
	"fmt"
	"log"
	"strings"

	"loomconnect/internal/config"
	"loomconnect/internal/delivery/http/middleware"
	"loomconnect/internal/delivery/http/routes"
	"loomconnect/internal/repository"
	"loomconnect/internal/usecase"
	"loomconnect/internal/worker"
	"loomconnect/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber  *fiber.App
	Hub    *ws.Hub
	Digest *worker.Digest
}

func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	if logger == nil {
		logger = log.Default()
	}

	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	registerGlobalMiddleware(f, logger)

	hub := ws.NewHub(logger)
	if err := routes.Register(f, cfg, container.DB, container.Cache, hub, logger); err != nil {
		_ = container.Close()
		return nil, nil, err
	}

	digest := newDigestWorker(container, hub, logger)

	cleanup := func() error {
		return container.Close()
	}
	return &App{Fiber: f, Hub: hub, Digest: digest}, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
}

func newDigestWorker(container *Container, hub *ws.Hub, logger *log.Logger) *worker.Digest {
	cfg := container.Config

	profileRepo := repository.NewPostgresProfileRepository(container.DB)
	profileSkillRepo := repository.NewPostgresProfileSkillRepository(container.DB)
	profileNeedRepo := repository.NewPostgresProfileNeedRepository(container.DB)
	connectionRepo := repository.NewPostgresConnectionRepository(container.DB)

	matchUC := usecase.NewMatchUsecase(
		profileRepo,
		profileSkillRepo,
		profileNeedRepo,
		connectionRepo,
		container.Cache,
		cfg.Matching.CacheTTL,
	)

	notifier := ws.NewMatchNotifier(hub)
	return worker.NewDigest(profileRepo, matchUC, notifier, cfg.Digest, cfg.Matching, logger)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
