package routes

import (
	"log"

	"loomconnect/internal/config"
	"loomconnect/internal/database"
	"loomconnect/internal/delivery/http/handler"
	v1 "loomconnect/internal/delivery/http/routes/v1"
	"loomconnect/internal/infrastructure/cache"
	"loomconnect/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func Register(app *fiber.App, cfg config.Config, db database.DB, rdb *cache.Redis, hub *ws.Hub, logger *log.Logger) error {
	if app == nil {
		return nil
	}

	handler.NewHealthHandler(db, rdb).RegisterRoutes(app)

	api := app.Group("/api")
	return v1.Register(api.Group("/v1"), cfg, db, rdb, hub, logger)
}
