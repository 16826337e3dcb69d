package handler

import (
	"context"
	"time"

	"loomconnect/internal/database"
	"loomconnect/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    database.DB
	cache Pinger
}

func NewHealthHandler(db database.DB, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	data := map[string]string{
		"database": "up",
		"cache":    "up",
	}
	status := fiber.StatusOK

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			data["database"] = "down"
			status = fiber.StatusServiceUnavailable
		}
	}
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			// Cache is best-effort; a cold cache never fails health.
			data["cache"] = "down"
		}
	}

	return response.Success(c, status, "", data)
}
