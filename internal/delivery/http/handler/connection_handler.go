package handler

import (
	"errors"

	"loomconnect/internal/delivery/http/dto"
	"loomconnect/internal/delivery/http/middleware"
	"loomconnect/internal/pkg/response"
	"loomconnect/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ConnectionHandler struct {
	uc usecase.ConnectionUsecase
}

type requestConnectionRequest struct {
	AddresseeID uuid.UUID `json:"addressee_id"`
}

func NewConnectionHandler(uc usecase.ConnectionUsecase) *ConnectionHandler {
	return &ConnectionHandler{uc: uc}
}

func (h *ConnectionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Request)
	r.Post("/:connection_id/accept", h.Accept)
	r.Post("/:connection_id/decline", h.Decline)
}

func (h *ConnectionHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	conns, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapConnectionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewConnectionResponses(conns))
}

func (h *ConnectionHandler) Request(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req requestConnectionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.AddresseeID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "addressee_id is required", nil, nil)
	}

	created, err := h.uc.Request(c.Context(), userID, req.AddresseeID)
	if err != nil {
		return mapConnectionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "", dto.NewConnectionResponse(created))
}

func (h *ConnectionHandler) Accept(c fiber.Ctx) error {
	return h.respond(c, true)
}

func (h *ConnectionHandler) Decline(c fiber.Ctx) error {
	return h.respond(c, false)
}

func (h *ConnectionHandler) respond(c fiber.Ctx, accept bool) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	connectionID, err := uuid.Parse(c.Params("connection_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.Respond(c.Context(), userID, connectionID, accept)
	if err != nil {
		return mapConnectionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewConnectionResponse(updated))
}

func mapConnectionUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrConnectionMissing):
		return middleware.NewAppError(fiber.StatusNotFound, "Connection not found", nil, err)
	case errors.Is(err, usecase.ErrConnectionExists):
		return middleware.NewAppError(fiber.StatusConflict, "Connection already exists", nil, err)
	case errors.Is(err, usecase.ErrCannotConnectSelf):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cannot connect to own profile", nil, err)
	case errors.Is(err, usecase.ErrNotAddressee):
		return middleware.NewAppError(fiber.StatusForbidden, "Only the addressee may respond", nil, err)
	case errors.Is(err, usecase.ErrConnectionDecided):
		return middleware.NewAppError(fiber.StatusConflict, "Connection already responded to", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
