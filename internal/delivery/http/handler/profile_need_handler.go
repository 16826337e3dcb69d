package handler

import (
	"errors"

	"loomconnect/internal/delivery/http/dto"
	"loomconnect/internal/delivery/http/middleware"
	"loomconnect/internal/domain/profile"
	"loomconnect/internal/pkg/response"
	"loomconnect/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileNeedHandler struct {
	uc usecase.ProfileNeedUsecase
}

type addNeedRequest struct {
	SkillID uuid.UUID `json:"skill_id"`
	Urgency string    `json:"urgency"`
}

type updateNeedRequest struct {
	Urgency  *string `json:"urgency"`
	IsActive *bool   `json:"is_active"`
}

func NewProfileNeedHandler(uc usecase.ProfileNeedUsecase) *ProfileNeedHandler {
	return &ProfileNeedHandler{uc: uc}
}

func (h *ProfileNeedHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me/needs", h.List)
	r.Post("/me/needs", h.Add)
	r.Patch("/me/needs/:skill_id", h.Update)
	r.Delete("/me/needs/:skill_id", h.Remove)
}

func (h *ProfileNeedHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	needs, err := h.uc.ListNeeds(c.Context(), userID)
	if err != nil {
		return mapProfileNeedUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewNeedResponses(needs))
}

func (h *ProfileNeedHandler) Add(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req addNeedRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	added, err := h.uc.AddNeed(c.Context(), userID, usecase.AddNeedInput{
		SkillID: req.SkillID,
		Urgency: profile.Urgency(req.Urgency),
	})
	if err != nil {
		return mapProfileNeedUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "", dto.NewNeedResponse(added))
}

func (h *ProfileNeedHandler) Update(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	skillID, err := uuid.Parse(c.Params("skill_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req updateNeedRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := usecase.UpdateNeedInput{SkillID: skillID, IsActive: req.IsActive}
	if req.Urgency != nil {
		u := profile.Urgency(*req.Urgency)
		in.Urgency = &u
	}

	updated, err := h.uc.UpdateNeed(c.Context(), userID, in)
	if err != nil {
		return mapProfileNeedUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewNeedResponse(updated))
}

func (h *ProfileNeedHandler) Remove(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	skillID, err := uuid.Parse(c.Params("skill_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.RemoveNeed(c.Context(), userID, skillID); err != nil {
		return mapProfileNeedUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapProfileNeedUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrNeedMissing):
		return middleware.NewAppError(fiber.StatusNotFound, "Need not found", nil, err)
	case errors.Is(err, usecase.ErrNeedAlreadyExists):
		return middleware.NewAppError(fiber.StatusConflict, "Need already exists", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
