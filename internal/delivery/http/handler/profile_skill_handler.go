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

type ProfileSkillHandler struct {
	uc usecase.ProfileSkillUsecase
}

type addOfferedSkillRequest struct {
	SkillID         uuid.UUID `json:"skill_id"`
	Proficiency     string    `json:"proficiency"`
	YearsExperience int       `json:"years_experience"`
}

type updateOfferedSkillRequest struct {
	Proficiency     *string `json:"proficiency"`
	YearsExperience *int    `json:"years_experience"`
}

func NewProfileSkillHandler(uc usecase.ProfileSkillUsecase) *ProfileSkillHandler {
	return &ProfileSkillHandler{uc: uc}
}

func (h *ProfileSkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me/skills", h.List)
	r.Post("/me/skills", h.Add)
	r.Patch("/me/skills/:skill_id", h.Update)
	r.Delete("/me/skills/:skill_id", h.Remove)
}

func (h *ProfileSkillHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	offered, err := h.uc.ListOffered(c.Context(), userID)
	if err != nil {
		return mapProfileSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewOfferedSkillResponses(offered))
}

func (h *ProfileSkillHandler) Add(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req addOfferedSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	added, err := h.uc.AddOffered(c.Context(), userID, usecase.AddOfferedSkillInput{
		SkillID:         req.SkillID,
		Proficiency:     profile.Proficiency(req.Proficiency),
		YearsExperience: req.YearsExperience,
	})
	if err != nil {
		return mapProfileSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "", dto.NewOfferedSkillResponse(added))
}

func (h *ProfileSkillHandler) Update(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	skillID, err := uuid.Parse(c.Params("skill_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req updateOfferedSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := usecase.UpdateOfferedSkillInput{SkillID: skillID, YearsExperience: req.YearsExperience}
	if req.Proficiency != nil {
		p := profile.Proficiency(*req.Proficiency)
		in.Proficiency = &p
	}

	updated, err := h.uc.UpdateOffered(c.Context(), userID, in)
	if err != nil {
		return mapProfileSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewOfferedSkillResponse(updated))
}

func (h *ProfileSkillHandler) Remove(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	skillID, err := uuid.Parse(c.Params("skill_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.RemoveOffered(c.Context(), userID, skillID); err != nil {
		return mapProfileSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapProfileSkillUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrOfferedSkillMissing):
		return middleware.NewAppError(fiber.StatusNotFound, "Offered skill not found", nil, err)
	case errors.Is(err, usecase.ErrSkillAlreadyOffered):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already offered", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
