package handler

import (
	"errors"
	"strconv"

	"loomconnect/internal/config"
	"loomconnect/internal/delivery/http/dto"
	"loomconnect/internal/delivery/http/middleware"
	"loomconnect/internal/pkg/response"
	"loomconnect/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	matches  usecase.MatchUsecase
	profiles usecase.ProfileUsecase
	cfg      config.MatchingConfig
}

func NewMatchHandler(matches usecase.MatchUsecase, profiles usecase.ProfileUsecase, cfg config.MatchingConfig) *MatchHandler {
	return &MatchHandler{matches: matches, profiles: profiles, cfg: cfg}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.FindMatches)
	r.Get("/:profile_id/score", h.GetScore)
}

func (h *MatchHandler) FindMatches(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	own, err := h.profiles.GetMyProfile(c.Context(), userID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	params, err := h.paramsFromQuery(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	results, err := h.matches.FindMatches(c.Context(), own.ID, params)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResultResponses(results))
}

func (h *MatchHandler) GetScore(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	otherID, err := uuid.Parse(c.Params("profile_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	own, err := h.profiles.GetMyProfile(c.Context(), userID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	score, err := h.matches.CalculateMatchScore(c.Context(), own.ID, otherID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchScoreResponse(score))
}

func (h *MatchHandler) paramsFromQuery(c fiber.Ctx) (usecase.FindMatchesParams, error) {
	params := usecase.FindMatchesParams{
		Limit:    h.cfg.DefaultLimit,
		MinScore: h.cfg.DefaultMinScore,
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return usecase.FindMatchesParams{}, errors.New("limit must be a positive integer")
		}
		if h.cfg.MaxLimit > 0 && limit > h.cfg.MaxLimit {
			limit = h.cfg.MaxLimit
		}
		params.Limit = limit
	}

	if raw := c.Query("min_score"); raw != "" {
		minScore, err := strconv.Atoi(raw)
		if err != nil || minScore < 0 || minScore > 100 {
			return usecase.FindMatchesParams{}, errors.New("min_score must be in [0,100]")
		}
		params.MinScore = minScore
	}

	return params, nil
}

func mapMatchUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrSelfMatch):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cannot match a profile against itself", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrRepositoryUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Profile data temporarily unavailable", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
