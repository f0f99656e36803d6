package handler

import (
	"errors"
	"strconv"

	"skill-swap/internal/delivery/http/dto"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/users/:id/match", h.GetMatch)
	r.Get("/matches/discover", h.Discover)
}

func (h *MatchHandler) GetMatch(c fiber.Ctx) error {
	viewerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	m, err := h.uc.Match(c.Context(), viewerID, targetID)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(targetID, m))
}

func (h *MatchHandler) Discover(c fiber.Ctx) error {
	viewerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	limit := usecase.DefaultDiscoverLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > usecase.MaxDiscoverLimit {
			return middleware.NewAppError(fiber.StatusBadRequest, "limit must be between 1 and 100", nil, err)
		}
		limit = n
	}

	items, err := h.uc.Discover(c.Context(), viewerID, limit)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.List(c, dto.NewCandidateResponses(items), limit)
}

func mapMatchingUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrSelfMatch):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cannot match with yourself", nil, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
