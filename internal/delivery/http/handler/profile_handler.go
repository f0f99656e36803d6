package handler

import (
	"errors"

	"skill-swap/internal/delivery/http/dto"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/domain/skill"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

// Each entry may be a bare skill name or a {"name","level"} object.
type updateSkillsRequest struct {
	OfferedSkills []skill.Skill `json:"offered_skills"`
	WantedSkills  []skill.Skill `json:"wanted_skills"`
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/me")
	grp.Get("/profile", h.GetProfile)
	grp.Put("/skills", h.UpdateSkills)
}

func (h *ProfileHandler) GetProfile(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) UpdateSkills(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateSkillsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.uc.UpdateSkills(c.Context(), userID, req.OfferedSkills, req.WantedSkills)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func mapProfileUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrTooManySkills):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Too many skills", map[string]int{"max_per_list": usecase.MaxSkillsPerList}, err)
	case errors.Is(err, usecase.ErrInvalidSkill):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Skill name is required", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
