package handler

import (
	"skill-sync-resume/internal/delivery/http/dto"
	"skill-sync-resume/internal/delivery/http/middleware"
	"skill-sync-resume/internal/pkg/response"
	"skill-sync-resume/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Get("/vocabulary", h.Vocabulary)
	grp.Post("/extract", h.Extract)
	grp.Post("/match", h.Match)
}

func (h *SkillHandler) Vocabulary(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.VocabularyResponse{Skills: h.uc.Vocabulary()})
}

// Extract runs the extractor over raw text without storing anything.
func (h *SkillHandler) Extract(c fiber.Ctx) error {
	var req dto.ExtractSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	skills := h.uc.ExtractSkills(req.Text)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ExtractSkillsResponse{Skills: skills.Strings()})
}

func (h *SkillHandler) Match(c fiber.Ctx) error {
	var req dto.MatchSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res := h.uc.MatchSkills(usecase.SkillSetFromNames(req.Candidate), usecase.SkillSetFromNames(req.Required))
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResultResponse(res))
}
