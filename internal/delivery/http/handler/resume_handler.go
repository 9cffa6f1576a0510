package handler

import (
	"errors"
	"io"
	"mime/multipart"

	"skill-sync-resume/internal/delivery/http/dto"
	"skill-sync-resume/internal/delivery/http/middleware"
	"skill-sync-resume/internal/domain/resume"
	"skill-sync-resume/internal/pkg/response"
	"skill-sync-resume/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const defaultUploadMaxBytes = 10 << 20

type ResumeHandler struct {
	uc       usecase.ResumeUsecase
	maxBytes int64
}

func NewResumeHandler(uc usecase.ResumeUsecase, maxBytes int64) *ResumeHandler {
	if maxBytes <= 0 {
		maxBytes = defaultUploadMaxBytes
	}
	return &ResumeHandler{uc: uc, maxBytes: maxBytes}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/resumes")
	grp.Post("/upload", h.Upload)
	grp.Get("/my", h.GetMine)
	grp.Get("/:id", h.Get)
	grp.Post("/:id/ats", h.AssessATS)
	grp.Put("/:id/rating", h.Rate)
}

func (h *ResumeHandler) Upload(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing file", nil, err)
	}
	if fh.Size > h.maxBytes {
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "File too large", nil, nil)
	}

	data, err := readFormFile(fh, h.maxBytes)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unable to read file", nil, err)
	}

	p, err := h.uc.Upload(c.Context(), userID, usecase.UploadInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		return mapResumeUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Resume uploaded", dto.ResumeUploadResponse{
		ID:     p.ID,
		Skills: p.Skills.Strings(),
	})
}

func (h *ResumeHandler) GetMine(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.uc.GetProfileByOwner(c.Context(), userID)
	if err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewResumeResponse(p))
}

func (h *ResumeHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid resume id", nil, err)
	}

	p, err := h.uc.GetProfile(c.Context(), id)
	if err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewResumeResponse(p))
}

func (h *ResumeHandler) AssessATS(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid resume id", nil, err)
	}

	a, err := h.uc.AssessATS(c.Context(), id)
	if err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ATSAssessmentResponse{
		Score:    a.Score,
		Feedback: a.Feedback,
	})
}

func (h *ResumeHandler) Rate(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid resume id", nil, err)
	}

	var req dto.RateResumeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.Rating == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Rating is required", nil, nil)
	}

	p, err := h.uc.Rate(c.Context(), id, *req.Rating)
	if err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Rating saved", dto.NewResumeResponse(p))
}

func readFormFile(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, limit))
}

func mapResumeUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, resume.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Resume not found", nil, err)
	case errors.Is(err, resume.ErrInvalidRating):
		return middleware.NewAppError(fiber.StatusBadRequest, "Rating must be between 1 and 5", nil, err)
	case errors.Is(err, resume.ErrUnreadableDocument):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Unreadable document", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
