package handler

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"istqb-quiz/internal/domain"
	"istqb-quiz/internal/dto"
	"istqb-quiz/internal/logger"
	"istqb-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const documentListLimit = 1000

// DocumentHandler handles PDF uploads and the document listing.
type DocumentHandler struct {
	store     domain.DocumentStore
	pipeline  domain.PipelineService
	validator *validation.Validator
	now       func() time.Time
}

func NewDocumentHandler(store domain.DocumentStore, pipeline domain.PipelineService, validator *validation.Validator) *DocumentHandler {
	return &DocumentHandler{
		store:     store,
		pipeline:  pipeline,
		validator: validator,
		now:       time.Now,
	}
}

// Upload godoc
// @Summary Upload a syllabus PDF
// @Description Stores the PDF and generates questions from it
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("file")}
	}
	if errors := h.validator.ValidateUpload(file.Filename, file.Header.Get(fiber.HeaderContentType), file.Size); len(errors) > 0 {
		return errors
	}

	f, err := file.Open()
	if err != nil {
		return domain.NewInternalError("failed to open upload", err)
	}
	defer f.Close()
	raw, err := io.ReadAll(io.LimitReader(f, h.validator.MaxUploadBytes()+1))
	if err != nil {
		return domain.NewInternalError("failed to read upload", err)
	}

	name := validation.StoredDocumentName(h.now(), file.Filename)
	ctx := c.UserContext()
	if err := h.store.Upload(ctx, name, bytes.NewReader(raw), "application/pdf"); err != nil {
		return err
	}
	logger.Get().Info("Document uploaded", zap.String("source_pdf", name), zap.Int("bytes", len(raw)))

	result, err := h.pipeline.ProcessContent(ctx, name, raw)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/api/v1/questions?source_pdf=%s", name))
	return c.Status(fiber.StatusCreated).JSON(dto.NewUploadResponse(name, result))
}

// List godoc
// @Summary List stored documents
// @Tags documents
// @Produce json
// @Success 200 {object} dto.DocumentListResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	ids, err := h.store.List(c.UserContext(), documentListLimit)
	if err != nil {
		return err
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(dto.DocumentListResponse{Documents: ids, Count: len(ids)})
}
