package handler

import (
	"istqb-quiz/internal/domain"
	"istqb-quiz/internal/dto"
	"istqb-quiz/internal/middleware"
	"istqb-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ExamHandler handles practice exam sessions.
type ExamHandler struct {
	service   domain.ExamService
	validator *validation.Validator
}

func NewExamHandler(service domain.ExamService, validator *validation.Validator) *ExamHandler {
	return &ExamHandler{service: service, validator: validator}
}

func examID(c *fiber.Ctx) string {
	if id, ok := c.Locals(middleware.LocalExamID).(string); ok {
		return id
	}
	return c.Params("id")
}

// Start godoc
// @Summary Start a practice exam
// @Tags exams
// @Accept json
// @Produce json
// @Param request body dto.StartExamRequest false "Question count, 60 when omitted"
// @Success 201 {object} dto.StartExamResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /exams [post]
func (h *ExamHandler) Start(c *fiber.Ctx) error {
	var req dto.StartExamRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return domain.NewInvalidInputError("invalid request body")
		}
	}

	session, questions, err := h.service.StartExam(c.UserContext(), req.QuestionCount)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewStartExamResponse(session, questions))
}

// Get godoc
// @Summary Get an exam session
// @Tags exams
// @Produce json
// @Param id path string true "Exam id"
// @Success 200 {object} domain.ExamSession
// @Failure 404 {object} middleware.ErrorResponse
// @Router /exams/{id} [get]
func (h *ExamHandler) Get(c *fiber.Ctx) error {
	session, err := h.service.GetExam(c.UserContext(), examID(c))
	if err != nil {
		return err
	}
	return c.JSON(session)
}

// SubmitAnswer godoc
// @Summary Record an answer
// @Tags exams
// @Accept json
// @Produce json
// @Param id path string true "Exam id"
// @Param request body dto.SubmitAnswerRequest true "Answer, -1 clears it"
// @Success 200 {object} domain.ExamSession
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /exams/{id}/answers [put]
func (h *ExamHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errors := h.validator.ValidateSubmitAnswer(req.QuestionIndex, req.Answer); len(errors) > 0 {
		return errors
	}

	session, err := h.service.SubmitAnswer(c.UserContext(), examID(c), *req.QuestionIndex, *req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(session)
}

// Finish godoc
// @Summary Finish and grade an exam
// @Tags exams
// @Accept json
// @Produce json
// @Param id path string true "Exam id"
// @Param request body dto.FinishExamRequest true "Seconds spent"
// @Success 200 {object} dto.FinishExamResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /exams/{id}/finish [post]
func (h *ExamHandler) Finish(c *fiber.Ctx) error {
	var req dto.FinishExamRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	session, err := h.service.FinishExam(c.UserContext(), examID(c), req.TimeSpent)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFinishExamResponse(session))
}

// Stats godoc
// @Summary Practice statistics
// @Tags exams
// @Produce json
// @Success 200 {object} domain.UserStats
// @Router /stats [get]
func (h *ExamHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
