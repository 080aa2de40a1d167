package handler

import (
	"istqb-quiz/internal/domain"
	"istqb-quiz/internal/dto"
	"istqb-quiz/internal/middleware"
	"istqb-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler serves the question bank.
type QuestionHandler struct {
	service service.QuestionService
}

func NewQuestionHandler(service service.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: service}
}

// List godoc
// @Summary List questions
// @Description Newest first, optionally filtered by source document and difficulty
// @Tags questions
// @Produce json
// @Param source_pdf query string false "Source document"
// @Param difficulty query string false "Expert, Master, Champion or Easy, Medium, Hard"
// @Param limit query int false "Maximum number of questions" default(100)
// @Success 200 {object} dto.QuestionListResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) List(c *fiber.Ctx) error {
	difficulty, _ := c.Locals(middleware.LocalDifficulty).(domain.Difficulty)
	limit, _ := c.Locals(middleware.LocalLimit).(int)

	questions, err := h.service.List(c.UserContext(), domain.QuestionFilter{
		SourcePDF:  c.Query("source_pdf"),
		Difficulty: difficulty,
		Limit:      limit,
	})
	if err != nil {
		return err
	}
	if questions == nil {
		questions = []domain.StoredQuestion{}
	}
	return c.JSON(dto.QuestionListResponse{Questions: questions, Count: len(questions)})
}

// Count godoc
// @Summary Count stored questions
// @Tags questions
// @Produce json
// @Success 200 {object} dto.CountResponse
// @Router /questions/count [get]
func (h *QuestionHandler) Count(c *fiber.Ctx) error {
	n, err := h.service.Count(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.CountResponse{Count: n})
}

// TestSets godoc
// @Summary Build practice test sets
// @Tags questions
// @Produce json
// @Param source_pdf query string false "Source document"
// @Success 200 {object} domain.TestSets
// @Router /questions/test-sets [get]
func (h *QuestionHandler) TestSets(c *fiber.Ctx) error {
	sets, err := h.service.TestSets(c.UserContext(), c.Query("source_pdf"))
	if err != nil {
		return err
	}
	return c.JSON(sets)
}
