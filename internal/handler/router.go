package handler

import (
	"istqb-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups the route handlers of the API.
type Handlers struct {
	Documents  *DocumentHandler
	Questions  *QuestionHandler
	Exams      *ExamHandler
	Health     *HealthHandler
	Validation *middleware.ValidationMiddleware
}

// Register mounts the routes under /api/v1 and the health check at /health.
func (h Handlers) Register(app *fiber.App) {
	app.Get("/health", h.Health.Health)

	v1 := app.Group("/api/v1")

	v1.Get("/documents", h.Documents.List)
	v1.Post("/documents", h.Documents.Upload)

	v1.Get("/questions", h.Validation.ValidateQuestionQuery(), h.Questions.List)
	v1.Get("/questions/count", h.Questions.Count)
	v1.Get("/questions/test-sets", h.Questions.TestSets)

	v1.Post("/exams", h.Exams.Start)
	validID := h.Validation.ValidateExamID()
	v1.Get("/exams/:id", validID, h.Exams.Get)
	v1.Put("/exams/:id/answers", validID, h.Exams.SubmitAnswer)
	v1.Post("/exams/:id/finish", validID, h.Exams.Finish)

	v1.Get("/stats", h.Exams.Stats)
}
