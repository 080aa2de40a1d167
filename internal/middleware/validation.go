package middleware

import (
	"strconv"

	"istqb-quiz/internal/domain"
	"istqb-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the validation middleware.
const (
	LocalDifficulty = "validated_difficulty"
	LocalLimit      = "validated_limit"
	LocalExamID     = "validated_exam_id"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

func NewValidationMiddleware(v *validation.Validator) *ValidationMiddleware {
	return &ValidationMiddleware{validator: v}
}

// ValidateExamID checks the :id path parameter of exam routes.
func (vm *ValidationMiddleware) ValidateExamID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errors := vm.validator.ValidateExamID(id); len(errors) > 0 {
			return errors
		}
		c.Locals(LocalExamID, id)
		return c.Next()
	}
}

// ValidateQuestionQuery parses difficulty and limit query parameters.
func (vm *ValidationMiddleware) ValidateQuestionQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := parseLimit(c.Query("limit"))
		if err != nil {
			return domain.ValidationErrors{domain.NewInvalidFormatError("limit", c.Query("limit"))}
		}

		difficulty, errors := vm.validator.ValidateQuestionQuery(c.Query("difficulty"), limit)
		if len(errors) > 0 {
			return errors
		}

		c.Locals(LocalDifficulty, difficulty)
		c.Locals(LocalLimit, limit)
		return c.Next()
	}
}

// parseLimit returns the default listing limit for an empty value.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return validation.DefaultListLimit, nil
	}
	return strconv.Atoi(raw)
}
