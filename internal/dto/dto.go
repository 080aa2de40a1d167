// Package dto holds the request and response bodies of the HTTP API.
package dto

import (
	"istqb-quiz/internal/domain"
)

// FallbackNotice is reported when no AI strategy produced questions for an upload.
const FallbackNotice = "AI generation unavailable, falling back to simpler generation"

// UploadResponse is returned after a PDF upload was stored and processed.
type UploadResponse struct {
	Document  string                   `json:"document"`
	Strategy  string                   `json:"strategy"`
	Generated int                      `json:"generated"`
	Inserted  int                      `json:"inserted"`
	Notice    string                   `json:"notice,omitempty"`
	Questions []domain.Question        `json:"questions"`
	Summary   domain.ProcessingSummary `json:"summary"`
	TestSets  domain.TestSets          `json:"test_sets"`
}

// NewUploadResponse maps a generation result for document.
func NewUploadResponse(document string, result *domain.GenerationResult) UploadResponse {
	resp := UploadResponse{
		Document:  document,
		Strategy:  result.Outcome.Strategy,
		Generated: result.Outcome.Generated,
		Inserted:  result.Outcome.Inserted,
		Questions: result.Questions,
		Summary:   result.Summary,
		TestSets:  result.TestSets,
	}
	if resp.Questions == nil {
		resp.Questions = []domain.Question{}
	}
	if result.Summary.FallbackUsed {
		resp.Notice = FallbackNotice
	}
	return resp
}

type DocumentListResponse struct {
	Documents []string `json:"documents"`
	Count     int      `json:"count"`
}

type QuestionListResponse struct {
	Questions []domain.StoredQuestion `json:"questions"`
	Count     int                     `json:"count"`
}

type CountResponse struct {
	Count int `json:"count"`
}

type StartExamRequest struct {
	QuestionCount int `json:"question_count"`
}

// ExamQuestion is a question as shown during an exam, without its answer key.
type ExamQuestion struct {
	ID         string            `json:"id"`
	Question   string            `json:"question"`
	Options    []string          `json:"options"`
	Category   string            `json:"category"`
	Difficulty domain.Difficulty `json:"difficulty"`
	Hint       string            `json:"hint,omitempty"`
}

type StartExamResponse struct {
	Exam      *domain.ExamSession `json:"exam"`
	Questions []ExamQuestion      `json:"questions"`
}

// NewStartExamResponse hides correct answers and explanations.
func NewStartExamResponse(session *domain.ExamSession, questions []domain.StoredQuestion) StartExamResponse {
	out := make([]ExamQuestion, len(questions))
	for i, q := range questions {
		out[i] = ExamQuestion{
			ID:         q.ID,
			Question:   q.Text(),
			Options:    q.Options(),
			Category:   q.Category(),
			Difficulty: q.Difficulty(),
			Hint:       q.Hint(),
		}
	}
	return StartExamResponse{Exam: session, Questions: out}
}

type SubmitAnswerRequest struct {
	QuestionIndex *int `json:"question_index"`
	Answer        *int `json:"answer"`
}

type FinishExamRequest struct {
	TimeSpent int `json:"time_spent"`
}

// FinishExamResponse reports the graded session.
type FinishExamResponse struct {
	Exam       *domain.ExamSession `json:"exam"`
	Percentage float64             `json:"percentage"`
	Passed     bool                `json:"passed"`
}

// NewFinishExamResponse computes the percentage and the pass mark.
func NewFinishExamResponse(session *domain.ExamSession) FinishExamResponse {
	resp := FinishExamResponse{Exam: session}
	if n := len(session.QuestionIDs); n > 0 {
		resp.Percentage = float64(session.Score) * 100 / float64(n)
	}
	resp.Passed = resp.Percentage >= domain.RecommendedPassScore
	return resp
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}
