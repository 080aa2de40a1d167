package seedmodels

import "istqb-quiz/internal/domain"

// SeedSet groups hand-written questions under the document they were taken from.
// Questions use the generator output shape and go through the same sanitizer.
type SeedSet struct {
	SourcePDF string                     `json:"source_pdf"`
	Questions []domain.CandidateQuestion `json:"questions"`
}
