package domain

import (
	"encoding/json"
	"time"
)

// Difficulty is one of the three ordered question tiers.
type Difficulty string

const (
	DifficultyExpert   Difficulty = "Expert"
	DifficultyMaster   Difficulty = "Master"
	DifficultyChampion Difficulty = "Champion"
)

// Difficulties lists the tiers in ascending order.
var Difficulties = []Difficulty{DifficultyExpert, DifficultyMaster, DifficultyChampion}

// storageLabels maps tiers to the labels kept in the questions table.
var storageLabels = map[Difficulty]string{
	DifficultyExpert:   "Easy",
	DifficultyMaster:   "Medium",
	DifficultyChampion: "Hard",
}

// ParseDifficulty accepts either the tier names or their stored labels.
// Matching is exact and case-sensitive.
func ParseDifficulty(label string) (Difficulty, bool) {
	switch label {
	case "Expert", "Easy":
		return DifficultyExpert, true
	case "Master", "Medium":
		return DifficultyMaster, true
	case "Champion", "Hard":
		return DifficultyChampion, true
	}
	return DifficultyExpert, false
}

// StorageLabel returns the persisted label for d.
func (d Difficulty) StorageLabel() string {
	if label, ok := storageLabels[d]; ok {
		return label
	}
	return storageLabels[DifficultyExpert]
}

// DefaultCategory is used when a candidate carries no category.
const DefaultCategory = "ISTQB"

const (
	OptionCount        = 4
	MinComplexityScore = 6
	MaxComplexityScore = 10
	DefaultComplexity  = 7
)

// CandidateQuestion is untrusted generator output. Only Sanitize turns it into a Question.
type CandidateQuestion map[string]any

// Question is a validated multiple-choice question. Values are produced by Sanitize,
// so every Question has four options, a correct answer in [0,3] and a known tier.
type Question struct {
	text            string
	options         [OptionCount]string
	correctAnswer   int
	explanation     string
	hint            string
	category        string
	difficulty      Difficulty
	reasoning       string
	complexityScore int
	sourcePDF       string
}

func (q Question) Text() string           { return q.text }
func (q Question) CorrectAnswer() int     { return q.correctAnswer }
func (q Question) Explanation() string    { return q.explanation }
func (q Question) Hint() string           { return q.hint }
func (q Question) Category() string       { return q.category }
func (q Question) Difficulty() Difficulty { return q.difficulty }
func (q Question) Reasoning() string      { return q.reasoning }
func (q Question) ComplexityScore() int   { return q.complexityScore }
func (q Question) SourcePDF() string      { return q.sourcePDF }

// Options returns a copy of the four answer options in display order.
func (q Question) Options() []string {
	out := make([]string, OptionCount)
	copy(out, q.options[:])
	return out
}

type questionJSON struct {
	Question        string     `json:"question"`
	Options         []string   `json:"options"`
	CorrectAnswer   int        `json:"correct_answer"`
	Explanation     string     `json:"explanation"`
	Hint            string     `json:"hint"`
	Category        string     `json:"category"`
	Difficulty      Difficulty `json:"difficulty"`
	Reasoning       string     `json:"reasoning"`
	ComplexityScore int        `json:"complexity_score"`
	SourcePDF       string     `json:"source_pdf"`
}

// MarshalJSON implements the json.Marshaler interface
func (q Question) MarshalJSON() ([]byte, error) {
	return json.Marshal(questionJSON{
		Question:        q.text,
		Options:         q.Options(),
		CorrectAnswer:   q.correctAnswer,
		Explanation:     q.explanation,
		Hint:            q.hint,
		Category:        q.category,
		Difficulty:      q.difficulty,
		Reasoning:       q.reasoning,
		ComplexityScore: q.complexityScore,
		SourcePDF:       q.sourcePDF,
	})
}

// StoredQuestion is a persisted question with its row identity.
type StoredQuestion struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Question
}

// MarshalJSON flattens the question fields next to id and created_at.
func (s StoredQuestion) MarshalJSON() ([]byte, error) {
	q := s.Question
	return json.Marshal(struct {
		ID        string    `json:"id"`
		CreatedAt time.Time `json:"created_at"`
		questionJSON
	}{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		questionJSON: questionJSON{
			Question:        q.text,
			Options:         q.Options(),
			CorrectAnswer:   q.correctAnswer,
			Explanation:     q.explanation,
			Hint:            q.hint,
			Category:        q.category,
			Difficulty:      q.difficulty,
			Reasoning:       q.reasoning,
			ComplexityScore: q.complexityScore,
			SourcePDF:       q.sourcePDF,
		},
	})
}

// QuestionFilter narrows question listings.
type QuestionFilter struct {
	SourcePDF  string
	Difficulty Difficulty
	Limit      int
}
