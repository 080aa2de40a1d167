package domain

import (
	"context"
	"math"
	"math/rand"
	"sort"
)

// ProcessingOutcome reports what happened to one document.
type ProcessingOutcome struct {
	SourceID   string `json:"source_id"`
	Generated  int    `json:"generated"`
	Inserted   int    `json:"inserted"`
	Strategy   string `json:"strategy,omitempty"`
	Skipped    bool   `json:"skipped"`
	SkipReason string `json:"skip_reason,omitempty"`
}

// PassReport aggregates the outcomes of one agent pass.
type PassReport struct {
	Listed    int                 `json:"listed"`
	Processed int                 `json:"processed"`
	Skipped   int                 `json:"skipped"`
	Inserted  int                 `json:"inserted"`
	Outcomes  []ProcessingOutcome `json:"outcomes"`
}

// Add records outcome o in the report.
func (r *PassReport) Add(o ProcessingOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	if o.Skipped {
		r.Skipped++
		return
	}
	r.Processed++
	r.Inserted += o.Inserted
}

// HeuristicStrategyName identifies the offline fallback generator.
const HeuristicStrategyName = "heuristic"

// GenerationResult is returned by the interactive upload path.
type GenerationResult struct {
	Outcome   ProcessingOutcome `json:"outcome"`
	Questions []Question        `json:"questions"`
	Summary   ProcessingSummary `json:"summary"`
	TestSets  TestSets          `json:"test_sets"`
}

// PipelineService runs the generation pipeline.
type PipelineService interface {
	ProcessDocument(ctx context.Context, sourceID string) (ProcessingOutcome, error)
	ProcessContent(ctx context.Context, sourceID string, raw []byte) (*GenerationResult, error)
	RunPass(ctx context.Context) PassReport
}

// ISTQBTopics is reported as the coverage of every generated set.
var ISTQBTopics = []string{
	"Advanced Test Design Techniques",
	"Risk-Based Testing Strategies",
	"Test Automation Frameworks",
	"Performance Testing Methodologies",
	"Security Testing Approaches",
	"Test Management Advanced Concepts",
	"Test Process Improvement",
	"Test Metrics and Measurements",
	"Test Environment Management",
	"Test Data Management",
	"Test Tool Integration",
	"Continuous Testing",
}

const (
	secondsPerQuestion   = 90
	RecommendedPassScore = 85
	ultimateTestSize     = 20
)

// ProcessingSummary describes a generated question set.
type ProcessingSummary struct {
	TotalQuestions       int      `json:"total_questions"`
	ExpertCount          int      `json:"expert_count"`
	MasterCount          int      `json:"master_count"`
	ChampionCount        int      `json:"champion_count"`
	TopicsCovered        []string `json:"topics_covered"`
	EstimatedExamTime    int      `json:"estimated_exam_time"`
	RecommendedPassScore int      `json:"recommended_pass_score"`
	AverageComplexity    float64  `json:"average_complexity"`
	FallbackUsed         bool     `json:"fallback_used"`
}

// Summarize computes the summary of questions. The estimated exam time is in seconds.
func Summarize(questions []Question, fallbackUsed bool) ProcessingSummary {
	s := ProcessingSummary{
		TotalQuestions:       len(questions),
		TopicsCovered:        ISTQBTopics,
		EstimatedExamTime:    max(1, len(questions)) * secondsPerQuestion,
		RecommendedPassScore: RecommendedPassScore,
		FallbackUsed:         fallbackUsed,
	}
	total := 0
	for _, q := range questions {
		switch q.Difficulty() {
		case DifficultyMaster:
			s.MasterCount++
		case DifficultyChampion:
			s.ChampionCount++
		default:
			s.ExpertCount++
		}
		total += q.ComplexityScore()
	}
	if len(questions) > 0 {
		s.AverageComplexity = math.Round(float64(total)/float64(len(questions))*100) / 100
	}
	return s
}

// TestSets partitions questions by tier and adds an "ultimate" set of the most
// complex questions.
type TestSets struct {
	Expert   []Question `json:"expert"`
	Master   []Question `json:"master"`
	Champion []Question `json:"champion"`
	Ultimate []Question `json:"ultimate"`
}

// BuildTestSets groups questions by tier. The ultimate set holds the top twenty by
// complexity score, shuffled with rng.
func BuildTestSets(questions []Question, rng *rand.Rand) TestSets {
	sets := TestSets{
		Expert:   []Question{},
		Master:   []Question{},
		Champion: []Question{},
	}
	for _, q := range questions {
		switch q.Difficulty() {
		case DifficultyMaster:
			sets.Master = append(sets.Master, q)
		case DifficultyChampion:
			sets.Champion = append(sets.Champion, q)
		default:
			sets.Expert = append(sets.Expert, q)
		}
	}

	sorted := make([]Question, len(questions))
	copy(sorted, questions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ComplexityScore() > sorted[j].ComplexityScore()
	})
	ultimate := sorted[:min(ultimateTestSize, len(sorted))]
	for i := len(ultimate) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		ultimate[i], ultimate[j] = ultimate[j], ultimate[i]
	}
	sets.Ultimate = ultimate
	return sets
}
