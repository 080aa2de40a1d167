package domain

import (
	"math"
	"regexp"
	"strings"
)

// DifficultyTarget holds the requested question count per tier.
type DifficultyTarget struct {
	Expert   int `json:"expert"`
	Master   int `json:"master"`
	Champion int `json:"champion"`
}

// Total is the number of questions requested across all tiers.
func (t DifficultyTarget) Total() int {
	return t.Expert + t.Master + t.Champion
}

// Count returns the quota for tier d.
func (t DifficultyTarget) Count(d Difficulty) int {
	switch d {
	case DifficultyMaster:
		return t.Master
	case DifficultyChampion:
		return t.Champion
	default:
		return t.Expert
	}
}

// Rescale shrinks the target so it sums to at most maxAllowed, then re-applies floor
// to every tier. A target already within budget keeps its values apart from the floor.
func (t DifficultyTarget) Rescale(maxAllowed, floor int) DifficultyTarget {
	raw := t.Total()
	if raw <= 0 {
		return DifficultyTarget{Expert: floor, Master: floor, Champion: floor}
	}
	total := raw
	if maxAllowed < total {
		total = maxAllowed
	}
	scale := float64(total) / float64(raw)
	apply := func(v int) int {
		return max(floor, int(math.Floor(float64(v)*scale)))
	}
	return DifficultyTarget{
		Expert:   apply(t.Expert),
		Master:   apply(t.Master),
		Champion: apply(t.Champion),
	}
}

// DistributionPolicy controls ComputeDistributionWith.
type DistributionPolicy struct {
	Total int
	Floor int
}

// DefaultDistributionPolicy asks for 36 questions with at least 8 per tier.
var DefaultDistributionPolicy = DistributionPolicy{Total: 36, Floor: 8}

// Keyword buckets, two per tier.
var (
	keywordEasy     = regexp.MustCompile(`\beasy\b`)
	keywordExpert   = regexp.MustCompile(`\bexpert\b`)
	keywordMedium   = regexp.MustCompile(`\bmedium\b`)
	keywordMaster   = regexp.MustCompile(`\bmaster\b`)
	keywordHard     = regexp.MustCompile(`\bhard\b`)
	keywordChampion = regexp.MustCompile(`\bchampion\b`)
)

// ComputeDistribution derives a tier target from keyword density using the default policy.
func ComputeDistribution(text NormalizedText) DifficultyTarget {
	return ComputeDistributionWith(text, DefaultDistributionPolicy)
}

// ComputeDistributionWith counts whole-word tier keywords, adds one to each tier sum and
// splits policy.Total proportionally. Each share is rounded and clamped to policy.Floor,
// so the result does not necessarily sum to policy.Total.
func ComputeDistributionWith(text NormalizedText, policy DistributionPolicy) DifficultyTarget {
	lower := strings.ToLower(string(text))
	hits := func(re *regexp.Regexp) int {
		return len(re.FindAllStringIndex(lower, -1))
	}

	tierA := hits(keywordEasy) + hits(keywordExpert) + 1
	tierB := hits(keywordMedium) + hits(keywordMaster) + 1
	tierC := hits(keywordHard) + hits(keywordChampion) + 1
	sum := float64(tierA + tierB + tierC)

	share := func(base int) int {
		v := int(math.Floor(float64(base)/sum*float64(policy.Total) + 0.5))
		return max(policy.Floor, v)
	}
	return DifficultyTarget{
		Expert:   share(tierA),
		Master:   share(tierB),
		Champion: share(tierC),
	}
}
