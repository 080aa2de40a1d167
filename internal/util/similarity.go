package util

import (
	"fmt"
	"math"
)

// CosineSimilarity returns the cosine of the angle between two embeddings.
// Zero-magnitude vectors have similarity 0.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("input vectors cannot be empty")
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimensions do not match: %d vs %d", len(a), len(b))
	}

	var dot, magA, magB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		magA += x * x
		magB += y * y
	}
	if magA == 0 || magB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB)), nil
}

// MaxSimilarity returns the highest similarity between v and any of candidates.
func MaxSimilarity(v []float32, candidates [][]float32) (float64, error) {
	best := -1.0
	for _, c := range candidates {
		s, err := CosineSimilarity(v, c)
		if err != nil {
			return 0, err
		}
		best = math.Max(best, s)
	}
	return best, nil
}
