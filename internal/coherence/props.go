package coherence

import (
	"math"

	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/pattern"
)

// #region numeric-properties

// NumericProperties is the standard property derivation for float64-featured
// patterns. Dimensions: feature uniformity (1 = perfectly regular), squashed
// feature magnitude, feature density, and cost.
func NumericProperties(p *pattern.Pattern[float64]) PropertySet {
	mean, std := meanStd(p.Features)
	uniformity := 1.0
	if mean != 0 {
		uniformity = clamp(1 - std/math.Abs(mean))
	}
	magnitude := math.Abs(mean) / (1 + math.Abs(mean))
	density := 0.0
	if n := len(p.Features); n > 0 {
		density = float64(n) / float64(n+4)
	}
	return PropertySet{
		PatternName: p.Name,
		Dimensions:  []float64{uniformity, magnitude, density, clamp(p.Cost)},
	}
}

// #endregion numeric-properties

// #region helpers

// CosineMetric is the default pairwise metric: cosine similarity of the two
// property vectors, clamped to [0, 1]. Mismatched or empty vectors score 0.
func CosineMetric(a, b PropertySet) float64 {
	return clamp(cosineSimilarity(a.Dimensions, b.Dimensions))
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion helpers
