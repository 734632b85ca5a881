package ringscore

import (
	"math"
)

// WeightedGeometricMean computes exp(Σ wᵢ·ln(sᵢ) / Σ wᵢ). If any score is
// exactly 0 the result is 0: a single zero component proves innocence along
// that dimension and zeroes the combined score.
// Assumes scores and weights are the same length (caller's responsibility).
func WeightedGeometricMean(scores, weights []float64) float64 {
	logs := make([]float64, len(scores))
	for i, s := range scores {
		if s == 0 {
			return 0
		}
		logs[i] = math.Log(s)
	}
	return math.Exp(WeightedArithmeticMean(logs, weights))
}

// WeightedArithmeticMean computes Σ wᵢ·sᵢ / Σ wᵢ.
// Assumes scores and weights are the same length (caller's responsibility).
func WeightedArithmeticMean(scores, weights []float64) float64 {
	var sum, wsum float64
	for i, s := range scores {
		sum += s * weights[i]
		wsum += weights[i]
	}
	return sum / wsum
}

// WeightedHarmonicMean computes Σ wᵢ / Σ (wᵢ/sᵢ), with the same zero-guard
// policy as the geometric form.
// Assumes scores and weights are the same length (caller's responsibility).
func WeightedHarmonicMean(scores, weights []float64) float64 {
	var wsum, inv float64
	for i, s := range scores {
		if s == 0 {
			return 0
		}
		wsum += weights[i]
		inv += weights[i] / s
	}
	return wsum / inv
}
