package rubric

import "math"

// Numeric transforms shared by the factor groups. All of them are pure and
// total: finite inputs outside the documented range are clamped, never
// rejected. Non-finite signal values are caught at the evaluator boundary
// before any of these run (see score01).

// clamp restricts x to [lo, hi].
func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// satLog is a saturating log transform for x >= 0, normalized so that
// satLog(1, k) == 1. Rises fast near zero, flattens as x grows. Negative x
// is treated as 0. k must be positive; non-positive k degrades to a linear
// clamp.
func satLog(x, k float64) float64 {
	x = math.Max(0, x)
	if k <= 0 {
		return clamp(x, 0, 1)
	}
	return math.Log1p(k*x) / math.Log1p(k)
}

// logistic is a sigmoid centered at x0 with steepness k, output in (0,1).
func logistic(x, k, x0 float64) float64 {
	return 1.0 / (1.0 + math.Exp(-k*(x-x0)))
}

// toSigned maps a [0,1] score to [-1,1].
func toSigned(x01 float64) float64 {
	return 2.0*clamp(x01, 0, 1) - 1.0
}

// gate is a smooth feasibility step in [0,1]. Below threshold the value
// collapses quickly; softness controls how gradual the transition is.
// With softness <= 0 it is a hard 0/1 step at threshold.
func gate(value01, threshold, softness float64) float64 {
	v := clamp(value01, 0, 1)
	if softness <= 0 {
		if v >= threshold {
			return 1
		}
		return 0
	}
	x := (v - threshold) / softness
	return clamp(logistic(x, 3.0, 0), 0, 1)
}

// expDownsidePenalty maps a badness score in [0,1] to a multiplier that
// decays from 1 toward 0. Convex: severe badness is punished much harder
// than mild badness.
func expDownsidePenalty(badness01, strength float64) float64 {
	b := clamp(badness01, 0, 1)
	return math.Exp(-strength * b)
}

// isFinite reports whether x is neither NaN nor infinite.
func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
