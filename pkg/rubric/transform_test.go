package rubric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.5, clamp(0.5, 0, 1))
	assert.Equal(t, 0.0, clamp(-3, 0, 1))
	assert.Equal(t, 1.0, clamp(7, 0, 1))
	assert.Equal(t, -1.0, clamp(-7, -1, 1))
}

func TestSatLog_NormalizedAtOne(t *testing.T) {
	for _, k := range []float64{0.5, 1, 2, 3, 4, 10} {
		assert.InDelta(t, 1.0, satLog(1, k), 1e-12, "k=%v", k)
		assert.Equal(t, 0.0, satLog(0, k), "k=%v", k)
	}
}

func TestSatLog_NegativeTreatedAsZero(t *testing.T) {
	assert.Equal(t, 0.0, satLog(-0.8, 3))
}

func TestSatLog_DiminishingReturns(t *testing.T) {
	// Rises faster near zero than near one.
	low := satLog(0.2, 3) - satLog(0.1, 3)
	high := satLog(1.0, 3) - satLog(0.9, 3)
	assert.Greater(t, low, high)
}

func TestLogistic(t *testing.T) {
	assert.InDelta(t, 0.5, logistic(0.55, 4, 0.55), 1e-12)
	assert.Greater(t, logistic(1, 4, 0.55), logistic(0, 4, 0.55))
	v := logistic(100, 3, 0)
	assert.Less(t, v, 1.0)
	assert.Greater(t, v, 0.0)
}

func TestToSigned_BijectionOnUnitInterval(t *testing.T) {
	for _, x := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1} {
		y := toSigned(x)
		assert.GreaterOrEqual(t, y, -1.0)
		assert.LessOrEqual(t, y, 1.0)
		assert.InDelta(t, x, (y+1)/2, 1e-12)
	}
	assert.Equal(t, -1.0, toSigned(-5))
	assert.Equal(t, 1.0, toSigned(5))
}

func TestGate_HardStepWhenSoftnessZero(t *testing.T) {
	assert.Equal(t, 0.0, gate(0.54, 0.55, 0))
	assert.Equal(t, 1.0, gate(0.55, 0.55, 0))
	assert.Equal(t, 1.0, gate(0.90, 0.55, -1))
}

func TestGate_MonotoneNonDecreasing(t *testing.T) {
	prev := -1.0
	for v := 0.0; v <= 1.0; v += 0.01 {
		g := gate(v, 0.55, 0.08)
		assert.GreaterOrEqual(t, g, prev, "v=%v", v)
		assert.GreaterOrEqual(t, g, 0.0)
		assert.LessOrEqual(t, g, 1.0)
		prev = g
	}
}

func TestGate_CollapsesBelowThreshold(t *testing.T) {
	assert.Less(t, gate(0.10, 0.55, 0.08), 0.01)
	assert.Greater(t, gate(0.90, 0.55, 0.08), 0.99)
}

func TestExpDownsidePenalty(t *testing.T) {
	for _, s := range []float64{0.5, 1, 3, 3.5, 10} {
		assert.Equal(t, 1.0, expDownsidePenalty(0, s), "strength=%v", s)
	}
	assert.InDelta(t, math.Exp(-3.5), expDownsidePenalty(1, 3.5), 1e-12)

	prev := 2.0
	for b := 0.0; b <= 1.0; b += 0.05 {
		p := expDownsidePenalty(b, 3)
		assert.Less(t, p, prev, "b=%v", b)
		prev = p
	}
}

func TestExpDownsidePenalty_ClampsBadness(t *testing.T) {
	assert.Equal(t, 1.0, expDownsidePenalty(-2, 3))
	assert.InDelta(t, math.Exp(-3), expDownsidePenalty(9, 3), 1e-12)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, isFinite(0))
	assert.True(t, isFinite(-123.45))
	assert.False(t, isFinite(math.NaN()))
	assert.False(t, isFinite(math.Inf(1)))
	assert.False(t, isFinite(math.Inf(-1)))
}
