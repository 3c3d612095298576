package rubric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mixtureSum(m Mixture) float64 {
	s := 0.0
	for _, v := range m.Weights {
		s += v
	}
	return s
}

func TestMixture_NormalizedSumsToOne(t *testing.T) {
	m := Mixture{Weights: map[Regime]float64{
		RegimePowerConstrainedBoom: 2.0,
		RegimeTrustCollapse:        1.0,
		RegimeHyperCompetition:     1.0,
	}}
	n := m.Normalized()
	assert.InDelta(t, 1.0, mixtureSum(n), 1e-9)
	assert.InDelta(t, 0.5, n.Weight(RegimePowerConstrainedBoom), 1e-9)
	assert.Len(t, n.Weights, 3, "key set preserved")
}

func TestMixture_NormalizedPreservesZeroWeightKeys(t *testing.T) {
	m := Mixture{Weights: map[Regime]float64{
		RegimeSecurityArmsRace:    3.0,
		RegimeRegulatoryClampdown: 0.0,
	}}
	n := m.Normalized()
	require.Len(t, n.Weights, 2)
	assert.Equal(t, 0.0, n.Weight(RegimeRegulatoryClampdown))
	assert.InDelta(t, 1.0, n.Weight(RegimeSecurityArmsRace), 1e-9)
}

func TestMixture_NegativeWeightsClampedToZero(t *testing.T) {
	m := Mixture{Weights: map[Regime]float64{
		RegimeCapitalConcentration: 1.0,
		RegimeTrustCollapse:        -5.0,
	}}
	n := m.Normalized()
	assert.Equal(t, 0.0, n.Weight(RegimeTrustCollapse))
	assert.InDelta(t, 1.0, n.Weight(RegimeCapitalConcentration), 1e-9)
}

func TestMixture_EmptyFallsBackToDefault(t *testing.T) {
	for name, m := range map[string]Mixture{
		"empty":    {},
		"nil map":  {Weights: nil},
		"all zero": {Weights: map[Regime]float64{RegimeTrustCollapse: 0}},
		"negative": {Weights: map[Regime]float64{RegimeTrustCollapse: -1}},
	} {
		n := m.Normalized()
		assert.InDelta(t, 1.0, mixtureSum(n), 1e-9, name)
		assert.InDelta(t, 0.35, n.Weight(RegimePowerConstrainedBoom), 1e-9, name)
		assert.InDelta(t, 0.35, n.Weight(RegimeSecurityArmsRace), 1e-9, name)
		assert.InDelta(t, 0.15, n.Weight(RegimeTrustCollapse), 1e-9, name)
		assert.InDelta(t, 0.15, n.Weight(RegimeHyperCompetition), 1e-9, name)
	}
}

func TestMixture_NormalizedIdempotent(t *testing.T) {
	m := Mixture{Weights: map[Regime]float64{
		RegimePowerConstrainedBoom: 0.7,
		RegimeSecurityArmsRace:     0.3,
	}}
	once := m.Normalized()
	twice := once.Normalized()
	assert.Equal(t, once.Weights, twice.Weights)
}

func TestMixture_MissingRegimeWeightIsZero(t *testing.T) {
	m := Mixture{Weights: map[Regime]float64{RegimeTrustCollapse: 1}}
	assert.Equal(t, 0.0, m.Weight(RegimeGeopoliticalBifurcation))
}

func TestParseHorizon(t *testing.T) {
	tests := []struct {
		in   string
		want Horizon
		ok   bool
	}{
		{"short", HorizonShort, true},
		{"mid", HorizonMid, true},
		{"long", HorizonLong, true},
		{"0-2y", HorizonShort, true},
		{"2-5y", HorizonMid, true},
		{"5-12y", HorizonLong, true},
		{"decade", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseHorizon(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
