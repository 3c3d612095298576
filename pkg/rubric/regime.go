package rubric

// Regime is a named macro-environment archetype. A mixture over regimes
// modulates some factor-group multipliers and gates.
type Regime string

const (
	RegimePowerConstrainedBoom        Regime = "power_constrained_boom"
	RegimePowerConstrainedStagflation Regime = "power_constrained_stagflation"
	RegimeTrustCollapse               Regime = "trust_collapse"
	RegimeRegulatoryClampdown         Regime = "regulatory_clampdown"
	RegimeHyperCompetition            Regime = "hyper_competition"
	RegimeCapitalConcentration        Regime = "capital_concentration"
	RegimeGeopoliticalBifurcation     Regime = "geopolitical_bifurcation"
	RegimeSecurityArmsRace            Regime = "security_arms_race"
)

// Regimes lists every known regime.
var Regimes = []Regime{
	RegimePowerConstrainedBoom,
	RegimePowerConstrainedStagflation,
	RegimeTrustCollapse,
	RegimeRegulatoryClampdown,
	RegimeHyperCompetition,
	RegimeCapitalConcentration,
	RegimeGeopoliticalBifurcation,
	RegimeSecurityArmsRace,
}

// Mixture is a probability-like weighting over regimes. Treat it as
// immutable once built; Normalized returns a new Mixture.
type Mixture struct {
	Weights map[Regime]float64 `json:"weights" yaml:"weights"`
}

// defaultMixture is substituted when a mixture has no positive weight.
func defaultMixture() Mixture {
	return Mixture{Weights: map[Regime]float64{
		RegimePowerConstrainedBoom: 0.35,
		RegimeSecurityArmsRace:     0.35,
		RegimeTrustCollapse:        0.15,
		RegimeHyperCompetition:     0.15,
	}}
}

// Normalized returns a mixture whose non-negative weights sum to 1 over the
// same key set. When the input sum is zero or negative (including an empty
// mixture), the fixed default mixture is substituted and normalized instead.
// Idempotent once weights already sum to 1.
func (m Mixture) Normalized() Mixture {
	sum := 0.0
	for _, v := range m.Weights {
		if v > 0 {
			sum += v
		}
	}
	if sum <= 0 {
		return defaultMixture().Normalized()
	}
	norm := make(map[Regime]float64, len(m.Weights))
	for k, v := range m.Weights {
		norm[k] = max(0, v) / sum
	}
	return Mixture{Weights: norm}
}

// Weight returns the weight for r, or 0 when the regime is absent.
func (m Mixture) Weight(r Regime) float64 {
	return m.Weights[r]
}
