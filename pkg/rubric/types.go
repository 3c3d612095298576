package rubric

// Horizon is the forward-looking window a score is computed for. It is a
// query parameter only; the engine keeps no per-horizon state.
type Horizon string

const (
	HorizonShort Horizon = "0-2y"
	HorizonMid   Horizon = "2-5y"
	HorizonLong  Horizon = "5-12y"
)

// Horizons lists every known horizon.
var Horizons = []Horizon{HorizonShort, HorizonMid, HorizonLong}

// ParseHorizon resolves a horizon from either its short alias
// (short, mid, long) or its raw window value (0-2y, 2-5y, 5-12y).
func ParseHorizon(s string) (Horizon, bool) {
	switch s {
	case "short", string(HorizonShort):
		return HorizonShort, true
	case "mid", string(HorizonMid):
		return HorizonMid, true
	case "long", string(HorizonLong):
		return HorizonLong, true
	}
	return "", false
}

// Signal is a single measurement about a company as reported by a Source.
// Produced fresh per query and never cached by the engine.
type Signal struct {
	Value         float64        `json:"value" yaml:"value"`
	Scale         string         `json:"scale" yaml:"scale"`
	Confidence    float64        `json:"confidence" yaml:"confidence"`
	FreshnessDays int            `json:"freshness_days" yaml:"freshnessDays"`
	Details       map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

// FactorOutput is the result of one factor-group evaluation. Additive is in
// [-1,1]; gates are [0,1] feasibility multipliers; multipliers are
// compounding factors clamped to [0,1.25]; risk holds named badness
// channels in [0,1]. Debug exposes the intermediate inputs for audit.
type FactorOutput struct {
	Additive    float64            `json:"additive" yaml:"additive"`
	Gates       map[string]float64 `json:"gates,omitempty" yaml:"gates,omitempty"`
	Multipliers map[string]float64 `json:"multipliers,omitempty" yaml:"multipliers,omitempty"`
	Risk        map[string]float64 `json:"risk,omitempty" yaml:"risk,omitempty"`
	Debug       map[string]float64 `json:"debug,omitempty" yaml:"debug,omitempty"`
}

// Breakdown is the full result of one scoring call. Every intermediate
// quantity the aggregator computes is exposed; nothing is discarded.
type Breakdown struct {
	Company           string                   `json:"company" yaml:"company"`
	Horizon           Horizon                  `json:"horizon" yaml:"horizon"`
	AsOf              string                   `json:"as_of,omitempty" yaml:"asOf,omitempty"`
	RegimeMixture     Mixture                  `json:"regime_mixture" yaml:"regimeMixture"`
	Groups            map[string]*FactorOutput `json:"groups" yaml:"groups"`
	BaseAdditive      float64                  `json:"base_additive" yaml:"baseAdditive"`
	GateMultiplier    float64                  `json:"gate_multiplier" yaml:"gateMultiplier"`
	MultiplierProduct float64                  `json:"multiplier_product" yaml:"multiplierProduct"`
	RiskIndex         float64                  `json:"risk_index" yaml:"riskIndex"`
	FinalScore        float64                  `json:"final_score" yaml:"finalScore"`
}
