package rubric

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Weights configures the additive group weights, the risk discount
// strength, and the hard output bounds. Additive weights conventionally
// sum to ~1.0 but that is not enforced.
type Weights struct {
	Macro         float64 `yaml:"macro" json:"macro"`
	Constraint    float64 `yaml:"constraint" json:"constraint"`
	Trust         float64 `yaml:"trust" json:"trust"`
	ControlPoints float64 `yaml:"control_points" json:"control_points"`
	Adaptation    float64 `yaml:"adaptation" json:"adaptation"`
	GeoReg        float64 `yaml:"georeg" json:"georeg"`
	CapitalAlloc  float64 `yaml:"capital_alloc" json:"capital_alloc"`

	// RiskWeight in [0,1] controls how strongly aggregate risk discounts
	// the final score.
	RiskWeight float64 `yaml:"risk_weight" json:"risk_weight"`

	ScoreMin float64 `yaml:"score_min" json:"score_min"`
	ScoreMax float64 `yaml:"score_max" json:"score_max"`
}

// DefaultWeights returns the baseline configuration.
func DefaultWeights() Weights {
	return Weights{
		Macro:         0.12,
		Constraint:    0.18,
		Trust:         0.18,
		ControlPoints: 0.18,
		Adaptation:    0.14,
		GeoReg:        0.10,
		CapitalAlloc:  0.10,
		RiskWeight:    0.35,
		ScoreMin:      -100.0,
		ScoreMax:      100.0,
	}
}

// LoadWeights reads a weights file in YAML format. Fields omitted from the
// file keep their default values.
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()
	b, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("reading weights file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &w); err != nil {
		return w, fmt.Errorf("parsing weights file %s: %w", path, err)
	}
	if err := w.Validate(); err != nil {
		return w, err
	}
	return w, nil
}

// Validate rejects malformed weights at construction, before any scoring
// runs.
func (w Weights) Validate() error {
	named := map[string]float64{
		"macro":          w.Macro,
		"constraint":     w.Constraint,
		"trust":          w.Trust,
		"control_points": w.ControlPoints,
		"adaptation":     w.Adaptation,
		"georeg":         w.GeoReg,
		"capital_alloc":  w.CapitalAlloc,
		"risk_weight":    w.RiskWeight,
		"score_min":      w.ScoreMin,
		"score_max":      w.ScoreMax,
	}
	for name, v := range named {
		if !isFinite(v) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, name)
		}
	}
	if w.RiskWeight < 0 || w.RiskWeight > 1 {
		return fmt.Errorf("%w: risk_weight %.3f outside [0,1]", ErrInvalidConfig, w.RiskWeight)
	}
	if w.ScoreMin >= w.ScoreMax {
		return fmt.Errorf("%w: score_min %.1f not below score_max %.1f", ErrInvalidConfig, w.ScoreMin, w.ScoreMax)
	}
	if math.Abs(w.ScoreMax) > 1e6 || math.Abs(w.ScoreMin) > 1e6 {
		return fmt.Errorf("%w: score bounds out of sane range", ErrInvalidConfig)
	}
	return nil
}
