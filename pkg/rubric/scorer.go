package rubric

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Factor group names as they appear in Breakdown.Groups.
const (
	GroupMacro         = "macro"
	GroupConstraint    = "constraint"
	GroupTrust         = "trust"
	GroupControlPoints = "control_points"
	GroupAdaptation    = "adaptation"
	GroupGeoReg        = "georeg"
	GroupCapitalAlloc  = "capital_alloc"
)

// riskChannelWeights is the fixed table combining per-group risk channels
// into one index. The execution channel is emitted by both adaptation and
// capital_alloc, and each emission carries the full channel weight; that
// double-count is intentional and pinned by tests.
var riskChannelWeights = map[string]float64{
	"macro_tail":        0.18,
	"power_constraint":  0.18,
	"security_incident": 0.22,
	"regulatory":        0.16,
	"geopolitical":      0.16,
	"execution":         0.10,
}

// riskIndexDefault is returned when no group emitted a recognized risk
// channel. Deliberate fallback, not an error.
const riskIndexDefault = 0.25

// Scorer computes a bounded composite outlook score for a company from
// normalized signals. It holds no mutable state; every Score call is
// independently reproducible given the same signal inputs.
type Scorer struct {
	source  Source
	weights Weights
}

// New creates a Scorer over the given signal source. A nil weights pointer
// selects the defaults. Malformed weights are rejected here, never
// mid-computation.
func New(source Source, weights *Weights) (*Scorer, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: source is required", ErrInvalidConfig)
	}
	w := DefaultWeights()
	if weights != nil {
		w = *weights
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{source: source, weights: w}, nil
}

// Weights returns the active configuration.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// ScoreOptions carries the optional parameters of a scoring call.
type ScoreOptions struct {
	// AsOf is the point-in-time reference date (YYYY-MM-DD).
	AsOf string

	// Mixture overrides the source-provided regime mixture. It is
	// normalized before use.
	Mixture *Mixture

	// Context is passed through to every signal query.
	Context map[string]any
}

type groupEval struct {
	name   string
	weight float64
	eval   func(ctx context.Context, company string, h Horizon, mix Mixture, q *Query) (*FactorOutput, error)
}

func (s *Scorer) groups() []groupEval {
	return []groupEval{
		{GroupMacro, s.weights.Macro, s.macroAndLiquidity},
		{GroupConstraint, s.weights.Constraint, s.constraintRegime},
		{GroupTrust, s.weights.Trust, s.trustAndLegitimacy},
		{GroupControlPoints, s.weights.ControlPoints, s.controlPointConcentration},
		{GroupAdaptation, s.weights.Adaptation, s.adaptationSpeed},
		{GroupGeoReg, s.weights.GeoReg, s.geopoliticalAndRegulatory},
		{GroupCapitalAlloc, s.weights.CapitalAlloc, s.capitalAllocation},
	}
}

// Score computes the full breakdown for one company and horizon.
//
// The seven factor groups are evaluated concurrently; they are mutually
// independent, so no ordering is observable in the result. Any evaluation
// failure aborts the call - a partial breakdown is never returned.
func (s *Scorer) Score(ctx context.Context, company string, h Horizon, opts *ScoreOptions) (*Breakdown, error) {
	if company == "" {
		return nil, fmt.Errorf("%w: company is required", ErrInvalidConfig)
	}
	if opts == nil {
		opts = &ScoreOptions{}
	}
	q := &Query{AsOf: opts.AsOf, Context: opts.Context}

	mix, err := s.resolveMixture(ctx, h, opts, q)
	if err != nil {
		return nil, err
	}

	groups := s.groups()
	outs := make([]*FactorOutput, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	for i, ge := range groups {
		i, ge := i, ge
		g.Go(func() error {
			out, err := ge.eval(gctx, company, h, mix, q)
			if err != nil {
				return err
			}
			outs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Weighted additive base.
	base := 0.0
	for i, ge := range groups {
		base += ge.weight * outs[i].Additive
	}
	base = clamp(base, -1, 1)

	// Gate and multiplier products accumulate in declaration order with
	// sorted names inside each group, so repeated calls are bit-identical.
	gateMult := 1.0
	multProd := 1.0
	for _, out := range outs {
		for _, name := range sortedKeys(out.Gates) {
			gateMult *= clamp(out.Gates[name], 0, 1)
		}
		for _, name := range sortedKeys(out.Multipliers) {
			multProd *= clamp(out.Multipliers[name], 0, 1.25)
		}
	}

	riskIndex := aggregateRisk(outs)

	raw := base * gateMult * multProd
	riskDiscount := clamp(1.0-s.weights.RiskWeight*math.Pow(riskIndex, 1.2), 0, 1)
	raw *= riskDiscount

	final := clamp(100.0*clamp(raw, -1, 1), s.weights.ScoreMin, s.weights.ScoreMax)

	byName := make(map[string]*FactorOutput, len(groups))
	for i, ge := range groups {
		byName[ge.name] = outs[i]
	}

	return &Breakdown{
		Company:           company,
		Horizon:           h,
		AsOf:              opts.AsOf,
		RegimeMixture:     mix,
		Groups:            byName,
		BaseAdditive:      base,
		GateMultiplier:    gateMult,
		MultiplierProduct: multProd,
		RiskIndex:         riskIndex,
		FinalScore:        final,
	}, nil
}

// resolveMixture normalizes the caller's mixture or asks the source for
// its current-state default.
func (s *Scorer) resolveMixture(ctx context.Context, h Horizon, opts *ScoreOptions, q *Query) (Mixture, error) {
	if opts.Mixture != nil {
		return opts.Mixture.Normalized(), nil
	}
	mix, err := s.source.GetRegimeMixture(ctx, h, q)
	if err != nil {
		return Mixture{}, fmt.Errorf("regime mixture for %s: %w", h, err)
	}
	if mix == nil {
		mix = &Mixture{}
	}
	return mix.Normalized(), nil
}

// aggregateRisk folds every recognized risk channel into [0,1] using the
// fixed weight table. Unrecognized channel names are ignored. With no
// recognized channel at all, the moderate default applies.
func aggregateRisk(outs []*FactorOutput) float64 {
	accum := 0.0
	wsum := 0.0
	for _, out := range outs {
		for _, ch := range sortedKeys(out.Risk) {
			w, ok := riskChannelWeights[ch]
			if !ok {
				continue
			}
			accum += w * clamp(out.Risk[ch], 0, 1)
			wsum += w
		}
	}
	if wsum <= 0 {
		return riskIndexDefault
	}
	return clamp(accum/wsum, 0, 1)
}

func sortedKeys(m map[string]float64) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
