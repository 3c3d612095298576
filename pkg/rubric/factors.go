package rubric

import (
	"context"
	"fmt"
	"math"
)

// The seven factor-group evaluators. Each pulls 2-5 normalized [0,1]
// signals from the Source and shapes them into one additive contribution
// plus gates, multipliers, and risk channels. Evaluators are independent:
// no shared state, no ordering between them, safe to run concurrently.
// A missing signal aborts the evaluation; no substitution happens here.

// score01 fetches one metric normalized to [0,1] and surfaces non-finite
// values as ErrNumericDomain.
func (s *Scorer) score01(ctx context.Context, metricID, company string, h Horizon, q *Query) (float64, error) {
	sig, err := s.source.GetScore(ctx, metricID, company, h, 0, 1, q)
	if err != nil {
		return 0, fmt.Errorf("metric %s for %s: %w", metricID, company, err)
	}
	if !isFinite(sig.Value) {
		return 0, fmt.Errorf("metric %s for %s: %w", metricID, company, ErrNumericDomain)
	}
	return sig.Value, nil
}

// macroAndLiquidity rewards defensiveness, scaled up when liquidity is
// tight. Fragile companies in tight regimes feed the macro_tail channel.
func (s *Scorer) macroAndLiquidity(ctx context.Context, company string, h Horizon, mix Mixture, q *Query) (*FactorOutput, error) {
	fragile, err := s.score01(ctx, MetricMacroSensitivity, company, h, q)
	if err != nil {
		return nil, err
	}
	tight, err := s.score01(ctx, MetricMacroTightness, company, h, q)
	if err != nil {
		return nil, err
	}

	defensive := 1.0 - clamp(fragile, 0, 1)
	additive01 := 0.5*defensive + 0.5*defensive*clamp(tight, 0, 1)

	return &FactorOutput{
		Additive: toSigned(additive01),
		Risk:     map[string]float64{"macro_tail": clamp(fragile*tight, 0, 1)},
		Debug:    map[string]float64{"macro_fragile": fragile, "macro_tight": tight},
	}, nil
}

// constraintRegime gates on minimum power and compute access, with
// diminishing returns above the thresholds.
func (s *Scorer) constraintRegime(ctx context.Context, company string, h Horizon, mix Mixture, q *Query) (*FactorOutput, error) {
	power, err := s.score01(ctx, MetricPowerAccess, company, h, q)
	if err != nil {
		return nil, err
	}
	compute, err := s.score01(ctx, MetricComputeAccess, company, h, q)
	if err != nil {
		return nil, err
	}

	gPower := gate(power, 0.55, 0.08)
	gCompute := gate(compute, 0.50, 0.10)

	additive01 := 0.55*satLog(power, 3.0) + 0.45*satLog(compute, 2.0)
	risk := clamp((1.0-power)*0.6+(1.0-compute)*0.4, 0, 1)

	return &FactorOutput{
		Additive: toSigned(clamp(additive01, 0, 1)),
		Gates:    map[string]float64{"power_gate": gPower, "compute_gate": gCompute},
		Risk:     map[string]float64{"power_constraint": risk},
		Debug:    map[string]float64{"power_access": power, "compute_access": compute},
	}, nil
}

// trustAndLegitimacy models the adoption ceiling: quality S-curves up, but
// incidents collapse both the gate and the trust multiplier.
func (s *Scorer) trustAndLegitimacy(ctx context.Context, company string, h Horizon, mix Mixture, q *Query) (*FactorOutput, error) {
	maturity, err := s.score01(ctx, MetricSecurityMaturity, company, h, q)
	if err != nil {
		return nil, err
	}
	audit, err := s.score01(ctx, MetricAuditability, company, h, q)
	if err != nil {
		return nil, err
	}
	provenance, err := s.score01(ctx, MetricProvenanceSupport, company, h, q)
	if err != nil {
		return nil, err
	}
	incident, err := s.score01(ctx, MetricSecurityIncident, company, h, q)
	if err != nil {
		return nil, err
	}

	gTrust := clamp(expDownsidePenalty(incident, 3.5), 0, 1)

	quality01 := 0.45*maturity + 0.35*audit + 0.20*provenance
	additive01 := logistic(quality01, 4.0, 0.55)

	trustMult := (0.6 + 0.5*clamp(quality01, 0, 1)) * gTrust

	return &FactorOutput{
		Additive:    toSigned(additive01),
		Gates:       map[string]float64{"trust_gate": gTrust},
		Multipliers: map[string]float64{"trust_multiplier": clamp(trustMult, 0, 1.25)},
		Risk:        map[string]float64{"security_incident": clamp(incident*(1.0-maturity), 0, 1)},
		Debug: map[string]float64{
			"security_maturity":  maturity,
			"auditability":       audit,
			"provenance_support": provenance,
			"incident_bad":       incident,
			"quality01":          quality01,
		},
	}, nil
}

// controlPointConcentration scores platform lock-in with saturating
// returns, boosted by competition and concentration regimes.
func (s *Scorer) controlPointConcentration(ctx context.Context, company string, h Horizon, mix Mixture, q *Query) (*FactorOutput, error) {
	distribution, err := s.score01(ctx, MetricDistributionLock, company, h, q)
	if err != nil {
		return nil, err
	}
	switching, err := s.score01(ctx, MetricSwitchingCost, company, h, q)
	if err != nil {
		return nil, err
	}
	dataAdv, err := s.score01(ctx, MetricDataAdvantage, company, h, q)
	if err != nil {
		return nil, err
	}
	network, err := s.score01(ctx, MetricNetworkEffects, company, h, q)
	if err != nil {
		return nil, err
	}

	additive01 := 0.35*satLog(distribution, 4.0) +
		0.25*satLog(switching, 3.0) +
		0.20*satLog(dataAdv, 2.0) +
		0.20*satLog(network, 3.0)

	regimeBoost := mix.Weight(RegimeHyperCompetition)*0.10 + mix.Weight(RegimeCapitalConcentration)*0.12
	flywheel := clamp(0.95+regimeBoost+0.15*clamp(distribution, 0, 1), 0, 1.25)

	return &FactorOutput{
		Additive:    toSigned(clamp(additive01, 0, 1)),
		Multipliers: map[string]float64{"control_flywheel": flywheel},
		Debug: map[string]float64{
			"distribution_lock": distribution,
			"switching_cost":    switching,
			"data_advantage":    dataAdv,
			"network_effects":   network,
			"flywheel":          flywheel,
		},
	}, nil
}

// adaptationSpeed is near-linear in org velocity, with a multiplier that
// compounds under disruption regimes. Slow shippers feed execution risk.
func (s *Scorer) adaptationSpeed(ctx context.Context, company string, h Horizon, mix Mixture, q *Query) (*FactorOutput, error) {
	ship, err := s.score01(ctx, MetricShipVelocity, company, h, q)
	if err != nil {
		return nil, err
	}
	talent, err := s.score01(ctx, MetricTalentDensity, company, h, q)
	if err != nil {
		return nil, err
	}
	agent, err := s.score01(ctx, MetricAgentAdoption, company, h, q)
	if err != nil {
		return nil, err
	}
	restructure, err := s.score01(ctx, MetricRestructureVelocity, company, h, q)
	if err != nil {
		return nil, err
	}

	additive01 := 0.30*ship + 0.30*talent + 0.20*agent + 0.20*restructure

	disruption := mix.Weight(RegimeHyperCompetition) + mix.Weight(RegimeSecurityArmsRace)
	adaptMult := clamp(0.90+0.25*clamp(additive01, 0, 1)+0.10*clamp(disruption, 0, 1), 0, 1.25)

	riskExec := clamp((1.0-ship)*0.6+(1.0-restructure)*0.4, 0, 1)

	return &FactorOutput{
		Additive:    toSigned(clamp(additive01, 0, 1)),
		Multipliers: map[string]float64{"adaptation_multiplier": adaptMult},
		Risk:        map[string]float64{"execution": riskExec},
		Debug: map[string]float64{
			"ship_velocity":      ship,
			"talent_density":     talent,
			"internal_agent_use": agent,
			"cost_restructure":   restructure,
			"adapt_mult":         adaptMult,
		},
	}, nil
}

// geopoliticalAndRegulatory nets readiness against exposure and raises the
// regulatory gate to a power of the clampdown weight, so weak readiness
// hurts disproportionately when clampdown is likely.
func (s *Scorer) geopoliticalAndRegulatory(ctx context.Context, company string, h Horizon, mix Mixture, q *Query) (*FactorOutput, error) {
	compliance, err := s.score01(ctx, MetricComplianceReadiness, company, h, q)
	if err != nil {
		return nil, err
	}
	liability, err := s.score01(ctx, MetricLiabilityReadiness, company, h, q)
	if err != nil {
		return nil, err
	}
	export, err := s.score01(ctx, MetricExportControlExposure, company, h, q)
	if err != nil {
		return nil, err
	}
	sanctions, err := s.score01(ctx, MetricSanctionsExposure, company, h, q)
	if err != nil {
		return nil, err
	}
	antitrust, err := s.score01(ctx, MetricAntitrustRisk, company, h, q)
	if err != nil {
		return nil, err
	}

	readiness01 := 0.55*compliance + 0.45*liability
	exposure01 := 0.45*export + 0.25*sanctions + 0.30*antitrust
	additive01 := clamp(readiness01*(1.0-0.7*exposure01), 0, 1)

	clampdown := mix.Weight(RegimeRegulatoryClampdown)
	regGate := math.Pow(gate(readiness01, 0.55, 0.10), 1.0+2.0*clampdown)

	riskReg := clamp((1.0-readiness01)*0.6+antitrust*0.4, 0, 1)
	riskGeo := clamp(export*0.7+sanctions*0.3, 0, 1)

	return &FactorOutput{
		Additive: toSigned(additive01),
		Gates:    map[string]float64{"regulatory_gate": regGate},
		Risk:     map[string]float64{"regulatory": riskReg, "geopolitical": riskGeo},
		Debug: map[string]float64{
			"compliance_readiness": compliance,
			"liability_ready":      liability,
			"export_controls_bad":  export,
			"sanctions_bad":        sanctions,
			"antitrust_bad":        antitrust,
			"readiness01":          readiness01,
			"exposure01":           exposure01,
			"reg_gate":             regGate,
		},
	}, nil
}

// capitalAllocation rewards cash and discipline, penalizes moonshot
// propensity, and compounds M&A skill under capital concentration.
func (s *Scorer) capitalAllocation(ctx context.Context, company string, h Horizon, mix Mixture, q *Query) (*FactorOutput, error) {
	fcf, err := s.score01(ctx, MetricFCFStrength, company, h, q)
	if err != nil {
		return nil, err
	}
	balance, err := s.score01(ctx, MetricBalanceSheetStrength, company, h, q)
	if err != nil {
		return nil, err
	}
	mna, err := s.score01(ctx, MetricMnaSkill, company, h, q)
	if err != nil {
		return nil, err
	}
	discipline, err := s.score01(ctx, MetricAllocationDiscipline, company, h, q)
	if err != nil {
		return nil, err
	}
	moonshot, err := s.score01(ctx, MetricMoonshotPropensity, company, h, q)
	if err != nil {
		return nil, err
	}

	additive01 := clamp(0.30*fcf+0.25*balance+0.20*mna+0.25*discipline-0.25*moonshot, 0, 1)

	conc := mix.Weight(RegimeCapitalConcentration)
	mnaMult := clamp(0.95+0.20*conc*clamp(mna, 0, 1)+0.10*conc*clamp(balance, 0, 1), 0, 1.20)

	return &FactorOutput{
		Additive:    toSigned(additive01),
		Multipliers: map[string]float64{"mna_multiplier": mnaMult},
		Risk:        map[string]float64{"execution": clamp(moonshot*(1.0-discipline), 0, 1)},
		Debug: map[string]float64{
			"fcf_strength":  fcf,
			"balance_sheet": balance,
			"mna_skill":     mna,
			"discipline":    discipline,
			"moonshot_bad":  moonshot,
			"mna_mult":      mnaMult,
		},
	}, nil
}
