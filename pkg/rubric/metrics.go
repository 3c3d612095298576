package rubric

// Metric identifiers queried by the factor groups. Dotted ids follow the
// domain.metric_name convention; the _good/_bad suffix documents polarity
// on the [0,1] scale.
const (
	// Macro
	MetricMacroTightness   = "macro.tightness_index"
	MetricMacroSensitivity = "macro.company_sensitivity"

	// Constraints
	MetricPowerAccess   = "constraint.power_access_good"
	MetricComputeAccess = "constraint.compute_access_good"

	// Trust
	MetricSecurityMaturity  = "trust.security_maturity_good"
	MetricAuditability      = "trust.auditability_good"
	MetricProvenanceSupport = "trust.provenance_support_good"
	MetricSecurityIncident  = "trust.security_incident_bad"

	// Control points
	MetricDistributionLock = "platform.distribution_lock_good"
	MetricSwitchingCost    = "platform.switching_cost_good"
	MetricDataAdvantage    = "platform.data_advantage_good"
	MetricNetworkEffects   = "platform.network_effects_good"

	// Org
	MetricShipVelocity        = "org.ship_velocity_good"
	MetricTalentDensity       = "org.talent_density_good"
	MetricAgentAdoption       = "org.internal_agent_adoption_good"
	MetricRestructureVelocity = "org.restructure_velocity_good"

	// Reg / Geo
	MetricComplianceReadiness   = "reg.compliance_readiness_good"
	MetricLiabilityReadiness    = "reg.liability_readiness_good"
	MetricExportControlExposure = "geo.export_control_exposure_bad"
	MetricSanctionsExposure     = "geo.sanctions_exposure_bad"
	MetricAntitrustRisk         = "reg.antitrust_risk_bad"

	// Capital allocation
	MetricFCFStrength          = "capital.free_cash_flow_strength_good"
	MetricBalanceSheetStrength = "capital.balance_sheet_strength_good"
	MetricMnaSkill             = "capital.mna_integration_skill_good"
	MetricAllocationDiscipline = "capital.allocation_discipline_good"
	MetricMoonshotPropensity   = "capital.moonshot_propensity_bad"
)

// Catalog documents every metric the engine queries. Documentation only;
// providers are not required to enforce it.
var Catalog = map[string]string{
	MetricMacroTightness:   "0..1, 1=tight liquidity and high cost of capital.",
	MetricMacroSensitivity: "0..1, 1=high sensitivity to macro tightening (levered, long-duration, cyclical).",

	MetricPowerAccess:   "0..1, 1=excellent secured power/interconnect path for scaling compute.",
	MetricComputeAccess: "0..1, 1=excellent GPU/network/memory supply access and ability to procure/operate.",

	MetricSecurityMaturity:  "0..1, controls, secure-by-default, response automation.",
	MetricAuditability:      "0..1, logs, replay, approvals, compliance-grade tooling.",
	MetricProvenanceSupport: "0..1, content credentials/provenance strategy integration.",
	MetricSecurityIncident:  "0..1, incident frequency/severity/repeat-ness; 1 is very bad.",

	MetricDistributionLock: "0..1, default placement in workflows/devices/platforms.",
	MetricSwitchingCost:    "0..1, stickiness and lock-in from integrations/data/process.",
	MetricDataAdvantage:    "0..1, proprietary data access that improves outcomes.",
	MetricNetworkEffects:   "0..1, marketplace/community/network effects strength.",

	MetricShipVelocity:        "0..1, cadence and quality of shipping meaningful features.",
	MetricTalentDensity:       "0..1, ability to attract/retain top builders.",
	MetricAgentAdoption:       "0..1, uses agents internally to compound productivity.",
	MetricRestructureVelocity: "0..1, ability to change cost structure quickly.",

	MetricComplianceReadiness:   "0..1, certs, audits, enterprise readiness.",
	MetricLiabilityReadiness:    "0..1, contracts/insurance posture and governance controls.",
	MetricExportControlExposure: "0..1 bad, dependence on restricted components/markets.",
	MetricSanctionsExposure:     "0..1 bad, sanction risk for markets/supply chain.",
	MetricAntitrustRisk:         "0..1 bad, constraint on M&A / bundling.",

	MetricFCFStrength:          "0..1 good, resilient cash generation.",
	MetricBalanceSheetStrength: "0..1 good, low leverage / high liquidity.",
	MetricMnaSkill:             "0..1 good, track record of successful integrations.",
	MetricAllocationDiscipline: "0..1 good, kills bad projects, avoids capex traps.",
	MetricMoonshotPropensity:   "0..1 bad, tendency for desperate capex or unfocused bets.",
}
