// Package rubric implements a deterministic composite outlook score for a
// named company over a time horizon. Seven independent factor groups pull
// normalized signals from a pluggable Source and emit additive
// contributions, feasibility gates, compounding multipliers, and risk
// channels; the aggregator folds them into one bounded score in
// [-100, 100] with a full auditable breakdown.
package rubric
