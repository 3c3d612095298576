package rubric

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by a Source when the company or metric is
	// unknown. It aborts the whole scoring call; no partial or degraded
	// score is ever produced.
	ErrNotFound = errors.New("signal not found")

	// ErrInvalidConfig is returned when rubric weights fail validation.
	ErrInvalidConfig = errors.New("invalid rubric configuration")

	// ErrNumericDomain is returned when a Source yields a NaN or infinite
	// signal value. Finite out-of-range values are clamped instead.
	ErrNumericDomain = errors.New("non-finite signal value")
)

// Query carries the optional parameters of a signal lookup. Context is an
// open key-value bag; providers ignore keys they do not recognize.
type Query struct {
	// AsOf is the point-in-time reference date (YYYY-MM-DD). Empty means
	// latest available.
	AsOf string

	// Context holds provider-specific hints, e.g. a time window for a
	// windowed metric.
	Context map[string]any
}

// Source resolves signal queries for the engine. Implementations own data
// access, normalization, as-of handling, and any retry or timeout policy;
// the engine itself never retries.
//
// GetScore normalizes the stored value into [lo,hi]. Known quirk all
// providers share: stored values are [0,1] scores, and only a requested
// range of exactly [-1,1] triggers a rescale - any other range passes the
// stored value through unchanged. The engine always asks for [0,1].
type Source interface {
	// GetValue returns the raw signal for a metric. Unknown company or
	// metric yields ErrNotFound.
	GetValue(ctx context.Context, metricID, company string, h Horizon, q *Query) (*Signal, error)

	// GetScore is GetValue with the value normalized into [lo,hi].
	GetScore(ctx context.Context, metricID, company string, h Horizon, lo, hi float64, q *Query) (*Signal, error)

	// GetRegimeMixture returns the source's current-state regime weighting
	// for a horizon. Used only when the caller supplies no explicit
	// mixture. An empty mixture is valid; Normalized substitutes the
	// default.
	GetRegimeMixture(ctx context.Context, h Horizon, q *Query) (*Mixture, error)
}
