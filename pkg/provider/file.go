package provider

import (
	"context"

	"github.com/mchmarny/rubric/pkg/rubric"
	"github.com/pkg/errors"
)

// File is a static dataset-backed rubric.Source. It serves every horizon
// and as-of date from the same snapshot, which makes it handy for scoring
// ad-hoc data files and for tests. Not safe for concurrent mutation of the
// dataset; the provider itself never mutates it.
type File struct {
	ds *Dataset
}

var _ rubric.Source = (*File)(nil)

// NewFile loads a JSON dataset file into a static source.
func NewFile(path string) (*File, error) {
	ds, err := LoadDataset(path)
	if err != nil {
		return nil, err
	}
	return NewStatic(ds), nil
}

// NewStatic wraps an in-memory dataset. A nil dataset behaves as empty.
func NewStatic(ds *Dataset) *File {
	if ds == nil {
		ds = &Dataset{}
	}
	return &File{ds: ds}
}

// GetValue returns the stored signal with default metadata. Unknown
// company or metric yields rubric.ErrNotFound.
func (f *File) GetValue(_ context.Context, metricID, company string, h rubric.Horizon, _ *rubric.Query) (*rubric.Signal, error) {
	metrics, ok := f.ds.Companies[company]
	if !ok {
		return nil, errors.Wrapf(rubric.ErrNotFound, "company %s", company)
	}
	v, ok := metrics[metricID]
	if !ok {
		return nil, errors.Wrapf(rubric.ErrNotFound, "company %s, metric %s", company, metricID)
	}
	return &rubric.Signal{
		Value:         v,
		Scale:         defaultScale,
		Confidence:    defaultConfidence,
		FreshnessDays: defaultFreshnessDays,
	}, nil
}

// GetScore returns the signal normalized into [lo,hi].
func (f *File) GetScore(ctx context.Context, metricID, company string, h rubric.Horizon, lo, hi float64, q *rubric.Query) (*rubric.Signal, error) {
	sig, err := f.GetValue(ctx, metricID, company, h, q)
	if err != nil {
		return nil, err
	}
	rescaleSigned(sig, lo, hi)
	return sig, nil
}

// GetRegimeMixture returns the dataset's weighting for the horizon, or an
// empty mixture (which normalizes to the engine default) when the dataset
// has none.
func (f *File) GetRegimeMixture(_ context.Context, h rubric.Horizon, _ *rubric.Query) (*rubric.Mixture, error) {
	weights := make(map[rubric.Regime]float64)
	for regime, weight := range f.ds.Regimes[string(h)] {
		weights[rubric.Regime(regime)] = weight
	}
	return &rubric.Mixture{Weights: weights}, nil
}
