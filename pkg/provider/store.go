package provider

import (
	"context"
	"database/sql"
	"embed"

	"github.com/mchmarny/rubric/pkg/rubric"
	"github.com/pkg/errors"
)

const (
	// DataFileName is the default sqlite file name under the app home dir.
	DataFileName = "data.db"

	defaultScale         = "score_0_1"
	defaultConfidence    = 0.8
	defaultFreshnessDays = 30

	// asOfMax stands in for "latest available" when no as-of date is
	// given; rows sort lexicographically by ISO date.
	asOfMax = "9999-12-31"
)

//go:embed sql/*
var ddlFS embed.FS

// queries holds the per-driver SQL. Sqlite and postgres share the schema
// but not the placeholder syntax.
type queries struct {
	selectSignal string
	selectRegime string
	insertSignal string
	insertRegime string
}

// Store is a database-backed rubric.Source. Values are stored as [0,1]
// scores; GetScore rescales to [-1,1] only when that exact range is
// requested (see rubric.Source).
type Store struct {
	db *sql.DB
	q  queries
}

var _ rubric.Source = (*Store)(nil)

func initStore(db *sql.DB, q queries) (*Store, error) {
	b, err := ddlFS.ReadFile("sql/ddl.sql")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read the schema creation file")
	}
	if _, err := db.Exec(string(b)); err != nil {
		return nil, errors.Wrap(err, "failed to create signal store schema")
	}
	return &Store{db: db, q: q}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the handle for callers that need raw queries (e.g. import
// status checks in the CLI).
func (s *Store) DB() *sql.DB {
	return s.db
}

// GetValue returns the stored signal for a metric. Unknown company/metric
// (or nothing at or before the as-of date) yields rubric.ErrNotFound.
func (s *Store) GetValue(ctx context.Context, metricID, company string, h rubric.Horizon, q *rubric.Query) (*rubric.Signal, error) {
	asOf := asOfMax
	if q != nil && q.AsOf != "" {
		asOf = q.AsOf
	}

	sig := &rubric.Signal{}
	row := s.db.QueryRowContext(ctx, s.q.selectSignal, company, metricID, string(h), asOf)
	err := row.Scan(&sig.Value, &sig.Scale, &sig.Confidence, &sig.FreshnessDays)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(rubric.ErrNotFound, "company %s, metric %s, horizon %s", company, metricID, h)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "error querying signal %s for %s", metricID, company)
	}
	return sig, nil
}

// GetScore returns the signal normalized into [lo,hi].
func (s *Store) GetScore(ctx context.Context, metricID, company string, h rubric.Horizon, lo, hi float64, q *rubric.Query) (*rubric.Signal, error) {
	sig, err := s.GetValue(ctx, metricID, company, h, q)
	if err != nil {
		return nil, err
	}
	rescaleSigned(sig, lo, hi)
	return sig, nil
}

// GetRegimeMixture returns the stored regime weighting for a horizon at
// the latest as-of date at or before the requested one. No rows is not an
// error: the empty mixture normalizes to the engine default.
func (s *Store) GetRegimeMixture(ctx context.Context, h rubric.Horizon, q *rubric.Query) (*rubric.Mixture, error) {
	asOf := asOfMax
	if q != nil && q.AsOf != "" {
		asOf = q.AsOf
	}

	rows, err := s.db.QueryContext(ctx, s.q.selectRegime, string(h), string(h), asOf)
	if err != nil {
		return nil, errors.Wrapf(err, "error querying regime weights for horizon %s", h)
	}
	defer rows.Close()

	weights := make(map[rubric.Regime]float64)
	for rows.Next() {
		var regime string
		var weight float64
		if err := rows.Scan(&regime, &weight); err != nil {
			return nil, errors.Wrap(err, "error scanning regime weight")
		}
		weights[rubric.Regime(regime)] = weight
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading regime weights")
	}
	return &rubric.Mixture{Weights: weights}, nil
}

// SaveSignal upserts one signal row.
func (s *Store) SaveSignal(ctx context.Context, company, metricID string, h rubric.Horizon, asOf string, sig *rubric.Signal) error {
	if sig == nil {
		return errors.New("signal required")
	}
	_, err := s.db.ExecContext(ctx, s.q.insertSignal,
		company, metricID, string(h), asOf, sig.Value, sig.Scale, sig.Confidence, sig.FreshnessDays)
	return errors.Wrapf(err, "error saving signal %s for %s", metricID, company)
}

// SaveRegimeWeight upserts one regime weight row.
func (s *Store) SaveRegimeWeight(ctx context.Context, h rubric.Horizon, asOf string, r rubric.Regime, weight float64) error {
	_, err := s.db.ExecContext(ctx, s.q.insertRegime, string(h), asOf, string(r), weight)
	return errors.Wrapf(err, "error saving regime weight %s for horizon %s", r, h)
}

// ImportResult summarizes a dataset import.
type ImportResult struct {
	Companies     int `json:"companies" yaml:"companies"`
	Signals       int `json:"signals" yaml:"signals"`
	RegimeWeights int `json:"regime_weights" yaml:"regimeWeights"`
}

// Import loads a dataset into the store. Dataset values carry no horizon
// dimension, so each signal is written once per horizon; later
// horizon-specific saves can override individual rows. Rows are inserted
// as-is: dataset validation is out of scope by design.
func (s *Store) Import(ctx context.Context, ds *Dataset, asOf string) (*ImportResult, error) {
	if ds == nil {
		return nil, errors.New("dataset required")
	}

	res := &ImportResult{}
	for company, metrics := range ds.Companies {
		res.Companies++
		for metric, value := range metrics {
			sig := &rubric.Signal{
				Value:         value,
				Scale:         defaultScale,
				Confidence:    defaultConfidence,
				FreshnessDays: defaultFreshnessDays,
			}
			for _, h := range rubric.Horizons {
				if err := s.SaveSignal(ctx, company, metric, h, asOf, sig); err != nil {
					return nil, err
				}
				res.Signals++
			}
		}
	}

	for horizon, weights := range ds.Regimes {
		h, ok := rubric.ParseHorizon(horizon)
		if !ok {
			return nil, errors.Errorf("unknown horizon in dataset: %s", horizon)
		}
		for regime, weight := range weights {
			if err := s.SaveRegimeWeight(ctx, h, asOf, rubric.Regime(regime), weight); err != nil {
				return nil, err
			}
			res.RegimeWeights++
		}
	}

	return res, nil
}

// rescaleSigned applies the documented range quirk: only an exact [-1,1]
// request rescales the stored [0,1] value.
func rescaleSigned(sig *rubric.Signal, lo, hi float64) {
	if lo == -1 && hi == 1 {
		sig.Value = sig.Value*2 - 1
		sig.Scale = "score_-1_1"
	}
}
