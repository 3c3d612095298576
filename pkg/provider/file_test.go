package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mchmarny/rubric/pkg/rubric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDatasetJSON = `{
	"companies": {
		"ACME": {
			"constraint.power_access_good": 0.8,
			"constraint.compute_access_good": 0.6
		}
	},
	"regimes": {
		"2-5y": {
			"power_constrained_boom": 0.5,
			"security_arms_race": 0.5
		}
	}
}`

func writeTestDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(testDatasetJSON), 0600))
	return path
}

func TestNewFile(t *testing.T) {
	src, err := NewFile(writeTestDataset(t))
	require.NoError(t, err)

	sig, err := src.GetValue(context.Background(), rubric.MetricPowerAccess, "ACME", rubric.HorizonMid, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.8, sig.Value)
	assert.Equal(t, 0.8, sig.Confidence)
	assert.Equal(t, 30, sig.FreshnessDays)
}

func TestNewFile_MissingFile(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestNewFile_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))
	_, err := NewFile(path)
	assert.Error(t, err)
}

func TestFile_NotFound(t *testing.T) {
	src, err := NewFile(writeTestDataset(t))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = src.GetValue(ctx, rubric.MetricPowerAccess, "Initech", rubric.HorizonMid, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, rubric.ErrNotFound)

	_, err = src.GetValue(ctx, rubric.MetricShipVelocity, "ACME", rubric.HorizonMid, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, rubric.ErrNotFound)
}

func TestFile_GetScore_RescaleQuirk(t *testing.T) {
	src, err := NewFile(writeTestDataset(t))
	require.NoError(t, err)
	ctx := context.Background()

	got, err := src.GetScore(ctx, rubric.MetricComputeAccess, "ACME", rubric.HorizonMid, 0, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.6, got.Value)

	got, err = src.GetScore(ctx, rubric.MetricComputeAccess, "ACME", rubric.HorizonMid, -1, 1, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, got.Value, 1e-12)

	got, err = src.GetScore(ctx, rubric.MetricComputeAccess, "ACME", rubric.HorizonMid, 0, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.6, got.Value, "non-signed range passes through")
}

func TestFile_RegimeMixture(t *testing.T) {
	src, err := NewFile(writeTestDataset(t))
	require.NoError(t, err)
	ctx := context.Background()

	mix, err := src.GetRegimeMixture(ctx, rubric.HorizonMid, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, mix.Weights[rubric.RegimePowerConstrainedBoom])

	// Horizon without weights: empty mixture, engine default kicks in
	// after normalization.
	mix, err = src.GetRegimeMixture(ctx, rubric.HorizonLong, nil)
	require.NoError(t, err)
	assert.Empty(t, mix.Weights)
	norm := mix.Normalized()
	assert.InDelta(t, 0.35, norm.Weight(rubric.RegimePowerConstrainedBoom), 1e-9)
}

func TestNewStatic_NilDataset(t *testing.T) {
	src := NewStatic(nil)
	_, err := src.GetValue(context.Background(), rubric.MetricPowerAccess, "ACME", rubric.HorizonMid, nil)
	assert.ErrorIs(t, err, rubric.ErrNotFound)
}
