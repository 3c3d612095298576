package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mchmarny/rubric/pkg/provider"
	"github.com/mchmarny/rubric/pkg/rubric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()

	metrics := make(map[string]float64, len(rubric.Catalog))
	for id := range rubric.Catalog {
		metrics[id] = 0.7
	}
	src := provider.NewStatic(&provider.Dataset{
		Companies: map[string]map[string]float64{"ACME": metrics},
		Regimes: map[string]map[string]float64{
			"2-5y": {string(rubric.RegimePowerConstrainedBoom): 1},
		},
	})

	scorer, err := rubric.New(src, nil)
	require.NoError(t, err)
	return makeRouter(src, scorer)
}

func get(t *testing.T, mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestScoreHandler(t *testing.T) {
	mux := setupTestRouter(t)

	rec := get(t, mux, "/score?company=ACME&horizon=2-5y")
	require.Equal(t, http.StatusOK, rec.Code)

	var bd rubric.Breakdown
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bd))
	assert.Equal(t, "ACME", bd.Company)
	assert.Len(t, bd.Groups, 7)
	assert.GreaterOrEqual(t, bd.FinalScore, -100.0)
	assert.LessOrEqual(t, bd.FinalScore, 100.0)
}

func TestScoreHandler_Errors(t *testing.T) {
	mux := setupTestRouter(t)

	rec := get(t, mux, "/score")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, mux, "/score?company=ACME&horizon=decade")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, mux, "/score?company=Initech")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestSignalHandler(t *testing.T) {
	mux := setupTestRouter(t)

	rec := get(t, mux, "/signal?company=ACME&metric="+rubric.MetricPowerAccess)
	require.Equal(t, http.StatusOK, rec.Code)

	var sig rubric.Signal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sig))
	assert.Equal(t, 0.7, sig.Value)

	rec = get(t, mux, "/signal?company=ACME")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, mux, "/signal?company=ACME&metric=does.not_exist")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsHandler(t *testing.T) {
	mux := setupTestRouter(t)

	rec := get(t, mux, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []*metricInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, len(rubric.Catalog))
	// Sorted by ID.
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}
}

func TestRegimesHandler(t *testing.T) {
	mux := setupTestRouter(t)

	rec := get(t, mux, "/regimes?horizon=2-5y")
	require.Equal(t, http.StatusOK, rec.Code)

	var mix rubric.Mixture
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mix))
	assert.InDelta(t, 1.0, mix.Weights[rubric.RegimePowerConstrainedBoom], 1e-9)

	// Horizon with no stored weights serves the normalized default.
	rec = get(t, mux, "/regimes?horizon=5-12y")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mix))
	assert.InDelta(t, 0.35, mix.Weights[rubric.RegimePowerConstrainedBoom], 1e-9)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(rubric.ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, statusFor(rubric.ErrInvalidConfig))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
