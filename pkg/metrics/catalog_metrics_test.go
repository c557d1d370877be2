package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readGauge(t *testing.T, g interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	metric := &dto.Metric{}
	require.NoError(t, g.Write(metric))
	return metric.GetGauge().GetValue()
}

func TestRecordMutation(t *testing.T) {
	mutationsTotal.Reset()

	RecordMutation("add_rating", StatusSuccess)
	RecordMutation("add_rating", StatusSuccess)
	RecordMutation("add_rating", StatusNotFound)

	metric := &dto.Metric{}
	require.NoError(t, mutationsTotal.WithLabelValues("add_rating", StatusSuccess).Write(metric))
	assert.Equal(t, float64(2), metric.GetCounter().GetValue())

	metric = &dto.Metric{}
	require.NoError(t, mutationsTotal.WithLabelValues("add_rating", StatusNotFound).Write(metric))
	assert.Equal(t, float64(1), metric.GetCounter().GetValue())
}

func TestRecordRatingScore(t *testing.T) {
	RecordRatingScore(4)
	RecordRatingScore(5)

	metric := &dto.Metric{}
	require.NoError(t, ratingScores.Write(metric))
	assert.GreaterOrEqual(t, metric.GetHistogram().GetSampleCount(), uint64(2))
}

func TestObserveCatalog_IgnoresOlderRevisions(t *testing.T) {
	observeMu.Lock()
	lastRevision = 0
	observeMu.Unlock()

	ObserveCatalog(5, 3, 7)
	assert.Equal(t, float64(3), readGauge(t, catalogPrompts))
	assert.Equal(t, float64(7), readGauge(t, catalogVersions))

	ObserveCatalog(4, 1, 1)
	assert.Equal(t, float64(3), readGauge(t, catalogPrompts))
	assert.Equal(t, float64(5), readGauge(t, catalogRevision))

	ObserveCatalog(6, 4, 9)
	assert.Equal(t, float64(4), readGauge(t, catalogPrompts))
}

func TestHandler(t *testing.T) {
	RecordMutation("create_prompt", StatusSuccess)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "prompt_catalog_mutations_total"))
}
