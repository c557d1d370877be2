// Package metrics provides Prometheus metrics for the prompt catalog.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status label values
const (
	StatusSuccess      = "success"
	StatusNotFound     = "not_found"
	StatusInvalidInput = "invalid_input"
	StatusError        = "error"
)

var (
	// mutationsTotal records store operations.
	// Labels:
	//   - operation: e.g. "create_prompt", "add_version", "add_rating"
	//   - status: success, not_found, invalid_input, error
	mutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prompt_catalog_mutations_total",
			Help: "Total number of prompt catalog mutations",
		},
		[]string{"operation", "status"},
	)

	// ratingScores records submitted rating scores.
	ratingScores = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prompt_catalog_rating_score",
			Help:    "Distribution of submitted rating scores",
			Buckets: []float64{1, 2, 3, 4, 5},
		},
	)

	catalogPrompts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "prompt_catalog_prompts",
			Help: "Number of prompts in the catalog",
		},
	)

	catalogVersions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "prompt_catalog_versions",
			Help: "Number of versions across all prompts",
		},
	)

	catalogRevision = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "prompt_catalog_revision",
			Help: "Revision of the latest observed catalog snapshot",
		},
	)
)

var (
	observeMu    sync.Mutex
	lastRevision uint64
)

func init() {
	prometheus.MustRegister(mutationsTotal)
	prometheus.MustRegister(ratingScores)
	prometheus.MustRegister(catalogPrompts)
	prometheus.MustRegister(catalogVersions)
	prometheus.MustRegister(catalogRevision)
}

// RecordMutation records one store operation and its outcome.
func RecordMutation(operation, status string) {
	mutationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordRatingScore records an accepted rating score.
func RecordRatingScore(score float64) {
	ratingScores.Observe(score)
}

// ObserveCatalog updates the catalog size gauges. Older revisions are ignored.
func ObserveCatalog(revision uint64, prompts, versions int) {
	observeMu.Lock()
	defer observeMu.Unlock()

	if revision < lastRevision {
		return
	}
	lastRevision = revision
	catalogRevision.Set(float64(revision))
	catalogPrompts.Set(float64(prompts))
	catalogVersions.Set(float64(versions))
}

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
