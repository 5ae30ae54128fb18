package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sentiscope_search_duration_seconds",
			Help:    "Twitter search latency in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	SearchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiscope_search_errors_total",
			Help: "Failed Twitter searches",
		},
		[]string{"kind"}, // kind: unauthorized|rate_limited|timeout|unavailable|unexpected
	)

	PostsAnalyzed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiscope_posts_analyzed_total",
			Help: "Posts scored, by sentiment category",
		},
		[]string{"category"},
	)

	ScoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentiscope_score_duration_seconds",
			Help:    "Time spent scoring all posts of one request",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"backend"},
	)

	ScorerHealthy = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentiscope_scorer_healthy",
			Help: "1 when the sentiment backend passed its last health check",
		},
	)

	initOnce sync.Once
)

// Init registers the collectors with the default registry. Safe to call more
// than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(SearchDuration)
		prometheus.MustRegister(SearchErrors)
		prometheus.MustRegister(PostsAnalyzed)
		prometheus.MustRegister(ScoreDuration)
		prometheus.MustRegister(ScorerHealthy)
	})
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordSearch(duration time.Duration, errKind string) {
	SearchDuration.Observe(duration.Seconds())
	if errKind != "" {
		SearchErrors.WithLabelValues(errKind).Inc()
	}
}

func RecordScoring(backend string, duration time.Duration) {
	ScoreDuration.WithLabelValues(backend).Observe(duration.Seconds())
}

func RecordCategories(counts map[string]int) {
	for category, n := range counts {
		PostsAnalyzed.WithLabelValues(category).Add(float64(n))
	}
}
