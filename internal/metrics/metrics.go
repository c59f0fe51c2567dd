package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// CacheHits counts weather lookups served from the database.
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "weather_cache_hits_total",
		Help: "Lookups answered with a fresh stored reading.",
	})

	// CacheMisses counts weather lookups that went to the provider.
	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "weather_cache_misses_total",
		Help: "Lookups with no fresh stored reading.",
	})

	// ProviderRequests counts calls to the external provider by outcome.
	ProviderRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "weather_provider_requests_total",
		Help: "Calls to the external weather provider.",
	}, []string{"outcome"})

	registerOnce sync.Once
)

// Init registers all collectors. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpLatency, CacheHits, CacheMisses, ProviderRequests)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// HTTPMetrics records request latency labeled by method, chi route
// pattern and status code.
func HTTPMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		httpLatency.WithLabelValues(r.Method, routePattern(r), strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if patt := rc.RoutePattern(); patt != "" {
			return patt
		}
	}
	return r.URL.Path
}
