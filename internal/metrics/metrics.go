package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "Latency of HTTP requests in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		},
		[]string{"method", "route"},
	)
	cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Total number of catalog cache hits",
		},
		[]string{"layer"},
	)
	cacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_misses_total",
			Help: "Total number of catalog cache misses",
		},
		[]string{"layer"},
	)
	evaluationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "evaluations_created_total",
			Help: "Total number of evaluations created",
		},
	)
	reportRender = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "report_render_latency_ms",
			Help:    "Latency of PDF report rendering in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)
)

// Middleware records request count and latency per route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(c.Method(), route).Observe(float64(time.Since(start).Microseconds()) / 1000.0)
		return err
	}
}

// RecordCache counts a catalog cache lookup for the given layer.
func RecordCache(layer string, hit bool) {
	if hit {
		cacheHits.WithLabelValues(layer).Inc()
		return
	}
	cacheMisses.WithLabelValues(layer).Inc()
}

// IncrementEvaluations counts a stored evaluation.
func IncrementEvaluations() {
	evaluationsCreated.Inc()
}

// RecordReportRender records how long a PDF took to render.
func RecordReportRender(d time.Duration) {
	reportRender.Observe(float64(d.Microseconds()) / 1000.0)
}
