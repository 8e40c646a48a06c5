package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	InferenceCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inference_calls_total",
			Help: "Calls to the inference service by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	InferenceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inference_call_duration_seconds",
			Help:    "Latency of inference service calls",
			Buckets: []float64{0.25, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"endpoint"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Redis cache lookups by cache name and result",
		},
		[]string{"cache", "result"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(InferenceCalls)
	prometheus.MustRegister(InferenceDuration)
	prometheus.MustRegister(CacheLookups)
}

// ObserveInference records one outbound call. outcome is "ok" or "error".
func ObserveInference(endpoint, outcome string, elapsed time.Duration) {
	InferenceCalls.WithLabelValues(endpoint, outcome).Inc()
	InferenceDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func ObserveCache(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(cache, result).Inc()
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
