package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestCounter counts all HTTP requests with labels
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDurationHistogram records request duration in seconds
	RequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// ReminderProcessedCounter counts reminder records handled per outcome
	ReminderProcessedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_records_total",
			Help: "Total number of reminder queue records processed, by outcome",
		},
		[]string{"outcome"},
	)

	// ReminderCycleDuration records how long one runner cycle takes
	ReminderCycleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reminder_cycle_duration_seconds",
			Help:    "Duration of one reminder runner cycle in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestCounter,
		RequestDurationHistogram,
		ReminderProcessedCounter,
		ReminderCycleDuration,
	)
}

// HTTPMiddleware mencatat counter + duration untuk setiap request gin
func HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		RequestCounter.WithLabelValues(c.Request.Method, path, status).Inc()
		RequestDurationHistogram.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}

// Handler mengekspos endpoint /metrics untuk Prometheus scrape
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
