// Package metrics holds the Prometheus collectors of the console.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream outcomes that carry no HTTP status.
const (
	OutcomeTimeout = "timeout"
	OutcomeNetwork = "network"
)

var (
	Registry = prometheus.NewRegistry()

	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ims",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Requests sent to the resource services.",
		},
		[]string{"service", "method", "outcome"},
	)

	upstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ims",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Duration of requests to the resource services.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
		[]string{"service", "method"},
	)

	consoleRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ims",
			Subsystem: "console",
			Name:      "requests_total",
			Help:      "Requests handled by the console API.",
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	Registry.MustRegister(
		upstreamRequests,
		upstreamDuration,
		consoleRequests,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveUpstream records one upstream request. outcome is the status code or one of the Outcome constants.
func ObserveUpstream(service, method, outcome string, elapsed time.Duration) {
	if service == "" {
		service = "unknown"
	}
	upstreamRequests.WithLabelValues(service, method, outcome).Inc()
	upstreamDuration.WithLabelValues(service, method).Observe(elapsed.Seconds())
}

// Middleware counts console requests by route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		consoleRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
