package middleware

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	requestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)
)

// registerOnce guards the package-level collectors: constructing a
// second HTTPMetrics must not re-register them.
var registerOnce sync.Once

// HTTPMetrics records request counts and latencies for a service.
type HTTPMetrics struct {
	ServiceName string
}

func NewHTTPMetrics(serviceName string) *HTTPMetrics {
	registerOnce.Do(func() {
		prometheus.MustRegister(requestCounter)
		prometheus.MustRegister(requestDurationHistogram)
	})
	return &HTTPMetrics{ServiceName: serviceName}
}

// Middleware records metrics after each request. The route pattern, not
// the raw URL, is used as the path label to keep cardinality bounded.
func (m *HTTPMetrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		statusStr := strconv.Itoa(status)
		method := c.Method()
		path := c.Route().Path

		requestCounter.WithLabelValues(m.ServiceName, method, path, statusStr).Inc()
		requestDurationHistogram.WithLabelValues(m.ServiceName, method, path, statusStr).
			Observe(time.Since(start).Seconds())

		return err
	}
}
