package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes application-level instruments.
type Metrics struct {
	Fills            *prometheus.CounterVec
	MappingCache     *prometheus.CounterVec
	MagicLinks       *prometheus.CounterVec
	LimiterRejected  prometheus.Counter
	EntitlementDeny  prometheus.Counter
}

// New registers the domain instruments on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the domain instruments on the given registerer.
// Tests use an isolated registry per instance.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Fills: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "formfill_fills_total",
			Help: "PDF fill operations by tier.",
		}, []string{"tier"}),
		MappingCache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "formfill_mapping_cache_total",
			Help: "Mapping cache lookups by result.",
		}, []string{"result"}),
		MagicLinks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "formfill_magic_links_total",
			Help: "Magic link lifecycle events.",
		}, []string{"event"}),
		LimiterRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "formfill_usage_limit_rejections_total",
			Help: "Requests rejected by the free-tier usage limiter.",
		}),
		EntitlementDeny: factory.NewCounter(prometheus.CounterOpts{
			Name: "formfill_entitlement_denials_total",
			Help: "Entitlement tokens rejected as invalid, expired or denylisted.",
		}),
	}
}

// HTTPMetrics instruments inbound HTTP traffic.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "formfill_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "formfill_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
