package monitor

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Chat metrics
var (
	ChatMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Total number of chat messages accepted by the coordinator",
		},
		[]string{"role"},
	)

	ChatBroadcastDeliveriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_broadcast_deliveries_total",
			Help: "Total number of per-session broadcast deliveries",
		},
	)

	ChatPersistFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_persist_failures_total",
			Help: "Total number of message log writes that failed and were degraded to broadcast-only",
		},
	)

	ChatRoomsTracked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_rooms_tracked",
			Help: "Number of rooms with live membership state",
		},
	)

	ChatClosuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_closures_total",
			Help: "Total number of room closure broadcasts",
		},
	)

	ChatSessionsConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_sessions_connected",
			Help: "Number of currently connected websocket sessions",
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Total number of notification fan-out deliveries",
		},
		[]string{"role"},
	)
)

// Marketplace metrics
var (
	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of purchase requests created",
		},
	)

	OrdersDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_deleted_total",
			Help: "Total number of purchase requests deleted",
		},
	)
)

// HTTP metrics
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Metrics gin middleware recording request counters and latency
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

// Handler returns the Prometheus scrape handler wrapped for gin
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
