// Package metrics содержит счетчики Prometheus для конвейера оценки и HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "endpoint", "status"},
	)

	OrdersScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cod_orders_scored_total",
			Help: "Orders scored by the pipeline",
		},
		[]string{"source", "flagged"},
	)

	RulesTriggered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cod_rules_triggered_total",
			Help: "Rule flags raised while scoring",
		},
		[]string{"rule"},
	)

	RiskPercent = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cod_risk_percent",
			Help:    "Model risk percent of scored orders",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	ScoringErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cod_scoring_errors_total",
			Help: "Orders that failed to score",
		},
		[]string{"source", "reason"},
	)

	StreamMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cod_stream_messages_total",
			Help: "Kafka order messages consumed, by outcome",
		},
		[]string{"outcome"},
	)
)

// Исходы обработки сообщения из Kafka
const (
	OutcomeHandled    = "handled"
	OutcomeBadPayload = "bad_payload"
	OutcomeFailed     = "failed"
)

// ObserveVerdict учитывает один оцененный заказ
func ObserveVerdict(source string, flagged bool, riskPercent float64, alerts []string) {
	OrdersScored.WithLabelValues(source, strconv.FormatBool(flagged)).Inc()
	RiskPercent.Observe(riskPercent)
	for _, alert := range alerts {
		RulesTriggered.WithLabelValues(alert).Inc()
	}
}

// Middleware записывает метрики HTTP запросов
func Middleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		endpoint := c.FullPath()
		method := c.Request.Method

		if endpoint == "" {
			endpoint = "not_found"
		}

		httpRequestsTotal.WithLabelValues(serviceName, method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(serviceName, method, endpoint, status).Observe(duration)
	}
}
