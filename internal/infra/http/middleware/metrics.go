package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

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
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	chargesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "charges_created_total",
			Help: "Total number of charges created",
		},
		[]string{"tipo", "status"},
	)

	paymentsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "monthly_payments_generated_total",
			Help: "Total number of monthly payments generated",
		},
	)

	remindersSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_reminders_sent_total",
			Help: "Total number of payment reminders sent",
		},
	)

	webhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Total number of webhook events by kind",
		},
		[]string{"kind"},
	)

	chargesReaped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "expired_charges_reaped_total",
			Help: "Total number of expired pending charges deleted",
		},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordChargeCreated(tipo, status string) {
	chargesCreated.WithLabelValues(tipo, status).Inc()
}

func RecordPaymentsGenerated(count int) {
	paymentsGenerated.Add(float64(count))
}

func RecordRemindersSent(count int) {
	remindersSent.Add(float64(count))
}

func RecordWebhookEvent(kind string) {
	webhookEvents.WithLabelValues(kind).Inc()
}

func RecordChargesReaped(count int) {
	chargesReaped.Add(float64(count))
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
