package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Counter metrics
var (
	// Auth counters
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_login_total",
			Help: "Total number of login attempts",
		},
	)

	RegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_register_total",
			Help: "Total number of user registrations",
		},
	)

	// Seller onboarding counter
	SellerOnboardCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "seller_onboard_total",
			Help: "Total number of seller onboarding requests",
		},
	)

	// Seller status transition counter
	SellerStatusTransitionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seller_status_transitions_total",
			Help: "Total number of seller status transitions",
		},
		[]string{"from", "to"},
	)

	// Seller statistics event counter
	SellerEventCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seller_events_total",
			Help: "Total number of seller statistics events",
		},
		[]string{"event"}, // event can be "order", "earnings", "withdrawal", "rating", "products"
	)

	// Document verification counter
	DocumentVerificationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seller_document_verifications_total",
			Help: "Total number of seller document verifications",
		},
		[]string{"kind"}, // kind can be "gst", "pan", "bank", "address"
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // type can be "login_failure", "invalid_token", "db_error" etc.
	)

	SellerErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seller_errors_total",
			Help: "Total number of seller operation errors",
		},
		[]string{"type"}, // type can be "invalid_argument", "not_found", "db_error" etc.
	)
)

// Histogram metrics
var (
	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seller_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	// Active tokens
	ActiveTokensGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "auth_active_tokens",
			Help: "Number of currently active authentication tokens",
		},
	)

	// Active sellers
	ActiveSellersGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "seller_active_total",
			Help: "Number of currently active approved sellers",
		},
	)

	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "seller_service_info",
			Help: "Information about the seller service",
		},
		[]string{"version"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(RegisterCounter)
	prometheus.MustRegister(SellerOnboardCounter)
	prometheus.MustRegister(SellerStatusTransitionCounter)
	prometheus.MustRegister(SellerEventCounter)
	prometheus.MustRegister(DocumentVerificationCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(SellerErrorCounter)

	// Register histograms
	prometheus.MustRegister(DBOperationDuration)

	// Register gauges
	prometheus.MustRegister(ActiveTokensGauge)
	prometheus.MustRegister(ActiveSellersGauge)
	prometheus.MustRegister(InfoGauge)

	// Set initial service info
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordSellerError records a seller operation error by type
func RecordSellerError(errorType string) {
	SellerErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordStatusTransition records a seller status transition
func RecordStatusTransition(from, to string) {
	SellerStatusTransitionCounter.With(prometheus.Labels{"from": from, "to": to}).Inc()
}

// RecordSellerEvent records a seller statistics event by type
func RecordSellerEvent(event string) {
	SellerEventCounter.With(prometheus.Labels{"event": event}).Inc()
}

// IncreaseActiveTokens increments the active tokens gauge
func IncreaseActiveTokens() {
	ActiveTokensGauge.Inc()
}

// UpdateActiveSellers updates the active sellers gauge
func UpdateActiveSellers(count int64) {
	ActiveSellersGauge.Set(float64(count))
}
