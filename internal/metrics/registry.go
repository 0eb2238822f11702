// Package metrics provides Prometheus metrics for calls made to the Symmetry backend.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EnvMetricsAddr enables the /metrics endpoint when set (e.g. "127.0.0.1:9464").
const EnvMetricsAddr = "SYMMETRY_METRICS_ADDR"

// StatusTransportError labels requests that never produced an HTTP response.
const StatusTransportError = "transport_error"

var (
	// APIRequestsTotal counts backend requests by method, path, and status
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "symmetry_api_requests_total",
			Help: "Total number of requests sent to the Symmetry backend",
		},
		[]string{"method", "path", "status"},
	)

	// APIRequestDuration measures backend request duration in seconds
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "symmetry_api_request_duration_seconds",
			Help:    "Symmetry backend request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// SectionOperationsTotal counts section operations by section, operation and outcome
	SectionOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "symmetry_section_operations_total",
			Help: "Total number of section operations by outcome",
		},
		[]string{"section", "operation", "outcome"},
	)
)

// Outcome labels for SectionOperationsTotal.
const (
	OutcomeSuccess    = "success"
	OutcomeFailure    = "failure"
	OutcomeSuperseded = "superseded"
)

// RecordAPIRequest records one backend request. statusCode is 0 for transport errors.
func RecordAPIRequest(method, path string, statusCode int, duration time.Duration) {
	status := StatusTransportError
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	APIRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordSectionOperation records the outcome of a section operation.
func RecordSectionOperation(section, operation, outcome string) {
	SectionOperationsTotal.WithLabelValues(section, operation, outcome).Inc()
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics endpoint listening", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
