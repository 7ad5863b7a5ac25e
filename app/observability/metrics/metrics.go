package metrics

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	SignupRequestsTotal    metric.Int64Counter
	LoginRequestsTotal     metric.Int64Counter
	DbQueryDurationSeconds metric.Float64Histogram
	DbQueryErrorsTotal     metric.Int64Counter
}

// NewAppMetrics creates the metric instruments on the globally configured
// MeterProvider. Call once at startup and inject into the services that
// record against it.
func NewAppMetrics() (*AppMetrics, error) {
	meter := otel.GetMeterProvider().Meter("user-service")
	m := &AppMetrics{}
	var err error

	m.SignupRequestsTotal, err = meter.Int64Counter(
		"signup_requests_total",
		metric.WithDescription("Total number of signup requests completed"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create signup_requests_total: %w", err)
	}

	m.LoginRequestsTotal, err = meter.Int64Counter(
		"login_requests_total",
		metric.WithDescription("Total number of login requests completed"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create login_requests_total: %w", err)
	}

	m.DbQueryDurationSeconds, err = meter.Float64Histogram(
		"db_query_duration_seconds",
		metric.WithDescription("Duration of database queries in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create db_query_duration_seconds: %w", err)
	}

	m.DbQueryErrorsTotal, err = meter.Int64Counter(
		"db_query_errors_total",
		metric.WithDescription("Total number of database query errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create db_query_errors_total: %w", err)
	}

	return m, nil
}
