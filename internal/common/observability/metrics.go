package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability records one metric set per CLI run. A short-lived process
// cannot be scraped, so the registry is pushed to a Prometheus pushgateway
// when one is configured.
type Observability struct {
	registry      *prometheus.Registry
	meterProvider *metric.MeterProvider
	runCounter    otelmetric.Int64Counter
	runDuration   otelmetric.Float64Histogram

	pushURL string
	job     string
}

func New(serviceName, pushURL, job string) (*Observability, error) {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	runCounter, err := meter.Int64Counter(
		"agentcore.runs",
		otelmetric.WithDescription("Number of command runs"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram(
		"agentcore.run.duration",
		otelmetric.WithDescription("Command run duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Observability{
		registry:      registry,
		meterProvider: provider,
		runCounter:    runCounter,
		runDuration:   runDuration,
		pushURL:       pushURL,
		job:           job,
	}, nil
}

// RecordRun records the outcome of one command. status is "success" or an
// error code.
func (o *Observability) RecordRun(ctx context.Context, command, status string, duration time.Duration) {
	attrs := otelmetric.WithAttributes(
		attribute.String("command", command),
		attribute.String("status", status),
	)
	o.runCounter.Add(ctx, 1, attrs)
	o.runDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
}

// Push sends the current metrics to the pushgateway. It is a no-op when no
// pushgateway is configured.
func (o *Observability) Push(ctx context.Context) error {
	if o.pushURL == "" {
		return nil
	}
	if err := push.New(o.pushURL, o.job).Gatherer(o.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = o.meterProvider.Shutdown(ctx)
	}
}
