package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// PrometheusTextfile collects OTel instruments into a private Prometheus
// registry and dumps it in the node-exporter textfile format, for batch runs
// that exit before anything could scrape them.
type PrometheusTextfile struct {
	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider
}

// NewPrometheusTextfile creates an exporter with its own registry, so
// several instances never conflict.
func NewPrometheusTextfile() (*PrometheusTextfile, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	return &PrometheusTextfile{
		registry: registry,
		provider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter)),
	}, nil
}

// Meter returns the meter whose instruments end up in the textfile.
func (p *PrometheusTextfile) Meter() metric.Meter {
	return p.provider.Meter(instrumentationName)
}

// WriteFile writes every collected metric to path. The file is replaced
// atomically.
func (p *PrometheusTextfile) WriteFile(path string) error {
	err := prometheus.WriteToTextfile(path, p.registry)
	if err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}

	return nil
}

// Shutdown releases the meter provider.
func (p *PrometheusTextfile) Shutdown(ctx context.Context) error {
	err := p.provider.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("prometheus textfile shutdown: %w", err)
	}

	return nil
}
