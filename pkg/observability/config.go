// Package observability wires OpenTelemetry tracing, recipe metrics and
// structured logging for the codemod command line.
package observability

import (
	"log/slog"
	"time"
)

const (
	defaultServiceName        = "codemod"
	defaultShutdownTimeoutSec = 5
)

// Config holds observability settings for one codemod process.
type Config struct {
	ServiceName    string
	ServiceVersion string
	// Environment becomes deployment.environment, e.g. "ci".
	Environment string

	// OTLPEndpoint is the collector address ("localhost:4317"). Empty keeps
	// tracing and metrics as no-ops.
	OTLPEndpoint string
	OTLPHeaders  map[string]string
	OTLPInsecure bool

	// DebugTrace samples every run and logs span attributes the filter drops.
	DebugTrace bool
	// SampleRatio applies when DebugTrace is off and OTEL_TRACES_SAMPLER is
	// unset. Zero samples every root span.
	SampleRatio float64

	LogLevel slog.Level
	LogJSON  bool

	ShutdownTimeoutSec int
}

// DefaultConfig returns the zero-config settings: text logs at info level,
// no export.
func DefaultConfig() Config {
	return Config{
		ServiceName:        defaultServiceName,
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}

func (c Config) shutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSec <= 0 {
		return defaultShutdownTimeoutSec * time.Second
	}

	return time.Duration(c.ShutdownTimeoutSec) * time.Second
}
