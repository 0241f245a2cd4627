package commands

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codemod/pkg/config"
)

func TestObservabilityConfig(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, `
		logging:
		  level: warn
		  format: json
		observability:
		  service_name: rewrites
		  environment: ci
		  otlp_endpoint: localhost:4317
		  otlp_headers: "api-key=secret, team=core"
		  sample_ratio: 0.25
	`))
	require.NoError(t, err)

	obsCfg := observabilityConfig(cfg, &GlobalOptions{})

	assert.Equal(t, "rewrites", obsCfg.ServiceName)
	assert.Equal(t, "ci", obsCfg.Environment)
	assert.Equal(t, "localhost:4317", obsCfg.OTLPEndpoint)
	assert.Equal(t, map[string]string{"api-key": "secret", "team": "core"}, obsCfg.OTLPHeaders)
	assert.InDelta(t, 0.25, obsCfg.SampleRatio, 1e-9)
	assert.False(t, obsCfg.DebugTrace)
	assert.True(t, obsCfg.LogJSON)
	assert.Equal(t, slog.LevelWarn, obsCfg.LogLevel)
}

func TestObservabilityConfigLevelFlags(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, "logging:\n  level: info\n"))
	require.NoError(t, err)

	assert.Equal(t, slog.LevelInfo, observabilityConfig(cfg, &GlobalOptions{}).LogLevel)
	assert.Equal(t, slog.LevelDebug, observabilityConfig(cfg, &GlobalOptions{Verbose: true}).LogLevel)
	assert.Equal(t, slog.LevelError, observabilityConfig(cfg, &GlobalOptions{Quiet: true}).LogLevel)
	assert.Equal(t, slog.LevelDebug, observabilityConfig(cfg, &GlobalOptions{Verbose: true, Quiet: true}).LogLevel)
}
