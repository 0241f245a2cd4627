package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codemod/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".codemod.yaml")
	require.NoError(t, os.WriteFile(path, []byte(dedent.Dedent(content)), 0o600))

	return path
}

// optionValue looks a key up the way recipe option decoding does, ignoring
// case.
func optionValue(options map[string]any, key string) any {
	for candidate, value := range options {
		if strings.EqualFold(candidate, key) {
			return value
		}
	}

	return nil
}

func TestLoadConfig_EmptyFile_UsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Empty(t, cfg.Recipes)
	assert.Equal(t, config.DefaultRunWorkers, cfg.Run.Workers)
	assert.Equal(t, config.DefaultRunMaxChainDepth, cfg.Run.MaxChainDepth)
	assert.Equal(t, config.DefaultRunSkipVendored, cfg.Run.SkipVendored)
	assert.Equal(t, config.DefaultLoggingLevel, cfg.Logging.Level)
	assert.Equal(t, config.DefaultLoggingFormat, cfg.Logging.Format)
	assert.Equal(t, config.DefaultServiceName, cfg.Observability.ServiceName)
	assert.Empty(t, cfg.Observability.OTLPEndpoint)
}

func TestLoadConfig_ValidFile_Unmarshals(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
		recipes:
		  - name: spring.ConstructorInjection
		    options:
		      generateNonNullAnnotations: true
		  - name: java.RenameConstant
		    options:
		      declaringType: a.Mode
		      renames: ["OLD=NEW"]
		run:
		  workers: 8
		  max_chain_depth: 6
		  skip_vendored: false
		logging:
		  level: debug
		  format: json
		observability:
		  otlp_endpoint: localhost:4317
		  otlp_insecure: true
		  metrics_file: /tmp/codemod.prom
	`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"spring.ConstructorInjection", "java.RenameConstant"}, cfg.RecipeNames())
	assert.Equal(t, true, optionValue(cfg.Recipes[0].Options, "generateNonNullAnnotations"))
	assert.Equal(t, "a.Mode", optionValue(cfg.Recipes[1].Options, "declaringType"))
	assert.Equal(t, []any{"OLD=NEW"}, optionValue(cfg.Recipes[1].Options, "renames"))
	assert.Equal(t, 8, cfg.Run.Workers)
	assert.Equal(t, 6, cfg.Run.MaxChainDepth)
	assert.False(t, cfg.Run.SkipVendored)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "localhost:4317", cfg.Observability.OTLPEndpoint)
	assert.True(t, cfg.Observability.OTLPInsecure)
	assert.Equal(t, "/tmp/codemod.prom", cfg.Observability.MetricsFile)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{name: "negative workers", content: "run:\n  workers: -1\n", want: config.ErrInvalidWorkers},
		{name: "zero depth", content: "run:\n  max_chain_depth: 0\n", want: config.ErrInvalidChainDepth},
		{name: "log level", content: "logging:\n  level: loud\n", want: config.ErrInvalidLogLevel},
		{name: "log format", content: "logging:\n  format: xml\n", want: config.ErrInvalidLogFormat},
		{name: "sample ratio", content: "observability:\n  sample_ratio: 1.5\n", want: config.ErrInvalidSampleRatio},
		{name: "unnamed recipe", content: "recipes:\n  - options:\n      a: b\n", want: config.ErrMissingRecipeName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "run: [unterminated\n"))
	require.Error(t, err)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("CODEMOD_RUN_WORKERS", "3")
	t.Setenv("CODEMOD_LOGGING_LEVEL", "warn")

	cfg, err := config.LoadConfig(writeConfig(t, "run:\n  workers: 8\n"))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Run.Workers)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadConfig_EnvConfigPath(t *testing.T) {
	t.Setenv(config.EnvConfigPath, writeConfig(t, "run:\n  workers: 3\n"))

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Run.Workers)

	cfg, err = config.LoadConfig(writeConfig(t, "run:\n  workers: 5\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Run.Workers)
}
