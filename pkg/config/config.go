// Package config provides YAML-based project configuration for codemod.
package config

import (
	"errors"
	"fmt"
	"slices"
)

// Sentinel validation errors.
var (
	ErrInvalidWorkers     = errors.New("workers must not be negative")
	ErrInvalidChainDepth  = errors.New("max chain depth must be positive")
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrInvalidLogFormat   = errors.New("invalid log format")
	ErrMissingRecipeName  = errors.New("recipe entry without a name")
	ErrInvalidSampleRatio = errors.New("sample ratio must be between 0 and 1")
)

// Config is the top-level configuration struct for codemod.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Recipes       []RecipeConfig      `mapstructure:"recipes"`
	Run           RunConfig           `mapstructure:"run"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// RecipeConfig selects a recipe, or a glob of recipes, and its options.
type RecipeConfig struct {
	Name    string         `mapstructure:"name"`
	Options map[string]any `mapstructure:"options"`
}

// RunConfig holds engine knobs.
type RunConfig struct {
	// Workers bounds concurrent units; 0 means GOMAXPROCS.
	Workers       int  `mapstructure:"workers"`
	MaxChainDepth int  `mapstructure:"max_chain_depth"`
	SkipVendored  bool `mapstructure:"skip_vendored"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ObservabilityConfig holds telemetry settings.
type ObservabilityConfig struct {
	ServiceName  string `mapstructure:"service_name"`
	Environment  string `mapstructure:"environment"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
	// OTLPHeaders is a "key=value,key=value" list sent with every export.
	OTLPHeaders string  `mapstructure:"otlp_headers"`
	DebugTrace  bool    `mapstructure:"debug_trace"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
	// MetricsFile receives a Prometheus textfile snapshot after each run.
	MetricsFile string `mapstructure:"metrics_file"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Run.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Run.Workers)
	}

	if c.Run.MaxChainDepth <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidChainDepth, c.Run.MaxChainDepth)
	}

	if !slices.Contains(LogLevels, c.Logging.Level) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	if !slices.Contains(LogFormats, c.Logging.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	if c.Observability.SampleRatio < 0 || c.Observability.SampleRatio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRatio, c.Observability.SampleRatio)
	}

	for idx, recipe := range c.Recipes {
		if recipe.Name == "" {
			return fmt.Errorf("%w: recipes[%d]", ErrMissingRecipeName, idx)
		}
	}

	return nil
}

// RecipeNames returns the configured recipe names in order.
func (c *Config) RecipeNames() []string {
	names := make([]string, 0, len(c.Recipes))
	for _, recipe := range c.Recipes {
		names = append(names, recipe.Name)
	}

	return names
}

// RecipeOptions maps each configured recipe name to its options. Later
// entries for the same name override earlier keys.
func (c *Config) RecipeOptions() map[string]map[string]any {
	options := make(map[string]map[string]any, len(c.Recipes))

	for _, recipe := range c.Recipes {
		if len(recipe.Options) == 0 {
			continue
		}

		merged := options[recipe.Name]
		if merged == nil {
			merged = make(map[string]any, len(recipe.Options))
			options[recipe.Name] = merged
		}

		for key, value := range recipe.Options {
			merged[key] = value
		}
	}

	return options
}
