package config

// Run defaults.
const (
	DefaultRunWorkers       = 0
	DefaultRunMaxChainDepth = 4
	DefaultRunSkipVendored  = true
)

// Logging defaults.
const (
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "text"
)

// Observability defaults.
const (
	DefaultServiceName  = "codemod"
	DefaultEnvironment  = "local"
	DefaultOTLPInsecure = false
)

// LogLevels lists the accepted logging.level values.
//
//nolint:gochecknoglobals // Fixed lookup table.
var LogLevels = []string{"debug", "info", "warn", "error"}

// LogFormats lists the accepted logging.format values.
//
//nolint:gochecknoglobals // Fixed lookup table.
var LogFormats = []string{"text", "json"}
