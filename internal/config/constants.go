package config

import "time"

// Environment variable names.
const (
	// ConfigFileEnvVar points NewConfig at an explicit config file.
	ConfigFileEnvVar = "LINGOPHER_CONFIG_FILE"
	// EnvPrefix prefixes every generated override variable.
	EnvPrefix = "LINGOPHER"
)

// File locations.
const (
	// DefaultConfigFileName is the config file name under the home directory.
	DefaultConfigFileName = ".lingopher.yaml"
)

// Timeout constants
const (
	// DefaultHTTPTimeout bounds a single HTTP request round trip.
	DefaultHTTPTimeout = 30 * time.Second
	// CLIRequestTimeout bounds one CLI invocation end to end, retries included.
	CLIRequestTimeout = 5 * time.Minute
	// TelemetryShutdownTimeout bounds the telemetry flush on CLI exit.
	TelemetryShutdownTimeout = 5 * time.Second
)

// Service constants
const (
	// DefaultServerURL is the production API endpoint, overridable for
	// self-hosted or staging deployments.
	DefaultServerURL = "https://api.lingopher.com"
)
