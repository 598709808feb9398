// Package config handles CLI configuration loading from a YAML file with
// environment variable overrides.
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"lingopher/apierror"
)

// DefaultsConfig holds per-user translation defaults applied when a command
// line flag is absent.
type DefaultsConfig struct {
	SourceLang string `json:"source_lang,omitempty" yaml:"source_lang,omitempty"`
	TargetLang string `json:"target_lang,omitempty" yaml:"target_lang,omitempty"`
	Formality  string `json:"formality,omitempty" yaml:"formality,omitempty"`
}

// OpenTelemetryConfig holds all OpenTelemetry-related configuration
type OpenTelemetryConfig struct {
	Endpoint       string            `json:"endpoint" yaml:"endpoint"`               // Default: "http://localhost:4317"
	Protocol       string            `json:"protocol" yaml:"protocol"`               // "grpc" or "http", default: "grpc"
	Insecure       bool              `json:"insecure" yaml:"insecure"`               // Default: true (for localhost)
	Headers        map[string]string `json:"headers" yaml:"headers"`                 // For authenticated endpoints
	ServiceName    string            `json:"service_name" yaml:"service_name"`       // Default: "lingopher-cli"
	ServiceVersion string            `json:"service_version" yaml:"service_version"` // From version package
	EnableTracing  bool              `json:"enable_tracing" yaml:"enable_tracing"`
	EnableMetrics  bool              `json:"enable_metrics" yaml:"enable_metrics"`
	EnableLogging  bool              `json:"enable_logging" yaml:"enable_logging"`
	SamplingRate   float64           `json:"sampling_rate" yaml:"sampling_rate"` // Default: 1.0 (100%)
	UseAutoSDK     bool              `json:"use_auto_sdk" yaml:"use_auto_sdk"`
}

// Config holds all configuration for the lingopher CLI. Retry tuning beyond
// MaxRetries is flag-only: durations do not survive YAML round-trips cleanly,
// and the library defaults are sensible.
type Config struct {
	AuthKey       string              `json:"auth_key" yaml:"auth_key"`
	ServerURL     string              `json:"server_url,omitempty" yaml:"server_url,omitempty"`
	MaxRetries    int                 `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
	MaxConcurrent int                 `json:"max_concurrent,omitempty" yaml:"max_concurrent,omitempty"`
	LogLevel      string              `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	Defaults      DefaultsConfig      `json:"defaults,omitempty" yaml:"defaults,omitempty"`
	OpenTelemetry OpenTelemetryConfig `json:"open_telemetry,omitempty" yaml:"open_telemetry,omitempty"`
}

// NewConfig loads configuration from the YAML file first, then overrides
// values with LINGOPHER_* environment variables. A missing file is not an
// error unless LINGOPHER_CONFIG_FILE names it explicitly: the CLI can run
// on environment variables alone.
func NewConfig() (result0 *Config, err error) {
	config, err := loadConfigWithOverrides()
	if err != nil {
		return nil, apierror.WrapErrorf(apierror.ErrConfigInvalid, "failed to load config: %w", err)
	}

	config.overrideFromEnv()

	return config, nil
}

// DefaultConfigPath returns where the configure command writes and NewConfig
// reads when LINGOPHER_CONFIG_FILE is unset: ~/.lingopher.yaml, falling back
// to the working directory when the home directory is unknown.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(home, DefaultConfigFileName)
}

// Save writes the config to path as YAML, creating it private to the user
// since it carries the auth key.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return apierror.WrapErrorf(err, "failed to encode config")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return apierror.WrapErrorf(err, "failed to write config to %s", path)
	}
	return nil
}

// overrideFromEnv overrides config values with environment variables using reflection
func (c *Config) overrideFromEnv() {
	overrideStructFromEnvWithPrefix(c, EnvPrefix)
}

// overrideStructFromEnvWithPrefix recursively overrides struct fields with
// environment variables named after their yaml tags, e.g. the auth_key field
// maps to LINGOPHER_AUTH_KEY and the nested open_telemetry endpoint to
// LINGOPHER_OPEN_TELEMETRY_ENDPOINT.
func overrideStructFromEnvWithPrefix(v interface{}, prefix string) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		// Skip unexported fields
		if !field.CanSet() {
			continue
		}

		yamlTag := fieldType.Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}
		yamlTag = strings.Split(yamlTag, ",")[0]
		if yamlTag == "" {
			continue
		}

		// Convert yaml tag to environment variable name
		envKey := strings.ToUpper(strings.ReplaceAll(yamlTag, "-", "_"))
		if prefix != "" {
			envKey = prefix + "_" + envKey
		}

		switch field.Kind() {
		case reflect.String:
			if envVal := os.Getenv(envKey); envVal != "" {
				field.SetString(envVal)
			}
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if envVal := os.Getenv(envKey); envVal != "" {
				if intVal, err := strconv.ParseInt(envVal, 10, 64); err == nil {
					field.SetInt(intVal)
				}
			}
		case reflect.Float32, reflect.Float64:
			if envVal := os.Getenv(envKey); envVal != "" {
				if floatVal, err := strconv.ParseFloat(envVal, 64); err == nil {
					field.SetFloat(floatVal)
				}
			}
		case reflect.Bool:
			if envVal := os.Getenv(envKey); envVal != "" {
				if boolVal, err := strconv.ParseBool(envVal); err == nil {
					field.SetBool(boolVal)
				}
			}
		case reflect.Slice:
			if envVal := os.Getenv(envKey); envVal != "" {
				if field.Type().Elem().Kind() == reflect.String {
					field.Set(reflect.ValueOf(strings.Split(envVal, ",")))
				}
			}
		case reflect.Struct:
			if field.CanAddr() {
				overrideStructFromEnvWithPrefix(field.Addr().Interface(), envKey)
			}
		case reflect.Ptr:
			if !field.IsNil() && field.Elem().Kind() == reflect.Struct {
				overrideStructFromEnvWithPrefix(field.Interface(), envKey)
			}
		}
	}
}

// loadConfigWithOverrides loads the config file named by LINGOPHER_CONFIG_FILE,
// or the default path when unset.
func loadConfigWithOverrides() (result0 *Config, err error) {
	if envPath := os.Getenv(ConfigFileEnvVar); envPath != "" {
		config, err := loadConfigFromFile(envPath)
		if err != nil {
			return nil, apierror.WrapErrorf(err, "failed to load config from %s", envPath)
		}
		return config, nil
	}

	config, err := loadConfigFromFile(DefaultConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	return config, nil
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (result0 *Config, err error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(yamlFile, &config); err != nil {
		return nil, err
	}

	return &config, nil
}
