package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "APP_"

// envAliases maps the service's unprefixed environment variables to koanf keys.
var envAliases = map[string]string{
	"REQUEST_ID_HEADER":         "server.request_id_header",
	"TIMEOUT_SECS":              "server.timeout_secs",
	"CORS_ALLOWED_ORIGINS":      "cors.allowed_origins",
	"CORS_DISABLED":             "cors.disabled",
	"ADMIN_TOKEN":               "auth.admin_token",
	"ADMIN_TOKEN_SSM_PARAMETER": "auth.admin_token_ssm_parameter",
	"DATABASE_URL":              "database.url",
}

// Option configures the Load function.
type Option func(*loadOptions)

type loadOptions struct {
	configFile string
	environ    func() []string
}

// WithConfigFile sets an optional YAML file layered between the defaults and
// the environment. An empty path skips the file layer.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) {
		o.configFile = path
	}
}

// WithEnviron replaces os.Environ as the source of environment variables.
// Entries use the "KEY=value" form.
func WithEnviron(fn func() []string) Option {
	return func(o *loadOptions) {
		o.environ = fn
	}
}

// Load reads configuration using a 3-layer hierarchy (highest precedence last):
//
//  1. Built-in defaults
//  2. Optional YAML file (WithConfigFile)
//  3. Environment variables
//
// The service variables are read under their documented names:
//
//	REQUEST_ID_HEADER     -> server.request_id_header
//	TIMEOUT_SECS          -> server.timeout_secs
//	CORS_ALLOWED_ORIGINS  -> cors.allowed_origins
//	CORS_DISABLED         -> cors.disabled
//	ADMIN_TOKEN           -> auth.admin_token
//	DATABASE_URL          -> database.url
//
// Everything else is reachable with the APP_ prefix, matched against the
// loaded keys so that field-internal underscores survive:
//
//	APP_SERVER_PORT              -> server.port
//	APP_DATABASE_MAX_CONNS       -> database.max_conns
//	APP_TELEMETRY_SERVICE_NAME   -> telemetry.service_name
//
// Every returned error wraps ErrInvalidConfig.
func Load(opts ...Option) (*Config, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	k := koanf.New(".")

	// Layer 1: Defaults.
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("%w: loading defaults: %w", ErrInvalidConfig, err)
	}

	// Layer 2: Optional YAML file.
	if o.configFile != "" {
		if err := k.Load(file.Provider(o.configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: loading config file %s: %w", ErrInvalidConfig, o.configFile, err)
		}
	}

	// Layer 3: Environment variables.
	envLookup := buildEnvLookup(k.Keys())

	if err := k.Load(env.Provider(".", env.Opt{
		EnvironFunc: o.environ,
		TransformFunc: func(key, value string) (string, any) {
			return envKey(envLookup, key), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("%w: loading env vars: %w", ErrInvalidConfig, err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: unmarshalling config: %w", ErrInvalidConfig, err)
	}

	var (
		srv  serverSettings
		cors corsSettings
	)
	if err := k.Unmarshal("server", &srv); err != nil {
		return nil, fmt.Errorf("%w: unmarshalling server config: %w", ErrInvalidConfig, err)
	}
	if err := k.Unmarshal("cors", &cors); err != nil {
		return nil, fmt.Errorf("%w: unmarshalling cors config: %w", ErrInvalidConfig, err)
	}

	server, err := resolveServer(srv, cors)
	if err != nil {
		return nil, err
	}
	cfg.Server = server

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &cfg, nil
}

// envKey maps an environment variable name to a koanf key. An empty result
// tells the env provider to skip the variable.
func envKey(lookup map[string]string, name string) string {
	if key, ok := envAliases[name]; ok {
		return key
	}
	if !strings.HasPrefix(name, envPrefix) {
		return ""
	}

	name = strings.ToLower(strings.TrimPrefix(name, envPrefix))
	if key, ok := lookup[name]; ok {
		return key
	}

	// Fallback: simple underscore-to-dot replacement.
	return strings.ReplaceAll(name, "_", ".")
}

// buildEnvLookup creates a reverse mapping from env-style keys to koanf dotted keys.
// For each koanf key like "server.read_timeout", the env form "server_read_timeout"
// is computed by replacing dots with underscores. This allows unambiguous matching
// when an env var arrives (e.g. APP_SERVER_READ_TIMEOUT -> "server.read_timeout").
func buildEnvLookup(keys []string) map[string]string {
	lookup := make(map[string]string, len(keys))
	for _, key := range keys {
		envKey := strings.ReplaceAll(key, ".", "_")
		lookup[envKey] = key
	}
	return lookup
}
