// Package config provides configuration loading and validation for the service.
// Configuration is loaded with koanf from built-in defaults, an optional YAML
// file and the environment, then resolved into immutable runtime policy.
package config

import (
	"errors"
	"time"
)

// ErrInvalidConfig is wrapped by every error returned from Load. The process
// must not start when it is returned.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"-"`
	Database  DatabaseConfig  `koanf:"database"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Auth      AuthConfig      `koanf:"auth"`
	Log       LogConfig       `koanf:"log"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig is the resolved HTTP policy. It is built once by Load and is
// read-only afterwards.
type ServerConfig struct {
	Host        string
	Port        int
	ReadTimeout time.Duration
	IdleTimeout time.Duration

	// RequestIDHeader is the lowercase header name used to read and echo
	// request identifiers.
	RequestIDHeader string

	// Timeout bounds every handler. Zero disables the timeout layer.
	Timeout time.Duration

	CORS CORSPolicy
}

// DatabaseConfig holds PostgreSQL pool settings.
type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxConns        int32         `koanf:"max_conns"`
	MinConns        int32         `koanf:"min_conns"`
	MaxConnLifetime time.Duration `koanf:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `koanf:"max_conn_idle_time"`
	Migrate         bool          `koanf:"migrate"`
}

// BreakerConfig holds the storage circuit breaker settings.
type BreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// AuthConfig holds the optional static bearer token that gates the service.
// When AdminTokenSSMParameter is set the token is fetched from AWS SSM at
// startup instead of being read from AdminToken.
type AuthConfig struct {
	AdminToken             string `koanf:"admin_token"`
	AdminTokenSSMParameter string `koanf:"admin_token_ssm_parameter"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}

// CORSPolicy selects how cross-origin requests are answered. It is a closed
// set: CORSPermissive, CORSAllow and CORSDisabled are its only members, and
// go-check-sumtype (golangci-lint) rejects type switches that miss one.
//
//sumtype:decl
type CORSPolicy interface {
	corsPolicy()
}

// CORSPermissive allows any origin, reflected as "*", with credentials.
type CORSPermissive struct{}

// CORSAllow allows only the listed origins, matched exactly.
type CORSAllow struct {
	Origins []string
}

// CORSDisabled adds no CORS headers at all.
type CORSDisabled struct{}

func (CORSPermissive) corsPolicy() {}
func (CORSAllow) corsPolicy()      {}
func (CORSDisabled) corsPolicy()   {}
