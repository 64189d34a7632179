package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/http/httpguts"
)

// serverSettings is the raw, unvalidated form of the server section.
type serverSettings struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	RequestIDHeader string        `koanf:"request_id_header"`
	TimeoutSecs     string        `koanf:"timeout_secs"`
}

// corsSettings is the raw form of the cors section. Both fields are kept as
// strings so that presence can be told apart from content.
type corsSettings struct {
	AllowedOrigins string `koanf:"allowed_origins"`
	Disabled       string `koanf:"disabled"`
}

// resolveServer turns raw settings into a ServerConfig. All problems are
// reported together.
func resolveServer(s serverSettings, c corsSettings) (ServerConfig, error) {
	header, headerErr := resolveRequestIDHeader(s.RequestIDHeader)
	timeout, timeoutErr := resolveTimeout(s.TimeoutSecs)
	cors, corsErr := resolveCORS(c)

	if err := errors.Join(headerErr, timeoutErr, corsErr); err != nil {
		return ServerConfig{}, err
	}

	return ServerConfig{
		Host:            s.Host,
		Port:            s.Port,
		ReadTimeout:     s.ReadTimeout,
		IdleTimeout:     s.IdleTimeout,
		RequestIDHeader: header,
		Timeout:         timeout,
		CORS:            cors,
	}, nil
}

// resolveRequestIDHeader accepts only lowercase header field-name tokens.
func resolveRequestIDHeader(h string) (string, error) {
	if !httpguts.ValidHeaderFieldName(h) || strings.ToLower(h) != h {
		return "", fmt.Errorf("%w: invalid REQUEST_ID_HEADER %q: must be a lowercase header name", ErrInvalidConfig, h)
	}
	return h, nil
}

// resolveTimeout parses a non-negative whole number of seconds.
func resolveTimeout(secs string) (time.Duration, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(secs), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: TIMEOUT_SECS must be a non-negative integer, got %q", ErrInvalidConfig, secs)
	}
	if n > math.MaxInt64/uint64(time.Second) {
		return 0, fmt.Errorf("%w: TIMEOUT_SECS %d is out of range", ErrInvalidConfig, n)
	}
	return time.Duration(n) * time.Second, nil
}

// resolveCORS applies the precedence Disabled > Allow-list > Permissive.
// An allow-list that is empty after trimming leaves the policy permissive.
func resolveCORS(c corsSettings) (CORSPolicy, error) {
	if c.Disabled != "" {
		return CORSDisabled{}, nil
	}

	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if !httpguts.ValidHeaderFieldValue(o) {
			return nil, fmt.Errorf("%w: invalid origin in CORS_ALLOWED_ORIGINS: %q", ErrInvalidConfig, o)
		}
		origins = append(origins, o)
	}

	if len(origins) == 0 {
		return CORSPermissive{}, nil
	}
	return CORSAllow{Origins: origins}, nil
}
