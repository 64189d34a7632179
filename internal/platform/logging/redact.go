package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders lists the lowercase HTTP header names whose values are
// never logged. The HTTP logging middleware reads the same set.
var SensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"x-api-key":     true,
}

// sensitiveFields are attribute keys redacted wherever they appear.
var sensitiveFields = []string{
	"admin_token",
	"database_url",
	"password",
	"secret",
	"token",
}

var (
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)

	// postgresURLPattern matches connection strings carrying a password.
	postgresURLPattern = regexp.MustCompile(`postgres(?:ql)?://[^:/@\s]+:[^@\s]+@`)

	jwtPattern = regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`)
)

// newRedactAttr returns the masq ReplaceAttr used by every handler New builds.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0, len(SensitiveHeaders)+len(sensitiveFields)+4)

	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, name := range sensitiveFields {
		opts = append(opts, masq.WithFieldName(name))
	}

	opts = append(opts,
		masq.WithFieldPrefix("secret_"),
		masq.WithRegex(bearerPattern),
		masq.WithRegex(postgresURLPattern),
		masq.WithRegex(jwtPattern),
	)

	return masq.New(opts...)
}
