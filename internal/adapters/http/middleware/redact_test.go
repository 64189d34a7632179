package middleware_test

import (
	"net/http"
	"testing"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/middleware"
)

func TestRedactHeaders(t *testing.T) {
	t.Parallel()

	headers := http.Header{
		"Authorization": {"Bearer abc"},
		"Cookie":        {"session=1"},
		"X-Api-Key":     {"k"},
		"Accept":        {"text/plain", "application/json"},
		"X-Request-Id":  {"r-1"},
	}

	got := make(map[string]string)
	for _, a := range middleware.RedactHeaders(headers) {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{
		"Authorization": "[REDACTED]",
		"Cookie":        "[REDACTED]",
		"X-Api-Key":     "[REDACTED]",
		"Accept":        "text/plain,application/json",
		"X-Request-Id":  "r-1",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d attrs, want %d: %v", len(got), len(want), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestRedactHeaders_Empty(t *testing.T) {
	t.Parallel()

	if attrs := middleware.RedactHeaders(http.Header{}); len(attrs) != 0 {
		t.Errorf("RedactHeaders(empty) = %v, want none", attrs)
	}
}
