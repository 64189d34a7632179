package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/middleware"
)

func TestRequestID_PreservesInbound(t *testing.T) {
	t.Parallel()

	var seen string
	h := middleware.RequestID("x-request-id")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set("x-request-id", "abc")
	rec := serve(h, req)

	if got := rec.Header().Get("x-request-id"); got != "abc" {
		t.Errorf("response header = %q, want %q", got, "abc")
	}
	if seen != "abc" {
		t.Errorf("context ID = %q, want %q", seen, "abc")
	}
}

func TestRequestID_GeneratesUniqueUUIDs(t *testing.T) {
	t.Parallel()

	h := middleware.RequestID("x-request-id")(okHandler)

	seen := make(map[string]bool)
	for range 100 {
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
		id := rec.Header().Get("x-request-id")

		parsed, err := uuid.Parse(id)
		if err != nil {
			t.Fatalf("generated ID %q is not a UUID: %v", id, err)
		}
		if parsed.Version() != 4 {
			t.Errorf("generated ID %q has version %d, want 4", id, parsed.Version())
		}
		if seen[id] {
			t.Fatalf("duplicate request ID %q", id)
		}
		seen[id] = true
	}
}

func TestRequestID_CustomHeader(t *testing.T) {
	t.Parallel()

	h := middleware.RequestID("x-trace-id")(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set("X-Trace-Id", "t-1")
	rec := serve(h, req)

	if got := rec.Header().Get("x-trace-id"); got != "t-1" {
		t.Errorf("x-trace-id = %q, want %q", got, "t-1")
	}
	if got := rec.Header().Get("x-request-id"); got != "" {
		t.Errorf("x-request-id = %q, want it unset", got)
	}
}

func TestRequestID_EmptyInboundIsReplaced(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set("x-request-id", "")
	rec := serve(middleware.RequestID("x-request-id")(okHandler), req)

	if rec.Header().Get("x-request-id") == "" {
		t.Error("empty inbound request ID was echoed, want a generated one")
	}
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	t.Parallel()

	if got := middleware.RequestIDFromContext(httptest.NewRequest(http.MethodGet, "/", http.NoBody).Context()); got != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", got)
	}
}
