package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/middleware"
)

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("root")) })
	r.Get("/todos", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("todos")) })

	h := middleware.NormalizePath()(r)

	tests := []struct {
		path     string
		wantCode int
		wantBody string
	}{
		{"/todos", http.StatusOK, "todos"},
		{"/todos/", http.StatusOK, "todos"},
		{"/", http.StatusOK, "root"},
		{"/missing/", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		rec := serve(h, httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))
		if rec.Code != tt.wantCode {
			t.Errorf("GET %s: status = %d, want %d", tt.path, rec.Code, tt.wantCode)
			continue
		}
		if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
			t.Errorf("GET %s: body = %q, want %q", tt.path, rec.Body.String(), tt.wantBody)
		}
	}
}
