package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/middleware"
)

func TestTimeout_HandlerCompletesBeforeDeadline(t *testing.T) {
	t.Parallel()

	h := middleware.Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Custom", "value")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	}))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	requireStatus(t, rec, http.StatusCreated)
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "ok")
	}
	if rec.Header().Get("X-Custom") != "value" {
		t.Errorf("X-Custom = %q, want %q", rec.Header().Get("X-Custom"), "value")
	}
}

func TestTimeout_ImplicitOK(t *testing.T) {
	t.Parallel()

	rec := serve(middleware.Timeout(time.Second)(okHandler), httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	requireStatus(t, rec, http.StatusOK)
}

func TestTimeout_DeadlineCancelsHandlerAndReturns504(t *testing.T) {
	t.Parallel()

	canceled := make(chan error, 1)
	lateWrite := make(chan error, 1)

	h := middleware.Timeout(30 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		canceled <- r.Context().Err()
		// Give the middleware time to answer before writing.
		time.Sleep(20 * time.Millisecond)
		_, err := w.Write([]byte("too late"))
		lateWrite <- err
	}))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/slow", http.NoBody))

	requireStatus(t, rec, http.StatusGatewayTimeout)
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
	if err := <-canceled; !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("handler context error = %v, want DeadlineExceeded", err)
	}
	if err := <-lateWrite; !errors.Is(err, http.ErrHandlerTimeout) {
		t.Errorf("late write error = %v, want http.ErrHandlerTimeout", err)
	}
}

func TestTimeout_HeaderWrittenBeforeDeadlineStill504(t *testing.T) {
	t.Parallel()

	h := middleware.Timeout(30 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		<-r.Context().Done()
		time.Sleep(10 * time.Millisecond)
	}))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	requireStatus(t, rec, http.StatusGatewayTimeout)
}

func TestTimeout_ZeroDisables(t *testing.T) {
	t.Parallel()

	var hasDeadline bool
	h := middleware.Timeout(0)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	}))

	serve(h, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if hasDeadline {
		t.Error("context has a deadline with timeout 0, want none")
	}
}

func TestTimeout_PanicReachesRecovery(t *testing.T) {
	t.Parallel()

	h := middleware.Chain(
		middleware.Recovery(discardLogger()),
		middleware.Timeout(time.Second),
	)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	requireStatus(t, rec, http.StatusInternalServerError)
}
