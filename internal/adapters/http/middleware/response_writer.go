// Package middleware holds the HTTP layers of the request pipeline. Each is a
// func(http.Handler) http.Handler; Chain composes them outermost first:
//
//	Recovery → RequestID → OpenTelemetry → Logging → AdminToken → Timeout → NormalizePath → CORS → router
package middleware

import "net/http"

// statusRecorder remembers the status code sent through it. Recovery,
// OpenTelemetry and Logging wrap the writer with it.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	bytes       int64
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.wroteHeader {
		return
	}
	sr.status = code
	sr.wroteHeader = true
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	sr.wroteHeader = true
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}
