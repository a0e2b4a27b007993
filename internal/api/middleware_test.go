package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoggingMiddlewareStatus(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		status  float64
		level   string
	}{
		{"implicit", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) }, 200, "INFO"},
		{"empty", func(w http.ResponseWriter, r *http.Request) {}, 200, "INFO"},
		{"not found", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) }, 404, "WARN"},
		{"failure", func(w http.ResponseWriter, r *http.Request) { jsonError(w, http.StatusServiceUnavailable, "down") }, 503, "ERROR"},
	}

	for _, tt := range tests {
		buf := captureLogs(t)
		rec := httptest.NewRecorder()
		LoggingMiddleware(tt.handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/records?q=a", nil))

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("%s: decoding log line %q: %v", tt.name, buf.String(), err)
		}
		if entry["status"] != tt.status || entry["level"] != tt.level {
			t.Errorf("%s: got status=%v level=%v, want %v %s", tt.name, entry["status"], entry["level"], tt.status, tt.level)
		}
		if entry["path"] != "/records?q=a" {
			t.Errorf("%s: unexpected path %v", tt.name, entry["path"])
		}
		if int(tt.status) != rec.Code {
			t.Errorf("%s: response status %d, want %v", tt.name, rec.Code, tt.status)
		}
	}
}
