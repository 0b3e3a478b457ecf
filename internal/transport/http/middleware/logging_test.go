package middleware

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func TestLoggerEmitsAccessEntry(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"ok":false}`))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/days/2019-07-25", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	start := strings.Index(line, "{")
	if start < 0 {
		t.Fatalf("no JSON in log output: %q", line)
	}

	var entry struct {
		Method string `json:"method"`
		Path   string `json:"path"`
		Status int    `json:"status"`
		Bytes  int    `json:"bytes"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(line[start:])), &entry); err != nil {
		t.Fatalf("log line does not parse: %v", err)
	}
	if entry.Method != http.MethodGet || entry.Path != "/api/v1/days/2019-07-25" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Status != http.StatusNotFound {
		t.Fatalf("expected recorded status 404, got %d", entry.Status)
	}
	if entry.Bytes != len(`{"ok":false}`) {
		t.Fatalf("expected body size recorded, got %d", entry.Bytes)
	}
}

func TestLoggerDefaultsStatusToOK(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if !strings.Contains(buf.String(), `"status":200`) {
		t.Fatalf("expected implicit 200 in log line: %q", buf.String())
	}
}
