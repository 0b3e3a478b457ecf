package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// accessEntry is one access log line, emitted as JSON so the log can be
// filtered with jq without a custom parser.
type accessEntry struct {
	Time       string `json:"time"`
	RequestID  string `json:"requestId"`
	Method     string `json:"method"`
	Path       string `json:"path"`
	Status     int    `json:"status"`
	Bytes      int    `json:"bytes"`
	DurationMs int64  `json:"durationMs"`
}

// responseTrace records what the handler actually sent. A handler that
// writes a body without calling WriteHeader implies 200, so status
// starts there.
type responseTrace struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (t *responseTrace) WriteHeader(code int) {
	t.status = code
	t.ResponseWriter.WriteHeader(code)
}

func (t *responseTrace) Write(p []byte) (int, error) {
	n, err := t.ResponseWriter.Write(p)
	t.bytes += n
	return n, err
}

// Logger emits one access log line per request after the handler
// returns.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		trace := &responseTrace{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(trace, r)

		line, err := json.Marshal(accessEntry{
			Time:       started.UTC().Format(time.RFC3339),
			RequestID:  GetRequestID(r.Context()),
			Method:     r.Method,
			Path:       r.URL.Path,
			Status:     trace.status,
			Bytes:      trace.bytes,
			DurationMs: time.Since(started).Milliseconds(),
		})
		if err != nil {
			return
		}
		log.Println(string(line))
	})
}
