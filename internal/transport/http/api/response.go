// Package api shapes every HTTP response body. Handlers never encode
// JSON themselves; they hand data or an error code to a helper here so
// clients always see the same envelope.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorBody carries a machine-readable code next to the human message.
// Codes are part of the API contract; clients branch on values such as
// "day_conflict", "condition_overlap" and "schedule_gap", so renaming
// one breaks them.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the uniform response shape. Exactly one of Data and
// Error is set, and RequestID echoes the id assigned by the request id
// middleware so a client can quote it when reporting a problem.
type Envelope struct {
	OK        bool       `json:"ok"`
	Data      any        `json:"data,omitempty"`
	Error     *ErrorBody `json:"error,omitempty"`
	RequestID string     `json:"requestId,omitempty"`
}

func write(w http.ResponseWriter, status int, envelope Envelope) {
	body, err := json.Marshal(envelope)
	if err != nil {
		slog.Error("response marshal failed", "err", err, "requestId", envelope.RequestID)
		http.Error(w, `{"ok":false}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Warn("response write failed", "err", err, "requestId", envelope.RequestID)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	write(w, http.StatusOK, Envelope{OK: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	write(w, http.StatusCreated, Envelope{OK: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	write(w, status, Envelope{Error: &ErrorBody{Code: code, Message: message}, RequestID: requestID})
}
