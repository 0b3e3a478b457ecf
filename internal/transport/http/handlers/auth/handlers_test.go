package authhandler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"

	"timecard/internal/auth"
	"timecard/internal/domain/user"
	"timecard/internal/transport/http/api"
)

func loginWith(t *testing.T, mock pgxmock.PgxPoolIface, body string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewHandler(user.NewStore(mock), "test-secret", time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, req)
	return rec
}

func TestHandleLogin(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer mock.Close()

	hash, err := auth.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	mock.ExpectQuery("FROM users").
		WithArgs("a@b.test").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "role", "password_hash", "created_at"}).
			AddRow("u1", "a@b.test", user.RoleUser, hash, time.Now()))

	rec := loginWith(t, mock, `{"email":"a@b.test","password":"s3cret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope api.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	data, ok := envelope.Data.(map[string]any)
	if !ok || data["token"] == "" {
		t.Fatalf("expected token in response, got %+v", envelope.Data)
	}

	token, _ := data["token"].(string)
	claims, err := auth.ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != user.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestHandleLoginWrongPassword(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer mock.Close()

	hash, err := auth.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	mock.ExpectQuery("FROM users").
		WithArgs("a@b.test").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "role", "password_hash", "created_at"}).
			AddRow("u1", "a@b.test", user.RoleUser, hash, time.Now()))

	rec := loginWith(t, mock, `{"email":"a@b.test","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHandleLoginUnknownEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("FROM users").
		WithArgs("nobody@b.test").
		WillReturnError(pgx.ErrNoRows)

	rec := loginWith(t, mock, `{"email":"nobody@b.test","password":"s3cret"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
