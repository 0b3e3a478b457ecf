package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return mock
}

func TestCreateDuplicateEmail(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	store := NewStore(mock)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), "a@b.test", RoleUser, "hash").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := store.Create(context.Background(), "a@b.test", RoleUser, "hash")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestFindByEmail(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	store := NewStore(mock)

	mock.ExpectQuery("FROM users").
		WithArgs("a@b.test").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "role", "password_hash", "created_at"}).
			AddRow("u1", "a@b.test", RoleAdmin, "hash", time.Now()))

	found, err := store.FindByEmail(context.Background(), "a@b.test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != "u1" || !found.IsAdmin() {
		t.Fatalf("unexpected user: %+v", found)
	}
}

func TestFindByEmailNotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	store := NewStore(mock)

	mock.ExpectQuery("FROM users").
		WithArgs("missing@b.test").
		WillReturnError(pgx.ErrNoRows)

	_, err := store.FindByEmail(context.Background(), "missing@b.test")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
