package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"timecard/internal/db"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Store struct {
	DB db.Pool
}

func NewStore(pool db.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) Create(ctx context.Context, email, role, passwordHash string) (User, error) {
	created := User{ID: uuid.NewString(), Email: email, Role: role, PasswordHash: passwordHash}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (id, email, role, password_hash)
    VALUES ($1,$2,$3,$4)
    RETURNING created_at
  `, created.ID, created.Email, created.Role, created.PasswordHash).Scan(&created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return created, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (User, error) {
	return s.scanOne(s.DB.QueryRow(ctx, `
    SELECT id, email, role, password_hash, created_at
    FROM users
    WHERE email = $1
  `, email))
}

func (s *Store) FindByID(ctx context.Context, userID string) (User, error) {
	return s.scanOne(s.DB.QueryRow(ctx, `
    SELECT id, email, role, password_hash, created_at
    FROM users
    WHERE id = $1
  `, userID))
}

func (s *Store) scanOne(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Role, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}
