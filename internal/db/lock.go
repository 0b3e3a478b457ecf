package db

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// LockUser takes the user's row lock for the duration of tx. Row locks
// on a user's existing child rows cannot block phantom inserts, so
// every read-validate-write transaction anchors on the users row
// instead; concurrent writers for the same user serialize here.
func LockUser(ctx context.Context, tx pgx.Tx, userID string) error {
	_, err := tx.Exec(ctx, "SELECT id FROM users WHERE id = $1 FOR UPDATE", userID)
	return err
}
