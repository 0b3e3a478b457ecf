package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"timecard/internal/db"
)

const conditionColumns = "id, user_id, monday, tuesday, wednesday, thursday, friday, saturday, sunday, valid_from, valid_to, initial_vacation, consumed_vacation"

type Store struct {
	DB db.Pool
}

func NewStore(pool db.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) FindByUser(ctx context.Context, userID string) ([]Condition, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+conditionColumns+`
    FROM conditions
    WHERE user_id = $1
    ORDER BY valid_from
  `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectConditions(rows)
}

func (s *Store) FindByID(ctx context.Context, userID, conditionID string) (Condition, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+conditionColumns+`
    FROM conditions
    WHERE id = $1 AND user_id = $2
  `, conditionID, userID)
	condition, err := scanCondition(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Condition{}, ErrNotFound
	}
	return condition, err
}

// FindByWindow returns the user's conditions whose windows intersect
// [from, to], ordered by window start.
func (s *Store) FindByWindow(ctx context.Context, userID string, from, to time.Time) ([]Condition, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+conditionColumns+`
    FROM conditions
    WHERE user_id = $1 AND valid_from <= $3 AND valid_to >= $2
    ORDER BY valid_from
  `, userID, DayOf(from), DayOf(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectConditions(rows)
}

// FindActive resolves the condition governing day for the user.
func (s *Store) FindActive(ctx context.Context, userID string, day time.Time) (Condition, error) {
	conditions, err := s.FindByUser(ctx, userID)
	if err != nil {
		return Condition{}, err
	}
	return ResolveActive(conditions, DayOf(day))
}

// InsertIfValid adds a condition unless its window overlaps an existing
// one. The read-validate-write sequence runs in one transaction holding
// the user's row lock, so concurrent inserts for the same user cannot
// both validate against the same stale snapshot.
func (s *Store) InsertIfValid(ctx context.Context, candidate Condition) (Condition, error) {
	if candidate.To.Before(candidate.From) {
		return Condition{}, ErrInvalidWindow
	}
	candidate.From = DayOf(candidate.From)
	candidate.To = DayOf(candidate.To)

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Condition{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := db.LockUser(ctx, tx, candidate.UserID); err != nil {
		return Condition{}, err
	}

	existing, err := lockConditions(ctx, tx, candidate.UserID, "")
	if err != nil {
		return Condition{}, err
	}
	if !CanInsert(existing, candidate) {
		return Condition{}, ErrOverlap
	}

	candidate.ID = uuid.NewString()
	if _, err := tx.Exec(ctx, `
    INSERT INTO conditions (id, user_id, monday, tuesday, wednesday, thursday, friday, saturday, sunday, valid_from, valid_to, initial_vacation, consumed_vacation)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
  `, candidate.ID, candidate.UserID,
		candidate.Monday.PgTime(), candidate.Tuesday.PgTime(), candidate.Wednesday.PgTime(),
		candidate.Thursday.PgTime(), candidate.Friday.PgTime(), candidate.Saturday.PgTime(), candidate.Sunday.PgTime(),
		candidate.From, candidate.To, candidate.InitialVacation, candidate.ConsumedVacation); err != nil {
		return Condition{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Condition{}, err
	}
	return candidate, nil
}

// Replace overwrites every field of an owned condition. The new window
// is revalidated against the user's other conditions.
func (s *Store) Replace(ctx context.Context, condition Condition) (Condition, error) {
	if condition.To.Before(condition.From) {
		return Condition{}, ErrInvalidWindow
	}
	condition.From = DayOf(condition.From)
	condition.To = DayOf(condition.To)

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Condition{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := db.LockUser(ctx, tx, condition.UserID); err != nil {
		return Condition{}, err
	}

	others, err := lockConditions(ctx, tx, condition.UserID, condition.ID)
	if err != nil {
		return Condition{}, err
	}
	if !CanInsert(others, condition) {
		return Condition{}, ErrOverlap
	}

	tag, err := tx.Exec(ctx, `
    UPDATE conditions
    SET monday = $1, tuesday = $2, wednesday = $3, thursday = $4, friday = $5, saturday = $6, sunday = $7,
        valid_from = $8, valid_to = $9, initial_vacation = $10, consumed_vacation = $11
    WHERE id = $12 AND user_id = $13
  `, condition.Monday.PgTime(), condition.Tuesday.PgTime(), condition.Wednesday.PgTime(),
		condition.Thursday.PgTime(), condition.Friday.PgTime(), condition.Saturday.PgTime(), condition.Sunday.PgTime(),
		condition.From, condition.To, condition.InitialVacation, condition.ConsumedVacation,
		condition.ID, condition.UserID)
	if err != nil {
		return Condition{}, err
	}
	if tag.RowsAffected() == 0 {
		return Condition{}, ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return Condition{}, err
	}
	return condition, nil
}

func lockConditions(ctx context.Context, tx pgx.Tx, userID, excludeID string) ([]Condition, error) {
	query := `
    SELECT ` + conditionColumns + `
    FROM conditions
    WHERE user_id = $1
  `
	args := []any{userID}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	query += " FOR UPDATE"

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectConditions(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCondition(row scanner) (Condition, error) {
	var c Condition
	var mon, tue, wed, thu, fri, sat, sun pgtype.Time
	if err := row.Scan(&c.ID, &c.UserID, &mon, &tue, &wed, &thu, &fri, &sat, &sun,
		&c.From, &c.To, &c.InitialVacation, &c.ConsumedVacation); err != nil {
		return Condition{}, err
	}
	c.Monday = ClockTimeFromPg(mon)
	c.Tuesday = ClockTimeFromPg(tue)
	c.Wednesday = ClockTimeFromPg(wed)
	c.Thursday = ClockTimeFromPg(thu)
	c.Friday = ClockTimeFromPg(fri)
	c.Saturday = ClockTimeFromPg(sat)
	c.Sunday = ClockTimeFromPg(sun)
	c.From = DayOf(c.From)
	c.To = DayOf(c.To)
	return c, nil
}

func collectConditions(rows pgx.Rows) ([]Condition, error) {
	var conditions []Condition
	for rows.Next() {
		condition, err := scanCondition(rows)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, condition)
	}
	return conditions, rows.Err()
}
