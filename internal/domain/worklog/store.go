package worklog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"timecard/internal/db"
	"timecard/internal/domain/schedule"
)

type Store struct {
	DB db.Pool
}

func NewStore(pool db.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) SegmentsByDay(ctx context.Context, userID string, day time.Time) ([]WorkSegment, error) {
	return s.querySegments(ctx, `
    SELECT id, user_id, day, start_time, end_time
    FROM work_segments
    WHERE user_id = $1 AND day = $2
    ORDER BY start_time, created_at
  `, userID, schedule.DayOf(day))
}

// SegmentsByWindow returns all segments with day in [from, to], ordered
// by day then start time. Ties keep insertion order.
func (s *Store) SegmentsByWindow(ctx context.Context, userID string, from, to time.Time) ([]WorkSegment, error) {
	return s.querySegments(ctx, `
    SELECT id, user_id, day, start_time, end_time
    FROM work_segments
    WHERE user_id = $1 AND day >= $2 AND day <= $3
    ORDER BY day, start_time, created_at
  `, userID, schedule.DayOf(from), schedule.DayOf(to))
}

// LogWork inserts a segment unless the day already holds an absence
// entry. Check and insert run in one transaction under the user's row
// lock, so a concurrent LogAbsence for the same day cannot slip its
// own check in between.
func (s *Store) LogWork(ctx context.Context, segment WorkSegment) (WorkSegment, error) {
	if err := segment.Validate(); err != nil {
		return WorkSegment{}, err
	}
	segment.Day = schedule.DayOf(segment.Day)

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return WorkSegment{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := db.LockUser(ctx, tx, segment.UserID); err != nil {
		return WorkSegment{}, err
	}

	var absences int
	if err := tx.QueryRow(ctx,
		"SELECT COUNT(1) FROM absence_entries WHERE user_id = $1 AND day = $2",
		segment.UserID, segment.Day).Scan(&absences); err != nil {
		return WorkSegment{}, err
	}
	if absences > 0 {
		return WorkSegment{}, ErrDayConflict
	}

	segment.ID = uuid.NewString()
	if _, err := tx.Exec(ctx, `
    INSERT INTO work_segments (id, user_id, day, start_time, end_time)
    VALUES ($1,$2,$3,$4,$5)
  `, segment.ID, segment.UserID, segment.Day, segment.Start.PgTime(), pgEnd(segment.End)); err != nil {
		return WorkSegment{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return WorkSegment{}, err
	}
	return segment, nil
}

func (s *Store) UpdateSegment(ctx context.Context, segment WorkSegment) (WorkSegment, error) {
	if err := segment.Validate(); err != nil {
		return WorkSegment{}, err
	}
	segment.Day = schedule.DayOf(segment.Day)

	tag, err := s.DB.Exec(ctx, `
    UPDATE work_segments
    SET start_time = $1, end_time = $2
    WHERE id = $3 AND user_id = $4 AND day = $5
  `, segment.Start.PgTime(), pgEnd(segment.End), segment.ID, segment.UserID, segment.Day)
	if err != nil {
		return WorkSegment{}, err
	}
	if tag.RowsAffected() == 0 {
		return WorkSegment{}, ErrNotFound
	}
	return segment, nil
}

func (s *Store) DeleteSegment(ctx context.Context, userID string, day time.Time, segmentID string) error {
	tag, err := s.DB.Exec(ctx,
		"DELETE FROM work_segments WHERE id = $1 AND user_id = $2 AND day = $3",
		segmentID, userID, schedule.DayOf(day))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) AbsenceByDay(ctx context.Context, userID string, day time.Time) (AbsenceEntry, error) {
	var entry AbsenceEntry
	err := s.DB.QueryRow(ctx, `
    SELECT id, user_id, day, reason
    FROM absence_entries
    WHERE user_id = $1 AND day = $2
  `, userID, schedule.DayOf(day)).Scan(&entry.ID, &entry.UserID, &entry.Day, (*string)(&entry.Reason))
	if errors.Is(err, pgx.ErrNoRows) {
		return AbsenceEntry{}, ErrNotFound
	}
	if err != nil {
		return AbsenceEntry{}, err
	}
	entry.Day = schedule.DayOf(entry.Day)
	return entry, nil
}

func (s *Store) AbsencesByWindow(ctx context.Context, userID string, from, to time.Time) ([]AbsenceEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, user_id, day, reason
    FROM absence_entries
    WHERE user_id = $1 AND day >= $2 AND day <= $3
    ORDER BY day
  `, userID, schedule.DayOf(from), schedule.DayOf(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []AbsenceEntry
	for rows.Next() {
		var entry AbsenceEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Day, (*string)(&entry.Reason)); err != nil {
			return nil, err
		}
		entry.Day = schedule.DayOf(entry.Day)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// LogAbsence inserts a whole-day absence unless work is already logged
// for that day. Serializes with LogWork on the user's row lock.
func (s *Store) LogAbsence(ctx context.Context, entry AbsenceEntry) (AbsenceEntry, error) {
	entry.Day = schedule.DayOf(entry.Day)

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return AbsenceEntry{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := db.LockUser(ctx, tx, entry.UserID); err != nil {
		return AbsenceEntry{}, err
	}

	var segments int
	if err := tx.QueryRow(ctx,
		"SELECT COUNT(1) FROM work_segments WHERE user_id = $1 AND day = $2",
		entry.UserID, entry.Day).Scan(&segments); err != nil {
		return AbsenceEntry{}, err
	}
	if segments > 0 {
		return AbsenceEntry{}, ErrDayConflict
	}

	entry.ID = uuid.NewString()
	if _, err := tx.Exec(ctx, `
    INSERT INTO absence_entries (id, user_id, day, reason)
    VALUES ($1,$2,$3,$4)
  `, entry.ID, entry.UserID, entry.Day, string(entry.Reason)); err != nil {
		return AbsenceEntry{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return AbsenceEntry{}, err
	}
	return entry, nil
}

func (s *Store) UpdateAbsence(ctx context.Context, entry AbsenceEntry) (AbsenceEntry, error) {
	entry.Day = schedule.DayOf(entry.Day)
	tag, err := s.DB.Exec(ctx, `
    UPDATE absence_entries
    SET reason = $1
    WHERE id = $2 AND user_id = $3 AND day = $4
  `, string(entry.Reason), entry.ID, entry.UserID, entry.Day)
	if err != nil {
		return AbsenceEntry{}, err
	}
	if tag.RowsAffected() == 0 {
		return AbsenceEntry{}, ErrNotFound
	}
	return entry, nil
}

func (s *Store) DeleteAbsence(ctx context.Context, userID string, day time.Time, entryID string) error {
	tag, err := s.DB.Exec(ctx,
		"DELETE FROM absence_entries WHERE id = $1 AND user_id = $2 AND day = $3",
		entryID, userID, schedule.DayOf(day))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) querySegments(ctx context.Context, query string, args ...any) ([]WorkSegment, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var segments []WorkSegment
	for rows.Next() {
		var segment WorkSegment
		var start, end pgtype.Time
		if err := rows.Scan(&segment.ID, &segment.UserID, &segment.Day, &start, &end); err != nil {
			return nil, err
		}
		segment.Day = schedule.DayOf(segment.Day)
		segment.Start = schedule.ClockTimeFromPg(start)
		if end.Valid {
			endClock := schedule.ClockTimeFromPg(end)
			segment.End = &endClock
		}
		segments = append(segments, segment)
	}
	return segments, rows.Err()
}

// pgEnd maps the optional segment end; nil stays NULL.
func pgEnd(c *schedule.ClockTime) pgtype.Time {
	if c == nil {
		return pgtype.Time{}
	}
	return c.PgTime()
}
