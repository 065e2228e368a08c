package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tkoskela/fitplan/internal/catalog"
	"github.com/tkoskela/fitplan/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"
const dateFormat = time.DateOnly

// ErrNotFound signals that no progress record exists for the requested date.
var ErrNotFound = errors.New("progress record not found")

// sqliteRepository handles database operations for daily progress records and
// milestones.
type sqliteRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newSQLiteRepository(db *sqlite.Database, logger *slog.Logger) *sqliteRepository {
	return &sqliteRepository{
		db:     db,
		logger: logger,
	}
}

// Get retrieves the progress record for a specific date.
func (r *sqliteRepository) Get(ctx context.Context, userID int64, date time.Time) (Day, error) {
	dateStr := date.Format(dateFormat)

	var (
		day                Day
		isRestDay          int
		isWorkoutComplete  int
		workoutCompletedAt sql.NullString
		fastingCompliance  sql.NullInt64
		fastingStarted     int
		fastingCompleted   int
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT is_rest_day, current_exercise_index, completion_percent,
		       is_workout_complete, workout_completed_at,
		       fasting_compliance, fasting_started, fasting_completed
		FROM daily_progress
		WHERE user_id = ? AND date = ?`,
		userID, dateStr).Scan(
		&isRestDay, &day.CurrentExerciseIndex, &day.CompletionPercent,
		&isWorkoutComplete, &workoutCompletedAt,
		&fastingCompliance, &fastingStarted, &fastingCompleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Day{}, ErrNotFound
		}
		return Day{}, fmt.Errorf("query daily progress: %w", err)
	}

	day.Date, err = time.Parse(dateFormat, dateStr)
	if err != nil {
		return Day{}, fmt.Errorf("parse date: %w", err)
	}
	day.IsRestDay = isRestDay != 0
	day.IsWorkoutComplete = isWorkoutComplete != 0
	if day.WorkoutCompletedAt, err = parseTimestamp(workoutCompletedAt); err != nil {
		return Day{}, fmt.Errorf("parse workout_completed_at: %w", err)
	}
	if fastingCompliance.Valid {
		day.Fasting = &FastingProgress{
			CompliancePercent: int(fastingCompliance.Int64),
			Started:           fastingStarted != 0,
			Completed:         fastingCompleted != 0,
		}
	}

	if day.Exercises, err = r.loadExercises(ctx, userID, dateStr); err != nil {
		return Day{}, err
	}
	if day.Meals, err = r.loadMeals(ctx, userID, dateStr); err != nil {
		return Day{}, err
	}

	return day, nil
}

// List retrieves all progress records for a user between from and to,
// inclusive, in ascending date order.
func (r *sqliteRepository) List(ctx context.Context, userID int64, from, to time.Time) (_ []Day, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT date
		FROM daily_progress
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC`,
		userID, from.Format(dateFormat), to.Format(dateFormat))
	if err != nil {
		return nil, fmt.Errorf("query progress dates: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var dates []string
	for rows.Next() {
		var dateStr string
		if err = rows.Scan(&dateStr); err != nil {
			return nil, fmt.Errorf("scan date row: %w", err)
		}
		dates = append(dates, dateStr)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	days := make([]Day, 0, len(dates))
	for _, dateStr := range dates {
		var date time.Time
		if date, err = time.Parse(dateFormat, dateStr); err != nil {
			return nil, fmt.Errorf("parse date: %w", err)
		}
		var day Day
		if day, err = r.Get(ctx, userID, date); err != nil {
			return nil, fmt.Errorf("get day %s: %w", dateStr, err)
		}
		days = append(days, day)
	}

	return days, nil
}

// Create persists a fresh progress record. It fails if one already exists for
// the date.
func (r *sqliteRepository) Create(ctx context.Context, userID int64, day Day) error {
	if err := r.set(ctx, userID, day, false); err != nil {
		return fmt.Errorf("create progress record: %w", err)
	}
	return nil
}

// Update loads the record, applies updateFn, and persists it when updateFn
// reports a change. Transition errors from updateFn pass through unwrapped so
// callers can inspect them.
func (r *sqliteRepository) Update(
	ctx context.Context,
	userID int64,
	date time.Time,
	updateFn func(day *Day) (bool, error),
) error {
	day, err := r.Get(ctx, userID, date)
	if err != nil {
		return fmt.Errorf("get record for update: %w", err)
	}

	updated, err := updateFn(&day)
	if err != nil {
		return err
	}

	if updated {
		if err = r.set(ctx, userID, day, true); err != nil {
			return fmt.Errorf("save updated record: %w", err)
		}
	}

	return nil
}

// set writes the whole aggregate in one transaction, with optional upsert.
func (r *sqliteRepository) set(ctx context.Context, userID int64, day Day, upsert bool) (err error) {
	dateStr := day.Date.Format(dateFormat)

	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback transaction: %w", rollbackErr))
		}
	}()

	// Delete and reinsert so the aggregate rows always match the record.
	if upsert {
		if _, err = tx.ExecContext(ctx, `
			DELETE FROM daily_progress
			WHERE user_id = ? AND date = ?`,
			userID, dateStr); err != nil {
			return fmt.Errorf("delete daily progress: %w", err)
		}
	}

	var (
		fastingCompliance sql.NullInt64
		fastingStarted    bool
		fastingCompleted  bool
	)
	if day.Fasting != nil {
		fastingCompliance = sql.NullInt64{Int64: int64(day.Fasting.CompliancePercent), Valid: true}
		fastingStarted = day.Fasting.Started
		fastingCompleted = day.Fasting.Completed
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO daily_progress (
			user_id, date, is_rest_day, current_exercise_index, completion_percent,
			is_workout_complete, workout_completed_at,
			fasting_compliance, fasting_started, fasting_completed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, dateStr, day.IsRestDay, day.CurrentExerciseIndex, day.CompletionPercent,
		day.IsWorkoutComplete, formatTimestamp(day.WorkoutCompletedAt),
		fastingCompliance, fastingStarted, fastingCompleted); err != nil {
		return fmt.Errorf("insert daily progress: %w", err)
	}

	for i, ex := range day.Exercises {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO exercise_progress (
				user_id, date, position, exercise_id, status,
				started_at, completed_at, sets_done, reps_done, duration_seconds
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, dateStr, i, ex.ExerciseID, string(ex.Status),
			formatTimestamp(ex.StartedAt), formatTimestamp(ex.CompletedAt),
			ex.SetsDone, ex.RepsDone, ex.DurationSeconds); err != nil {
			return fmt.Errorf("insert exercise progress: %w", err)
		}
	}

	for _, m := range day.Meals {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO meal_progress (user_id, date, slot, meal_id, status, scheduled_time)
			VALUES (?, ?, ?, ?, ?, ?)`,
			userID, dateStr, string(m.Slot), m.MealID, string(m.Status), m.ScheduledTime); err != nil {
			return fmt.Errorf("insert meal progress: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// loadExercises fetches the exercise rows for a day in workout order.
func (r *sqliteRepository) loadExercises(ctx context.Context, userID int64, dateStr string) (_ []ExerciseProgress, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT exercise_id, status, started_at, completed_at,
		       sets_done, reps_done, duration_seconds
		FROM exercise_progress
		WHERE user_id = ? AND date = ?
		ORDER BY position`,
		userID, dateStr)
	if err != nil {
		return nil, fmt.Errorf("query exercise progress: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var exercises []ExerciseProgress
	for rows.Next() {
		var (
			ex           ExerciseProgress
			status       string
			startedAt    sql.NullString
			completedAt  sql.NullString
		)
		if err = rows.Scan(&ex.ExerciseID, &status, &startedAt, &completedAt,
			&ex.SetsDone, &ex.RepsDone, &ex.DurationSeconds); err != nil {
			return nil, fmt.Errorf("scan exercise row: %w", err)
		}
		ex.Status = ExerciseStatus(status)
		if ex.StartedAt, err = parseTimestamp(startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if ex.CompletedAt, err = parseTimestamp(completedAt); err != nil {
			return nil, fmt.Errorf("parse completed_at: %w", err)
		}
		exercises = append(exercises, ex)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return exercises, nil
}

// loadMeals fetches the meal rows for a day in canonical slot order.
func (r *sqliteRepository) loadMeals(ctx context.Context, userID int64, dateStr string) (_ []MealProgress, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT slot, meal_id, status, scheduled_time
		FROM meal_progress
		WHERE user_id = ? AND date = ?`,
		userID, dateStr)
	if err != nil {
		return nil, fmt.Errorf("query meal progress: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	bySlot := make(map[catalog.MealType]MealProgress)
	for rows.Next() {
		var (
			m    MealProgress
			slot string
		)
		var status string
		if err = rows.Scan(&slot, &m.MealID, &status, &m.ScheduledTime); err != nil {
			return nil, fmt.Errorf("scan meal row: %w", err)
		}
		m.Slot = catalog.MealType(slot)
		m.Status = MealStatus(status)
		bySlot[m.Slot] = m
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	var meals []MealProgress
	for _, mt := range catalog.MealTypes() {
		if m, ok := bySlot[mt]; ok {
			meals = append(meals, m)
		}
	}

	return meals, nil
}

// AwardMilestone records a milestone once. Replays of the same id are no-ops.
func (r *sqliteRepository) AwardMilestone(ctx context.Context, userID int64, m Milestone) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO milestones (user_id, milestone_id, title, description, day_number, achieved_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, milestone_id) DO NOTHING`,
		userID, m.ID, m.Title, m.Description, m.DayNumber, m.AchievedAt.UTC().Format(timestampFormat))
	if err != nil {
		return fmt.Errorf("insert milestone: %w", err)
	}
	return nil
}

// ListMilestones returns the awarded milestones in achievement order.
func (r *sqliteRepository) ListMilestones(ctx context.Context, userID int64) (_ []Milestone, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT milestone_id, title, description, day_number, achieved_at
		FROM milestones
		WHERE user_id = ?
		ORDER BY achieved_at, milestone_id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query milestones: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var milestones []Milestone
	for rows.Next() {
		var (
			m           Milestone
			achievedStr string
		)
		if err = rows.Scan(&m.ID, &m.Title, &m.Description, &m.DayNumber, &achievedStr); err != nil {
			return nil, fmt.Errorf("scan milestone row: %w", err)
		}
		if m.AchievedAt, err = time.Parse(timestampFormat, achievedStr); err != nil {
			return nil, fmt.Errorf("parse achieved_at: %w", err)
		}
		milestones = append(milestones, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return milestones, nil
}

// DeleteAll removes every progress record and milestone for a user.
func (r *sqliteRepository) DeleteAll(ctx context.Context, userID int64) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx,
		"DELETE FROM daily_progress WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("delete progress records: %w", err)
	}
	if _, err := r.db.ReadWrite.ExecContext(ctx,
		"DELETE FROM milestones WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("delete milestones: %w", err)
	}
	return nil
}

// parseTimestamp parses a timestamp from a nullable database string.
func parseTimestamp(timestampStr sql.NullString) (time.Time, error) {
	if !timestampStr.Valid {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(timestampFormat, timestampStr.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp format: %w", err)
	}
	return parsed, nil
}

// formatTimestamp renders a timestamp as a nullable database string.
func formatTimestamp(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(timestampFormat), Valid: true}
}
