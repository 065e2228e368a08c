package personalization

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tkoskela/fitplan/internal/sqlite"
)

// sqliteRepository handles database operations for user profiles.
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

// Get retrieves a user's profile. A user without a saved profile gets the
// zero profile, which the engine later fills with defaults.
func (r *sqliteRepository) Get(ctx context.Context, userID int64) (Profile, error) {
	var (
		p       Profile
		pushUps sql.NullInt64
		pullUps sql.NullInt64
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT gender, age_bracket, height_cm, weight_kg, target_weight_kg,
		       activity_level, goal, push_ups, pull_ups
		FROM profiles
		WHERE user_id = ?`, userID).Scan(
		&p.Gender, &p.AgeBracket, &p.HeightCm, &p.WeightKg, &p.TargetWeightKg,
		&p.ActivityLevel, &p.Goal, &pushUps, &pullUps)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("query profile: %w", err)
	}

	if pushUps.Valid || pullUps.Valid {
		p.Assessment = &Assessment{
			PushUps: int(pushUps.Int64),
			PullUps: int(pullUps.Int64),
		}
	}

	return p, nil
}

// Set upserts a user's profile.
func (r *sqliteRepository) Set(ctx context.Context, userID int64, p Profile) error {
	var pushUps, pullUps sql.NullInt64
	if p.Assessment != nil {
		pushUps = sql.NullInt64{Int64: int64(p.Assessment.PushUps), Valid: true}
		pullUps = sql.NullInt64{Int64: int64(p.Assessment.PullUps), Valid: true}
	}

	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO profiles (
			user_id, gender, age_bracket, height_cm, weight_kg, target_weight_kg,
			activity_level, goal, push_ups, pull_ups
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			gender = excluded.gender,
			age_bracket = excluded.age_bracket,
			height_cm = excluded.height_cm,
			weight_kg = excluded.weight_kg,
			target_weight_kg = excluded.target_weight_kg,
			activity_level = excluded.activity_level,
			goal = excluded.goal,
			push_ups = excluded.push_ups,
			pull_ups = excluded.pull_ups,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ')`,
		userID, p.Gender, p.AgeBracket, p.HeightCm, p.WeightKg, p.TargetWeightKg,
		p.ActivityLevel, p.Goal, pushUps, pullUps)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// Update loads the profile, applies updateFn, and persists it when updateFn
// reports a change.
func (r *sqliteRepository) Update(
	ctx context.Context,
	userID int64,
	updateFn func(p *Profile) (bool, error),
) error {
	p, err := r.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("get profile for update: %w", err)
	}

	updated, err := updateFn(&p)
	if err != nil {
		return err
	}

	if updated {
		if err = r.Set(ctx, userID, p); err != nil {
			return fmt.Errorf("save updated profile: %w", err)
		}
	}

	return nil
}

// Delete removes a user's profile.
func (r *sqliteRepository) Delete(ctx context.Context, userID int64) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx,
		"DELETE FROM profiles WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
