package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tkoskela/fitplan/internal/catalog"
	"github.com/tkoskela/fitplan/internal/plan"
	"github.com/tkoskela/fitplan/internal/sqlite"
)

// Service handles the business logic for progress tracking. Transitions for a
// single user are serialized through a per-user mutex so concurrent requests
// cannot interleave a read-modify-write; different users proceed
// independently.
type Service struct {
	repo   *sqliteRepository
	logger *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewService creates a new progress service.
func NewService(db *sqlite.Database, logger *slog.Logger) *Service {
	return &Service{
		repo:   newSQLiteRepository(db, logger),
		logger: logger,
		now:    time.Now,
		locks:  make(map[int64]*sync.Mutex),
	}
}

func (s *Service) userLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// InitializeDay creates the progress record for a daily plan. Calling it again
// for the same date returns the existing record untouched.
func (s *Service) InitializeDay(ctx context.Context, userID int64, p plan.DailyPlan) (Day, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.repo.Get(ctx, userID, p.Date)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Day{}, fmt.Errorf("get record %s: %w", p.Date.Format(dateFormat), err)
	}

	day := NewDay(p)
	if err = s.repo.Create(ctx, userID, day); err != nil {
		return Day{}, fmt.Errorf("create record %s: %w", p.Date.Format(dateFormat), err)
	}

	return day, nil
}

// GetDay retrieves the progress record for a date.
func (s *Service) GetDay(ctx context.Context, userID int64, date time.Time) (Day, error) {
	day, err := s.repo.Get(ctx, userID, date)
	if err != nil {
		return Day{}, fmt.Errorf("get record %s: %w", date.Format(dateFormat), err)
	}
	return day, nil
}

// StartExercise moves an exercise into in_progress.
func (s *Service) StartExercise(ctx context.Context, userID int64, date time.Time, exerciseID string) (Day, error) {
	return s.transition(ctx, userID, date, func(day *Day, now time.Time) error {
		return StartExercise(day, exerciseID, now)
	})
}

// CompleteExercise finishes an exercise and evaluates milestones against the
// updated history.
func (s *Service) CompleteExercise(
	ctx context.Context,
	userID int64,
	date time.Time,
	exerciseID string,
	setsDone, repsDone int,
) (Day, error) {
	day, err := s.transition(ctx, userID, date, func(day *Day, now time.Time) error {
		return CompleteExercise(day, exerciseID, setsDone, repsDone, now)
	})
	if err != nil {
		return Day{}, err
	}

	s.evaluateMilestones(ctx, userID, date)
	return day, nil
}

// SkipExercise marks an exercise skipped. Skipping can finish the workout, so
// milestones are evaluated afterwards too.
func (s *Service) SkipExercise(ctx context.Context, userID int64, date time.Time, exerciseID string) (Day, error) {
	day, err := s.transition(ctx, userID, date, func(day *Day, now time.Time) error {
		return SkipExercise(day, exerciseID, now)
	})
	if err != nil {
		return Day{}, err
	}

	s.evaluateMilestones(ctx, userID, date)
	return day, nil
}

// OfferMealOptions opens a meal slot for selection.
func (s *Service) OfferMealOptions(ctx context.Context, userID int64, date time.Time, slot catalog.MealType) (Day, error) {
	return s.transition(ctx, userID, date, func(day *Day, _ time.Time) error {
		return OfferMealOptions(day, slot)
	})
}

// SelectMeal binds a meal to a slot.
func (s *Service) SelectMeal(ctx context.Context, userID int64, date time.Time, slot catalog.MealType, mealID string) (Day, error) {
	return s.transition(ctx, userID, date, func(day *Day, _ time.Time) error {
		return SelectMeal(day, slot, mealID)
	})
}

// MarkMealEaten finishes a meal slot.
func (s *Service) MarkMealEaten(ctx context.Context, userID int64, date time.Time, slot catalog.MealType) (Day, error) {
	return s.transition(ctx, userID, date, func(day *Day, now time.Time) error {
		return MarkMealEaten(day, slot, now)
	})
}

// SkipMeal marks a meal slot skipped.
func (s *Service) SkipMeal(ctx context.Context, userID int64, date time.Time, slot catalog.MealType) (Day, error) {
	return s.transition(ctx, userID, date, func(day *Day, now time.Time) error {
		return SkipMeal(day, slot, now)
	})
}

// SetFastingCompliance stores an externally observed compliance reading.
func (s *Service) SetFastingCompliance(
	ctx context.Context,
	userID int64,
	date time.Time,
	percent int,
	started, completed bool,
) (Day, error) {
	return s.transition(ctx, userID, date, func(day *Day, _ time.Time) error {
		SetFastingCompliance(day, percent, started, completed)
		return nil
	})
}

// History returns the progress records between from and to, inclusive.
func (s *Service) History(ctx context.Context, userID int64, from, to time.Time) ([]Day, error) {
	days, err := s.repo.List(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return days, nil
}

// Milestones returns the milestones a user has earned so far.
func (s *Service) Milestones(ctx context.Context, userID int64) ([]Milestone, error) {
	milestones, err := s.repo.ListMilestones(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	return milestones, nil
}

// Reset deletes all progress records and milestones for a user.
func (s *Service) Reset(ctx context.Context, userID int64) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.repo.DeleteAll(ctx, userID); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

// transition applies a state change under the user's lock and returns the
// persisted record.
func (s *Service) transition(
	ctx context.Context,
	userID int64,
	date time.Time,
	apply func(day *Day, now time.Time) error,
) (Day, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	now := s.now()
	if err := s.repo.Update(ctx, userID, date, func(day *Day) (bool, error) {
		if err := apply(day, now); err != nil {
			return false, err
		}
		return true, nil
	}); err != nil {
		return Day{}, fmt.Errorf("update record %s: %w", date.Format(dateFormat), err)
	}

	day, err := s.repo.Get(ctx, userID, date)
	if err != nil {
		return Day{}, fmt.Errorf("reload record %s: %w", date.Format(dateFormat), err)
	}
	return day, nil
}

// evaluateMilestones awards at most one newly earned milestone. Failures are
// logged and swallowed: a milestone hiccup must not fail the transition that
// triggered it.
func (s *Service) evaluateMilestones(ctx context.Context, userID int64, date time.Time) {
	history, err := s.repo.List(ctx, userID, time.Time{}, date)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to load history for milestones", slog.Any("error", err))
		return
	}

	earned, err := s.repo.ListMilestones(ctx, userID)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to load milestones", slog.Any("error", err))
		return
	}
	awarded := make(map[string]bool, len(earned))
	for _, m := range earned {
		awarded[m.ID] = true
	}

	milestone := EvaluateMilestones(SummarizeHistory(history), awarded, len(history), s.now())
	if milestone == nil {
		return
	}

	if err = s.repo.AwardMilestone(ctx, userID, *milestone); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to award milestone",
			slog.String("milestone", milestone.ID), slog.Any("error", err))
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "awarded milestone",
		slog.String("milestone", milestone.ID), slog.Int64("user_id", userID))
}
