package personalization

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tkoskela/fitplan/internal/sqlite"
)

// Service handles the business logic for profiles and personalization.
type Service struct {
	repo   *sqliteRepository
	logger *slog.Logger
}

// NewService creates a new personalization service.
func NewService(db *sqlite.Database, logger *slog.Logger) *Service {
	return &Service{
		repo:   newSQLiteRepository(db, logger),
		logger: logger,
	}
}

// GetProfile retrieves the profile for a user. Users who never answered the
// questionnaire get the zero profile.
func (s *Service) GetProfile(ctx context.Context, userID int64) (Profile, error) {
	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		return Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// SaveProfile replaces the profile for a user.
func (s *Service) SaveProfile(ctx context.Context, userID int64, p Profile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("validate profile: %w", err)
	}
	if err := s.repo.Set(ctx, userID, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// AmendProfile applies a partial change to the stored profile. The change is
// validated against the merged result before persisting.
func (s *Service) AmendProfile(ctx context.Context, userID int64, amend func(p *Profile)) (Profile, error) {
	var amended Profile
	if err := s.repo.Update(ctx, userID, func(p *Profile) (bool, error) {
		amend(p)
		if err := p.Validate(); err != nil {
			return false, fmt.Errorf("validate amended profile: %w", err)
		}
		amended = *p
		return true, nil
	}); err != nil {
		return Profile{}, fmt.Errorf("amend profile: %w", err)
	}
	return amended, nil
}

// Personalize derives the personalization result from the stored profile.
func (s *Service) Personalize(ctx context.Context, userID int64) (Result, error) {
	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("get profile: %w", err)
	}

	result := Derive(p)
	if len(result.DefaultedFields) > 0 {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "profile fields defaulted",
			slog.Int64("user_id", userID),
			slog.Any("fields", result.DefaultedFields))
	}

	return result, nil
}

// DeleteProfile removes the stored profile for a user.
func (s *Service) DeleteProfile(ctx context.Context, userID int64) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
