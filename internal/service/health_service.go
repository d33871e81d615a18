package service

import (
	"alcyxob/tracker-app/internal/domain"
	"alcyxob/tracker-app/internal/repository"
	"alcyxob/tracker-app/internal/tracker"
	"context"
	"errors"
	"time"
)

// Accepted ranges for body metrics.
const (
	maxWeightKg   = 999.9
	maxBodyFatPct = 100.0
)

// HealthService manages weight and body-fat entries.
type HealthService interface {
	SaveHealthEntry(ctx context.Context, userID, date string, weight, bodyFat *float64) (*domain.HealthEntry, error)
	DeleteHealthEntry(ctx context.Context, userID, id string) error
	ListHealthEntries(ctx context.Context, userID, from, to string) ([]domain.HealthEntry, error)
	LatestHealthEntry(ctx context.Context, userID string) (*domain.HealthEntry, error)
	BodyMetrics(ctx context.Context, userID, period string) (*tracker.BodyMetrics, error)
}

type healthService struct {
	healthRepo repository.HealthRepository
	now        func() time.Time
}

// NewHealthService creates a new HealthService.
func NewHealthService(healthRepo repository.HealthRepository) HealthService {
	return &healthService{healthRepo: healthRepo, now: time.Now}
}

func validateHealthValues(weight, bodyFat *float64) error {
	if weight == nil && bodyFat == nil {
		return validationError("weight or body fat percentage is required")
	}
	if weight != nil && (*weight <= 0 || *weight > maxWeightKg) {
		return validationError("weight must be greater than 0 and at most %.1f kg", maxWeightKg)
	}
	if bodyFat != nil && (*bodyFat < 0 || *bodyFat > maxBodyFatPct) {
		return validationError("body fat percentage must be between 0 and %.0f", maxBodyFatPct)
	}
	return nil
}

// SaveHealthEntry upserts the entry for the date. Both values are replaced, so
// omitting one clears it.
func (s *healthService) SaveHealthEntry(ctx context.Context, userID, date string, weight, bodyFat *float64) (*domain.HealthEntry, error) {
	if err := validateDate("date", date); err != nil {
		return nil, err
	}
	if err := validateHealthValues(weight, bodyFat); err != nil {
		return nil, err
	}

	entry := &domain.HealthEntry{
		UserID:            userID,
		Date:              date,
		Weight:            weight,
		BodyFatPercentage: bodyFat,
	}
	if err := s.healthRepo.Upsert(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *healthService) DeleteHealthEntry(ctx context.Context, userID, id string) error {
	if err := s.healthRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrHealthEntryNotFound
		}
		return err
	}
	return nil
}

// ListHealthEntries returns entries in [from, to], ascending by date.
func (s *healthService) ListHealthEntries(ctx context.Context, userID, from, to string) ([]domain.HealthEntry, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	return s.healthRepo.GetByUserID(ctx, userID, from, to)
}

func (s *healthService) LatestHealthEntry(ctx context.Context, userID string) (*domain.HealthEntry, error) {
	entries, err := s.healthRepo.GetByUserID(ctx, userID, "", "")
	if err != nil {
		return nil, err
	}
	latest, ok := tracker.LatestHealthEntry(entries)
	if !ok {
		return nil, ErrHealthEntryNotFound
	}
	return &latest, nil
}

// BodyMetrics returns the series for week, month or year ending today, with trends.
func (s *healthService) BodyMetrics(ctx context.Context, userID, period string) (*tracker.BodyMetrics, error) {
	p, ok := tracker.ParsePeriod(period)
	if !ok {
		return nil, validationError("period must be week, month or year")
	}
	now := s.now().UTC()
	from := p.Start(now).Format(domain.DateLayout)
	entries, err := s.healthRepo.GetByUserID(ctx, userID, from, now.Format(domain.DateLayout))
	if err != nil {
		return nil, err
	}
	metrics := tracker.BodyMetricsFor(entries, p, now)
	return &metrics, nil
}
