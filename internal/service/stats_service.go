package service

import (
	"alcyxob/tracker-app/internal/repository"
	"alcyxob/tracker-app/internal/tracker"
	"context"
	"time"
)

// StatsService computes dashboard statistics from the catalog and the ledger.
type StatsService interface {
	MonthlyStats(ctx context.Context, userID string, month time.Time) (*tracker.MonthlyStats, error)
	ChartData(ctx context.Context, userID string) ([]tracker.ChartPoint, error)
	TrainingDistribution(ctx context.Context, userID string) (*tracker.TrainingDistribution, error)
	BookProgress(ctx context.Context, userID string) (*tracker.BookProgressSummary, error)
}

type statsService struct {
	snapshotLoader
	now func() time.Time
}

// NewStatsService creates a new StatsService.
func NewStatsService(bookRepo repository.BookRepository, activityRepo repository.ActivityRepository) StatsService {
	return &statsService{
		snapshotLoader: snapshotLoader{bookRepo: bookRepo, activityRepo: activityRepo},
		now:            time.Now,
	}
}

func (s *statsService) MonthlyStats(ctx context.Context, userID string, month time.Time) (*tracker.MonthlyStats, error) {
	snap, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := snap.MonthlyStats(month)
	return &stats, nil
}

func (s *statsService) ChartData(ctx context.Context, userID string) ([]tracker.ChartPoint, error) {
	snap, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return snap.ChartData(s.now().UTC()), nil
}

func (s *statsService) TrainingDistribution(ctx context.Context, userID string) (*tracker.TrainingDistribution, error) {
	snap, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	dist := snap.TrainingDistribution(s.now().UTC())
	return &dist, nil
}

func (s *statsService) BookProgress(ctx context.Context, userID string) (*tracker.BookProgressSummary, error) {
	snap, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := snap.BookProgress()
	return &summary, nil
}
