package service

import (
	"alcyxob/tracker-app/internal/domain"
	"alcyxob/tracker-app/internal/repository"
	"alcyxob/tracker-app/internal/tracker"
	"context"
	"errors"
	"log"
)

// ActivityService manages the per-day activity ledger, the completion index
// derived from it, and the draft chapter selections of the daily editor.
type ActivityService interface {
	SaveActivityRecord(ctx context.Context, userID, date string, training domain.TrainingFlags, progress []domain.StudyProgress) (*domain.ActivityRecord, error)
	GetActivityRecord(ctx context.Context, userID, date string) (*domain.ActivityRecord, error)
	ListActivityRecords(ctx context.Context, userID, from, to string) ([]domain.ActivityRecord, error)

	CompletedChapterIDs(ctx context.Context, userID string) ([]string, error)
	// ChapterCompletionDate returns the earliest date the chapter was studied; ok is false if never.
	ChapterCompletionDate(ctx context.Context, userID, chapterID string) (date string, ok bool, err error)

	SaveDraftSelection(ctx context.Context, userID, date string, selections []domain.DraftSelection) ([]domain.DraftSelection, error)
	GetDraftSelection(ctx context.Context, userID, date string) ([]domain.DraftSelection, error)
	ClearDraftSelection(ctx context.Context, userID, date string) error
}

type activityService struct {
	snapshotLoader
}

// NewActivityService creates a new ActivityService.
func NewActivityService(bookRepo repository.BookRepository, activityRepo repository.ActivityRepository, drafts *DraftCache) ActivityService {
	return &activityService{snapshotLoader{bookRepo: bookRepo, activityRepo: activityRepo, drafts: drafts}}
}

// SaveActivityRecord upserts the record for the date, replacing its study list,
// and clears the draft for that date once stored.
// Entries pointing at chapters missing from the catalog are dropped; names are
// copied from the catalog when the caller leaves them empty.
func (s *activityService) SaveActivityRecord(ctx context.Context, userID, date string, training domain.TrainingFlags, progress []domain.StudyProgress) (*domain.ActivityRecord, error) {
	if err := validateDate("date", date); err != nil {
		return nil, err
	}

	books, err := s.bookRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	snap := tracker.Snapshot{Books: books}

	study := make([]domain.StudyProgress, 0, len(progress))
	for _, p := range progress {
		book, ok := snap.Book(p.BookID)
		if !ok {
			continue
		}
		ch, ok := book.Chapter(p.ChapterID)
		if !ok {
			continue
		}
		if p.BookName == "" {
			p.BookName = book.Name
		}
		if p.ChapterName == "" {
			p.ChapterName = ch.Name
		}
		study = append(study, p)
	}

	stored, _ := snap.UpsertRecord(domain.ActivityRecord{
		UserID:        userID,
		Date:          date,
		Training:      training,
		StudyProgress: study,
	}).Record(date)
	if dropped := len(progress) - len(stored.StudyProgress); dropped > 0 {
		log.Printf("WARN: Dropped %d study entries for user %s on %s (duplicate or unknown chapter)", dropped, userID, date)
	}

	record := &stored
	if err := s.activityRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	s.drafts.Update(userID, func(d map[string][]domain.DraftSelection) map[string][]domain.DraftSelection {
		return tracker.Snapshot{Drafts: d}.ClearDraft(date).Drafts
	})
	return record, nil
}

// GetActivityRecord returns the record for one date.
func (s *activityService) GetActivityRecord(ctx context.Context, userID, date string) (*domain.ActivityRecord, error) {
	if err := validateDate("date", date); err != nil {
		return nil, err
	}
	record, err := s.activityRepo.GetByDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

// ListActivityRecords returns records in [from, to], ascending. Empty bounds are open.
func (s *activityService) ListActivityRecords(ctx context.Context, userID, from, to string) ([]domain.ActivityRecord, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	return s.activityRepo.GetByUserID(ctx, userID, from, to)
}

// CompletedChapterIDs returns the sorted IDs of existing chapters referenced by any record.
func (s *activityService) CompletedChapterIDs(ctx context.Context, userID string) ([]string, error) {
	snap, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return snap.SortedCompletedChapterIDs(), nil
}

func (s *activityService) ChapterCompletionDate(ctx context.Context, userID, chapterID string) (string, bool, error) {
	snap, err := s.load(ctx, userID)
	if err != nil {
		return "", false, err
	}
	if _, ok := snap.CompletedChapterIDs()[chapterID]; !ok {
		return "", false, nil
	}
	date, ok := snap.ChapterCompletionDate(chapterID)
	return date, ok, nil
}

// SaveDraftSelection stores the selections for a date after filtering them
// against the catalog, and returns what was kept.
func (s *activityService) SaveDraftSelection(ctx context.Context, userID, date string, selections []domain.DraftSelection) ([]domain.DraftSelection, error) {
	if err := validateDate("date", date); err != nil {
		return nil, err
	}
	books, err := s.bookRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var kept []domain.DraftSelection
	s.drafts.Update(userID, func(d map[string][]domain.DraftSelection) map[string][]domain.DraftSelection {
		next := tracker.Snapshot{Books: books, Drafts: d}.SaveDraft(date, selections)
		kept = next.Draft(date)
		return next.Drafts
	})
	return kept, nil
}

// GetDraftSelection returns the draft for a date, re-filtered against the current catalog.
func (s *activityService) GetDraftSelection(ctx context.Context, userID, date string) ([]domain.DraftSelection, error) {
	if err := validateDate("date", date); err != nil {
		return nil, err
	}
	snap, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return snap.Draft(date), nil
}

func (s *activityService) ClearDraftSelection(_ context.Context, userID, date string) error {
	if err := validateDate("date", date); err != nil {
		return err
	}
	s.drafts.Update(userID, func(d map[string][]domain.DraftSelection) map[string][]domain.DraftSelection {
		return tracker.Snapshot{Drafts: d}.ClearDraft(date).Drafts
	})
	return nil
}
