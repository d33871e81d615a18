package service

import (
	"alcyxob/tracker-app/internal/domain"
	"alcyxob/tracker-app/internal/repository"
	"alcyxob/tracker-app/internal/tracker"
	"context"
	"errors"
)

// snapshotLoader assembles a user's tracker.Snapshot from the repositories and the draft cache.
// Loaders without a draft cache produce snapshots with no drafts.
type snapshotLoader struct {
	bookRepo     repository.BookRepository
	activityRepo repository.ActivityRepository
	drafts       *DraftCache
}

func (l snapshotLoader) load(ctx context.Context, userID string) (tracker.Snapshot, error) {
	books, err := l.bookRepo.GetByUserID(ctx, userID)
	if err != nil {
		return tracker.Snapshot{}, err
	}
	records, err := l.activityRepo.GetByUserID(ctx, userID, "", "")
	if err != nil {
		return tracker.Snapshot{}, err
	}
	return tracker.Snapshot{Books: books, Records: records, Drafts: l.drafts.Get(userID)}, nil
}

// project returns the book with completion derived from the user's records.
func (l snapshotLoader) project(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	records, err := l.activityRepo.GetByUserID(ctx, book.UserID, "", "")
	if err != nil {
		return nil, err
	}
	snap := tracker.Snapshot{Books: []domain.Book{*book}, Records: records}
	projected := snap.ProjectCompletion()[0]
	return &projected, nil
}

func (l snapshotLoader) getBook(ctx context.Context, userID, bookID string) (*domain.Book, error) {
	book, err := l.bookRepo.GetByID(ctx, bookID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

func validateDate(field, date string) error {
	if !domain.ValidDate(date) {
		return validationError("%s must be a YYYY-MM-DD date", field)
	}
	return nil
}

// validateRange checks optional from/to bounds.
func validateRange(from, to string) error {
	if from != "" {
		if err := validateDate("from", from); err != nil {
			return err
		}
	}
	if to != "" {
		if err := validateDate("to", to); err != nil {
			return err
		}
	}
	if from != "" && to != "" && from > to {
		return validationError("from must not be after to")
	}
	return nil
}
