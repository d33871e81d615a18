package service

import (
	"alcyxob/tracker-app/internal/domain"
	"alcyxob/tracker-app/internal/repository"
	"alcyxob/tracker-app/internal/tracker"
	"context"
	"errors"
	"log"
	"strings"
)

// CatalogService manages books and their chapters.
type CatalogService interface {
	AddBook(ctx context.Context, userID, name string, chapterNames []string) (*domain.Book, error)
	// UpdateBook renames the book when name is non-nil and replaces the chapter
	// list when chapterNames is non-nil. Chapters are matched by name.
	UpdateBook(ctx context.Context, userID, bookID string, name *string, chapterNames []string) (*domain.Book, error)
	DeleteBook(ctx context.Context, userID, bookID string) error
	GetBook(ctx context.Context, userID, bookID string) (*domain.Book, error)
	ListBooks(ctx context.Context, userID string) ([]domain.Book, error)
}

type catalogService struct {
	snapshotLoader
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(bookRepo repository.BookRepository, activityRepo repository.ActivityRepository, drafts *DraftCache) CatalogService {
	return &catalogService{snapshotLoader{bookRepo: bookRepo, activityRepo: activityRepo, drafts: drafts}}
}

// AddBook creates a book with chapters numbered 1..N.
func (s *catalogService) AddBook(ctx context.Context, userID, name string, chapterNames []string) (*domain.Book, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("book name is required")
	}
	names := tracker.NormalizeChapterNames(chapterNames)
	if len(names) == 0 {
		return nil, validationError("at least one chapter is required")
	}

	book := &domain.Book{UserID: userID, Name: name, Chapters: tracker.NewChapters("", names)}
	if _, err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	log.Printf("INFO: User %s added book %s with %d chapters", userID, book.ID, len(book.Chapters))
	return book, nil
}

// UpdateBook applies a rename and/or a name-based chapter diff.
// The book is written first; study progress and drafts of removed chapters are
// stripped afterwards, so a failed write leaves the ledger untouched.
func (s *catalogService) UpdateBook(ctx context.Context, userID, bookID string, name *string, chapterNames []string) (*domain.Book, error) {
	book, err := s.getBook(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	changed := false
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, validationError("book name is required")
		}
		changed = trimmed != book.Name
		book.Name = trimmed
	}

	var removed []string
	if chapterNames != nil {
		names := tracker.NormalizeChapterNames(chapterNames)
		if len(names) == 0 {
			return nil, validationError("at least one chapter is required")
		}
		diff := tracker.DiffChapters(book.Chapters, names)
		if diff.Changed() {
			changed = true
			removed = diff.RemovedIDs()
			book.Chapters = diff.Chapters(book.ID)
		}
	}

	if !changed {
		return s.project(ctx, book)
	}
	if err := s.bookRepo.Update(ctx, book); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	if len(removed) > 0 {
		// Leftover references to removed IDs are filtered on read, so a failed strip only logs.
		if err := s.activityRepo.RemoveStudyProgress(ctx, userID, removed); err != nil {
			log.Printf("WARN: Failed to strip study progress of %d removed chapters for user %s: %v", len(removed), userID, err)
		}
		updated := *book
		s.drafts.Update(userID, func(d map[string][]domain.DraftSelection) map[string][]domain.DraftSelection {
			return tracker.Snapshot{Drafts: d}.ApplyChapterDiff(updated, removed).Drafts
		})
		log.Printf("INFO: User %s removed %d chapters from book %s", userID, len(removed), bookID)
	}

	return s.project(ctx, book)
}

// DeleteBook removes the book, then every study entry and draft pair referencing it.
func (s *catalogService) DeleteBook(ctx context.Context, userID, bookID string) error {
	book, err := s.getBook(ctx, userID, bookID)
	if err != nil {
		return err
	}

	if err := s.bookRepo.Delete(ctx, bookID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookNotFound
		}
		return err
	}

	if err := s.activityRepo.RemoveStudyProgress(ctx, userID, book.ChapterIDs()); err != nil {
		log.Printf("WARN: Failed to strip study progress of book %s for user %s: %v", bookID, userID, err)
	} else if err := s.activityRepo.RemoveStudyProgressForBook(ctx, userID, bookID); err != nil {
		log.Printf("WARN: Failed to strip study progress of book %s for user %s: %v", bookID, userID, err)
	}
	s.drafts.Update(userID, func(d map[string][]domain.DraftSelection) map[string][]domain.DraftSelection {
		return tracker.Snapshot{Books: []domain.Book{*book}, Drafts: d}.WithoutBook(bookID).Drafts
	})
	log.Printf("INFO: User %s deleted book %s", userID, bookID)
	return nil
}

// GetBook returns one book with derived completion.
func (s *catalogService) GetBook(ctx context.Context, userID, bookID string) (*domain.Book, error) {
	book, err := s.getBook(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, book)
}

// ListBooks returns the user's books newest first with derived completion.
func (s *catalogService) ListBooks(ctx context.Context, userID string) ([]domain.Book, error) {
	snap, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return snap.ProjectCompletion(), nil
}
