package repository

import (
	"alcyxob/tracker-app/internal/domain"
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound      = RepositoryError("not found")
	ErrDuplicateKey  = RepositoryError("duplicate key")
	ErrInvalidRecord = RepositoryError("invalid record")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user profiles.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ListByStatus(ctx context.Context, status domain.UserStatus) ([]domain.User, error)
	// UpdateStatus sets status and admin flag; approvedAt is set when moving to approved.
	UpdateStatus(ctx context.Context, id string, status domain.UserStatus, isAdmin bool) error
}

// BookRepository stores books together with their embedded chapters.
type BookRepository interface {
	// Create assigns IDs to the book and every chapter.
	Create(ctx context.Context, book *domain.Book) (string, error)
	GetByID(ctx context.Context, id, userID string) (*domain.Book, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Book, error) // newest first
	// Update replaces name and chapters; chapters without an ID get one.
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id, userID string) error
}

// ActivityRepository stores one activity record per (user, date).
type ActivityRepository interface {
	Upsert(ctx context.Context, record *domain.ActivityRecord) error
	GetByDate(ctx context.Context, userID, date string) (*domain.ActivityRecord, error)
	// GetByUserID returns records with from <= date <= to, ascending. Empty bounds are open.
	GetByUserID(ctx context.Context, userID, from, to string) ([]domain.ActivityRecord, error)
	RemoveStudyProgress(ctx context.Context, userID string, chapterIDs []string) error
	RemoveStudyProgressForBook(ctx context.Context, userID, bookID string) error
}

// HealthRepository stores one health entry per (user, date).
type HealthRepository interface {
	Upsert(ctx context.Context, entry *domain.HealthEntry) error
	GetByID(ctx context.Context, id, userID string) (*domain.HealthEntry, error)
	// GetByUserID returns entries with from <= date <= to, ascending. Empty bounds are open.
	GetByUserID(ctx context.Context, userID, from, to string) ([]domain.HealthEntry, error)
	Delete(ctx context.Context, id, userID string) error
}

// ExportRepository defines the interface for interacting with export metadata.
type ExportRepository interface {
	Create(ctx context.Context, export *domain.Export) (string, error)
	GetByID(ctx context.Context, id, userID string) (*domain.Export, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Export, error) // newest first
	Delete(ctx context.Context, id, userID string) error
}
