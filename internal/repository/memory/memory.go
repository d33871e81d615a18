// Package memory provides in-process implementations of the repository
// interfaces. They back the server when no database is configured and are used
// by the service and handler tests.
package memory

import (
	"alcyxob/tracker-app/internal/domain"
	"alcyxob/tracker-app/internal/repository"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

func inRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

// UserRepository is an in-memory repository.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewUserRepository returns an empty user store.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, user *domain.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return "", repository.ErrDuplicateKey
		}
	}
	user.ID = uuid.NewString()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) ListByStatus(_ context.Context, status domain.UserStatus) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.User{}
	for _, u := range r.users {
		if u.Status == status {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepository) UpdateStatus(_ context.Context, id string, status domain.UserStatus, isAdmin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Status = status
	u.IsAdmin = isAdmin
	u.ApprovedAt = nil
	if status == domain.StatusApproved {
		now := time.Now().UTC()
		u.ApprovedAt = &now
	}
	r.users[id] = u
	return nil
}

// BookRepository is an in-memory repository.BookRepository.
type BookRepository struct {
	mu    sync.RWMutex
	books map[string]domain.Book
	seq   int // tiebreak for books created within the same clock tick
	order map[string]int
}

// NewBookRepository returns an empty book store.
func NewBookRepository() *BookRepository {
	return &BookRepository{books: make(map[string]domain.Book), order: make(map[string]int)}
}

var _ repository.BookRepository = (*BookRepository)(nil)

func assignChapterIDs(book *domain.Book) {
	for i := range book.Chapters {
		if book.Chapters[i].ID == "" {
			book.Chapters[i].ID = uuid.NewString()
		}
		book.Chapters[i].BookID = book.ID
		// completion is derived, never stored
		book.Chapters[i].IsCompleted = false
		book.Chapters[i].CompletedDate = nil
	}
}

func (r *BookRepository) Create(_ context.Context, book *domain.Book) (string, error) {
	if book.Name == "" || book.UserID == "" {
		return "", repository.ErrInvalidRecord
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	book.ID = uuid.NewString()
	assignChapterIDs(book)
	now := time.Now().UTC()
	book.CreatedAt = now
	book.UpdatedAt = now
	r.seq++
	r.order[book.ID] = r.seq
	r.books[book.ID] = book.Clone()
	return book.ID, nil
}

func (r *BookRepository) GetByID(_ context.Context, id, userID string) (*domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.books[id]
	if !ok || b.UserID != userID {
		return nil, repository.ErrNotFound
	}
	b = b.Clone()
	return &b, nil
}

func (r *BookRepository) GetByUserID(_ context.Context, userID string) ([]domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Book{}
	for _, b := range r.books {
		if b.UserID == userID {
			out = append(out, b.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.order[out[i].ID] > r.order[out[j].ID] })
	return out, nil
}

func (r *BookRepository) Update(_ context.Context, book *domain.Book) error {
	if book.Name == "" {
		return repository.ErrInvalidRecord
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.books[book.ID]
	if !ok || stored.UserID != book.UserID {
		return repository.ErrNotFound
	}
	assignChapterIDs(book)
	book.CreatedAt = stored.CreatedAt
	book.UpdatedAt = time.Now().UTC()
	r.books[book.ID] = book.Clone()
	return nil
}

func (r *BookRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok || b.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.books, id)
	delete(r.order, id)
	return nil
}

type userDate struct{ userID, date string }

// ActivityRepository is an in-memory repository.ActivityRepository.
type ActivityRepository struct {
	mu      sync.RWMutex
	records map[userDate]domain.ActivityRecord
}

// NewActivityRepository returns an empty activity store.
func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{records: make(map[userDate]domain.ActivityRecord)}
}

var _ repository.ActivityRepository = (*ActivityRepository)(nil)

func (r *ActivityRepository) Upsert(_ context.Context, record *domain.ActivityRecord) error {
	if record.UserID == "" || record.Date == "" {
		return repository.ErrInvalidRecord
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := userDate{record.UserID, record.Date}
	now := time.Now().UTC()
	if existing, ok := r.records[key]; ok {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	} else {
		record.ID = uuid.NewString()
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	r.records[key] = record.Clone()
	return nil
}

func (r *ActivityRepository) GetByDate(_ context.Context, userID, date string) (*domain.ActivityRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[userDate{userID, date}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rec = rec.Clone()
	return &rec, nil
}

func (r *ActivityRepository) GetByUserID(_ context.Context, userID, from, to string) ([]domain.ActivityRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.ActivityRecord{}
	for k, rec := range r.records {
		if k.userID == userID && inRange(k.date, from, to) {
			out = append(out, rec.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *ActivityRepository) RemoveStudyProgress(_ context.Context, userID string, chapterIDs []string) error {
	removed := make(map[string]struct{}, len(chapterIDs))
	for _, id := range chapterIDs {
		removed[id] = struct{}{}
	}
	r.strip(userID, func(p domain.StudyProgress) bool {
		_, gone := removed[p.ChapterID]
		return gone
	})
	return nil
}

func (r *ActivityRepository) RemoveStudyProgressForBook(_ context.Context, userID, bookID string) error {
	r.strip(userID, func(p domain.StudyProgress) bool { return p.BookID == bookID })
	return nil
}

func (r *ActivityRepository) strip(userID string, drop func(domain.StudyProgress) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, rec := range r.records {
		if k.userID != userID {
			continue
		}
		kept := make([]domain.StudyProgress, 0, len(rec.StudyProgress))
		for _, p := range rec.StudyProgress {
			if !drop(p) {
				kept = append(kept, p)
			}
		}
		if len(kept) != len(rec.StudyProgress) {
			rec.StudyProgress = kept
			rec.UpdatedAt = time.Now().UTC()
			r.records[k] = rec
		}
	}
}

// HealthRepository is an in-memory repository.HealthRepository.
type HealthRepository struct {
	mu      sync.RWMutex
	entries map[userDate]domain.HealthEntry
}

// NewHealthRepository returns an empty health store.
func NewHealthRepository() *HealthRepository {
	return &HealthRepository{entries: make(map[userDate]domain.HealthEntry)}
}

var _ repository.HealthRepository = (*HealthRepository)(nil)

func (r *HealthRepository) Upsert(_ context.Context, entry *domain.HealthEntry) error {
	if entry.UserID == "" || entry.Date == "" {
		return repository.ErrInvalidRecord
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := userDate{entry.UserID, entry.Date}
	now := time.Now().UTC()
	if existing, ok := r.entries[key]; ok {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	} else {
		entry.ID = uuid.NewString()
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	r.entries[key] = *entry
	return nil
}

func (r *HealthRepository) GetByID(_ context.Context, id, userID string) (*domain.HealthEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for k, e := range r.entries {
		if e.ID == id && k.userID == userID {
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *HealthRepository) GetByUserID(_ context.Context, userID, from, to string) ([]domain.HealthEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.HealthEntry{}
	for k, e := range r.entries {
		if k.userID == userID && inRange(k.date, from, to) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *HealthRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, e := range r.entries {
		if e.ID == id && k.userID == userID {
			delete(r.entries, k)
			return nil
		}
	}
	return repository.ErrNotFound
}

// ExportRepository is an in-memory repository.ExportRepository.
type ExportRepository struct {
	mu      sync.RWMutex
	exports []domain.Export // insertion order
}

// NewExportRepository returns an empty export store.
func NewExportRepository() *ExportRepository {
	return &ExportRepository{}
}

var _ repository.ExportRepository = (*ExportRepository)(nil)

func (r *ExportRepository) Create(_ context.Context, export *domain.Export) (string, error) {
	if export.UserID == "" || export.S3ObjectKey == "" {
		return "", repository.ErrInvalidRecord
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if export.ID == "" {
		export.ID = uuid.NewString()
	}
	export.CreatedAt = time.Now().UTC()
	r.exports = append(r.exports, *export)
	return export.ID, nil
}

func (r *ExportRepository) GetByID(_ context.Context, id, userID string) (*domain.Export, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.exports {
		if e.ID == id && e.UserID == userID {
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ExportRepository) GetByUserID(_ context.Context, userID string) ([]domain.Export, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Export{}
	for i := len(r.exports) - 1; i >= 0; i-- {
		if r.exports[i].UserID == userID {
			out = append(out, r.exports[i])
		}
	}
	return out, nil
}

func (r *ExportRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.exports {
		if e.ID == id && e.UserID == userID {
			r.exports = append(r.exports[:i], r.exports[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
