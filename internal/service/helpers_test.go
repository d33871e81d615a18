package service

import (
	"alcyxob/tracker-app/internal/repository/memory"
	"context"
	"sync"
	"testing"
	"time"
)

type testEnv struct {
	users    *memory.UserRepository
	books    *memory.BookRepository
	activity *memory.ActivityRepository
	health   *memory.HealthRepository
	exports  *memory.ExportRepository
	drafts   *DraftCache

	auth     AuthService
	catalog  CatalogService
	ledger   ActivityService
	stats    StatsService
	storage  *fakeStorage
	exporter ExportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:    memory.NewUserRepository(),
		books:    memory.NewBookRepository(),
		activity: memory.NewActivityRepository(),
		health:   memory.NewHealthRepository(),
		exports:  memory.NewExportRepository(),
		drafts:   NewDraftCache(),
		storage:  newFakeStorage(),
	}
	env.auth = NewAuthService(env.users, "test-secret", time.Hour, "root@example.com")
	env.catalog = NewCatalogService(env.books, env.activity, env.drafts)
	env.ledger = NewActivityService(env.books, env.activity, env.drafts)
	env.stats = NewStatsService(env.books, env.activity)
	env.exporter = NewExportService(env.users, env.books, env.activity, env.health, env.exports, env.storage)
	return env
}

// fakeStorage is an in-memory storage.FileStorage.
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) PutObject(_ context.Context, key, _ string, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[key] = append([]byte(nil), body...)
	return nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/" + key, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) object(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objects[key]
	return b, ok
}

func chapterID(t *testing.T, env *testEnv, userID, bookID, name string) string {
	t.Helper()
	book, err := env.catalog.GetBook(context.Background(), userID, bookID)
	if err != nil {
		t.Fatalf("GetBook() error = %v", err)
	}
	for _, ch := range book.Chapters {
		if ch.Name == name {
			return ch.ID
		}
	}
	t.Fatalf("chapter %q not found in %+v", name, book.Chapters)
	return ""
}
