package service

import (
	"alcyxob/tracker-app/internal/domain"
	"alcyxob/tracker-app/internal/repository/memory"
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestAddBookNormalizesChapters(t *testing.T) {
	env := newTestEnv(t)
	book, err := env.catalog.AddBook(context.Background(), "u1", "  Go in Action ", []string{"Intro", " ", "Types", "Intro"})
	if err != nil {
		t.Fatalf("AddBook() error = %v", err)
	}
	if book.Name != "Go in Action" {
		t.Errorf("name = %q", book.Name)
	}
	if len(book.Chapters) != 2 || book.Chapters[0].Order != 1 || book.Chapters[1].Order != 2 {
		t.Fatalf("chapters = %+v", book.Chapters)
	}
	for _, ch := range book.Chapters {
		if ch.ID == "" || ch.BookID != book.ID {
			t.Errorf("chapter ids not assigned: %+v", ch)
		}
	}
}

func TestAddBookValidation(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		name     string
		bookName string
		chapters []string
	}{
		{"blank name", "  ", []string{"a"}},
		{"no chapters", "Book", nil},
		{"only blank chapters", "Book", []string{" ", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.catalog.AddBook(context.Background(), "u1", tt.bookName, tt.chapters); !errors.Is(err, ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRenameChapterScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	book, _ := env.catalog.AddBook(ctx, "u1", "Algorithms", []string{"Intro", "Sorting", "Graphs"})
	sortingID := chapterID(t, env, "u1", book.ID, "Sorting")
	introID := chapterID(t, env, "u1", book.ID, "Intro")

	_, err := env.ledger.SaveActivityRecord(ctx, "u1", "2024-03-01", domain.TrainingFlags{},
		[]domain.StudyProgress{{BookID: book.ID, ChapterID: sortingID}, {BookID: book.ID, ChapterID: introID}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.ledger.SaveDraftSelection(ctx, "u1", "2024-03-02", []domain.DraftSelection{{BookID: book.ID, ChapterIDs: []string{sortingID, introID}}}); err != nil {
		t.Fatal(err)
	}

	updated, err := env.catalog.UpdateBook(ctx, "u1", book.ID, nil, []string{"Intro", "Sort Methods", "Graphs"})
	if err != nil {
		t.Fatalf("UpdateBook() error = %v", err)
	}

	var names []string
	for _, ch := range updated.Chapters {
		names = append(names, ch.Name)
	}
	if !reflect.DeepEqual(names, []string{"Intro", "Graphs", "Sort Methods"}) {
		t.Errorf("chapter order = %v", names)
	}
	if updated.Chapters[0].ID != introID || !updated.Chapters[0].IsCompleted {
		t.Errorf("Intro should keep its ID and completion: %+v", updated.Chapters[0])
	}
	if updated.Chapters[2].IsCompleted {
		t.Error("Sort Methods must start uncompleted")
	}

	done, _ := env.ledger.CompletedChapterIDs(ctx, "u1")
	if !reflect.DeepEqual(done, []string{introID}) {
		t.Errorf("completed = %v, want [%s]", done, introID)
	}
	rec, _ := env.ledger.GetActivityRecord(ctx, "u1", "2024-03-01")
	if len(rec.StudyProgress) != 1 || rec.StudyProgress[0].ChapterID != introID {
		t.Errorf("stored study progress = %+v", rec.StudyProgress)
	}
	draft, _ := env.ledger.GetDraftSelection(ctx, "u1", "2024-03-02")
	if !reflect.DeepEqual(draft, []domain.DraftSelection{{BookID: book.ID, ChapterIDs: []string{introID}}}) {
		t.Errorf("draft = %+v", draft)
	}
}

func TestUpdateBookRenameOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	book, _ := env.catalog.AddBook(ctx, "u1", "Old", []string{"A"})

	name := "New"
	updated, err := env.catalog.UpdateBook(ctx, "u1", book.ID, &name, nil)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "New" || len(updated.Chapters) != 1 || updated.Chapters[0].ID != book.Chapters[0].ID {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := env.catalog.UpdateBook(ctx, "someone-else", book.ID, &name, nil); !errors.Is(err, ErrBookNotFound) {
		t.Errorf("foreign update error = %v", err)
	}
}

func TestDeleteBookCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	goBook, _ := env.catalog.AddBook(ctx, "u1", "Go", []string{"c1", "c2"})
	rust, _ := env.catalog.AddBook(ctx, "u1", "Rust", []string{"r1"})
	g1 := goBook.Chapters[0].ID
	r1 := rust.Chapters[0].ID

	_, _ = env.ledger.SaveActivityRecord(ctx, "u1", "2024-01-01", domain.TrainingFlags{Running: true},
		[]domain.StudyProgress{{BookID: goBook.ID, ChapterID: g1}, {BookID: rust.ID, ChapterID: r1}})
	_, _ = env.ledger.SaveDraftSelection(ctx, "u1", "2024-01-05", []domain.DraftSelection{
		{BookID: goBook.ID, ChapterIDs: []string{g1}},
		{BookID: rust.ID, ChapterIDs: []string{r1}},
	})

	if err := env.catalog.DeleteBook(ctx, "u1", goBook.ID); err != nil {
		t.Fatalf("DeleteBook() error = %v", err)
	}

	books, _ := env.catalog.ListBooks(ctx, "u1")
	if len(books) != 1 || books[0].ID != rust.ID {
		t.Errorf("books = %+v", books)
	}
	rec, _ := env.ledger.GetActivityRecord(ctx, "u1", "2024-01-01")
	for _, p := range rec.StudyProgress {
		if p.BookID == goBook.ID {
			t.Errorf("record still references deleted book: %+v", p)
		}
	}
	if !rec.Training.Running {
		t.Error("training flags must survive cascade")
	}
	// raw cache, not the read-time filter
	if got := env.drafts.Get("u1")["2024-01-05"]; !reflect.DeepEqual(got, []domain.DraftSelection{{BookID: rust.ID, ChapterIDs: []string{r1}}}) {
		t.Errorf("cached draft = %+v", got)
	}

	if err := env.catalog.DeleteBook(ctx, "u1", goBook.ID); !errors.Is(err, ErrBookNotFound) {
		t.Errorf("second delete error = %v", err)
	}
}

func TestListBooksNewestFirstWithCompletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first, _ := env.catalog.AddBook(ctx, "u1", "First", []string{"a"})
	second, _ := env.catalog.AddBook(ctx, "u1", "Second", []string{"b"})
	_, _ = env.ledger.SaveActivityRecord(ctx, "u1", "2024-02-10", domain.TrainingFlags{},
		[]domain.StudyProgress{{BookID: first.ID, ChapterID: first.Chapters[0].ID}})

	books, err := env.catalog.ListBooks(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(books) != 2 || books[0].ID != second.ID {
		t.Fatalf("books = %+v", books)
	}
	ch := books[1].Chapters[0]
	if !ch.IsCompleted || ch.CompletedDate == nil || *ch.CompletedDate != "2024-02-10" {
		t.Errorf("completion projection = %+v", ch)
	}
}

// failingBookRepository fails every write after creation.
type failingBookRepository struct {
	*memory.BookRepository
	err error
}

func (r failingBookRepository) Update(context.Context, *domain.Book) error { return r.err }

func (r failingBookRepository) Delete(context.Context, string, string) error { return r.err }

func TestFailedBookWriteKeepsHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	backendDown := errors.New("backend down")
	catalog := NewCatalogService(failingBookRepository{env.books, backendDown}, env.activity, env.drafts)

	book, err := catalog.AddBook(ctx, "u1", "Algorithms", []string{"Intro", "Sorting"})
	if err != nil {
		t.Fatalf("AddBook() error = %v", err)
	}
	sortingID := chapterID(t, env, "u1", book.ID, "Sorting")
	if _, err := env.ledger.SaveActivityRecord(ctx, "u1", "2024-03-01", domain.TrainingFlags{},
		[]domain.StudyProgress{{BookID: book.ID, ChapterID: sortingID}}); err != nil {
		t.Fatalf("SaveActivityRecord() error = %v", err)
	}
	if _, err := env.ledger.SaveDraftSelection(ctx, "u1", "2024-03-02",
		[]domain.DraftSelection{{BookID: book.ID, ChapterIDs: []string{sortingID}}}); err != nil {
		t.Fatalf("SaveDraftSelection() error = %v", err)
	}

	if _, err := catalog.UpdateBook(ctx, "u1", book.ID, nil, []string{"Intro"}); !errors.Is(err, backendDown) {
		t.Fatalf("UpdateBook() error = %v, want %v", err, backendDown)
	}
	if err := catalog.DeleteBook(ctx, "u1", book.ID); !errors.Is(err, backendDown) {
		t.Fatalf("DeleteBook() error = %v, want %v", err, backendDown)
	}

	got, err := catalog.GetBook(ctx, "u1", book.ID)
	if err != nil {
		t.Fatalf("GetBook() error = %v", err)
	}
	if len(got.Chapters) != 2 || !got.Chapters[1].IsCompleted {
		t.Errorf("chapters after failed writes = %+v, want Sorting still completed", got.Chapters)
	}
	rec, _ := env.ledger.GetActivityRecord(ctx, "u1", "2024-03-01")
	if len(rec.StudyProgress) != 1 {
		t.Errorf("study progress = %+v, want it kept", rec.StudyProgress)
	}
	if draft := env.drafts.Get("u1")["2024-03-02"]; len(draft) != 1 {
		t.Errorf("draft = %+v, want it kept", draft)
	}
}

func TestUpdateBookWithoutChangesSkipsWrite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	catalog := NewCatalogService(failingBookRepository{env.books, errors.New("unexpected write")}, env.activity, env.drafts)

	book, _ := catalog.AddBook(ctx, "u1", "Go", []string{"Basics", "Types"})
	name := " Go "
	got, err := catalog.UpdateBook(ctx, "u1", book.ID, &name, []string{"Basics", "Types", "Basics"})
	if err != nil {
		t.Fatalf("UpdateBook() error = %v, want no write", err)
	}
	if got.Name != "Go" || len(got.Chapters) != 2 {
		t.Errorf("book = %+v", got)
	}
}
