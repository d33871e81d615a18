package tracker

import (
	"testing"
)

func TestCompletedChapterIDsFiltersStaleReferences(t *testing.T) {
	s := newSnapshot(book("b1", "Go", "c1", "c2"))
	s.Records = append(s.Records,
		record("2024-01-02", true, false, studied("b1", "c1"), studied("b1", "gone")),
		record("2024-01-03", false, false, studied("b1", "c1")),
	)

	done := s.CompletedChapterIDs()
	if len(done) != 1 {
		t.Fatalf("want 1 completed chapter, got %v", done)
	}
	if _, ok := done["c1"]; !ok {
		t.Fatalf("c1 should be completed")
	}
	if _, ok := done["gone"]; ok {
		t.Fatalf("stale chapter reported as completed")
	}
}

func TestChapterCompletionDateIsEarliest(t *testing.T) {
	s := newSnapshot(book("b1", "Go", "c1"))
	// insertion order differs from chronological order
	s.Records = append(s.Records,
		record("2024-05-10", false, false, studied("b1", "c1")),
		record("2024-02-01", false, false, studied("b1", "c1")),
	)

	date, ok := s.ChapterCompletionDate("c1")
	if !ok || date != "2024-02-01" {
		t.Fatalf("got %q, %v; want 2024-02-01", date, ok)
	}
	if _, ok := s.ChapterCompletionDate("missing"); ok {
		t.Fatal("missing chapter should have no completion date")
	}
}

func TestProjectCompletion(t *testing.T) {
	s := newSnapshot(book("b1", "Go", "c1", "c2"))
	s.Books[0].Chapters[1].IsCompleted = true // stored flag is not trusted
	s.Records = append(s.Records, record("2024-01-02", false, false, studied("b1", "c1")))

	books := s.ProjectCompletion()
	c1, c2 := books[0].Chapters[0], books[0].Chapters[1]
	if !c1.IsCompleted || c1.CompletedDate == nil || *c1.CompletedDate != "2024-01-02" {
		t.Errorf("c1 projection wrong: %+v", c1)
	}
	if c2.IsCompleted || c2.CompletedDate != nil {
		t.Errorf("c2 projection wrong: %+v", c2)
	}
	if !s.Books[0].Chapters[1].IsCompleted {
		t.Error("projection mutated the input snapshot")
	}
}
