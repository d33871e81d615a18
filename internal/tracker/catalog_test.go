package tracker

import (
	"reflect"
	"testing"

	"alcyxob/tracker-app/internal/domain"
)

func TestNormalizeChapterNames(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "trims and drops blanks",
			input:    []string{"  Intro ", "", "   ", "Sorting"},
			expected: []string{"Intro", "Sorting"},
		},
		{
			name:     "duplicates keep first occurrence",
			input:    []string{"Graphs", "Intro", "Graphs ", "Intro"},
			expected: []string{"Graphs", "Intro"},
		},
		{
			name:     "all blank",
			input:    []string{" ", ""},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeChapterNames(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("NormalizeChapterNames() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDiffChaptersPreservesUnchangedNames(t *testing.T) {
	current := []domain.Chapter{
		{ID: "c1", BookID: "b1", Name: "Intro", Order: 1},
		{ID: "c2", BookID: "b1", Name: "Sorting", Order: 2},
		{ID: "c3", BookID: "b1", Name: "Graphs", Order: 3},
	}

	d := DiffChapters(current, []string{"Graphs", "Intro", "Trees"})

	if got := d.RemovedIDs(); !reflect.DeepEqual(got, []string{"c2"}) {
		t.Fatalf("removed = %v, want [c2]", got)
	}
	if !reflect.DeepEqual(d.Added, []string{"Trees"}) {
		t.Fatalf("added = %v, want [Trees]", d.Added)
	}

	final := d.Chapters("b1")
	want := []struct {
		id    string
		name  string
		order int
	}{
		{"c1", "Intro", 1},
		{"c3", "Graphs", 2},
		{"", "Trees", 3},
	}
	if len(final) != len(want) {
		t.Fatalf("got %d chapters, want %d", len(final), len(want))
	}
	for i, w := range want {
		if final[i].ID != w.id || final[i].Name != w.name || final[i].Order != w.order {
			t.Errorf("position %d: got %+v, want %+v", i, final[i], w)
		}
	}
	if !d.Changed() {
		t.Error("expected diff to report a change")
	}
}

func TestDiffChaptersNoChange(t *testing.T) {
	current := []domain.Chapter{
		{ID: "c1", Name: "A", Order: 1},
		{ID: "c2", Name: "B", Order: 2},
	}
	d := DiffChapters(current, []string{"B", "A"})
	if d.Changed() {
		t.Fatalf("reordering names alone should not change chapters: %+v", d)
	}
}

// Renaming is a delete plus an add: the old chapter's completion is cascaded away.
func TestRenameChapterDropsCompletion(t *testing.T) {
	algo := domain.Book{ID: "b1", Name: "Algorithms"}
	algo.Chapters = []domain.Chapter{
		{ID: "c-intro", BookID: "b1", Name: "Intro", Order: 1},
		{ID: "c-sort", BookID: "b1", Name: "Sorting", Order: 2},
		{ID: "c-graph", BookID: "b1", Name: "Graphs", Order: 3},
	}
	s := newSnapshot(algo).UpsertRecord(record("2024-03-01", false, false, studied("b1", "c-sort")))

	if date, ok := s.ChapterCompletionDate("c-sort"); !ok || date != "2024-03-01" {
		t.Fatalf("completion date = %q, %v; want 2024-03-01", date, ok)
	}

	d := DiffChapters(algo.Chapters, []string{"Intro", "Sort Methods", "Graphs"})
	chapters := d.Chapters("b1")
	for i := range chapters {
		if chapters[i].ID == "" {
			chapters[i].ID = "c-sort-methods"
		}
	}
	updated := algo
	updated.Chapters = chapters
	s = s.ApplyChapterDiff(updated, d.RemovedIDs())

	if _, ok := s.CompletedChapterIDs()["c-sort"]; ok {
		t.Error("old chapter still completed after rename")
	}
	if _, ok := s.CompletedChapterIDs()["c-sort-methods"]; ok {
		t.Error("renamed chapter should start uncompleted")
	}
	rec, _ := s.Record("2024-03-01")
	if len(rec.StudyProgress) != 0 {
		t.Errorf("study progress not cascaded: %+v", rec.StudyProgress)
	}
}
