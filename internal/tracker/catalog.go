package tracker

import (
	"strings"

	"alcyxob/tracker-app/internal/domain"
)

// NormalizeChapterNames trims every name, drops blanks and removes duplicates,
// keeping the first occurrence.
func NormalizeChapterNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// NewChapters builds unsaved chapters for the given names with order 1..N.
func NewChapters(bookID string, names []string) []domain.Chapter {
	chapters := make([]domain.Chapter, len(names))
	for i, n := range names {
		chapters[i] = domain.Chapter{BookID: bookID, Name: n, Order: i + 1}
	}
	return chapters
}

// ChapterDiff is the result of comparing a book's chapters with a new list of names.
// Chapters are matched by name, so a renamed chapter is a removal plus an addition.
type ChapterDiff struct {
	Preserved []domain.Chapter // existing chapters whose name is still present, current order
	Removed   []domain.Chapter // existing chapters whose name is gone
	Added     []string         // new names, input order
}

// DiffChapters compares current chapters against the wanted names.
// names should already be normalized.
func DiffChapters(current []domain.Chapter, names []string) ChapterDiff {
	wanted := toSet(names)
	existing := make(map[string]struct{}, len(current))
	var d ChapterDiff
	for _, ch := range current {
		existing[ch.Name] = struct{}{}
		if _, ok := wanted[ch.Name]; ok {
			d.Preserved = append(d.Preserved, ch)
		} else {
			d.Removed = append(d.Removed, ch)
		}
	}
	for _, n := range names {
		if _, ok := existing[n]; !ok {
			d.Added = append(d.Added, n)
		}
	}
	return d
}

// RemovedIDs returns the IDs of removed chapters.
func (d ChapterDiff) RemovedIDs() []string {
	ids := make([]string, len(d.Removed))
	for i, ch := range d.Removed {
		ids[i] = ch.ID
	}
	return ids
}

// Changed reports whether applying the diff alters the chapter list.
func (d ChapterDiff) Changed() bool {
	if len(d.Removed) > 0 || len(d.Added) > 0 {
		return true
	}
	for i, ch := range d.Preserved {
		if ch.Order != i+1 {
			return true
		}
	}
	return false
}

// Chapters returns the final chapter list: preserved chapters renumbered 1..P
// followed by the added names numbered P+1..N. Added chapters have no ID yet.
func (d ChapterDiff) Chapters(bookID string) []domain.Chapter {
	out := make([]domain.Chapter, 0, len(d.Preserved)+len(d.Added))
	for i, ch := range d.Preserved {
		ch.Order = i + 1
		out = append(out, ch)
	}
	base := len(d.Preserved)
	for i, n := range d.Added {
		out = append(out, domain.Chapter{BookID: bookID, Name: n, Order: base + i + 1})
	}
	return out
}

// ApplyChapterDiff returns a snapshot where the book carries the given final
// chapters and every reference to the removed chapters is cleaned up.
func (s Snapshot) ApplyChapterDiff(book domain.Book, removedIDs []string) Snapshot {
	return s.WithBook(book).CleanupChapters(removedIDs)
}
