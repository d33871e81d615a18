package tracker

import (
	"sort"

	"alcyxob/tracker-app/internal/domain"
)

// ValidChapterIDs returns the set of chapter IDs that currently exist in the catalog.
func ValidChapterIDs(books []domain.Book) map[string]struct{} {
	set := make(map[string]struct{})
	for _, b := range books {
		for _, ch := range b.Chapters {
			set[ch.ID] = struct{}{}
		}
	}
	return set
}

// CompletedChapterIDs scans every record's study progress and returns the chapter
// IDs that are referenced and still exist. Stale references are ignored.
func (s Snapshot) CompletedChapterIDs() map[string]struct{} {
	valid := ValidChapterIDs(s.Books)
	done := make(map[string]struct{})
	for _, r := range s.Records {
		for _, p := range r.StudyProgress {
			if _, ok := valid[p.ChapterID]; ok {
				done[p.ChapterID] = struct{}{}
			}
		}
	}
	return done
}

// SortedCompletedChapterIDs is CompletedChapterIDs as a sorted slice.
func (s Snapshot) SortedCompletedChapterIDs() []string {
	set := s.CompletedChapterIDs()
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ChapterCompletionDate returns the earliest record date that references the chapter.
func (s Snapshot) ChapterCompletionDate(chapterID string) (string, bool) {
	found := ""
	for _, r := range s.Records {
		for _, p := range r.StudyProgress {
			if p.ChapterID != chapterID {
				continue
			}
			// YYYY-MM-DD sorts lexically
			if found == "" || r.Date < found {
				found = r.Date
			}
			break
		}
	}
	return found, found != ""
}

// ProjectCompletion returns copies of the books with IsCompleted and CompletedDate
// recomputed from the ledger.
func (s Snapshot) ProjectCompletion() []domain.Book {
	dates := make(map[string]string)
	for _, r := range s.Records {
		for _, p := range r.StudyProgress {
			if d, ok := dates[p.ChapterID]; !ok || r.Date < d {
				dates[p.ChapterID] = r.Date
			}
		}
	}
	out := make([]domain.Book, len(s.Books))
	for i, b := range s.Books {
		b = b.Clone()
		for j := range b.Chapters {
			ch := &b.Chapters[j]
			if d, ok := dates[ch.ID]; ok {
				date := d
				ch.IsCompleted = true
				ch.CompletedDate = &date
			} else {
				ch.IsCompleted = false
				ch.CompletedDate = nil
			}
		}
		out[i] = b
	}
	return out
}
