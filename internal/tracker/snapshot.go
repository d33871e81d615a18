// Package tracker holds the pure state logic of the tracker: chapter diffing,
// the derived-completion index, cascade cleanup, draft filtering and statistics.
//
// Every operation takes a Snapshot and returns a new one; nothing here talks to
// storage or mutates its input.
package tracker

import (
	"alcyxob/tracker-app/internal/domain"
)

// Snapshot is one user's catalog, activity ledger and draft selections at a point in time.
type Snapshot struct {
	Books   []domain.Book
	Records []domain.ActivityRecord
	Drafts  map[string][]domain.DraftSelection // keyed by date
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Books:   make([]domain.Book, len(s.Books)),
		Records: make([]domain.ActivityRecord, len(s.Records)),
		Drafts:  cloneDrafts(s.Drafts),
	}
	for i, b := range s.Books {
		out.Books[i] = b.Clone()
	}
	for i, r := range s.Records {
		out.Records[i] = r.Clone()
	}
	return out
}

// Book returns the book with the given ID.
func (s Snapshot) Book(id string) (domain.Book, bool) {
	for _, b := range s.Books {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Book{}, false
}

// Record returns the activity record for a date.
func (s Snapshot) Record(date string) (domain.ActivityRecord, bool) {
	for _, r := range s.Records {
		if r.Date == date {
			return r, true
		}
	}
	return domain.ActivityRecord{}, false
}

// WithBook returns a snapshot where the book is appended, or replaced if its ID already exists.
func (s Snapshot) WithBook(book domain.Book) Snapshot {
	out := s.Clone()
	for i := range out.Books {
		if out.Books[i].ID == book.ID {
			out.Books[i] = book.Clone()
			return out
		}
	}
	out.Books = append(out.Books, book.Clone())
	return out
}

// WithoutBook returns a snapshot with the book removed and every reference to it cleaned up.
func (s Snapshot) WithoutBook(bookID string) Snapshot {
	book, ok := s.Book(bookID)
	if !ok {
		return s.Clone()
	}
	out := s.Clone()
	kept := out.Books[:0]
	for _, b := range out.Books {
		if b.ID != bookID {
			kept = append(kept, b)
		}
	}
	out.Books = kept
	return out.cleanup(toSet(book.ChapterIDs()), bookID)
}

// UpsertRecord stores the record for its date, replacing any existing one, and
// clears the draft for that date.
func (s Snapshot) UpsertRecord(rec domain.ActivityRecord) Snapshot {
	out := s.Clone()
	rec = rec.Clone()
	rec.StudyProgress = NormalizeStudyProgress(rec.StudyProgress)
	replaced := false
	for i := range out.Records {
		if out.Records[i].Date == rec.Date {
			out.Records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		out.Records = append(out.Records, rec)
	}
	return out.ClearDraft(rec.Date)
}

// NormalizeStudyProgress drops duplicate (book, chapter) pairs, keeping the first occurrence.
func NormalizeStudyProgress(list []domain.StudyProgress) []domain.StudyProgress {
	type pair struct{ book, chapter string }
	seen := make(map[pair]struct{}, len(list))
	out := make([]domain.StudyProgress, 0, len(list))
	for _, p := range list {
		k := pair{p.BookID, p.ChapterID}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
