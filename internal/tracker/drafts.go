package tracker

import (
	"alcyxob/tracker-app/internal/domain"
)

// FilterSelections keeps only selections whose book exists in the catalog and,
// within each, only chapters belonging to that book. Pairs left with no
// chapters are dropped.
func FilterSelections(books []domain.Book, selections []domain.DraftSelection) []domain.DraftSelection {
	byID := make(map[string]domain.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	out := make([]domain.DraftSelection, 0, len(selections))
	for _, sel := range selections {
		book, ok := byID[sel.BookID]
		if !ok {
			continue
		}
		var ids []string
		for _, id := range sel.ChapterIDs {
			if _, ok := book.Chapter(id); ok {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			out = append(out, domain.DraftSelection{BookID: sel.BookID, ChapterIDs: ids})
		}
	}
	return out
}

// SaveDraft stores the filtered selections for a date, overwriting any previous
// draft. An empty filtered result removes the date.
func (s Snapshot) SaveDraft(date string, selections []domain.DraftSelection) Snapshot {
	out := s.Clone()
	valid := FilterSelections(out.Books, selections)
	if len(valid) == 0 {
		delete(out.Drafts, date)
		return out
	}
	out.Drafts[date] = valid
	return out
}

// Draft returns the stored draft for a date, re-filtered against the current catalog.
func (s Snapshot) Draft(date string) []domain.DraftSelection {
	return FilterSelections(s.Books, s.Drafts[date])
}

// ClearDraft drops the draft for a date.
func (s Snapshot) ClearDraft(date string) Snapshot {
	out := s.Clone()
	delete(out.Drafts, date)
	return out
}

func cloneDrafts(drafts map[string][]domain.DraftSelection) map[string][]domain.DraftSelection {
	out := make(map[string][]domain.DraftSelection, len(drafts))
	for date, selections := range drafts {
		cp := make([]domain.DraftSelection, len(selections))
		for i, sel := range selections {
			ids := make([]string, len(sel.ChapterIDs))
			copy(ids, sel.ChapterIDs)
			cp[i] = domain.DraftSelection{BookID: sel.BookID, ChapterIDs: ids}
		}
		out[date] = cp
	}
	return out
}
