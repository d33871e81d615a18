package tracker

import (
	"alcyxob/tracker-app/internal/domain"
)

// CleanupChapters strips every reference to the removed chapter IDs from the
// ledger and the draft cache. Draft pairs left empty are dropped, and so are
// dates left with no pairs.
func (s Snapshot) CleanupChapters(removedIDs []string) Snapshot {
	out := s.Clone()
	if len(removedIDs) == 0 {
		return out
	}
	return out.cleanup(toSet(removedIDs), "")
}

// cleanup works in place on an already cloned snapshot. A non-empty bookID also
// drops every study entry and draft pair for that book, whatever the chapter.
func (s Snapshot) cleanup(removed map[string]struct{}, bookID string) Snapshot {
	s.Records = StripStudyProgress(s.Records, removed, bookID)
	s.Drafts = StripDrafts(s.Drafts, removed, bookID)
	return s
}

// StripStudyProgress returns records without study entries that reference a removed
// chapter (or the removed book, when bookID is set). Records themselves are kept.
func StripStudyProgress(records []domain.ActivityRecord, removed map[string]struct{}, bookID string) []domain.ActivityRecord {
	out := make([]domain.ActivityRecord, len(records))
	for i, r := range records {
		r = r.Clone()
		kept := r.StudyProgress[:0]
		for _, p := range r.StudyProgress {
			if _, gone := removed[p.ChapterID]; gone {
				continue
			}
			if bookID != "" && p.BookID == bookID {
				continue
			}
			kept = append(kept, p)
		}
		r.StudyProgress = kept
		out[i] = r
	}
	return out
}

// StripDrafts removes removed chapter IDs from every draft selection.
func StripDrafts(drafts map[string][]domain.DraftSelection, removed map[string]struct{}, bookID string) map[string][]domain.DraftSelection {
	out := make(map[string][]domain.DraftSelection, len(drafts))
	for date, selections := range drafts {
		var kept []domain.DraftSelection
		for _, sel := range selections {
			if bookID != "" && sel.BookID == bookID {
				continue
			}
			var ids []string
			for _, id := range sel.ChapterIDs {
				if _, gone := removed[id]; !gone {
					ids = append(ids, id)
				}
			}
			if len(ids) > 0 {
				kept = append(kept, domain.DraftSelection{BookID: sel.BookID, ChapterIDs: ids})
			}
		}
		if len(kept) > 0 {
			out[date] = kept
		}
	}
	return out
}
