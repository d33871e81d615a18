package service

import (
	"alcyxob/tracker-app/internal/domain"
	"sync"
)

// DraftCache holds unsaved chapter selections per user and date. It is the
// only process-local mutable state of the service layer; it is not persisted
// and is lost on restart.
type DraftCache struct {
	mu     sync.Mutex
	drafts map[string]map[string][]domain.DraftSelection // userID -> date -> selections
}

// NewDraftCache returns an empty cache.
func NewDraftCache() *DraftCache {
	return &DraftCache{drafts: make(map[string]map[string][]domain.DraftSelection)}
}

// Get returns a copy of the user's drafts. A nil cache holds nothing.
func (c *DraftCache) Get(userID string) map[string][]domain.DraftSelection {
	if c == nil {
		return map[string][]domain.DraftSelection{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyDrafts(c.drafts[userID])
}

// Update replaces the user's drafts with fn's result, computed under the lock.
// fn receives a copy and may return it modified. On a nil cache fn is not called.
func (c *DraftCache) Update(userID string, fn func(map[string][]domain.DraftSelection) map[string][]domain.DraftSelection) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	next := fn(copyDrafts(c.drafts[userID]))
	if len(next) == 0 {
		delete(c.drafts, userID)
		return
	}
	c.drafts[userID] = next
}

func copyDrafts(in map[string][]domain.DraftSelection) map[string][]domain.DraftSelection {
	out := make(map[string][]domain.DraftSelection, len(in))
	for date, selections := range in {
		cp := make([]domain.DraftSelection, len(selections))
		for i, sel := range selections {
			cp[i] = domain.DraftSelection{BookID: sel.BookID, ChapterIDs: append([]string(nil), sel.ChapterIDs...)}
		}
		out[date] = cp
	}
	return out
}
