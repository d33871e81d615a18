// internal/domain/book.go
package domain

import (
	"time"
)

// Book is a user-defined learning resource made of ordered chapters.
// Chapters are owned exclusively by their book.
type Book struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Chapters  []Chapter `json:"chapters"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Chapter is a named unit inside a Book.
// IsCompleted and CompletedDate are a projection of the activity ledger, not stored facts.
type Chapter struct {
	ID            string  `json:"id"`
	BookID        string  `json:"bookId"`
	Name          string  `json:"name"`
	Order         int     `json:"order"` // 1-based
	IsCompleted   bool    `json:"isCompleted"`
	CompletedDate *string `json:"completedDate"` // YYYY-MM-DD
}

// ChapterIDs returns the IDs of every chapter in the book, in order.
func (b *Book) ChapterIDs() []string {
	ids := make([]string, len(b.Chapters))
	for i, ch := range b.Chapters {
		ids[i] = ch.ID
	}
	return ids
}

// Chapter looks up a chapter by ID.
func (b *Book) Chapter(id string) (*Chapter, bool) {
	for i := range b.Chapters {
		if b.Chapters[i].ID == id {
			return &b.Chapters[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy, so callers can derive new snapshots without aliasing chapters.
func (b Book) Clone() Book {
	out := b
	out.Chapters = make([]Chapter, len(b.Chapters))
	copy(out.Chapters, b.Chapters)
	for i := range out.Chapters {
		if d := out.Chapters[i].CompletedDate; d != nil {
			v := *d
			out.Chapters[i].CompletedDate = &v
		}
	}
	return out
}
