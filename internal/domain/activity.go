// internal/domain/activity.go
package domain

import (
	"time"
)

// TrainingFlags records which kinds of training happened on a day.
type TrainingFlags struct {
	Running  bool `json:"running"`
	Strength bool `json:"strength"`
}

// Any reports whether any training happened.
func (t TrainingFlags) Any() bool {
	return t.Running || t.Strength
}

// StudyProgress is a snapshot of a chapter studied on the owning record's date.
// Names are copied at write time so history survives later renames.
type StudyProgress struct {
	BookID      string `json:"bookId"`
	ChapterID   string `json:"chapterId"`
	BookName    string `json:"bookName"`
	ChapterName string `json:"chapterName"`
}

// ActivityRecord is one user's log for one calendar date. Date is unique per user.
type ActivityRecord struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Date          string          `json:"date"` // YYYY-MM-DD
	Training      TrainingFlags   `json:"training"`
	StudyProgress []StudyProgress `json:"studyProgress"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// HasStudy reports whether any chapter was studied on this date.
func (r *ActivityRecord) HasStudy() bool {
	return len(r.StudyProgress) > 0
}

// Clone returns a copy with its own StudyProgress slice.
func (r ActivityRecord) Clone() ActivityRecord {
	out := r
	out.StudyProgress = make([]StudyProgress, len(r.StudyProgress))
	copy(out.StudyProgress, r.StudyProgress)
	return out
}
