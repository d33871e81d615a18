package tracker

import (
	"alcyxob/tracker-app/internal/domain"
)

func book(id, name string, chapters ...string) domain.Book {
	b := domain.Book{ID: id, UserID: "u1", Name: name}
	for i, ch := range chapters {
		b.Chapters = append(b.Chapters, domain.Chapter{ID: ch, BookID: id, Name: "ch-" + ch, Order: i + 1})
	}
	return b
}

func record(date string, running, strength bool, progress ...domain.StudyProgress) domain.ActivityRecord {
	return domain.ActivityRecord{
		ID:            "r-" + date,
		UserID:        "u1",
		Date:          date,
		Training:      domain.TrainingFlags{Running: running, Strength: strength},
		StudyProgress: progress,
	}
}

func studied(bookID, chapterID string) domain.StudyProgress {
	return domain.StudyProgress{BookID: bookID, ChapterID: chapterID, BookName: bookID, ChapterName: chapterID}
}

func newSnapshot(books ...domain.Book) Snapshot {
	return Snapshot{Books: books, Drafts: map[string][]domain.DraftSelection{}}
}
