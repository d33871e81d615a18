package domain

// DraftSelection is an unsaved chapter selection for one book, cached per date.
type DraftSelection struct {
	BookID     string   `json:"bookId"`
	ChapterIDs []string `json:"chapterIds"`
}
