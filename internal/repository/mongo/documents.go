package mongo

import (
	"alcyxob/tracker-app/internal/domain"
	"time"
)

// Documents are the stored shapes of the domain types. Fields are snake_case.

type userDocument struct {
	ID           string     `bson:"_id"`
	Email        string     `bson:"email"`
	Username     string     `bson:"username"`
	PasswordHash string     `bson:"password_hash"`
	Status       string     `bson:"status"`
	IsAdmin      bool       `bson:"is_admin"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at"`
	ApprovedAt   *time.Time `bson:"approved_at,omitempty"`
}

func newUserDocument(u *domain.User) userDocument {
	return userDocument{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Status:       string(u.Status),
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.CreatedAt,
		ApprovedAt:   u.ApprovedAt,
	}
}

func (d userDocument) toDomain() domain.User {
	return domain.User{
		ID:           d.ID,
		Email:        d.Email,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Status:       domain.UserStatus(d.Status),
		IsAdmin:      d.IsAdmin,
		CreatedAt:    d.CreatedAt,
		ApprovedAt:   d.ApprovedAt,
	}
}

// Completion is not stored on chapters; it is derived from activity records.
type chapterDocument struct {
	ID         string `bson:"id"`
	Name       string `bson:"name"`
	OrderIndex int    `bson:"order_index"`
}

type bookDocument struct {
	ID        string            `bson:"_id"`
	UserID    string            `bson:"user_id"`
	Name      string            `bson:"name"`
	Chapters  []chapterDocument `bson:"chapters"`
	CreatedAt time.Time         `bson:"created_at"`
	UpdatedAt time.Time         `bson:"updated_at"`
}

func chapterDocuments(chapters []domain.Chapter) []chapterDocument {
	docs := make([]chapterDocument, len(chapters))
	for i, ch := range chapters {
		docs[i] = chapterDocument{ID: ch.ID, Name: ch.Name, OrderIndex: ch.Order}
	}
	return docs
}

func newBookDocument(b *domain.Book) bookDocument {
	return bookDocument{
		ID:        b.ID,
		UserID:    b.UserID,
		Name:      b.Name,
		Chapters:  chapterDocuments(b.Chapters),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (d bookDocument) toDomain() domain.Book {
	b := domain.Book{
		ID:        d.ID,
		UserID:    d.UserID,
		Name:      d.Name,
		Chapters:  make([]domain.Chapter, len(d.Chapters)),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	for i, ch := range d.Chapters {
		b.Chapters[i] = domain.Chapter{ID: ch.ID, BookID: d.ID, Name: ch.Name, Order: ch.OrderIndex}
	}
	return b
}

type studyProgressDocument struct {
	BookID      string `bson:"book_id"`
	ChapterID   string `bson:"chapter_id"`
	BookName    string `bson:"book_name"`
	ChapterName string `bson:"chapter_name"`
}

type activityDocument struct {
	ID               string                  `bson:"_id"`
	UserID           string                  `bson:"user_id"`
	RecordDate       string                  `bson:"record_date"`
	Running          bool                    `bson:"running"`
	StrengthTraining bool                    `bson:"strength_training"`
	StudyProgress    []studyProgressDocument `bson:"study_progress"`
	CreatedAt        time.Time               `bson:"created_at"`
	UpdatedAt        time.Time               `bson:"updated_at"`
}

func studyProgressDocuments(list []domain.StudyProgress) []studyProgressDocument {
	docs := make([]studyProgressDocument, len(list))
	for i, p := range list {
		docs[i] = studyProgressDocument{
			BookID:      p.BookID,
			ChapterID:   p.ChapterID,
			BookName:    p.BookName,
			ChapterName: p.ChapterName,
		}
	}
	return docs
}

func (d activityDocument) toDomain() domain.ActivityRecord {
	r := domain.ActivityRecord{
		ID:            d.ID,
		UserID:        d.UserID,
		Date:          d.RecordDate,
		Training:      domain.TrainingFlags{Running: d.Running, Strength: d.StrengthTraining},
		StudyProgress: make([]domain.StudyProgress, len(d.StudyProgress)),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	for i, p := range d.StudyProgress {
		r.StudyProgress[i] = domain.StudyProgress{
			BookID:      p.BookID,
			ChapterID:   p.ChapterID,
			BookName:    p.BookName,
			ChapterName: p.ChapterName,
		}
	}
	return r
}

type healthDocument struct {
	ID                string    `bson:"_id"`
	UserID            string    `bson:"user_id"`
	RecordDate        string    `bson:"record_date"`
	Weight            *float64  `bson:"weight,omitempty"`
	BodyFatPercentage *float64  `bson:"body_fat_percentage,omitempty"`
	CreatedAt         time.Time `bson:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at"`
}

func (d healthDocument) toDomain() domain.HealthEntry {
	return domain.HealthEntry{
		ID:                d.ID,
		UserID:            d.UserID,
		Date:              d.RecordDate,
		Weight:            d.Weight,
		BodyFatPercentage: d.BodyFatPercentage,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

type exportDocument struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"user_id"`
	S3ObjectKey string    `bson:"s3_object_key"`
	FileName    string    `bson:"file_name"`
	ContentType string    `bson:"content_type"`
	Size        int64     `bson:"size"`
	CreatedAt   time.Time `bson:"created_at"`
}

func newExportDocument(e *domain.Export) exportDocument {
	return exportDocument{
		ID:          e.ID,
		UserID:      e.UserID,
		S3ObjectKey: e.S3ObjectKey,
		FileName:    e.FileName,
		ContentType: e.ContentType,
		Size:        e.Size,
		CreatedAt:   e.CreatedAt,
	}
}

func (d exportDocument) toDomain() domain.Export {
	return domain.Export{
		ID:          d.ID,
		UserID:      d.UserID,
		S3ObjectKey: d.S3ObjectKey,
		FileName:    d.FileName,
		ContentType: d.ContentType,
		Size:        d.Size,
		CreatedAt:   d.CreatedAt,
	}
}
