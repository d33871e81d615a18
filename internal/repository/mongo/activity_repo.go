package mongo

import (
	"alcyxob/tracker-app/internal/domain"
	"alcyxob/tracker-app/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoActivityRepository implements repository.ActivityRepository.
type mongoActivityRepository struct {
	collection *mongo.Collection
}

// NewMongoActivityRepository creates a new activity record repository.
func NewMongoActivityRepository(db *mongo.Database) repository.ActivityRepository {
	return &mongoActivityRepository{
		collection: db.Collection(activityCollectionName),
	}
}

// Upsert writes the record for (user, date), replacing flags and study progress.
// The record's ID and CreatedAt are filled from the stored document.
func (r *mongoActivityRepository) Upsert(ctx context.Context, record *domain.ActivityRecord) error {
	if record.UserID == "" || record.Date == "" {
		return repository.ErrInvalidRecord
	}

	now := time.Now().UTC()
	filter := bson.M{"user_id": record.UserID, "record_date": record.Date}
	update := bson.M{
		"$set": bson.M{
			"running":           record.Training.Running,
			"strength_training": record.Training.Strength,
			"study_progress":    studyProgressDocuments(record.StudyProgress),
			"updated_at":        now,
		},
		"$setOnInsert": bson.M{
			"_id":        uuid.NewString(),
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc activityDocument
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return err
	}
	*record = doc.toDomain()
	return nil
}

// GetByDate retrieves the record of a user for one date.
func (r *mongoActivityRepository) GetByDate(ctx context.Context, userID, date string) (*domain.ActivityRecord, error) {
	var doc activityDocument
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "record_date": date}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	record := doc.toDomain()
	return &record, nil
}

// GetByUserID retrieves a user's records within [from, to], ascending by date.
func (r *mongoActivityRepository) GetByUserID(ctx context.Context, userID, from, to string) ([]domain.ActivityRecord, error) {
	filter := bson.M{"user_id": userID}
	if dateRange := dateRangeFilter(from, to); dateRange != nil {
		filter["record_date"] = dateRange
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "record_date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []activityDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]domain.ActivityRecord, len(docs))
	for i, d := range docs {
		records[i] = d.toDomain()
	}
	return records, nil
}

// RemoveStudyProgress pulls every study entry referencing one of the chapters
// from all of the user's records. Records themselves are kept.
func (r *mongoActivityRepository) RemoveStudyProgress(ctx context.Context, userID string, chapterIDs []string) error {
	if len(chapterIDs) == 0 {
		return nil
	}
	return r.pull(ctx, userID, bson.M{"chapter_id": bson.M{"$in": chapterIDs}})
}

// RemoveStudyProgressForBook pulls every study entry of a book.
func (r *mongoActivityRepository) RemoveStudyProgressForBook(ctx context.Context, userID, bookID string) error {
	return r.pull(ctx, userID, bson.M{"book_id": bookID})
}

func (r *mongoActivityRepository) pull(ctx context.Context, userID string, match bson.M) error {
	filter := bson.M{"user_id": userID, "study_progress": bson.M{"$elemMatch": match}}
	update := bson.M{
		"$pull": bson.M{"study_progress": match},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}

// dateRangeFilter builds a range condition on a YYYY-MM-DD field; nil when both bounds are empty.
func dateRangeFilter(from, to string) bson.M {
	cond := bson.M{}
	if from != "" {
		cond["$gte"] = from
	}
	if to != "" {
		cond["$lte"] = to
	}
	if len(cond) == 0 {
		return nil
	}
	return cond
}

// EnsureActivityIndexes creates necessary indexes for the activity_records collection.
func EnsureActivityIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "record_date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Cascade cleanup
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "study_progress.chapter_id", Value: 1}},
		},
	})
}
