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

type mongoHealthRepository struct {
	collection *mongo.Collection
}

// NewMongoHealthRepository creates a new health entry repository.
func NewMongoHealthRepository(db *mongo.Database) repository.HealthRepository {
	return &mongoHealthRepository{
		collection: db.Collection(healthCollectionName),
	}
}

// Upsert writes the entry for (user, date). Missing values are stored as absent,
// so a later upsert can clear a metric.
func (r *mongoHealthRepository) Upsert(ctx context.Context, entry *domain.HealthEntry) error {
	if entry.UserID == "" || entry.Date == "" {
		return repository.ErrInvalidRecord
	}

	now := time.Now().UTC()
	set := bson.M{"updated_at": now}
	unset := bson.M{}
	if entry.Weight != nil {
		set["weight"] = *entry.Weight
	} else {
		unset["weight"] = ""
	}
	if entry.BodyFatPercentage != nil {
		set["body_fat_percentage"] = *entry.BodyFatPercentage
	} else {
		unset["body_fat_percentage"] = ""
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":        uuid.NewString(),
			"created_at": now,
		},
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	filter := bson.M{"user_id": entry.UserID, "record_date": entry.Date}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc healthDocument
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return err
	}
	*entry = doc.toDomain()
	return nil
}

// GetByID retrieves an entry owned by userID.
func (r *mongoHealthRepository) GetByID(ctx context.Context, id, userID string) (*domain.HealthEntry, error) {
	var doc healthDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	entry := doc.toDomain()
	return &entry, nil
}

// GetByUserID retrieves a user's entries within [from, to], ascending by date.
func (r *mongoHealthRepository) GetByUserID(ctx context.Context, userID, from, to string) ([]domain.HealthEntry, error) {
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

	var docs []healthDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	entries := make([]domain.HealthEntry, len(docs))
	for i, d := range docs {
		entries[i] = d.toDomain()
	}
	return entries, nil
}

// Delete removes an entry, ensuring it belongs to the specified user.
func (r *mongoHealthRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureHealthIndexes creates necessary indexes for the health_entries collection.
func EnsureHealthIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "record_date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}
