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

// mongoExportRepository implements repository.ExportRepository
type mongoExportRepository struct {
	collection *mongo.Collection
}

// NewMongoExportRepository creates a new Export repository backed by MongoDB.
func NewMongoExportRepository(db *mongo.Database) repository.ExportRepository {
	return &mongoExportRepository{
		collection: db.Collection(exportCollectionName),
	}
}

// Create inserts export metadata into the database.
func (r *mongoExportRepository) Create(ctx context.Context, export *domain.Export) (string, error) {
	if export.UserID == "" || export.S3ObjectKey == "" {
		return "", errors.New("export requires userId and s3ObjectKey")
	}

	if export.ID == "" {
		export.ID = uuid.NewString()
	}
	export.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, newExportDocument(export)); err != nil {
		return "", err
	}
	return export.ID, nil
}

// GetByID retrieves export metadata owned by userID.
func (r *mongoExportRepository) GetByID(ctx context.Context, id, userID string) (*domain.Export, error) {
	var doc exportDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	export := doc.toDomain()
	return &export, nil
}

// GetByUserID lists a user's exports, newest first.
func (r *mongoExportRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Export, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []exportDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	exports := make([]domain.Export, len(docs))
	for i, d := range docs {
		exports[i] = d.toDomain()
	}
	return exports, nil
}

// Delete removes export metadata. The stored object is deleted by the caller.
func (r *mongoExportRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureExportIndexes creates necessary indexes for the exports collection.
func EnsureExportIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys:    bson.D{{Key: "s3_object_key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}
