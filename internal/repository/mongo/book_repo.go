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

// mongoBookRepository implements repository.BookRepository.
// Chapters are embedded in their book document.
type mongoBookRepository struct {
	collection *mongo.Collection
}

// NewMongoBookRepository creates a new Book repository backed by MongoDB.
func NewMongoBookRepository(db *mongo.Database) repository.BookRepository {
	return &mongoBookRepository{
		collection: db.Collection(bookCollectionName),
	}
}

// assignChapterIDs gives every chapter without an ID a fresh one.
func assignChapterIDs(book *domain.Book) {
	for i := range book.Chapters {
		if book.Chapters[i].ID == "" {
			book.Chapters[i].ID = uuid.NewString()
		}
		book.Chapters[i].BookID = book.ID
	}
}

// Create inserts a new book with its chapters.
func (r *mongoBookRepository) Create(ctx context.Context, book *domain.Book) (string, error) {
	if book.Name == "" || book.UserID == "" {
		return "", errors.New("book name and user ID are required")
	}

	book.ID = uuid.NewString()
	assignChapterIDs(book)
	now := time.Now().UTC()
	book.CreatedAt = now
	book.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, newBookDocument(book)); err != nil {
		return "", err
	}
	return book.ID, nil
}

// GetByID retrieves a book owned by userID.
func (r *mongoBookRepository) GetByID(ctx context.Context, id, userID string) (*domain.Book, error) {
	var doc bookDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	book := doc.toDomain()
	return &book, nil
}

// GetByUserID retrieves all books of a user, newest first.
func (r *mongoBookRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Book, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bookDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	books := make([]domain.Book, len(docs))
	for i, d := range docs {
		books[i] = d.toDomain()
	}
	return books, nil
}

// Update replaces the name and chapter list of a book. The owner never changes.
func (r *mongoBookRepository) Update(ctx context.Context, book *domain.Book) error {
	if book.ID == "" {
		return errors.New("book ID is required for update")
	}
	if book.Name == "" {
		return errors.New("book name cannot be empty")
	}

	assignChapterIDs(book)
	book.UpdatedAt = time.Now().UTC()

	filter := bson.M{"_id": book.ID, "user_id": book.UserID}
	update := bson.M{
		"$set": bson.M{
			"name":       book.Name,
			"chapters":   chapterDocuments(book.Chapters),
			"updated_at": book.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a book, ensuring it belongs to the specified user.
func (r *mongoBookRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		// Missing and not-owned look the same to the caller.
		return repository.ErrNotFound
	}
	return nil
}

// EnsureBookIndexes creates necessary indexes for the books collection.
func EnsureBookIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
}
