package documentRepo

import (
	"context"
	"fmt"
	"time"

	"datekeeper/database"
	"datekeeper/models"
	"datekeeper/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoDocumentRepo implements DocumentRepository using MongoDB.
type MongoDocumentRepo struct {
	coll *mongo.Collection
}

// NewMongoDocumentRepo creates a new instance of DocumentRepository using MongoDB.
func NewMongoDocumentRepo() DocumentRepository {
	repo := &MongoDocumentRepo{coll: database.Collection("documents")}

	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("Failed to create document indexes", zap.Error(err))
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
// expiry_date is queried by exact equality on every scheduler run.
func (r *MongoDocumentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "expiry_date", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a document by its unique ID.
func (r *MongoDocumentRepo) GetByID(id string) (*models.Document, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doc models.Document
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("document with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch document with id %s: %w", id, err)
	}
	return &doc, nil
}

// GetAll retrieves all documents.
func (r *MongoDocumentRepo) GetAll() ([]models.Document, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return docs, nil
}

// GetByOwner retrieves all documents belonging to an owner.
func (r *MongoDocumentRepo) GetByOwner(ownerID string) ([]models.Document, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents for owner %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)

	var docs []models.Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents for owner %s: %w", ownerID, err)
	}
	return docs, nil
}

// GetDueForReminder retrieves non-expired documents whose expiry date equals
// the given calendar date.
func (r *MongoDocumentRepo) GetDueForReminder(expiry time.Time) ([]models.Document, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"expiry_date": models.DateOnly(expiry),
		"status":      bson.M{"$ne": models.StatusExpired},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents expiring on %s: %w", expiry.Format("2006-01-02"), err)
	}
	defer cursor.Close(ctx)

	var docs []models.Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents expiring on %s: %w", expiry.Format("2006-01-02"), err)
	}
	return docs, nil
}
