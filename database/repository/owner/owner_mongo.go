package ownerRepo

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

// MongoOwnerRepo implements OwnerRepository using MongoDB.
type MongoOwnerRepo struct {
	coll *mongo.Collection
}

// NewMongoOwnerRepo creates a new instance of OwnerRepository using MongoDB.
func NewMongoOwnerRepo() OwnerRepository {
	repo := &MongoOwnerRepo{coll: database.Collection("owners")}

	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("Failed to create owner indexes", zap.Error(err))
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoOwnerRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves an owner by its unique ID.
func (r *MongoOwnerRepo) GetByID(id string) (*models.Owner, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var owner models.Owner
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&owner); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("owner with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch owner with id %s: %w", id, err)
	}
	return &owner, nil
}

// GetByEmail retrieves an owner by email address.
func (r *MongoOwnerRepo) GetByEmail(email string) (*models.Owner, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var owner models.Owner
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&owner); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("owner with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to fetch owner with email %s: %w", email, err)
	}
	return &owner, nil
}

// Create inserts a new owner record.
func (r *MongoOwnerRepo) Create(owner *models.Owner) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	owner.CreatedAt = now
	owner.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, owner); err != nil {
		return fmt.Errorf("failed to create owner: %w", err)
	}
	return nil
}

// Update modifies an existing owner record.
func (r *MongoOwnerRepo) Update(owner *models.Owner) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	owner.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": owner.ID}, bson.M{"$set": owner})
	if err != nil {
		return fmt.Errorf("failed to update owner with id %s: %w", owner.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("owner with id %s not found", owner.ID)
	}
	return nil
}
