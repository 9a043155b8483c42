// File: database/repository/document/documentMongoCrud.go
package documentRepo

import (
	"fmt"
	"time"

	"datekeeper/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new document record.
func (r *MongoDocumentRepo) Create(doc *models.Document) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// Update modifies an existing document record.
func (r *MongoDocumentRepo) Update(doc *models.Document) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	doc.UpdatedAt = time.Now()
	filter := bson.M{"id": doc.ID}
	update := bson.M{"$set": doc}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update document with id %s: %w", doc.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("document with id %s not found", doc.ID)
	}
	return nil
}

// Delete removes a document record by its ID. The reminder ledger lives on
// the document, so it is discarded with it.
func (r *MongoDocumentRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete document with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("document with id %s not found", id)
	}
	return nil
}

// MarkReminderSent atomically records a reminder attempt for one bucket.
func (r *MongoDocumentRepo) MarkReminderSent(id string, bucket models.ReminderBucket, at time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"reminder_sent." + string(bucket): at,
		"updated_at":                      time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to mark %s reminder for document %s: %w", bucket, id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("document with id %s not found", id)
	}
	return nil
}

// UpdateStatus atomically sets the derived status field.
func (r *MongoDocumentRepo) UpdateStatus(id string, status models.DocumentStatus) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update status for document %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("document with id %s not found", id)
	}
	return nil
}

// ResetReminders clears the reminder ledger after an expiry date change.
func (r *MongoDocumentRepo) ResetReminders(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"reminder_sent": models.ReminderLedger{},
		"updated_at":    time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to reset reminders for document %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("document with id %s not found", id)
	}
	return nil
}
