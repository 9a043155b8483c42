package documentRepo

import (
	"time"

	"datekeeper/models"
)

// DocumentRepository defines methods for document data access.
type DocumentRepository interface {
	// GetByID retrieves a document by its unique ID.
	GetByID(id string) (*models.Document, error)
	// GetAll retrieves all documents.
	GetAll() ([]models.Document, error)
	// GetByOwner retrieves all documents belonging to an owner.
	GetByOwner(ownerID string) ([]models.Document, error)
	// GetDueForReminder retrieves non-expired documents expiring exactly on the given date.
	GetDueForReminder(expiry time.Time) ([]models.Document, error)
	// Create inserts a new document record.
	Create(doc *models.Document) error
	// Update modifies an existing document record.
	Update(doc *models.Document) error
	// Delete removes a document record and its reminder ledger by ID.
	Delete(id string) error
	// MarkReminderSent atomically records a reminder attempt for one bucket.
	MarkReminderSent(id string, bucket models.ReminderBucket, at time.Time) error
	// UpdateStatus atomically sets the derived status field.
	UpdateStatus(id string, status models.DocumentStatus) error
	// ResetReminders clears the reminder ledger, used when the expiry date changes.
	ResetReminders(id string) error
}
