package ownerRepo

import "datekeeper/models"

// OwnerRepository defines methods for owner settings data access.
type OwnerRepository interface {
	// GetByID retrieves an owner by its unique ID.
	GetByID(id string) (*models.Owner, error)
	// GetByEmail retrieves an owner by email address.
	GetByEmail(email string) (*models.Owner, error)
	// Create inserts a new owner record.
	Create(owner *models.Owner) error
	// Update modifies an existing owner record.
	Update(owner *models.Owner) error
}
