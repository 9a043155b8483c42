package owner

import (
	"fmt"

	ownerRepo "datekeeper/database/repository/owner"
	"datekeeper/models"
)

// UpdateSettingsRequest carries a partial settings update; nil fields are
// untouched.
type UpdateSettingsRequest struct {
	ID                string                         `json:"-"`
	AlternateEmail    *string                        `json:"alternate_email"`
	Phone             *string                        `json:"phone"`
	ReminderIntervals map[models.ReminderBucket]bool `json:"reminder_intervals"`
}

// OwnerService exposes the notification settings the reminder scheduler
// consults.
type OwnerService interface {
	GetOwner(id string) (*models.Owner, error)
	UpdateSettings(req UpdateSettingsRequest) (*models.Owner, error)
}

// DefaultOwnerService is the production implementation.
type DefaultOwnerService struct {
	Repo ownerRepo.OwnerRepository
}

// GetOwner retrieves an owner's settings.
func (s *DefaultOwnerService) GetOwner(id string) (*models.Owner, error) {
	return s.Repo.GetByID(id)
}

// UpdateSettings applies a partial settings update. Reminder interval keys
// are validated against the closed bucket set.
func (s *DefaultOwnerService) UpdateSettings(req UpdateSettingsRequest) (*models.Owner, error) {
	owner, err := s.Repo.GetByID(req.ID)
	if err != nil {
		return nil, err
	}

	if req.AlternateEmail != nil {
		owner.AlternateEmail = *req.AlternateEmail
	}
	if req.Phone != nil {
		owner.Phone = *req.Phone
	}
	if req.ReminderIntervals != nil {
		for bucket := range req.ReminderIntervals {
			if !bucket.Valid() {
				return nil, fmt.Errorf("unknown reminder interval %q", bucket)
			}
		}
		if owner.ReminderIntervals == nil {
			owner.ReminderIntervals = map[models.ReminderBucket]bool{}
		}
		for bucket, enabled := range req.ReminderIntervals {
			owner.ReminderIntervals[bucket] = enabled
		}
	}

	if err := s.Repo.Update(owner); err != nil {
		return nil, err
	}
	return owner, nil
}
