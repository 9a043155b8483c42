package document

import (
	"fmt"
	"time"

	"datekeeper/models"

	"github.com/google/uuid"
)

func (s *DefaultDocumentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func parseExpiry(raw string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid expiry date %q: %w", raw, err)
	}
	return models.DateOnly(parsed), nil
}

// CreateDocument validates the request and stores a new document with an
// empty reminder ledger and a status computed from today.
func (s *DefaultDocumentService) CreateDocument(req CreateDocumentRequest) (*models.Document, error) {
	expiry, err := parseExpiry(req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	docType := req.Type
	if docType == "" {
		docType = models.TypeOther
	}

	doc := &models.Document{
		ID:           uuid.New().String(),
		OwnerID:      req.OwnerID,
		Name:         req.Name,
		Type:         docType,
		ExpiryDate:   expiry,
		Status:       models.ClassifyStatus(expiry, s.now()),
		ReminderSent: models.ReminderLedger{},
		NotifyEmail:  true,
		NotifySMS:    false,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}
	if req.NotifyEmail != nil {
		doc.NotifyEmail = *req.NotifyEmail
	}
	if req.NotifySMS != nil {
		doc.NotifySMS = *req.NotifySMS
	}

	if err := s.Repo.Create(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetDocument retrieves a single document by ID.
func (s *DefaultDocumentService) GetDocument(id string) (*models.Document, error) {
	return s.Repo.GetByID(id)
}

// ListByOwner retrieves all documents belonging to an owner.
func (s *DefaultDocumentService) ListByOwner(ownerID string) ([]models.Document, error) {
	return s.Repo.GetByOwner(ownerID)
}

// UpdateDocument applies a partial update. Changing the expiry date resets
// the reminder ledger, so every bucket can fire again against the new date,
// and recomputes the status.
func (s *DefaultDocumentService) UpdateDocument(req UpdateDocumentRequest) (*models.Document, error) {
	doc, err := s.Repo.GetByID(req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		doc.Name = *req.Name
	}
	if req.Type != nil {
		doc.Type = *req.Type
	}
	if req.NotifyEmail != nil {
		doc.NotifyEmail = *req.NotifyEmail
	}
	if req.NotifySMS != nil {
		doc.NotifySMS = *req.NotifySMS
	}
	if req.ContactEmail != nil {
		doc.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		doc.ContactPhone = *req.ContactPhone
	}

	if req.ExpiryDate != nil {
		expiry, err := parseExpiry(*req.ExpiryDate)
		if err != nil {
			return nil, err
		}
		if !expiry.Equal(doc.ExpiryDate) {
			doc.ExpiryDate = expiry
			doc.ReminderSent = models.ReminderLedger{}
			doc.Status = models.ClassifyStatus(expiry, s.now())
		}
	}

	if err := s.Repo.Update(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// DeleteDocument removes the document and, with it, its reminder ledger.
func (s *DefaultDocumentService) DeleteDocument(id string) error {
	return s.Repo.Delete(id)
}
