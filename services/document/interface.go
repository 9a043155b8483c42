package document

import (
	"time"

	documentRepo "datekeeper/database/repository/document"
	"datekeeper/models"
)

// CreateDocumentRequest carries the fields a user supplies when confirming a
// document, manually or from an extraction suggestion.
type CreateDocumentRequest struct {
	OwnerID      string              `json:"owner_id" binding:"required"`
	Name         string              `json:"document_name" binding:"required"`
	Type         models.DocumentType `json:"document_type"`
	ExpiryDate   string              `json:"expiry_date" binding:"required"`
	NotifyEmail  *bool               `json:"notify_email"`
	NotifySMS    *bool               `json:"notify_sms"`
	ContactEmail string              `json:"contact_email"`
	ContactPhone string              `json:"contact_phone"`
}

// UpdateDocumentRequest carries a partial update; nil fields are untouched.
type UpdateDocumentRequest struct {
	ID           string               `json:"-"`
	Name         *string              `json:"document_name"`
	Type         *models.DocumentType `json:"document_type"`
	ExpiryDate   *string              `json:"expiry_date"`
	NotifyEmail  *bool                `json:"notify_email"`
	NotifySMS    *bool                `json:"notify_sms"`
	ContactEmail *string              `json:"contact_email"`
	ContactPhone *string              `json:"contact_phone"`
}

// DocumentService manages the document lifecycle around the reminder core:
// creation seeds an empty ledger and a freshly computed status, an expiry
// change resets reminder tracking, deletion discards the ledger.
type DocumentService interface {
	CreateDocument(req CreateDocumentRequest) (*models.Document, error)
	GetDocument(id string) (*models.Document, error)
	ListByOwner(ownerID string) ([]models.Document, error)
	UpdateDocument(req UpdateDocumentRequest) (*models.Document, error)
	DeleteDocument(id string) error
}

// DefaultDocumentService is the production implementation.
type DefaultDocumentService struct {
	Repo documentRepo.DocumentRepository
	Now  func() time.Time
}
