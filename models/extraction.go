package models

import "time"

// Confidence is a coarse signal indicating whether extraction found any
// usable date at all. It is not a probability.
type Confidence string

const (
	ConfidenceHigh Confidence = "high"
	ConfidenceLow  Confidence = "low"
)

// DocumentType is a best-guess classification of the scanned document.
type DocumentType string

const (
	TypePassport       DocumentType = "passport"
	TypeDrivingLicense DocumentType = "driving_license"
	TypeNationalID     DocumentType = "national_id"
	TypeVisa           DocumentType = "visa"
	TypeOther          DocumentType = "other"
)

// ExtractionResult is the outcome of running date extraction over OCR text.
// ExpiryDate is nil when no plausible date survived filtering; that is a
// normal outcome, not an error.
type ExtractionResult struct {
	ExpiryDate   *time.Time   `json:"expiry_date,omitempty"`
	Confidence   Confidence   `json:"confidence"`
	DocumentType DocumentType `json:"document_type"`
}
