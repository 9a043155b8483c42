package models

import "time"

// DocumentStatus is the derived expiry state of a document. It is always
// recomputable from the expiry date and the current day; the stored value is
// a cache, never the source of truth.
type DocumentStatus string

const (
	StatusValid             DocumentStatus = "valid"
	StatusExpiringThisMonth DocumentStatus = "expiring_this_month"
	StatusExpiringSoon      DocumentStatus = "expiring_soon"
	StatusExpired           DocumentStatus = "expired"
)

// Document is a tracked document with an expiry date and per-owner
// notification settings.
type Document struct {
	ID           string         `bson:"id" json:"id"`
	OwnerID      string         `bson:"owner_id" json:"owner_id"`
	Name         string         `bson:"document_name" json:"document_name"`
	Type         DocumentType   `bson:"document_type" json:"document_type"`
	ExpiryDate   time.Time      `bson:"expiry_date" json:"expiry_date"`
	Status       DocumentStatus `bson:"status" json:"status"`
	ReminderSent ReminderLedger `bson:"reminder_sent" json:"reminder_sent"`

	// Delivery settings. ContactEmail/ContactPhone may differ from the
	// owner's primary address.
	NotifyEmail  bool   `bson:"notify_email" json:"notify_email"`
	NotifySMS    bool   `bson:"notify_sms" json:"notify_sms"`
	ContactEmail string `bson:"contact_email" json:"contact_email,omitempty"`
	ContactPhone string `bson:"contact_phone" json:"contact_phone,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DateOnly truncates t to a calendar date at midnight UTC. Expiry dates carry
// no time component, so every comparison goes through this first.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the number of whole calendar days from today until expiry.
// Negative for dates in the past.
func DaysUntil(expiry, today time.Time) int {
	d := DateOnly(expiry).Sub(DateOnly(today))
	return int(d.Hours() / 24)
}

// ClassifyStatus derives the document status from its expiry date and the
// current day. Pure function; defined for every date pair.
func ClassifyStatus(expiry, today time.Time) DocumentStatus {
	days := DaysUntil(expiry, today)
	switch {
	case days < 0:
		return StatusExpired
	case days <= 7:
		return StatusExpiringSoon
	case days <= 30:
		return StatusExpiringThisMonth
	default:
		return StatusValid
	}
}

// DaysUntilExpiry is DaysUntil applied to the document's own expiry date.
func (d *Document) DaysUntilExpiry(today time.Time) int {
	return DaysUntil(d.ExpiryDate, today)
}

// MarkReminderSent records that a reminder attempt was made for the given
// bucket. Initialises the ledger on first use.
func (d *Document) MarkReminderSent(bucket ReminderBucket, at time.Time) {
	if d.ReminderSent == nil {
		d.ReminderSent = ReminderLedger{}
	}
	d.ReminderSent[bucket] = at
}
