package models

import "time"

// Owner holds the notification preferences of a document owner. The core
// never interprets owner identity beyond looking up these settings.
type Owner struct {
	ID       string `bson:"id" json:"id"`
	Email    string `bson:"email" json:"email"`
	FullName string `bson:"full_name" json:"full_name,omitempty"`
	Phone    string `bson:"phone" json:"phone,omitempty"`

	// AlternateEmail, when set, overrides the document's contact email for
	// reminder delivery.
	AlternateEmail string `bson:"alternate_email" json:"alternate_email,omitempty"`

	// ReminderIntervals toggles each lead-time bucket. A missing key means
	// enabled; only an explicit false disables a bucket.
	ReminderIntervals map[ReminderBucket]bool `bson:"reminder_intervals" json:"reminder_intervals,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// WantsBucket reports whether the owner has the given reminder bucket
// enabled. Unknown owners and unset buckets default to enabled.
func (o *Owner) WantsBucket(b ReminderBucket) bool {
	if o == nil || o.ReminderIntervals == nil {
		return true
	}
	enabled, ok := o.ReminderIntervals[b]
	if !ok {
		return true
	}
	return enabled
}

// DeliveryEmail resolves where reminder email for the document should go:
// the owner's alternate address wins over the document contact address.
func (o *Owner) DeliveryEmail(doc *Document) string {
	if o != nil && o.AlternateEmail != "" {
		return o.AlternateEmail
	}
	return doc.ContactEmail
}
