package notification

import (
	"time"

	"datekeeper/models"
)

// Dispatcher sends expiry reminders to document owners. Implementations
// report failure through the boolean result and must never panic or surface
// errors: the scheduler has to keep processing the remaining documents.
type Dispatcher interface {
	SendEmail(to, documentName string, documentType models.DocumentType, expiryDate time.Time, daysRemaining int, bucket models.ReminderBucket) bool
	SendSMS(to, documentName string, documentType models.DocumentType, expiryDate time.Time, daysRemaining int) bool
}
