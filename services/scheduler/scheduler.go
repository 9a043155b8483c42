package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	documentRepo "datekeeper/database/repository/document"
	ownerRepo "datekeeper/database/repository/owner"
	"datekeeper/models"
	"datekeeper/services/notification"
	"datekeeper/utils"

	"go.uber.org/zap"
)

// ErrRunInProgress is returned when a trigger fires while a run is already
// executing. The trigger is dropped, not queued.
var ErrRunInProgress = errors.New("reminder run already in progress")

// RunSummary reports what a single scheduler run did.
type RunSummary struct {
	Date          time.Time                     `json:"date"`
	RemindersSent int                           `json:"reminders_sent"`
	Skipped       int                           `json:"skipped"`
	StatusCounts  map[models.DocumentStatus]int `json:"status_counts"`
}

// ReminderScheduler runs the daily reminder dispatch and status
// reclassification. The cron trigger and the manual endpoint both go through
// Run; the guard inside serializes them.
type ReminderScheduler interface {
	Run(ctx context.Context) (*RunSummary, error)
}

// DefaultReminderScheduler is the production implementation.
type DefaultReminderScheduler struct {
	Docs       documentRepo.DocumentRepository
	Owners     ownerRepo.OwnerRepository
	Dispatcher notification.Dispatcher

	// Now is injectable for tests; nil means time.Now.
	Now func() time.Time

	mu sync.Mutex
}

func (s *DefaultReminderScheduler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Run executes one scheduler pass: per-bucket reminder dispatch, then a full
// status recomputation over every document. A second concurrent call returns
// ErrRunInProgress immediately.
func (s *DefaultReminderScheduler) Run(ctx context.Context) (*RunSummary, error) {
	if !s.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.mu.Unlock()

	logger := utils.GetLogger()
	today := models.DateOnly(s.now())
	summary := &RunSummary{
		Date:         today,
		StatusCounts: map[models.DocumentStatus]int{},
	}

	logger.Info("Starting document expiry check", zap.String("date", today.Format("2006-01-02")))

	// Each bucket is its own unit of work: a failure is logged and the run
	// moves on, leaving that bucket for the next trigger.
	for _, bucket := range models.AllBuckets() {
		if err := s.processBucket(ctx, today, bucket, summary); err != nil {
			logger.Error("Bucket processing failed",
				zap.String("bucket", string(bucket)),
				zap.Error(err))
		}
	}

	// Status recomputation is decoupled from reminder dispatch: a document
	// whose bucket date was missed still gets a correct status.
	if err := s.updateStatuses(today, summary); err != nil {
		logger.Error("Status update pass failed", zap.Error(err))
		return summary, err
	}

	logger.Info("Document expiry check completed",
		zap.String("date", today.Format("2006-01-02")),
		zap.Int("remindersSent", summary.RemindersSent),
		zap.Int("skipped", summary.Skipped),
		zap.Int("valid", summary.StatusCounts[models.StatusValid]),
		zap.Int("expiringThisMonth", summary.StatusCounts[models.StatusExpiringThisMonth]),
		zap.Int("expiringSoon", summary.StatusCounts[models.StatusExpiringSoon]),
		zap.Int("expired", summary.StatusCounts[models.StatusExpired]))
	return summary, nil
}

// processBucket dispatches reminders for every document whose expiry date
// lands exactly lead-days ahead of today.
func (s *DefaultReminderScheduler) processBucket(ctx context.Context, today time.Time, bucket models.ReminderBucket, summary *RunSummary) error {
	logger := utils.GetLogger()
	target := today.AddDate(0, 0, bucket.LeadDays())

	docs, err := s.Docs.GetDueForReminder(target)
	if err != nil {
		return err
	}
	logger.Info("Checking reminder interval",
		zap.String("bucket", string(bucket)),
		zap.String("target", target.Format("2006-01-02")),
		zap.Int("documents", len(docs)))

	for i := range docs {
		doc := &docs[i]

		// Idempotency guard: a bucket fires at most once per document.
		if doc.ReminderSent.Sent(bucket) {
			logger.Info("Skipping document - reminder already sent",
				zap.String("document", doc.Name),
				zap.String("bucket", string(bucket)))
			summary.Skipped++
			continue
		}

		owner := s.lookupOwner(doc.OwnerID)
		if !owner.WantsBucket(bucket) {
			// Preference skip: not marked sent, but the exact target date
			// will not recur for this document.
			logger.Info("Skipping document - interval disabled by owner",
				zap.String("document", doc.Name),
				zap.String("bucket", string(bucket)))
			summary.Skipped++
			continue
		}

		s.dispatch(doc, owner, bucket, today)

		// Mark once an attempt was made, regardless of delivery outcome.
		// A permanently broken address must not block the bucket forever.
		if err := s.Docs.MarkReminderSent(doc.ID, bucket, s.now()); err != nil {
			logger.Error("Failed to record reminder attempt",
				zap.String("document", doc.ID),
				zap.String("bucket", string(bucket)),
				zap.Error(err))
			continue
		}
		summary.RemindersSent++
	}
	return nil
}

// dispatch attempts each enabled channel independently; an email failure does
// not block the SMS and vice versa.
func (s *DefaultReminderScheduler) dispatch(doc *models.Document, owner *models.Owner, bucket models.ReminderBucket, today time.Time) {
	logger := utils.GetLogger()
	daysRemaining := doc.DaysUntilExpiry(today)

	if doc.NotifyEmail {
		to := owner.DeliveryEmail(doc)
		if to == "" {
			logger.Warn("No delivery email for document", zap.String("document", doc.Name))
		} else if !s.Dispatcher.SendEmail(to, doc.Name, doc.Type, doc.ExpiryDate, daysRemaining, bucket) {
			logger.Warn("Email reminder failed",
				zap.String("document", doc.Name),
				zap.String("to", to))
		}
	}

	if doc.NotifySMS && doc.ContactPhone != "" {
		if !s.Dispatcher.SendSMS(doc.ContactPhone, doc.Name, doc.Type, doc.ExpiryDate, daysRemaining) {
			logger.Warn("SMS reminder failed",
				zap.String("document", doc.Name),
				zap.String("to", doc.ContactPhone))
		}
	}
}

// lookupOwner fetches owner settings; an unknown owner falls back to default
// preferences (every bucket enabled, no alternate email).
func (s *DefaultReminderScheduler) lookupOwner(ownerID string) *models.Owner {
	owner, err := s.Owners.GetByID(ownerID)
	if err != nil {
		utils.GetLogger().Warn("Owner lookup failed, using default preferences",
			zap.String("ownerID", ownerID),
			zap.Error(err))
		return nil
	}
	return owner
}

// updateStatuses recomputes the status of every document from its expiry
// date, persisting only actual changes.
func (s *DefaultReminderScheduler) updateStatuses(today time.Time, summary *RunSummary) error {
	logger := utils.GetLogger()

	docs, err := s.Docs.GetAll()
	if err != nil {
		return err
	}

	for i := range docs {
		doc := &docs[i]
		newStatus := models.ClassifyStatus(doc.ExpiryDate, today)
		if newStatus != doc.Status {
			if err := s.Docs.UpdateStatus(doc.ID, newStatus); err != nil {
				logger.Error("Failed to persist status change",
					zap.String("document", doc.ID),
					zap.Error(err))
				summary.StatusCounts[doc.Status]++
				continue
			}
			logger.Info("Status changed",
				zap.String("document", doc.Name),
				zap.String("from", string(doc.Status)),
				zap.String("to", string(newStatus)))
		}
		summary.StatusCounts[newStatus]++
	}
	return nil
}
