package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"datekeeper/models"
)

var testToday = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fakeDocRepo is an in-memory DocumentRepository.
type fakeDocRepo struct {
	mu   sync.Mutex
	docs map[string]*models.Document
}

func newFakeDocRepo(docs ...*models.Document) *fakeDocRepo {
	r := &fakeDocRepo{docs: map[string]*models.Document{}}
	for _, d := range docs {
		r.docs[d.ID] = d
	}
	return r
}

func (r *fakeDocRepo) GetByID(id string) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, fmt.Errorf("document with id %s not found", id)
	}
	copied := *doc
	return &copied, nil
}

func (r *fakeDocRepo) GetAll() ([]models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Document
	for _, d := range r.docs {
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeDocRepo) GetByOwner(ownerID string) ([]models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Document
	for _, d := range r.docs {
		if d.OwnerID == ownerID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDocRepo) GetDueForReminder(expiry time.Time) ([]models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Document
	for _, d := range r.docs {
		if d.ExpiryDate.Equal(models.DateOnly(expiry)) && d.Status != models.StatusExpired {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDocRepo) Create(doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeDocRepo) Update(doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeDocRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, id)
	return nil
}

func (r *fakeDocRepo) MarkReminderSent(id string, bucket models.ReminderBucket, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return fmt.Errorf("document with id %s not found", id)
	}
	doc.MarkReminderSent(bucket, at)
	return nil
}

func (r *fakeDocRepo) UpdateStatus(id string, status models.DocumentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return fmt.Errorf("document with id %s not found", id)
	}
	doc.Status = status
	return nil
}

func (r *fakeDocRepo) ResetReminders(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return fmt.Errorf("document with id %s not found", id)
	}
	doc.ReminderSent = models.ReminderLedger{}
	return nil
}

// fakeOwnerRepo is an in-memory OwnerRepository.
type fakeOwnerRepo struct {
	owners map[string]*models.Owner
}

func (r *fakeOwnerRepo) GetByID(id string) (*models.Owner, error) {
	o, ok := r.owners[id]
	if !ok {
		return nil, fmt.Errorf("owner with id %s not found", id)
	}
	return o, nil
}

func (r *fakeOwnerRepo) GetByEmail(email string) (*models.Owner, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeOwnerRepo) Create(o *models.Owner) error { return nil }
func (r *fakeOwnerRepo) Update(o *models.Owner) error { return nil }

type sentRecord struct {
	channel string
	to      string
	doc     string
	bucket  models.ReminderBucket
}

// fakeDispatcher records every attempt; results are configurable.
type fakeDispatcher struct {
	mu      sync.Mutex
	sent    []sentRecord
	emailOK bool
	smsOK   bool

	// blockEmail, when set, makes SendEmail signal started and wait for
	// release. Used to hold a run in flight.
	blockEmail chan struct{}
	started    chan struct{}
}

func (d *fakeDispatcher) SendEmail(to, documentName string, documentType models.DocumentType, expiryDate time.Time, daysRemaining int, bucket models.ReminderBucket) bool {
	if d.blockEmail != nil {
		d.started <- struct{}{}
		<-d.blockEmail
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, sentRecord{channel: "email", to: to, doc: documentName, bucket: bucket})
	return d.emailOK
}

func (d *fakeDispatcher) SendSMS(to, documentName string, documentType models.DocumentType, expiryDate time.Time, daysRemaining int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, sentRecord{channel: "sms", to: to, doc: documentName})
	return d.smsOK
}

func (d *fakeDispatcher) records() []sentRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]sentRecord, len(d.sent))
	copy(out, d.sent)
	return out
}

func testDocument(id string, daysToExpiry int) *models.Document {
	return &models.Document{
		ID:           id,
		OwnerID:      "owner-1",
		Name:         "Passport " + id,
		Type:         models.TypePassport,
		ExpiryDate:   testToday.AddDate(0, 0, daysToExpiry),
		Status:       models.ClassifyStatus(testToday.AddDate(0, 0, daysToExpiry), testToday),
		ReminderSent: models.ReminderLedger{},
		NotifyEmail:  true,
		ContactEmail: "someone@example.com",
	}
}

func newScheduler(docs *fakeDocRepo, owners *fakeOwnerRepo, dispatcher *fakeDispatcher) *DefaultReminderScheduler {
	if owners == nil {
		owners = &fakeOwnerRepo{owners: map[string]*models.Owner{
			"owner-1": {ID: "owner-1", Email: "someone@example.com"},
		}}
	}
	return &DefaultReminderScheduler{
		Docs:       docs,
		Owners:     owners,
		Dispatcher: dispatcher,
		Now:        func() time.Time { return testToday },
	}
}

func TestRunDispatchesDueBuckets(t *testing.T) {
	docs := newFakeDocRepo(
		testDocument("due-7", 7),
		testDocument("due-180", 180),
		testDocument("not-due", 42),
	)
	dispatcher := &fakeDispatcher{emailOK: true, smsOK: true}
	sched := newScheduler(docs, nil, dispatcher)

	summary, err := sched.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.RemindersSent != 2 {
		t.Errorf("RemindersSent = %d, want 2", summary.RemindersSent)
	}

	sent := dispatcher.records()
	if len(sent) != 2 {
		t.Fatalf("dispatched %d notifications, want 2", len(sent))
	}
	buckets := map[models.ReminderBucket]bool{}
	for _, rec := range sent {
		buckets[rec.bucket] = true
	}
	if !buckets[models.Bucket7Days] || !buckets[models.Bucket6Months] {
		t.Errorf("dispatched buckets = %v, want 7_days and 6_months", buckets)
	}

	for _, id := range []string{"due-7", "due-180"} {
		doc, _ := docs.GetByID(id)
		if len(doc.ReminderSent) != 1 {
			t.Errorf("document %s ledger has %d entries, want 1", id, len(doc.ReminderSent))
		}
	}
	doc, _ := docs.GetByID("not-due")
	if len(doc.ReminderSent) != 0 {
		t.Errorf("not-due document was marked: %v", doc.ReminderSent)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	docs := newFakeDocRepo(testDocument("due-30", 30))
	dispatcher := &fakeDispatcher{emailOK: true}
	sched := newScheduler(docs, nil, dispatcher)

	for i := 0; i < 3; i++ {
		if _, err := sched.Run(context.Background()); err != nil {
			t.Fatalf("Run %d failed: %v", i, err)
		}
	}
	if sent := dispatcher.records(); len(sent) != 1 {
		t.Errorf("dispatched %d notifications over repeated runs, want 1", len(sent))
	}
}

func TestPreferenceDisabledSkipsWithoutMarking(t *testing.T) {
	docs := newFakeDocRepo(testDocument("due-7", 7))
	owners := &fakeOwnerRepo{owners: map[string]*models.Owner{
		"owner-1": {
			ID:                "owner-1",
			ReminderIntervals: map[models.ReminderBucket]bool{models.Bucket7Days: false},
		},
	}}
	dispatcher := &fakeDispatcher{emailOK: true}
	sched := newScheduler(docs, owners, dispatcher)

	summary, err := sched.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(dispatcher.records()) != 0 {
		t.Error("disabled bucket was dispatched")
	}
	doc, _ := docs.GetByID("due-7")
	if doc.ReminderSent.Sent(models.Bucket7Days) {
		t.Error("disabled bucket was marked sent")
	}
	if summary.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", summary.Skipped)
	}
	// The status pass still ran for the skipped document.
	if doc.Status != models.StatusExpiringSoon {
		t.Errorf("status = %q, want expiring_soon", doc.Status)
	}
}

func TestChannelFailureStillMarksAttempt(t *testing.T) {
	docs := newFakeDocRepo(testDocument("due-90", 90))
	dispatcher := &fakeDispatcher{emailOK: false}
	sched := newScheduler(docs, nil, dispatcher)

	if _, err := sched.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	doc, _ := docs.GetByID("due-90")
	if !doc.ReminderSent.Sent(models.Bucket3Months) {
		t.Error("failed attempt was not marked; a broken address would retry forever")
	}

	// A repeated run must not retry the failed bucket.
	if _, err := sched.Run(context.Background()); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if sent := dispatcher.records(); len(sent) != 1 {
		t.Errorf("dispatched %d attempts, want 1", len(sent))
	}
}

func TestEmailFailureDoesNotBlockSMS(t *testing.T) {
	doc := testDocument("due-7", 7)
	doc.NotifySMS = true
	doc.ContactPhone = "+15550100"
	docs := newFakeDocRepo(doc)
	dispatcher := &fakeDispatcher{emailOK: false, smsOK: true}
	sched := newScheduler(docs, nil, dispatcher)

	if _, err := sched.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	sent := dispatcher.records()
	if len(sent) != 2 {
		t.Fatalf("dispatched %d attempts, want email and sms", len(sent))
	}
	channels := map[string]bool{}
	for _, rec := range sent {
		channels[rec.channel] = true
	}
	if !channels["email"] || !channels["sms"] {
		t.Errorf("channels = %v, want both", channels)
	}
}

func TestAlternateEmailOverridesContact(t *testing.T) {
	docs := newFakeDocRepo(testDocument("due-7", 7))
	owners := &fakeOwnerRepo{owners: map[string]*models.Owner{
		"owner-1": {ID: "owner-1", AlternateEmail: "alt@example.com"},
	}}
	dispatcher := &fakeDispatcher{emailOK: true}
	sched := newScheduler(docs, owners, dispatcher)

	if _, err := sched.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	sent := dispatcher.records()
	if len(sent) != 1 || sent[0].to != "alt@example.com" {
		t.Errorf("sent = %v, want delivery to alternate email", sent)
	}
}

func TestStatusRecomputedWithoutBucketMatch(t *testing.T) {
	// 15 days out matches no bucket (as if the 1-month run day was missed),
	// but the stored status is stale and must still be corrected.
	doc := testDocument("missed", 15)
	doc.Status = models.StatusValid
	docs := newFakeDocRepo(doc)
	dispatcher := &fakeDispatcher{emailOK: true}
	sched := newScheduler(docs, nil, dispatcher)

	if _, err := sched.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(dispatcher.records()) != 0 {
		t.Error("no bucket should have matched")
	}
	updated, _ := docs.GetByID("missed")
	if updated.Status != models.StatusExpiringThisMonth {
		t.Errorf("status = %q, want expiring_this_month", updated.Status)
	}
}

func TestExpiredDocumentsNotDispatched(t *testing.T) {
	doc := testDocument("late", 7)
	doc.Status = models.StatusExpired
	docs := newFakeDocRepo(doc)
	dispatcher := &fakeDispatcher{emailOK: true}
	sched := newScheduler(docs, nil, dispatcher)

	if _, err := sched.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(dispatcher.records()) != 0 {
		t.Error("expired document was dispatched")
	}
}

func TestConcurrentRunDropped(t *testing.T) {
	docs := newFakeDocRepo(testDocument("due-7", 7))
	dispatcher := &fakeDispatcher{
		emailOK:    true,
		blockEmail: make(chan struct{}),
		started:    make(chan struct{}),
	}
	sched := newScheduler(docs, nil, dispatcher)

	done := make(chan error, 1)
	go func() {
		_, err := sched.Run(context.Background())
		done <- err
	}()

	<-dispatcher.started
	if _, err := sched.Run(context.Background()); !errors.Is(err, ErrRunInProgress) {
		t.Errorf("second Run returned %v, want ErrRunInProgress", err)
	}

	close(dispatcher.blockEmail)
	if err := <-done; err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
}
