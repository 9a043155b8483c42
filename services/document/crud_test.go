package document

import (
	"fmt"
	"testing"
	"time"

	"datekeeper/models"
)

var testToday = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

// memRepo is a map-backed DocumentRepository for service tests.
type memRepo struct {
	docs map[string]*models.Document
}

func newMemRepo() *memRepo {
	return &memRepo{docs: map[string]*models.Document{}}
}

func (r *memRepo) GetByID(id string) (*models.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, fmt.Errorf("document with id %s not found", id)
	}
	copied := *doc
	return &copied, nil
}

func (r *memRepo) GetAll() ([]models.Document, error) {
	var out []models.Document
	for _, d := range r.docs {
		out = append(out, *d)
	}
	return out, nil
}

func (r *memRepo) GetByOwner(ownerID string) ([]models.Document, error) {
	var out []models.Document
	for _, d := range r.docs {
		if d.OwnerID == ownerID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *memRepo) GetDueForReminder(expiry time.Time) ([]models.Document, error) {
	return nil, nil
}

func (r *memRepo) Create(doc *models.Document) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *memRepo) Update(doc *models.Document) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *memRepo) Delete(id string) error {
	delete(r.docs, id)
	return nil
}

func (r *memRepo) MarkReminderSent(id string, bucket models.ReminderBucket, at time.Time) error {
	doc, ok := r.docs[id]
	if !ok {
		return fmt.Errorf("document with id %s not found", id)
	}
	doc.MarkReminderSent(bucket, at)
	return nil
}

func (r *memRepo) UpdateStatus(id string, status models.DocumentStatus) error {
	doc, ok := r.docs[id]
	if !ok {
		return fmt.Errorf("document with id %s not found", id)
	}
	doc.Status = status
	return nil
}

func (r *memRepo) ResetReminders(id string) error {
	doc, ok := r.docs[id]
	if !ok {
		return fmt.Errorf("document with id %s not found", id)
	}
	doc.ReminderSent = models.ReminderLedger{}
	return nil
}

func newService(repo *memRepo) *DefaultDocumentService {
	return &DefaultDocumentService{
		Repo: repo,
		Now:  func() time.Time { return testToday },
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateDocumentComputesStatus(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)

	tests := []struct {
		expiry string
		want   models.DocumentStatus
	}{
		{"2026-06-01", models.StatusValid},
		{"2025-06-20", models.StatusExpiringThisMonth},
		{"2025-06-05", models.StatusExpiringSoon},
		{"2025-05-20", models.StatusExpired},
	}
	for _, tc := range tests {
		doc, err := svc.CreateDocument(CreateDocumentRequest{
			OwnerID:    "owner-1",
			Name:       "Passport",
			Type:       models.TypePassport,
			ExpiryDate: tc.expiry,
		})
		if err != nil {
			t.Fatalf("CreateDocument(%s) failed: %v", tc.expiry, err)
		}
		if doc.Status != tc.want {
			t.Errorf("expiry %s: status = %q, want %q", tc.expiry, doc.Status, tc.want)
		}
		if doc.ReminderSent == nil || len(doc.ReminderSent) != 0 {
			t.Errorf("expiry %s: new document ledger = %v, want empty non-nil", tc.expiry, doc.ReminderSent)
		}
		if doc.ID == "" {
			t.Error("new document has no ID")
		}
	}
}

func TestCreateDocumentDefaults(t *testing.T) {
	svc := newService(newMemRepo())

	doc, err := svc.CreateDocument(CreateDocumentRequest{
		OwnerID:    "owner-1",
		Name:       "Residence Permit",
		ExpiryDate: "2027-03-15",
	})
	if err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}
	if doc.Type != models.TypeOther {
		t.Errorf("type = %q, want %q when omitted", doc.Type, models.TypeOther)
	}
	if !doc.NotifyEmail {
		t.Error("email notifications should default on")
	}
	if doc.NotifySMS {
		t.Error("SMS notifications should default off")
	}
}

func TestCreateDocumentRejectsBadDate(t *testing.T) {
	svc := newService(newMemRepo())

	for _, raw := range []string{"", "15/08/2025", "2025-13-01", "not a date"} {
		if _, err := svc.CreateDocument(CreateDocumentRequest{
			OwnerID:    "owner-1",
			Name:       "Visa",
			ExpiryDate: raw,
		}); err == nil {
			t.Errorf("CreateDocument accepted expiry %q", raw)
		}
	}
}

func TestUpdateExpiryResetsLedger(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)

	doc, err := svc.CreateDocument(CreateDocumentRequest{
		OwnerID:    "owner-1",
		Name:       "Passport",
		Type:       models.TypePassport,
		ExpiryDate: "2025-06-08",
	})
	if err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}
	if err := repo.MarkReminderSent(doc.ID, models.Bucket7Days, testToday); err != nil {
		t.Fatalf("MarkReminderSent failed: %v", err)
	}

	updated, err := svc.UpdateDocument(UpdateDocumentRequest{
		ID:         doc.ID,
		ExpiryDate: strPtr("2030-06-08"),
	})
	if err != nil {
		t.Fatalf("UpdateDocument failed: %v", err)
	}
	if len(updated.ReminderSent) != 0 {
		t.Errorf("ledger after expiry change = %v, want empty", updated.ReminderSent)
	}
	if updated.Status != models.StatusValid {
		t.Errorf("status = %q, want recomputed valid", updated.Status)
	}
}

func TestUpdateWithoutExpiryChangePreservesLedger(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)

	doc, err := svc.CreateDocument(CreateDocumentRequest{
		OwnerID:    "owner-1",
		Name:       "Passport",
		Type:       models.TypePassport,
		ExpiryDate: "2025-06-08",
	})
	if err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}
	if err := repo.MarkReminderSent(doc.ID, models.Bucket7Days, testToday); err != nil {
		t.Fatalf("MarkReminderSent failed: %v", err)
	}

	// Rename and re-submit the same expiry date.
	updated, err := svc.UpdateDocument(UpdateDocumentRequest{
		ID:         doc.ID,
		Name:       strPtr("Passport (renewed scan)"),
		ExpiryDate: strPtr("2025-06-08"),
	})
	if err != nil {
		t.Fatalf("UpdateDocument failed: %v", err)
	}
	if !updated.ReminderSent.Sent(models.Bucket7Days) {
		t.Error("ledger was reset although the expiry date did not change")
	}
	if updated.Name != "Passport (renewed scan)" {
		t.Errorf("name = %q, want renamed", updated.Name)
	}
}

func TestUpdatePartialFields(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)

	doc, err := svc.CreateDocument(CreateDocumentRequest{
		OwnerID:      "owner-1",
		Name:         "Driving Licence",
		Type:         models.TypeDrivingLicense,
		ExpiryDate:   "2026-01-01",
		ContactEmail: "old@example.com",
	})
	if err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}

	updated, err := svc.UpdateDocument(UpdateDocumentRequest{
		ID:          doc.ID,
		NotifySMS:    boolPtr(true),
		ContactPhone: strPtr("+15550100"),
	})
	if err != nil {
		t.Fatalf("UpdateDocument failed: %v", err)
	}
	if !updated.NotifySMS || updated.ContactPhone != "+15550100" {
		t.Errorf("sms settings not applied: %+v", updated)
	}
	if updated.ContactEmail != "old@example.com" {
		t.Errorf("contact email changed to %q on partial update", updated.ContactEmail)
	}
	if !updated.ExpiryDate.Equal(doc.ExpiryDate) {
		t.Error("expiry date changed on partial update")
	}
}

func TestDeleteDocument(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)

	doc, err := svc.CreateDocument(CreateDocumentRequest{
		OwnerID:    "owner-1",
		Name:       "Visa",
		Type:       models.TypeVisa,
		ExpiryDate: "2026-01-01",
	})
	if err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}
	if err := svc.DeleteDocument(doc.ID); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}
	if _, err := svc.GetDocument(doc.ID); err == nil {
		t.Error("document still retrievable after delete")
	}
}
