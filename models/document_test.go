package models

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassifyStatusBoundaries(t *testing.T) {
	today := date(2025, time.June, 1)

	cases := []struct {
		days int
		want DocumentStatus
	}{
		{-365, StatusExpired},
		{-1, StatusExpired},
		{0, StatusExpiringSoon},
		{7, StatusExpiringSoon},
		{8, StatusExpiringThisMonth},
		{30, StatusExpiringThisMonth},
		{31, StatusValid},
		{365, StatusValid},
	}
	for _, tc := range cases {
		got := ClassifyStatus(today.AddDate(0, 0, tc.days), today)
		if got != tc.want {
			t.Errorf("ClassifyStatus(today%+dd) = %q, want %q", tc.days, got, tc.want)
		}
	}
}

// severity orders statuses from most to least urgent. Classification must be
// total over any input and must never get more severe as the expiry moves
// further away.
func TestClassifyStatusTotalAndMonotone(t *testing.T) {
	severity := map[DocumentStatus]int{
		StatusExpired:           3,
		StatusExpiringSoon:      2,
		StatusExpiringThisMonth: 1,
		StatusValid:             0,
	}
	today := date(2025, time.June, 1)

	prev := severity[StatusExpired]
	for d := -10000; d <= 10000; d++ {
		status := ClassifyStatus(today.AddDate(0, 0, d), today)
		sev, known := severity[status]
		if !known {
			t.Fatalf("ClassifyStatus returned unknown status %q at d=%d", status, d)
		}
		if sev > prev {
			t.Fatalf("severity increased at d=%d: %q", d, status)
		}
		prev = sev
	}
}

func TestDaysUntilIgnoresTimeOfDay(t *testing.T) {
	expiry := time.Date(2025, time.June, 10, 23, 59, 0, 0, time.UTC)
	today := time.Date(2025, time.June, 1, 0, 1, 0, 0, time.UTC)
	if got := DaysUntil(expiry, today); got != 9 {
		t.Errorf("DaysUntil = %d, want 9", got)
	}
}

func TestReminderLedger(t *testing.T) {
	var nilLedger ReminderLedger
	if nilLedger.Sent(Bucket7Days) {
		t.Error("nil ledger reports bucket as sent")
	}

	doc := &Document{}
	doc.MarkReminderSent(Bucket1Month, date(2025, time.May, 1))
	if !doc.ReminderSent.Sent(Bucket1Month) {
		t.Error("marked bucket not reported as sent")
	}
	if doc.ReminderSent.Sent(Bucket7Days) {
		t.Error("unmarked bucket reported as sent")
	}
}

func TestBucketLeadDays(t *testing.T) {
	want := map[ReminderBucket]int{
		Bucket6Months: 180,
		Bucket3Months: 90,
		Bucket1Month:  30,
		Bucket7Days:   7,
	}
	buckets := AllBuckets()
	if len(buckets) != 4 {
		t.Fatalf("AllBuckets returned %d buckets", len(buckets))
	}
	for _, b := range buckets {
		if b.LeadDays() != want[b] {
			t.Errorf("%s.LeadDays() = %d, want %d", b, b.LeadDays(), want[b])
		}
		if !b.Valid() {
			t.Errorf("%s not valid", b)
		}
	}
	if ReminderBucket("2_weeks").Valid() {
		t.Error("unknown bucket reported valid")
	}
}

func TestOwnerWantsBucketDefaults(t *testing.T) {
	var nilOwner *Owner
	if !nilOwner.WantsBucket(Bucket7Days) {
		t.Error("nil owner should default to enabled")
	}

	o := &Owner{ReminderIntervals: map[ReminderBucket]bool{Bucket7Days: false}}
	if o.WantsBucket(Bucket7Days) {
		t.Error("explicitly disabled bucket reported enabled")
	}
	if !o.WantsBucket(Bucket6Months) {
		t.Error("unset bucket should default to enabled")
	}
}

func TestOwnerDeliveryEmail(t *testing.T) {
	doc := &Document{ContactEmail: "doc@example.com"}

	var nilOwner *Owner
	if got := nilOwner.DeliveryEmail(doc); got != "doc@example.com" {
		t.Errorf("DeliveryEmail = %q, want document contact", got)
	}

	o := &Owner{AlternateEmail: "alt@example.com"}
	if got := o.DeliveryEmail(doc); got != "alt@example.com" {
		t.Errorf("DeliveryEmail = %q, want alternate", got)
	}
}
