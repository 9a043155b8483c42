package models

import "time"

// ReminderBucket identifies one of the four fixed lead-time intervals at
// which a reminder fires. The set is closed; AllBuckets enumerates it in
// dispatch order (furthest lead time first).
type ReminderBucket string

const (
	Bucket6Months ReminderBucket = "6_months"
	Bucket3Months ReminderBucket = "3_months"
	Bucket1Month  ReminderBucket = "1_month"
	Bucket7Days   ReminderBucket = "7_days"
)

// AllBuckets returns the fixed bucket set in scheduling order.
func AllBuckets() []ReminderBucket {
	return []ReminderBucket{Bucket6Months, Bucket3Months, Bucket1Month, Bucket7Days}
}

// LeadDays returns how many days before expiry this bucket fires.
func (b ReminderBucket) LeadDays() int {
	switch b {
	case Bucket6Months:
		return 180
	case Bucket3Months:
		return 90
	case Bucket1Month:
		return 30
	case Bucket7Days:
		return 7
	}
	return 0
}

// Label is the human-readable form used in notification copy and logs.
func (b ReminderBucket) Label() string {
	switch b {
	case Bucket6Months:
		return "6 months"
	case Bucket3Months:
		return "3 months"
	case Bucket1Month:
		return "1 month"
	case Bucket7Days:
		return "7 days"
	}
	return string(b)
}

// Valid reports whether b is one of the four known buckets.
func (b ReminderBucket) Valid() bool {
	switch b {
	case Bucket6Months, Bucket3Months, Bucket1Month, Bucket7Days:
		return true
	}
	return false
}

// ReminderLedger records, per bucket, when a notification attempt was made
// for a document. An absent key means no attempt yet. Entries are written
// only by the reminder scheduler and cleared when the expiry date changes.
type ReminderLedger map[ReminderBucket]time.Time

// Sent reports whether an attempt has already been recorded for the bucket.
func (l ReminderLedger) Sent(b ReminderBucket) bool {
	if l == nil {
		return false
	}
	_, ok := l[b]
	return ok
}
