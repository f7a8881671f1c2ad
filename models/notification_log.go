package models

import "time"

// NotificationLogEntry is the audit record of one successful expiry email.
// A row exists iff a send for (license, recipient, threshold) succeeded on
// that calendar day; the dedup guard checks for its absence before sending.
type NotificationLogEntry struct {
	LogID           uint      `gorm:"primaryKey;column:log_id" json:"log_id"`
	LicenseID       string    `gorm:"column:license_id;size:36;index" json:"license_id"`
	RecipientEmail  string    `gorm:"column:recipient_email;size:255;index" json:"recipient_email"`
	DaysUntilExpiry int       `gorm:"column:days_until_expiry" json:"days_until_expiry"`
	SentAt          time.Time `gorm:"column:sent_at;index" json:"sent_at"`
}

func (NotificationLogEntry) TableName() string {
	return "notification_logs"
}
