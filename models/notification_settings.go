package models

import "time"

// NotificationSettings is the versioned expiry-notification configuration.
// Rows are append-only; the most recently created row is authoritative.
type NotificationSettings struct {
	SettingID    uint      `gorm:"primaryKey;column:setting_id" json:"setting_id"`
	Enabled      bool      `gorm:"column:enabled" json:"enabled"`
	Notify45Days bool      `gorm:"column:notify_45_days" json:"notify_45_days"`
	Notify30Days bool      `gorm:"column:notify_30_days" json:"notify_30_days"`
	Notify15Days bool      `gorm:"column:notify_15_days" json:"notify_15_days"`
	Notify7Days  bool      `gorm:"column:notify_7_days" json:"notify_7_days"`
	Notify5Days  bool      `gorm:"column:notify_5_days" json:"notify_5_days"`
	Notify1Day   bool      `gorm:"column:notify_1_day" json:"notify_1_day"`
	Notify0Days  bool      `gorm:"column:notify_0_days" json:"notify_0_days"`
	AdminEmail   string    `gorm:"column:admin_email;size:255" json:"admin_email"`
	CreateAt     time.Time `gorm:"column:create_at" json:"create_at"`
}

func (NotificationSettings) TableName() string {
	return "notification_settings"
}

// Thresholds returns the enabled day counts in descending order. An empty
// result means no flag is set; callers fall back to the default set.
func (s *NotificationSettings) Thresholds() []int {
	flags := []struct {
		days int
		on   bool
	}{
		{45, s.Notify45Days},
		{30, s.Notify30Days},
		{15, s.Notify15Days},
		{7, s.Notify7Days},
		{5, s.Notify5Days},
		{1, s.Notify1Day},
		{0, s.Notify0Days},
	}

	out := make([]int, 0, len(flags))
	for _, f := range flags {
		if f.on {
			out = append(out, f.days)
		}
	}
	return out
}
