package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"license-management-api/config"
	"license-management-api/models"
	"license-management-api/utils"
)

// DefaultThresholds is the fallback day set used when the active settings row
// has no threshold flag enabled.
var DefaultThresholds = []int{45, 30, 15, 7, 5, 1, 0}

// RunSummary describes one full notification run.
type RunSummary struct {
	Sent             int      `json:"sent"`
	Failed           int      `json:"failed"`
	Total            int      `json:"total"`
	Details          []string `json:"details"`
	NotificationDays []int    `json:"notification_days"`
	Timestamp        string   `json:"timestamp"`
}

// NotificationStats are historical counters over the audit log.
type NotificationStats struct {
	TotalSent     int64 `json:"total_sent"`
	SentToday     int64 `json:"sent_today"`
	SentThisWeek  int64 `json:"sent_this_week"`
	SentThisMonth int64 `json:"sent_this_month"`
}

// ExpiryNotifier decides which (license, recipient, threshold) tuples need an
// outbound email today and guarantees at most one successful send per tuple
// per calendar day.
type ExpiryNotifier struct {
	db     *gorm.DB
	mailer ExpiryMailer
	loc    *time.Location
	now    func() time.Time

	// runMu serializes full runs in this process so two overlapping
	// invocations cannot both pass the dedup check before either writes the
	// audit row. Run additionally takes a MySQL advisory lock to cover
	// invocations from other processes.
	runMu sync.Mutex
}

// NotifierOption customises the ExpiryNotifier.
type NotifierOption func(*ExpiryNotifier)

// WithClock overrides the clock, primarily for testing.
func WithClock(now func() time.Time) NotifierOption {
	return func(n *ExpiryNotifier) {
		if now != nil {
			n.now = now
		}
	}
}

// WithLocation overrides the location that governs the day boundary.
func WithLocation(loc *time.Location) NotifierOption {
	return func(n *ExpiryNotifier) {
		if loc != nil {
			n.loc = loc
		}
	}
}

// NewExpiryNotifier instantiates the engine.
func NewExpiryNotifier(db *gorm.DB, mailer ExpiryMailer, opts ...NotifierOption) *ExpiryNotifier {
	if db == nil {
		db = config.DB
	}
	n := &ExpiryNotifier{
		db:     db,
		mailer: mailer,
		loc:    time.UTC,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NotifyLocation resolves the location governing "today" from NOTIFY_TIMEZONE.
// Eligibility day-counting, dedup, clear and stats all share this boundary.
func NotifyLocation() *time.Location {
	name := strings.TrimSpace(os.Getenv("NOTIFY_TIMEZONE"))
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Warning: invalid NOTIFY_TIMEZONE %q, falling back to UTC: %v", name, err)
		return time.UTC
	}
	return loc
}

type candidateRow struct {
	LicenseID      string    `gorm:"column:license_id"`
	ToolName       string    `gorm:"column:tool_name"`
	VendorName     *string   `gorm:"column:vendor_name"`
	ExpirationDate time.Time `gorm:"column:expiration_date"`
	ClientName     string    `gorm:"column:client_name"`
	ClientEmail    string    `gorm:"column:client_email"`
	ClientPhone    string    `gorm:"column:client_phone"`
	ClientGST      string    `gorm:"column:client_gst"`
}

const (
	runLockName    = "expiry_notify_run"
	runLockTimeout = 30 // seconds
)

// Run executes one synchronous notification batch. It returns an error only
// when the settings or candidate store is unreachable; per-candidate send
// failures are recorded in the summary and never abort the batch.
func (n *ExpiryNotifier) Run() (*RunSummary, error) {
	n.runMu.Lock()
	defer n.runMu.Unlock()

	if n.db.Dialector.Name() != "mysql" {
		return n.run(n.db)
	}

	// The one-shot cron entrypoint runs in its own process, so the mutex
	// alone cannot serialize it against the API server. A MySQL advisory
	// lock extends the guard across every process sharing the database.
	// GET_LOCK is connection-scoped, so the whole run is pinned to one
	// pooled connection.
	var summary *RunSummary
	err := n.db.Connection(func(conn *gorm.DB) error {
		var got sql.NullInt64
		if err := conn.Raw("SELECT GET_LOCK(?, ?)", runLockName, runLockTimeout).Scan(&got).Error; err != nil {
			return fmt.Errorf("acquire run lock: %w", err)
		}
		if !got.Valid || got.Int64 != 1 {
			return fmt.Errorf("acquire run lock: another run is still in progress")
		}
		defer func() {
			if err := conn.Exec("SELECT RELEASE_LOCK(?)", runLockName).Error; err != nil {
				log.Printf("release run lock failed: %v", err)
			}
		}()

		s, err := n.run(conn)
		summary = s
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (n *ExpiryNotifier) run(db *gorm.DB) (*RunSummary, error) {
	summary := &RunSummary{
		Details:          []string{},
		NotificationDays: []int{},
		Timestamp:        n.now().In(n.loc).Format(time.RFC3339),
	}

	settings, err := n.loadSettings(db)
	if err != nil {
		return nil, err
	}
	if settings == nil || !settings.Enabled {
		summary.Details = append(summary.Details, "Notifications disabled in settings")
		return summary, nil
	}

	thresholds := settings.Thresholds()
	if len(thresholds) == 0 {
		thresholds = append([]int(nil), DefaultThresholds...)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(thresholds)))
	summary.NotificationDays = thresholds
	maxThreshold := thresholds[0]

	today := n.today()
	rows, err := n.candidates(db, today, maxThreshold)
	if err != nil {
		return nil, fmt.Errorf("query expiring licenses: %w", err)
	}

	wanted := make(map[int]bool, len(thresholds))
	for _, d := range thresholds {
		wanted[d] = true
	}

	for _, row := range rows {
		days := n.daysUntil(today, row.ExpirationDate)
		if !wanted[days] {
			// Inside the window but not an exact threshold day. A later run
			// will pick the license up when its day count matches.
			continue
		}

		summary.Total++

		already, err := n.alreadySentToday(db, row.LicenseID, row.ClientEmail, days, today)
		if err != nil {
			// Without a trustworthy dedup answer sending risks a duplicate,
			// so the candidate is left for the next run.
			summary.Failed++
			summary.Details = append(summary.Details,
				fmt.Sprintf("Failed: %s to %s (%d days): dedup check: %v", row.ToolName, row.ClientEmail, days, err))
			continue
		}
		if already {
			summary.Details = append(summary.Details,
				fmt.Sprintf("Skipped: already sent today (%s to %s, %d days)", row.ToolName, row.ClientEmail, days))
			continue
		}

		license := LicenseData{
			LicenseID:      row.LicenseID,
			ToolName:       row.ToolName,
			ExpirationDate: row.ExpirationDate,
		}
		if row.VendorName != nil {
			license.Vendor = *row.VendorName
		}
		client := ClientData{
			Name:      row.ClientName,
			Email:     row.ClientEmail,
			Phone:     row.ClientPhone,
			GSTNumber: row.ClientGST,
		}

		ok, err := n.mailer.SendExpiryNotice(license, client, days)
		if err != nil || !ok {
			summary.Failed++
			detail := fmt.Sprintf("Failed: %s to %s (%d days)", row.ToolName, row.ClientEmail, days)
			if err != nil {
				detail += ": " + err.Error()
			}
			summary.Details = append(summary.Details, detail)
			continue
		}

		summary.Sent++
		summary.Details = append(summary.Details,
			fmt.Sprintf("Sent: %s to %s (%d days)", row.ToolName, row.ClientEmail, days))

		// The email is already out. A failed audit write degrades the trail
		// but must never count as a send failure or trigger a resend.
		entry := models.NotificationLogEntry{
			LicenseID:       row.LicenseID,
			RecipientEmail:  row.ClientEmail,
			DaysUntilExpiry: days,
			SentAt:          n.now().In(n.loc),
		}
		if err := db.Create(&entry).Error; err != nil {
			log.Printf("notification audit write failed (license=%s to=%s days=%d): %v",
				row.LicenseID, row.ClientEmail, days, err)
		}
	}

	return summary, nil
}

// SendTest delivers one ad hoc email, bypassing the eligibility pipeline and
// the audit log. An empty recipient falls back to the configured admin email.
func (n *ExpiryNotifier) SendTest(to, subject, message string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		if s, err := n.loadSettings(n.db); err == nil && s != nil {
			to = strings.TrimSpace(s.AdminEmail)
		}
	}
	if to == "" {
		return fmt.Errorf("no recipient: provide \"to\" or configure an admin email")
	}
	if !utils.ValidateEmail(to) {
		return fmt.Errorf("invalid recipient address %q", to)
	}

	if strings.TrimSpace(subject) == "" {
		subject = "License tracker test email"
	}
	if strings.TrimSpace(message) == "" {
		message = "This is a test email from the license expiration notifier."
	}

	return n.mailer.Send(to, subject, buildTestEmailHTML(subject, message))
}

// Stats computes historical counters over the audit log. A missing audit
// table yields all-zero counters rather than an error.
func (n *ExpiryNotifier) Stats() (*NotificationStats, error) {
	today := n.today()
	tomorrow := today.AddDate(0, 0, 1)
	weekStart := startOfWeek(today)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, n.loc)

	stats := &NotificationStats{}
	counters := []struct {
		dst   *int64
		since *time.Time
		until *time.Time
	}{
		{&stats.TotalSent, nil, nil},
		{&stats.SentToday, &today, &tomorrow},
		{&stats.SentThisWeek, &weekStart, &tomorrow},
		{&stats.SentThisMonth, &monthStart, &tomorrow},
	}

	for _, c := range counters {
		q := n.db.Model(&models.NotificationLogEntry{})
		if c.since != nil {
			q = q.Where("sent_at >= ?", *c.since)
		}
		if c.until != nil {
			// Day-bounded windows end at tomorrow's boundary so a clock-skewed
			// future-dated row cannot inflate them.
			q = q.Where("sent_at < ?", *c.until)
		}
		if err := q.Count(c.dst).Error; err != nil {
			if isMissingTable(err) {
				return &NotificationStats{}, nil
			}
			return nil, fmt.Errorf("notification stats: %w", err)
		}
	}
	return stats, nil
}

// ClearToday deletes today's audit rows so an operator can force a re-send
// after fixing a delivery problem. Returns the number of deleted rows.
func (n *ExpiryNotifier) ClearToday() (int64, error) {
	today := n.today()
	res := n.db.
		Where("sent_at >= ? AND sent_at < ?", today, today.AddDate(0, 0, 1)).
		Delete(&models.NotificationLogEntry{})
	if res.Error != nil {
		if isMissingTable(res.Error) {
			return 0, nil
		}
		return 0, fmt.Errorf("clear today's notification log: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// ActiveSettings exposes the authoritative settings row for the admin API.
// Returns nil when no row exists yet.
func (n *ExpiryNotifier) ActiveSettings() (*models.NotificationSettings, error) {
	return n.loadSettings(n.db)
}

func (n *ExpiryNotifier) loadSettings(db *gorm.DB) (*models.NotificationSettings, error) {
	var s models.NotificationSettings
	err := db.Order("create_at DESC, setting_id DESC").First(&s).Error
	if err == nil {
		return &s, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || isMissingTable(err) {
		return nil, nil
	}
	return nil, fmt.Errorf("load notification settings: %w", err)
}

// candidates returns licenses expiring within maxThreshold days joined with
// client contact info, soonest expiration first. The window is an efficiency
// bound only; exact threshold matching happens in Run.
func (n *ExpiryNotifier) candidates(db *gorm.DB, today time.Time, maxThreshold int) ([]candidateRow, error) {
	upper := today.AddDate(0, 0, maxThreshold+1)

	var rows []candidateRow
	err := db.Table("license_purchases").
		Select("license_purchases.license_id, license_purchases.tool_name, license_purchases.expiration_date, "+
			"vendors.name AS vendor_name, "+
			"clients.name AS client_name, clients.email AS client_email, "+
			"clients.phone AS client_phone, clients.gst_number AS client_gst").
		Joins("JOIN clients ON clients.client_id = license_purchases.client_id").
		Joins("LEFT JOIN vendors ON vendors.vendor_id = license_purchases.vendor_id").
		Where("license_purchases.delete_at IS NULL").
		Where("clients.delete_at IS NULL").
		Where("license_purchases.expiration_date IS NOT NULL").
		Where("license_purchases.expiration_date >= ? AND license_purchases.expiration_date < ?", today, upper).
		Where("clients.email IS NOT NULL AND clients.email <> ''").
		Order("license_purchases.expiration_date ASC").
		Scan(&rows).Error
	return rows, err
}

func (n *ExpiryNotifier) alreadySentToday(db *gorm.DB, licenseID, email string, days int, today time.Time) (bool, error) {
	tomorrow := today.AddDate(0, 0, 1)

	var count int64
	err := db.Model(&models.NotificationLogEntry{}).
		Where("license_id = ? AND recipient_email = ? AND days_until_expiry = ?", licenseID, email, days).
		Where("sent_at >= ? AND sent_at < ?", today, tomorrow).
		Count(&count).Error
	if err != nil {
		if !isMissingTable(err) {
			return false, err
		}
		// Fresh database: bootstrap the audit table and treat it as empty.
		if merr := db.AutoMigrate(&models.NotificationLogEntry{}); merr != nil {
			return false, fmt.Errorf("bootstrap notification log: %w", merr)
		}
		return false, nil
	}
	return count > 0, nil
}

// today returns midnight of the current day in the engine's location.
func (n *ExpiryNotifier) today() time.Time {
	t := n.now().In(n.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, n.loc)
}

// daysUntil counts calendar days between today and the expiration date,
// ignoring time-of-day. Both dates are renormalized to UTC midnights so a
// DST transition inside the span cannot shift the count by an hour and
// break exact threshold matching.
func (n *ExpiryNotifier) daysUntil(today, expiration time.Time) int {
	exp := expiration.In(n.loc)
	a := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(exp.Year(), exp.Month(), exp.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

func startOfWeek(today time.Time) time.Time {
	// Weeks start on Monday.
	wd := int(today.Weekday())
	if wd == 0 {
		wd = 7
	}
	return today.AddDate(0, 0, -(wd - 1))
}

func isMissingTable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "no such table") || // sqlite
		strings.Contains(msg, "doesn't exist") // mysql error 1146
}
