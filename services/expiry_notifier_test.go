package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"license-management-api/models"
)

var testDBSeq atomic.Int64

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:notifier_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database alive for the whole test.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func migrateAll(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.AutoMigrate(
		&models.Client{},
		&models.Vendor{},
		&models.LicensePurchase{},
		&models.NotificationSettings{},
		&models.NotificationLogEntry{},
	))
}

// 2026-03-10 is a Tuesday; tests derive all dates from this instant.
var testNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

func expiringIn(days int) *time.Time {
	d := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	return &d
}

type sendResult struct {
	ok  bool
	err error
}

type noticeCall struct {
	license LicenseData
	client  ClientData
	days    int
}

type rawCall struct {
	to      string
	subject string
	html    string
}

// fakeMailer records calls and replays scripted results; unscripted calls
// succeed.
type fakeMailer struct {
	notices []noticeCall
	raw     []rawCall
	results []sendResult
	rawErr  error
}

func (m *fakeMailer) SendExpiryNotice(license LicenseData, client ClientData, daysUntilExpiry int) (bool, error) {
	i := len(m.notices)
	m.notices = append(m.notices, noticeCall{license: license, client: client, days: daysUntilExpiry})
	if i < len(m.results) {
		return m.results[i].ok, m.results[i].err
	}
	return true, nil
}

func (m *fakeMailer) Send(to, subject, html string) error {
	m.raw = append(m.raw, rawCall{to: to, subject: subject, html: html})
	return m.rawErr
}

func seedSettings(t *testing.T, db *gorm.DB, s models.NotificationSettings) {
	t.Helper()
	if s.CreateAt.IsZero() {
		s.CreateAt = testNow
	}
	require.NoError(t, db.Create(&s).Error)
}

func seedClient(t *testing.T, db *gorm.DB, name, email string) models.Client {
	t.Helper()
	client := models.Client{
		Name:      name,
		Email:     email,
		Phone:     "+64 21 555 0100",
		GSTNumber: "123-456-789",
		CreateAt:  testNow,
	}
	require.NoError(t, db.Create(&client).Error)
	return client
}

func seedLicense(t *testing.T, db *gorm.DB, clientID int, tool string, expiration *time.Time) models.LicensePurchase {
	t.Helper()
	license := models.LicensePurchase{
		ToolName:       tool,
		ClientID:       clientID,
		PurchaseType:   "purchase",
		ExpirationDate: expiration,
		Seats:          10,
		Price:          1200,
		CurrencyCode:   "NZD",
	}
	require.NoError(t, db.Create(&license).Error)
	return license
}

func newTestNotifier(t *testing.T, db *gorm.DB, mailer ExpiryMailer) *ExpiryNotifier {
	t.Helper()
	return NewExpiryNotifier(db, mailer, WithClock(testClock))
}

func countLogRows(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.NotificationLogEntry{}).Count(&count).Error)
	return count
}

func TestRunSendsAtExactThreshold(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)
	seedSettings(t, db, models.NotificationSettings{
		Enabled: true, Notify30Days: true, Notify7Days: true, Notify0Days: true,
	})
	client := seedClient(t, db, "Acme Ltd", "billing@acme.example")
	license := seedLicense(t, db, client.ClientID, "IntelliJ IDEA", expiringIn(7))

	mailer := &fakeMailer{}
	summary, err := newTestNotifier(t, db, mailer).Run()
	require.NoError(t, err)

	require.Equal(t, 1, summary.Sent)
	require.Equal(t, 0, summary.Failed)
	require.Equal(t, 1, summary.Total)
	require.Equal(t, []int{30, 7, 0}, summary.NotificationDays)
	require.Len(t, summary.Details, 1)
	require.Contains(t, summary.Details[0], "Sent: IntelliJ IDEA to billing@acme.example")

	require.Len(t, mailer.notices, 1)
	require.Equal(t, 7, mailer.notices[0].days)
	require.Equal(t, license.LicenseID, mailer.notices[0].license.LicenseID)
	require.Equal(t, "Acme Ltd", mailer.notices[0].client.Name)
	require.Equal(t, "123-456-789", mailer.notices[0].client.GSTNumber)

	var entry models.NotificationLogEntry
	require.NoError(t, db.First(&entry).Error)
	require.Equal(t, license.LicenseID, entry.LicenseID)
	require.Equal(t, "billing@acme.example", entry.RecipientEmail)
	require.Equal(t, 7, entry.DaysUntilExpiry)
	require.Equal(t, testNow.Format("2006-01-02"), entry.SentAt.UTC().Format("2006-01-02"))
}

func TestRunIsIdempotentPerDay(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)
	seedSettings(t, db, models.NotificationSettings{
		Enabled: true, Notify30Days: true, Notify7Days: true, Notify0Days: true,
	})
	client := seedClient(t, db, "Acme Ltd", "billing@acme.example")
	seedLicense(t, db, client.ClientID, "IntelliJ IDEA", expiringIn(7))

	mailer := &fakeMailer{}
	notifier := newTestNotifier(t, db, mailer)

	first, err := notifier.Run()
	require.NoError(t, err)
	require.Equal(t, 1, first.Sent)

	second, err := notifier.Run()
	require.NoError(t, err)
	require.Equal(t, 0, second.Sent)
	require.Equal(t, 0, second.Failed)
	require.Equal(t, 1, second.Total)
	require.Len(t, second.Details, 1)
	require.Contains(t, second.Details[0], "already sent today")

	require.Len(t, mailer.notices, 1)
	require.EqualValues(t, 1, countLogRows(t, db))
}

func TestRunSkipsNonMatchingDayInsideWindow(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)
	seedSettings(t, db, models.NotificationSettings{
		Enabled: true, Notify30Days: true, Notify7Days: true, Notify0Days: true,
	})
	client := seedClient(t, db, "Acme Ltd", "billing@acme.example")
	// 10 days is within the 30-day window but not an exact threshold.
	seedLicense(t, db, client.ClientID, "IntelliJ IDEA", expiringIn(10))

	mailer := &fakeMailer{}
	summary, err := newTestNotifier(t, db, mailer).Run()
	require.NoError(t, err)

	require.Equal(t, 0, summary.Sent)
	require.Equal(t, 0, summary.Failed)
	require.Equal(t, 0, summary.Total)
	require.Empty(t, summary.Details)
	require.Empty(t, mailer.notices)
}

func TestRunDisabledSettings(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)
	seedSettings(t, db, models.NotificationSettings{
		Enabled: false, Notify7Days: true,
	})
	client := seedClient(t, db, "Acme Ltd", "billing@acme.example")
	seedLicense(t, db, client.ClientID, "IntelliJ IDEA", expiringIn(7))

	mailer := &fakeMailer{}
	summary, err := newTestNotifier(t, db, mailer).Run()
	require.NoError(t, err)

	require.Equal(t, 0, summary.Sent)
	require.Equal(t, 0, summary.Failed)
	require.Equal(t, 0, summary.Total)
	require.Equal(t, []string{"Notifications disabled in settings"}, summary.Details)
	require.Empty(t, mailer.notices)
}

func TestRunWithoutSettingsRowIsDisabled(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)
	client := seedClient(t, db, "Acme Ltd", "billing@acme.example")
	seedLicense(t, db, client.ClientID, "IntelliJ IDEA", expiringIn(7))

	mailer := &fakeMailer{}
	summary, err := newTestNotifier(t, db, mailer).Run()
	require.NoError(t, err)

	require.Equal(t, 0, summary.Total)
	require.Equal(t, []string{"Notifications disabled in settings"}, summary.Details)
	require.Empty(t, mailer.notices)
}

func TestRunUsesMostRecentSettingsRow(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)
	seedSettings(t, db, models.NotificationSettings{
		Enabled: true, Notify7Days: true, CreateAt: testNow.AddDate(0, 0, -3),
	})
	// Newer version disables the 7-day threshold.
	seedSettings(t, db, models.NotificationSettings{
		Enabled: true, Notify30Days: true, CreateAt: testNow.AddDate(0, 0, -1),
	})
	client := seedClient(t, db, "Acme Ltd", "billing@acme.example")
	seedLicense(t, db, client.ClientID, "IntelliJ IDEA", expiringIn(7))

	mailer := &fakeMailer{}
	summary, err := newTestNotifier(t, db, mailer).Run()
	require.NoError(t, err)

	require.Equal(t, 0, summary.Sent)
	require.Equal(t, []int{30}, summary.NotificationDays)
	require.Empty(t, mailer.notices)
}

func TestDefaultThresholdFallback(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)
	// Enabled, but no threshold flag set.
	seedSettings(t, db, models.NotificationSettings{Enabled: true})
	client := seedClient(t, db, "Acme Ltd", "billing@acme.example")
	seedLicense(t, db, client.ClientID, "IntelliJ IDEA", expiringIn(45))

	mailer := &fakeMailer{}
	summary, err := newTestNotifier(t, db, mailer).Run()
	require.NoError(t, err)

	require.Equal(t, DefaultThresholds, summary.NotificationDays)
	require.Equal(t, 1, summary.Sent)
	require.Len(t, mailer.notices, 1)
	require.Equal(t, 45, mailer.notices[0].days)
}

func TestWindowIncludesBothBoundaries(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)
	seedSettings(t, db, models.NotificationSettings{
		Enabled: true, Notify30Days: true, Notify7Days: true, Notify0Days: true,
	})
	client := seedClient(t, db, "Acme Ltd", "billing@acme.example")
	seedLicense(t, db, client.ClientID, "Expires Today", expiringIn(0))
	seedLicense(t, db, client.ClientID, "Expires At Max", expiringIn(30))
	seedLicense(t, db, client.ClientID, "Beyond Window", expiringIn(31))
	yesterday := expiringIn(-1)
	seedLicense(t, db, client.ClientID, "Already Expired", yesterday)

	mailer := &fakeMailer{}
	summary, err := newTestNotifier(t, db, mailer).Run()
	require.NoError(t, err)

	require.Equal(t, 2, summary.Sent)
	require.Equal(t, 2, summary.Total)
	require.Len(t, mailer.notices, 2)
	// Ordered soonest expiration first.
	require.Equal(t, 0, mailer.notices[0].days)
	require.Equal(t, 30, mailer.notices[1].days)
}

func TestThresholdMatchingAcrossSpringForward(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	db := openTestDB(t)
	migrateAll(t, db)
	seedSettings(t, db, models.NotificationSettings{Enabled: true, Notify7Days: true})
	client := seedClient(t, db, "Acme Ltd", "billing@acme.example")

	// New York springs forward on 2026-03-08, so the span from the 5th to
	// the 12th is 167 hours. The day count must still be 7.
	exp := time.Date(2026, 3, 12, 0, 0, 0, 0, loc)
	seedLicense(t, db, client.ClientID, "IntelliJ IDEA", &exp)

	now := time.Date(2026, 3, 5, 9, 0, 0, 0, loc)
	mailer := &fakeMailer{}
	notifier := NewExpiryNotifier(db, mailer,
		WithClock(func() time.Time { return now }),
		WithLocation(loc))

	summary, err := notifier.Run()
	require.NoError(t, err)
	require.Equal(t, 1, summary.Sent)
	require.Len(t, mailer.notices, 1)
	require.Equal(t, 7, mailer.notices[0].days)
}

func TestConcurrentRunsSendOnce(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)
	seedSettings(t, db, models.NotificationSettings{Enabled: true, Notify7Days: true})
	client := seedClient(t, db, "Acme Ltd", "billing@acme.example")
	seedLicense(t, db, client.ClientID, "IntelliJ IDEA", expiringIn(7))

	mailer := &fakeMailer{}
	notifier := newTestNotifier(t, db, mailer)

	const runs = 4
	var wg sync.WaitGroup
	results := make([]*RunSummary, runs)
	errs := make([]error, runs)
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = notifier.Run()
		}(i)
	}
	wg.Wait()

	sent := 0
	for i := range results {
		require.NoError(t, errs[i])
		sent += results[i].Sent
	}
	require.Equal(t, 1, sent)
	require.Len(t, mailer.notices, 1)
	require.EqualValues(t, 1, countLogRows(t, db))
}

func TestSendFailureIsRetryable(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)
	seedSettings(t, db, models.NotificationSettings{Enabled: true, Notify7Days: true})
	client := seedClient(t, db, "Acme Ltd", "billing@acme.example")
	seedLicense(t, db, client.ClientID, "IntelliJ IDEA", expiringIn(7))

	mailer := &fakeMailer{results: []sendResult{{ok: false, err: errors.New("smtp: connection refused")}}}
	notifier := newTestNotifier(t, db, mailer)

	first, err := notifier.Run()
	require.NoError(t, err)
	require.Equal(t, 0, first.Sent)
	require.Equal(t, 1, first.Failed)
	require.Equal(t, 1, first.Total)
	require.Contains(t, first.Details[0], "smtp: connection refused")

	// No audit row was written, so the next run re-attempts automatically.
	require.EqualValues(t, 0, countLogRows(t, db))

	second, err := notifier.Run()
	require.NoError(t, err)
	require.Equal(t, 1, second.Sent)
	require.Equal(t, 0, second.Failed)
	require.EqualValues(t, 1, countLogRows(t, db))
}

func TestBooleanFailureWithoutErrorCountsAsFailed(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)
	seedSettings(t, db, models.NotificationSettings{Enabled: true, Notify7Days: true})
	client := seedClient(t, db, "Acme Ltd", "billing@acme.example")
	seedLicense(t, db, client.ClientID, "IntelliJ IDEA", expiringIn(7))

	mailer := &fakeMailer{results: []sendResult{{ok: false}}}
	summary, err := newTestNotifier(t, db, mailer).Run()
	require.NoError(t, err)

	require.Equal(t, 1, summary.Failed)
	require.Contains(t, summary.Details[0], "Failed: IntelliJ IDEA")
	require.EqualValues(t, 0, countLogRows(t, db))
}

func TestRunContinuesAfterPerCandidateFailure(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)
	seedSettings(t, db, models.NotificationSettings{Enabled: true, Notify7Days: true, Notify1Day: true})
	first := seedClient(t, db, "Acme Ltd", "billing@acme.example")
	second := seedClient(t, db, "Globex", "accounts@globex.example")
	seedLicense(t, db, first.ClientID, "Soon Tool", expiringIn(1))
	seedLicense(t, db, second.ClientID, "Later Tool", expiringIn(7))

	// First candidate (soonest expiration) fails, the batch continues.
	mailer := &fakeMailer{results: []sendResult{{ok: false, err: errors.New("mailbox full")}}}
	summary, err := newTestNotifier(t, db, mailer).Run()
	require.NoError(t, err)

	require.Equal(t, 1, summary.Sent)
	require.Equal(t, 1, summary.Failed)
	require.Equal(t, 2, summary.Total)
	require.Len(t, mailer.notices, 2)
	require.Contains(t, summary.Details[0], "Failed: Soon Tool")
	require.Contains(t, summary.Details[1], "Sent: Later Tool")
	require.EqualValues(t, 1, countLogRows(t, db))
}

func TestClearTodayAllowsResend(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)
	seedSettings(t, db, models.NotificationSettings{Enabled: true, Notify7Days: true})
	client := seedClient(t, db, "Acme Ltd", "billing@acme.example")
	seedLicense(t, db, client.ClientID, "IntelliJ IDEA", expiringIn(7))

	mailer := &fakeMailer{}
	notifier := newTestNotifier(t, db, mailer)

	first, err := notifier.Run()
	require.NoError(t, err)
	require.Equal(t, 1, first.Sent)

	deleted, err := notifier.ClearToday()
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	second, err := notifier.Run()
	require.NoError(t, err)
	require.Equal(t, 1, second.Sent)
	require.Len(t, mailer.notices, 2)
	require.EqualValues(t, 1, countLogRows(t, db))
}

func TestClearTodayKeepsOlderRows(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)

	require.NoError(t, db.Create(&models.NotificationLogEntry{
		LicenseID: "old", RecipientEmail: "a@example.com", DaysUntilExpiry: 7,
		SentAt: testNow.AddDate(0, 0, -2),
	}).Error)
	require.NoError(t, db.Create(&models.NotificationLogEntry{
		LicenseID: "today", RecipientEmail: "a@example.com", DaysUntilExpiry: 7,
		SentAt: testNow,
	}).Error)

	notifier := newTestNotifier(t, db, &fakeMailer{})
	deleted, err := notifier.ClearToday()
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	var remaining models.NotificationLogEntry
	require.NoError(t, db.First(&remaining).Error)
	require.Equal(t, "old", remaining.LicenseID)
}

func TestCandidatesRequireEmailAndExpiration(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)
	seedSettings(t, db, models.NotificationSettings{Enabled: true, Notify7Days: true})
	noEmail := seedClient(t, db, "No Email Ltd", "")
	withEmail := seedClient(t, db, "Acme Ltd", "billing@acme.example")
	seedLicense(t, db, noEmail.ClientID, "Unreachable", expiringIn(7))
	seedLicense(t, db, withEmail.ClientID, "Perpetual", nil)

	mailer := &fakeMailer{}
	summary, err := newTestNotifier(t, db, mailer).Run()
	require.NoError(t, err)

	require.Equal(t, 0, summary.Total)
	require.Empty(t, mailer.notices)
}

func TestRunBootstrapsMissingAuditTable(t *testing.T) {
	db := openTestDB(t)
	// Everything except the audit log table.
	require.NoError(t, db.AutoMigrate(
		&models.Client{},
		&models.Vendor{},
		&models.LicensePurchase{},
		&models.NotificationSettings{},
	))
	seedSettings(t, db, models.NotificationSettings{Enabled: true, Notify7Days: true})
	client := seedClient(t, db, "Acme Ltd", "billing@acme.example")
	seedLicense(t, db, client.ClientID, "IntelliJ IDEA", expiringIn(7))

	mailer := &fakeMailer{}
	summary, err := newTestNotifier(t, db, mailer).Run()
	require.NoError(t, err)

	require.Equal(t, 1, summary.Sent)
	require.EqualValues(t, 1, countLogRows(t, db))
}

func TestStatsCountersUseCalendarBoundaries(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)

	seed := func(sentAt time.Time) {
		require.NoError(t, db.Create(&models.NotificationLogEntry{
			LicenseID: "lic", RecipientEmail: "a@example.com", DaysUntilExpiry: 7, SentAt: sentAt,
		}).Error)
	}

	// testNow is Tuesday 2026-03-10; the week starts Monday 2026-03-09.
	seed(testNow)                                               // today
	seed(testNow.Add(-2 * time.Hour))                           // today
	seed(time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC))          // this week, not today
	seed(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))          // this month, previous week
	seed(time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC))         // all-time only

	notifier := newTestNotifier(t, db, &fakeMailer{})
	stats, err := notifier.Stats()
	require.NoError(t, err)

	require.EqualValues(t, 5, stats.TotalSent)
	require.EqualValues(t, 2, stats.SentToday)
	require.EqualValues(t, 3, stats.SentThisWeek)
	require.EqualValues(t, 4, stats.SentThisMonth)
}

func TestStatsExcludeFutureRowsFromDayBoundedWindows(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)

	require.NoError(t, db.Create(&models.NotificationLogEntry{
		LicenseID: "lic", RecipientEmail: "a@example.com", DaysUntilExpiry: 7, SentAt: testNow,
	}).Error)
	// Clock-skewed row dated tomorrow counts in the all-time total only.
	require.NoError(t, db.Create(&models.NotificationLogEntry{
		LicenseID: "lic", RecipientEmail: "a@example.com", DaysUntilExpiry: 7, SentAt: testNow.AddDate(0, 0, 1),
	}).Error)

	notifier := newTestNotifier(t, db, &fakeMailer{})
	stats, err := notifier.Stats()
	require.NoError(t, err)

	require.EqualValues(t, 2, stats.TotalSent)
	require.EqualValues(t, 1, stats.SentToday)
	require.EqualValues(t, 1, stats.SentThisWeek)
	require.EqualValues(t, 1, stats.SentThisMonth)
}

func TestStatsMissingTableReturnsZeros(t *testing.T) {
	db := openTestDB(t)

	notifier := newTestNotifier(t, db, &fakeMailer{})
	stats, err := notifier.Stats()
	require.NoError(t, err)
	require.Equal(t, &NotificationStats{}, stats)

	deleted, err := notifier.ClearToday()
	require.NoError(t, err)
	require.Zero(t, deleted)
}

func TestSendTestBypassesPipelineAndAuditLog(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)

	mailer := &fakeMailer{}
	notifier := newTestNotifier(t, db, mailer)

	require.NoError(t, notifier.SendTest("ops@example.com", "", ""))
	require.Len(t, mailer.raw, 1)
	require.Equal(t, "ops@example.com", mailer.raw[0].to)
	require.Equal(t, "License tracker test email", mailer.raw[0].subject)
	require.Empty(t, mailer.notices)
	require.EqualValues(t, 0, countLogRows(t, db))
}

func TestSendTestFallsBackToAdminEmail(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)
	seedSettings(t, db, models.NotificationSettings{Enabled: true, AdminEmail: "admin@example.com"})

	mailer := &fakeMailer{}
	notifier := newTestNotifier(t, db, mailer)

	require.NoError(t, notifier.SendTest("", "Check", "Hello"))
	require.Len(t, mailer.raw, 1)
	require.Equal(t, "admin@example.com", mailer.raw[0].to)
	require.Equal(t, "Check", mailer.raw[0].subject)
	require.True(t, strings.Contains(mailer.raw[0].html, "Hello"))
}

func TestSendTestRejectsBadRecipients(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)

	notifier := newTestNotifier(t, db, &fakeMailer{})

	err := notifier.SendTest("", "", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no recipient")

	err = notifier.SendTest("not-an-address", "", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid recipient")
}
