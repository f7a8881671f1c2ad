package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"license-management-api/models"
)

func TestSchedulerRejectsInvalidSpec(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)

	notifier := newTestNotifier(t, db, &fakeMailer{})
	scheduler := NewScheduler(notifier, "not a cron spec")
	require.Error(t, scheduler.Start())
}

func TestSchedulerStartStop(t *testing.T) {
	db := openTestDB(t)
	migrateAll(t, db)

	notifier := newTestNotifier(t, db, &fakeMailer{})
	scheduler := NewScheduler(notifier, "")
	require.NoError(t, scheduler.Start())

	select {
	case <-scheduler.Stop().Done():
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestSchedulerRunOnceSwallowsRunError(t *testing.T) {
	// Settings are enabled but the license table is missing, so Run fails on
	// the candidate query. runOnce logs and returns without panicking.
	db := openTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.NotificationSettings{}))
	seedSettings(t, db, models.NotificationSettings{Enabled: true, Notify7Days: true})

	notifier := newTestNotifier(t, db, &fakeMailer{})
	scheduler := NewScheduler(notifier, "@daily")
	scheduler.runOnce()
}
