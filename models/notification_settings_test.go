package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestThresholdsDescendingSubset(t *testing.T) {
	s := NotificationSettings{Notify30Days: true, Notify0Days: true, Notify7Days: true}
	require.Equal(t, []int{30, 7, 0}, s.Thresholds())
}

func TestThresholdsAllFlags(t *testing.T) {
	s := NotificationSettings{
		Notify45Days: true,
		Notify30Days: true,
		Notify15Days: true,
		Notify7Days:  true,
		Notify5Days:  true,
		Notify1Day:   true,
		Notify0Days:  true,
	}
	require.Equal(t, []int{45, 30, 15, 7, 5, 1, 0}, s.Thresholds())
}

func TestThresholdsEmptyWhenNoFlagSet(t *testing.T) {
	s := NotificationSettings{Enabled: true}
	require.Empty(t, s.Thresholds())
}
