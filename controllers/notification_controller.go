package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"license-management-api/models"
	"license-management-api/services"
	"license-management-api/utils"
)

/* ==========================
   Expiry notification endpoints
   ========================== */

// RunExpiryNotifications executes one notification batch and returns the
// run summary. Only a configuration error (settings or license store
// unreachable) produces a non-200 response.
func RunExpiryNotifications(notifier *services.ExpiryNotifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := notifier.Run()
		if err != nil {
			log.Printf("expiry notification run failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

type testEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SendTestExpiryEmail sends one ad hoc email, bypassing the eligibility
// pipeline and the audit log.
func SendTestExpiryEmail(notifier *services.ExpiryNotifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req testEmailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		timestamp := time.Now().Format(time.RFC3339)
		if err := notifier.SendTest(req.To, req.Subject, req.Message); err != nil {
			c.JSON(http.StatusOK, gin.H{
				"success":   false,
				"error":     err.Error(),
				"timestamp": timestamp,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"timestamp": timestamp,
		})
	}
}

// GetExpiryNotificationStats returns historical send counters. On failure the
// counters come back zeroed with an error field instead of a 500.
func GetExpiryNotificationStats(notifier *services.ExpiryNotifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := notifier.Stats()
		if err != nil {
			log.Printf("expiry notification stats failed: %v", err)
			c.JSON(http.StatusOK, gin.H{
				"total_sent":      0,
				"sent_today":      0,
				"sent_this_week":  0,
				"sent_this_month": 0,
				"error":           err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// ClearTodayExpiryLog deletes today's audit rows to permit a same-day re-send.
func ClearTodayExpiryLog(notifier *services.ExpiryNotifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := notifier.ClearToday()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted_count": deleted})
	}
}

// GetNotificationSettings returns the authoritative settings row.
func GetNotificationSettings(notifier *services.ExpiryNotifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := notifier.ActiveSettings()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if settings == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no notification settings configured"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"settings":   settings,
			"thresholds": settings.Thresholds(),
		})
	}
}

type notificationSettingsRequest struct {
	Enabled      bool   `json:"enabled"`
	Notify45Days bool   `json:"notify_45_days"`
	Notify30Days bool   `json:"notify_30_days"`
	Notify15Days bool   `json:"notify_15_days"`
	Notify7Days  bool   `json:"notify_7_days"`
	Notify5Days  bool   `json:"notify_5_days"`
	Notify1Day   bool   `json:"notify_1_day"`
	Notify0Days  bool   `json:"notify_0_days"`
	AdminEmail   string `json:"admin_email"`
}

// UpdateNotificationSettings appends a new settings version. The engine only
// ever reads the most recent row, so earlier versions stay untouched.
func UpdateNotificationSettings(c *gin.Context) {
	var req notificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.AdminEmail != "" && !utils.ValidateEmail(req.AdminEmail) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid admin email"})
		return
	}

	settings := models.NotificationSettings{
		Enabled:      req.Enabled,
		Notify45Days: req.Notify45Days,
		Notify30Days: req.Notify30Days,
		Notify15Days: req.Notify15Days,
		Notify7Days:  req.Notify7Days,
		Notify5Days:  req.Notify5Days,
		Notify1Day:   req.Notify1Day,
		Notify0Days:  req.Notify0Days,
		AdminEmail:   utils.SanitizeInput(req.AdminEmail),
		CreateAt:     time.Now(),
	}
	if err := getDB().Create(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"settings":   settings,
		"thresholds": settings.Thresholds(),
	})
}
