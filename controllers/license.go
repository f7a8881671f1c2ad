package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"license-management-api/models"
	"license-management-api/utils"
)

type licenseRequest struct {
	ToolName       string     `json:"tool_name" binding:"required"`
	VendorID       *int       `json:"vendor_id"`
	ClientID       int        `json:"client_id" binding:"required"`
	PurchaseType   string     `json:"purchase_type"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	ExpirationDate *time.Time `json:"expiration_date"`
	Seats          int        `json:"seats"`
	Price          float64    `json:"price"`
	CurrencyCode   string     `json:"currency_code"`
}

func normalizePurchaseType(t string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "", "purchase":
		return "purchase", true
	case "sale":
		return "sale", true
	}
	return "", false
}

// GetLicenses lists active license purchases, optionally filtered by client
func GetLicenses(c *gin.Context) {
	q := getDB().Preload("Client").Preload("Vendor").
		Where("delete_at IS NULL")

	if clientID, err := strconv.Atoi(strings.TrimSpace(c.Query("client_id"))); err == nil && clientID > 0 {
		q = q.Where("client_id = ?", clientID)
	}

	var licenses []models.LicensePurchase
	if err := q.Order("expiration_date ASC").Find(&licenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"licenses": licenses})
}

// GetLicense returns one license purchase by id
func GetLicense(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var license models.LicensePurchase
	if err := getDB().Preload("Client").Preload("Vendor").
		Where("license_id = ? AND delete_at IS NULL", id).
		First(&license).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "License not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"license": license})
}

// CreateLicense records a new license purchase or sale
func CreateLicense(c *gin.Context) {
	var req licenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchaseType, ok := normalizePurchaseType(req.PurchaseType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "purchase_type must be purchase or sale"})
		return
	}

	var client models.Client
	if err := getDB().
		Where("client_id = ? AND delete_at IS NULL", req.ClientID).
		First(&client).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client not found"})
		return
	}

	license := models.LicensePurchase{
		ToolName:       utils.SanitizeInput(req.ToolName),
		VendorID:       req.VendorID,
		ClientID:       req.ClientID,
		PurchaseType:   purchaseType,
		PurchaseDate:   req.PurchaseDate,
		ExpirationDate: req.ExpirationDate,
		Seats:          req.Seats,
		Price:          req.Price,
		CurrencyCode:   strings.ToUpper(utils.SanitizeInput(req.CurrencyCode)),
	}
	if err := getDB().Create(&license).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"license": license})
}

// UpdateLicense modifies an existing license purchase
func UpdateLicense(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req licenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchaseType, ok := normalizePurchaseType(req.PurchaseType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "purchase_type must be purchase or sale"})
		return
	}

	var license models.LicensePurchase
	if err := getDB().
		Where("license_id = ? AND delete_at IS NULL", id).
		First(&license).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "License not found"})
		return
	}

	now := time.Now()
	license.ToolName = utils.SanitizeInput(req.ToolName)
	license.VendorID = req.VendorID
	license.ClientID = req.ClientID
	license.PurchaseType = purchaseType
	license.PurchaseDate = req.PurchaseDate
	license.ExpirationDate = req.ExpirationDate
	license.Seats = req.Seats
	license.Price = req.Price
	license.CurrencyCode = strings.ToUpper(utils.SanitizeInput(req.CurrencyCode))
	license.UpdateAt = &now

	if err := getDB().Save(&license).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"license": license})
}

// DeleteLicense soft-deletes a license purchase
func DeleteLicense(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	now := time.Now()
	res := getDB().Model(&models.LicensePurchase{}).
		Where("license_id = ? AND delete_at IS NULL", id).
		Update("delete_at", &now)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "License not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
