package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"license-management-api/models"
	"license-management-api/utils"
)

type vendorRequest struct {
	Name         string `json:"name" binding:"required"`
	ContactEmail string `json:"contact_email"`
	Website      string `json:"website"`
}

// GetVendors lists all active vendors
func GetVendors(c *gin.Context) {
	var vendors []models.Vendor
	if err := getDB().
		Where("delete_at IS NULL").
		Order("name ASC").
		Find(&vendors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendors": vendors})
}

// GetVendor returns one vendor by id
func GetVendor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var vendor models.Vendor
	if err := getDB().
		Where("vendor_id = ? AND delete_at IS NULL", id).
		First(&vendor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendor": vendor})
}

// CreateVendor adds a new vendor
func CreateVendor(c *gin.Context) {
	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ContactEmail != "" && !utils.ValidateEmail(req.ContactEmail) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact email"})
		return
	}

	vendor := models.Vendor{
		Name:         utils.SanitizeInput(req.Name),
		ContactEmail: utils.SanitizeInput(req.ContactEmail),
		Website:      utils.SanitizeInput(req.Website),
		CreateAt:     time.Now(),
	}
	if err := getDB().Create(&vendor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendor": vendor})
}

// UpdateVendor modifies an existing vendor
func UpdateVendor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vendor models.Vendor
	if err := getDB().
		Where("vendor_id = ? AND delete_at IS NULL", id).
		First(&vendor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
		return
	}

	now := time.Now()
	vendor.Name = utils.SanitizeInput(req.Name)
	vendor.ContactEmail = utils.SanitizeInput(req.ContactEmail)
	vendor.Website = utils.SanitizeInput(req.Website)
	vendor.UpdateAt = &now

	if err := getDB().Save(&vendor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendor": vendor})
}

// DeleteVendor soft-deletes a vendor
func DeleteVendor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	now := time.Now()
	res := getDB().Model(&models.Vendor{}).
		Where("vendor_id = ? AND delete_at IS NULL", id).
		Update("delete_at", &now)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
