package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"license-management-api/models"
	"license-management-api/utils"
)

type clientRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	GSTNumber string `json:"gst_number"`
}

// GetClients lists all active clients
func GetClients(c *gin.Context) {
	var clients []models.Client
	if err := getDB().
		Where("delete_at IS NULL").
		Order("name ASC").
		Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// GetClient returns one client by id
func GetClient(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var client models.Client
	if err := getDB().
		Where("client_id = ? AND delete_at IS NULL", id).
		First(&client).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client})
}

// CreateClient adds a new client
func CreateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email != "" && !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
		return
	}

	client := models.Client{
		Name:      utils.SanitizeInput(req.Name),
		Email:     utils.SanitizeInput(req.Email),
		Phone:     utils.SanitizeInput(req.Phone),
		GSTNumber: utils.SanitizeInput(req.GSTNumber),
		CreateAt:  time.Now(),
	}
	if err := getDB().Create(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client})
}

// UpdateClient modifies an existing client
func UpdateClient(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email != "" && !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
		return
	}

	var client models.Client
	if err := getDB().
		Where("client_id = ? AND delete_at IS NULL", id).
		First(&client).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	now := time.Now()
	client.Name = utils.SanitizeInput(req.Name)
	client.Email = utils.SanitizeInput(req.Email)
	client.Phone = utils.SanitizeInput(req.Phone)
	client.GSTNumber = utils.SanitizeInput(req.GSTNumber)
	client.UpdateAt = &now

	if err := getDB().Save(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client})
}

// DeleteClient soft-deletes a client
func DeleteClient(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	now := time.Now()
	res := getDB().Model(&models.Client{}).
		Where("client_id = ? AND delete_at IS NULL", id).
		Update("delete_at", &now)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
