package controllers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"partner-management-api/config"
	"partner-management-api/models"
	"partner-management-api/services"
	"partner-management-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreatePartnershipRequest struct {
	FullName      string   `json:"full_name" binding:"required,min=2,max=100"`
	Email         string   `json:"email" binding:"required,email,max=100"`
	Company       string   `json:"company" binding:"required,min=2,max=100"`
	Phone         string   `json:"phone" binding:"required,min=5,max=20"`
	Country       string   `json:"country" binding:"required,min=2,max=100"`
	Expertise     []string `json:"expertise" binding:"required,min=1,max=10"`
	BusinessType  string   `json:"business_type" binding:"required,min=2,max=100"`
	Message       string   `json:"message" binding:"max=2000"`
	TermsAccepted *bool    `json:"terms_accepted" binding:"required"`
}

// CreatePartnership accepts the public partner application form.
func CreatePartnership(c *gin.Context) {
	var req CreatePartnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !*req.TermsAccepted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must accept the terms and conditions"})
		return
	}

	expertise, err := json.Marshal(req.Expertise)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expertise list"})
		return
	}

	now := time.Now()
	application := models.PartnershipApplication{
		ApplicationID: uuid.NewString(),
		FullName:      utils.SanitizeInput(req.FullName),
		Email:         utils.SanitizeInput(req.Email),
		Company:       utils.SanitizeInput(req.Company),
		Phone:         utils.SanitizeInput(req.Phone),
		Country:       utils.SanitizeInput(req.Country),
		Expertise:     datatypes.JSON(expertise),
		BusinessType:  utils.SanitizeInput(req.BusinessType),
		Message:       utils.SanitizeInput(req.Message),
		TermsAccepted: true,
		Status:        models.PartnershipStatusNew,
		CreateAt:      &now,
		UpdateAt:      &now,
	}

	if err := config.DB.Create(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create partnership application"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Partnership application submitted successfully",
		"application": application,
	})
}

// GetPartnerships returns a filtered, paginated list of applications.
func GetPartnerships(c *gin.Context) {
	page, limit, err := utils.ParsePagination(c.Query("page"), c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := config.DB.Model(&models.PartnershipApplication{})

	if status := c.Query("status"); status != "" {
		if !models.PartnershipStatus(status).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}

	if country := c.Query("country"); country != "" {
		query = query.Where("country = ?", country)
	}

	if businessType := c.Query("business_type"); businessType != "" {
		query = query.Where("business_type = ?", businessType)
	}

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("full_name LIKE ? OR email LIKE ? OR company LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count partnership applications"})
		return
	}

	var applications []models.PartnershipApplication
	if err := query.
		Order("create_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch partnership applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
			"pages": utils.TotalPages(total, limit),
		},
	})
}

// GetPartnership returns a single application with history, notes and
// attachments.
func GetPartnership(c *gin.Context) {
	id := c.Param("id")

	var application models.PartnershipApplication
	if err := config.DB.
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("changed_at DESC, history_id DESC")
		}).
		Preload("StatusHistory.ChangedByUser").
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Notes.Author").
		Preload("Attachments").
		Where("application_id = ?", id).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partnership application not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"application": application,
	})
}

type statusUpdateRequest struct {
	Status string  `json:"status" binding:"required"`
	Note   *string `json:"note"`
}

// UpdatePartnershipStatus runs the partnership status workflow.
func UpdatePartnershipStatus(c *gin.Context) {
	id := c.Param("id")
	actingUserID := c.GetString("userID")

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.TransitionPartnershipStatus(
		config.DB, id, models.PartnershipStatus(req.Status), req.Note, actingUserID)
	if err != nil {
		switch err {
		case services.ErrInvalidStatus:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		case services.ErrApplicationNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Partnership application not found"})
		case services.ErrActingUserNotFound:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"application":    result.Application,
		"status_history": result.History,
	})
}

type createNoteRequest struct {
	Content string `json:"content" binding:"required"`
}

// GetPartnershipNotes lists the notes on an application, newest first.
func GetPartnershipNotes(c *gin.Context) {
	id := c.Param("id")

	if !partnershipExists(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partnership application not found"})
		return
	}

	var notes []models.Note
	if err := config.DB.Preload("Author").
		Where("application_id = ?", id).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// CreatePartnershipNote appends a note to an application.
func CreatePartnershipNote(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetString("userID")

	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !partnershipExists(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partnership application not found"})
		return
	}

	note := models.Note{
		ApplicationID: id,
		Content:       req.Content,
		CreatedBy:     userID,
		CreatedAt:     time.Now(),
	}

	if err := config.DB.Create(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create note"})
		return
	}

	config.DB.Preload("Author").First(&note, note.NoteID)

	c.JSON(http.StatusCreated, gin.H{"note": note})
}

// GetPartnershipAttachments lists attachment metadata for an application.
func GetPartnershipAttachments(c *gin.Context) {
	id := c.Param("id")

	if !partnershipExists(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partnership application not found"})
		return
	}

	var attachments []models.Attachment
	if err := config.DB.
		Where("application_id = ?", id).
		Order("created_at DESC").
		Find(&attachments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attachments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"attachments": attachments})
}

// UploadPartnershipAttachment stores an uploaded file and its metadata.
func UploadPartnershipAttachment(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetString("userID")

	if !partnershipExists(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partnership application not found"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	storedName := uuid.NewString() + filepath.Ext(file.Filename)
	fullPath := filepath.Join(uploadPath(), storedName)
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	attachment := models.Attachment{
		ApplicationID: &id,
		FileName:      file.Filename,
		MimeType:      file.Header.Get("Content-Type"),
		FileSize:      file.Size,
		FileURL:       "/uploads/" + storedName,
		UploadedBy:    &userID,
		CreatedAt:     time.Now(),
	}

	if err := config.DB.Create(&attachment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save attachment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"attachment": attachment})
}

func partnershipExists(id string) bool {
	var count int64
	config.DB.Model(&models.PartnershipApplication{}).
		Where("application_id = ?", id).
		Count(&count)
	return count > 0
}

func uploadPath() string {
	path := os.Getenv("UPLOAD_PATH")
	if path == "" {
		path = "./uploads"
	}
	return path
}
