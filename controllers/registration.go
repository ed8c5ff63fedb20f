package controllers

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"time"

	"partner-management-api/config"
	"partner-management-api/models"
	"partner-management-api/services"
	"partner-management-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateRegistrationRequest struct {
	FirstName     string  `json:"first_name" binding:"required,min=2"`
	MiddleName    *string `json:"middle_name"`
	LastName      string  `json:"last_name" binding:"required,min=2"`
	DateOfBirth   string  `json:"date_of_birth" binding:"required"`
	Gender        string  `json:"gender" binding:"required,oneof=MALE FEMALE OTHER PREFER_NOT_TO_SAY"`
	MaritalStatus string  `json:"marital_status" binding:"required,oneof=SINGLE MARRIED DIVORCED WIDOWED OTHER"`

	Email           string `json:"email" binding:"required,email"`
	PhoneNumber     string `json:"phone_number" binding:"required,min=6"`
	CurrentLocation string `json:"current_location" binding:"required,min=2"`

	Profession        string  `json:"profession" binding:"required"`
	Specialization    *string `json:"specialization"`
	YearsOfExperience string  `json:"years_of_experience" binding:"required"`
	CurrentEmployer   *string `json:"current_employer"`
	JobTitle          string  `json:"job_title" binding:"required"`

	PreferredLocations []string `json:"preferred_locations" binding:"required,min=1"`
	WillingToRelocate  bool     `json:"willing_to_relocate"`
	ExpectedSalary     float64  `json:"expected_salary" binding:"gte=0,lte=200000"`

	VisaType          *string `json:"visa_type" binding:"omitempty,oneof=EMPLOYMENT PSV FAMILY VISIT"`
	ProcessingUrgency *string `json:"processing_urgency" binding:"omitempty,oneof=STANDARD URGENT EMERGENCY"`

	EducationLevel   string `json:"education_level" binding:"required,oneof=HIGH_SCHOOL ASSOCIATE BACHELORS MASTERS PHD OTHER"`
	Institution      string `json:"institution" binding:"required,min=2"`
	FieldOfStudy     string `json:"field_of_study" binding:"required,min=2"`
	GraduationYear   *int   `json:"graduation_year"`
	EducationStatus  string `json:"education_status" binding:"required,oneof=IN_PROGRESS COMPLETED DROPPED_OUT ON_HOLD"`
	EducationCountry string `json:"education_country" binding:"required,min=2"`
	EducationCity    string `json:"education_city" binding:"required,min=2"`

	TermsAccepted          *bool `json:"terms_accepted" binding:"required"`
	BackgroundCheckConsent *bool `json:"background_check_consent" binding:"required"`

	Draft bool `json:"draft"`
}

// CreateRegistration accepts a professional registration. The request is
// multipart: a "payload" JSON field plus optional "documents" files.
func CreateRegistration(c *gin.Context) {
	payload := c.PostForm("payload")
	if payload == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload form field is required"})
		return
	}

	var req CreateRegistrationRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload JSON"})
		return
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !*req.TermsAccepted || !*req.BackgroundCheckConsent {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Terms and background check consent must be accepted"})
		return
	}

	dateOfBirth, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_of_birth must be YYYY-MM-DD"})
		return
	}

	locations, err := json.Marshal(req.PreferredLocations)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preferred locations"})
		return
	}

	// The submitting user may be anonymous on the public form; tie the
	// registration to the authenticated user when present.
	userID := c.GetString("userID")
	if userID == "" {
		userID = ensureRegistrantUser(req.Email, req.FirstName+" "+req.LastName)
		if userID == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create registrant account"})
			return
		}
	}

	status := models.RegistrationStatusSubmitted
	if req.Draft {
		status = models.RegistrationStatusDraft
	}

	now := time.Now()
	registration := models.Registration{
		RegistrationID:         uuid.NewString(),
		UserID:                 userID,
		FirstName:              utils.SanitizeInput(req.FirstName),
		MiddleName:             req.MiddleName,
		LastName:               utils.SanitizeInput(req.LastName),
		DateOfBirth:            &dateOfBirth,
		Gender:                 req.Gender,
		MaritalStatus:          req.MaritalStatus,
		Email:                  utils.SanitizeInput(req.Email),
		PhoneNumber:            utils.SanitizeInput(req.PhoneNumber),
		CurrentLocation:        utils.SanitizeInput(req.CurrentLocation),
		Profession:             utils.SanitizeInput(req.Profession),
		Specialization:         req.Specialization,
		YearsOfExperience:      req.YearsOfExperience,
		CurrentEmployer:        req.CurrentEmployer,
		JobTitle:               utils.SanitizeInput(req.JobTitle),
		PreferredLocations:     datatypes.JSON(locations),
		WillingToRelocate:      req.WillingToRelocate,
		ExpectedSalary:         req.ExpectedSalary,
		VisaType:               req.VisaType,
		ProcessingUrgency:      req.ProcessingUrgency,
		EducationLevel:         req.EducationLevel,
		Institution:            req.Institution,
		FieldOfStudy:           req.FieldOfStudy,
		GraduationYear:         req.GraduationYear,
		EducationStatus:        req.EducationStatus,
		EducationCountry:       req.EducationCountry,
		EducationCity:          req.EducationCity,
		TermsAccepted:          true,
		BackgroundCheckConsent: true,
		Status:                 status,
		CreateAt:               &now,
		UpdateAt:               &now,
	}

	if err := config.DB.Create(&registration).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create registration"})
		return
	}

	saved := saveRegistrationDocuments(c, registration.RegistrationID, userID)

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Registration submitted successfully",
		"registration": registration,
		"documents":    saved,
	})
}

// ensureRegistrantUser finds or creates the USER-role account owning a
// public registration. Returns "" on storage failure.
func ensureRegistrantUser(email, name string) string {
	var user models.User
	err := config.DB.Where("email = ? AND delete_at IS NULL", email).First(&user).Error
	if err == nil {
		return user.UserID
	}
	if err != gorm.ErrRecordNotFound {
		return ""
	}

	now := time.Now()
	user = models.User{
		UserID:   uuid.NewString(),
		Name:     name,
		Email:    email,
		Role:     models.RoleUser,
		Active:   true,
		CreateAt: &now,
		UpdateAt: &now,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return ""
	}

	services.DispatchWelcomeEmail(user)
	return user.UserID
}

func saveRegistrationDocuments(c *gin.Context, registrationID, userID string) []models.Attachment {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}

	var saved []models.Attachment
	for _, file := range form.File["documents"] {
		storedName := uuid.NewString() + filepath.Ext(file.Filename)
		fullPath := filepath.Join(uploadPath(), storedName)
		if err := c.SaveUploadedFile(file, fullPath); err != nil {
			continue
		}

		attachment := models.Attachment{
			RegistrationID: &registrationID,
			FileName:       file.Filename,
			MimeType:       file.Header.Get("Content-Type"),
			FileSize:       file.Size,
			FileURL:        "/uploads/" + storedName,
			CreatedAt:      time.Now(),
		}
		if userID != "" {
			attachment.UploadedBy = &userID
		}
		if err := config.DB.Create(&attachment).Error; err != nil {
			continue
		}
		saved = append(saved, attachment)
	}
	return saved
}

// GetRegistrations lists registrations. Non-reviewers only see their own.
func GetRegistrations(c *gin.Context) {
	page, limit, err := utils.ParsePagination(c.Query("page"), c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userID")
	role := c.GetString("role")

	query := config.DB.Model(&models.Registration{})
	if !models.RoleAtLeast(role, models.RoleReviewer) {
		query = query.Where("user_id = ?", userID)
	}

	if status := c.Query("status"); status != "" {
		if !models.RegistrationStatus(status).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}

	if profession := c.Query("profession"); profession != "" {
		query = query.Where("profession = ?", profession)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count registrations"})
		return
	}

	var registrations []models.Registration
	if err := query.
		Preload("User").
		Order("create_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&registrations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registrations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"registrations": registrations,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
			"pages": utils.TotalPages(total, limit),
		},
	})
}

// GetRegistration returns one registration with history and documents.
func GetRegistration(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetString("userID")
	role := c.GetString("role")

	query := config.DB.
		Preload("User").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("changed_at DESC, history_id DESC")
		}).
		Preload("StatusHistory.ChangedByUser").
		Preload("Documents").
		Where("registration_id = ?", id)

	if !models.RoleAtLeast(role, models.RoleReviewer) {
		query = query.Where("user_id = ?", userID)
	}

	var registration models.Registration
	if err := query.First(&registration).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"registration": registration})
}

// UpdateRegistrationStatus runs the registration status workflow.
func UpdateRegistrationStatus(c *gin.Context) {
	id := c.Param("id")
	actingUserID := c.GetString("userID")

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.TransitionRegistrationStatus(
		config.DB, id, models.RegistrationStatus(req.Status), req.Note, actingUserID)
	if err != nil {
		switch err {
		case services.ErrInvalidStatus:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		case services.ErrRegistrationNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		case services.ErrActingUserNotFound:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Acting user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"registration":   result.Registration,
		"status_history": result.History,
	})
}

// GetRegistrationDocuments lists document metadata for a registration.
func GetRegistrationDocuments(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetString("userID")
	role := c.GetString("role")

	query := config.DB.Model(&models.Registration{}).Where("registration_id = ?", id)
	if !models.RoleAtLeast(role, models.RoleReviewer) {
		query = query.Where("user_id = ?", userID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil || count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		return
	}

	var documents []models.Attachment
	if err := config.DB.
		Where("registration_id = ?", id).
		Order("created_at DESC").
		Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": documents})
}

// UploadRegistrationDocuments adds documents to an existing registration.
func UploadRegistrationDocuments(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetString("userID")
	role := c.GetString("role")

	query := config.DB.Model(&models.Registration{}).Where("registration_id = ?", id)
	if !models.RoleAtLeast(role, models.RoleReviewer) {
		query = query.Where("user_id = ?", userID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil || count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		return
	}

	saved := saveRegistrationDocuments(c, id, userID)
	if len(saved) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No documents uploaded"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"documents": saved})
}
