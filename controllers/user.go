package controllers

import (
	"net/http"
	"time"

	"partner-management-api/config"
	"partner-management-api/models"
	"partner-management-api/services"
	"partner-management-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=2"`
	Role   *string `json:"role"`
	Active *bool   `json:"active"`
}

// GetUsers lists back-office users, paginated, optionally filtered.
func GetUsers(c *gin.Context) {
	page, limit, err := utils.ParsePagination(c.Query("page"), c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := config.DB.Model(&models.User{}).Where("delete_at IS NULL")

	if role := c.Query("role"); role != "" {
		if !models.ValidRole(role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role filter"})
			return
		}
		query = query.Where("role = ?", role)
	}

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}

	var users []models.User
	if err := query.
		Order("create_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
			"pages": utils.TotalPages(total, limit),
		},
	})
}

// CreateUser creates a back-office account and sends the welcome mail.
// Granting ADMIN or SUPER_ADMIN requires a SUPER_ADMIN caller.
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	callerRole := c.GetString("role")
	if models.RoleAtLeast(req.Role, models.RoleAdmin) && callerRole != models.RoleSuperAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only a super admin can grant admin roles"})
		return
	}

	var existing models.User
	err := config.DB.Where("email = ? AND delete_at IS NULL", req.Email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A user with this email already exists"})
		return
	}
	if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing users"})
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	now := time.Now()
	user := models.User{
		UserID:   uuid.NewString(),
		Name:     utils.SanitizeInput(req.Name),
		Email:    utils.SanitizeInput(req.Email),
		Password: hashed,
		Role:     req.Role,
		Active:   true,
		CreateAt: &now,
		UpdateAt: &now,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	services.DispatchWelcomeEmail(user)

	callerID := c.GetString("userID")
	services.RecordAudit(c, services.AuditEntry{
		Action:      models.AuditActionUserCreate,
		EntityType:  "User",
		EntityID:    user.UserID,
		PerformedBy: &callerID,
		Details:     "User created with role " + user.Role,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// UpdateUser changes a user's name, role or active flag.
func UpdateUser(c *gin.Context) {
	id := c.Param("id")

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", id).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	callerRole := c.GetString("role")
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		if models.RoleAtLeast(*req.Role, models.RoleAdmin) && callerRole != models.RoleSuperAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only a super admin can grant admin roles"})
			return
		}
		user.Role = *req.Role
	}

	if req.Name != nil {
		user.Name = utils.SanitizeInput(*req.Name)
	}

	if req.Active != nil {
		user.Active = *req.Active
	}

	now := time.Now()
	user.UpdateAt = &now

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	callerID := c.GetString("userID")
	services.RecordAudit(c, services.AuditEntry{
		Action:      models.AuditActionUserUpdate,
		EntityType:  "User",
		EntityID:    user.UserID,
		PerformedBy: &callerID,
		Details:     "User profile updated",
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user,
	})
}

// ResetUserPassword lets an admin (or the user themselves) trigger a reset
// email for an account.
func ResetUserPassword(c *gin.Context) {
	id := c.Param("id")
	callerID := c.GetString("userID")
	callerRole := c.GetString("role")

	isSelf := callerID == id
	if !isSelf && !models.RoleAtLeast(callerRole, models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", id).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if !user.Active {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot reset password for inactive user"})
		return
	}

	if err := issuePasswordResetToken(c, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	services.RecordAudit(c, services.AuditEntry{
		Action:      models.AuditActionPasswordReset,
		EntityType:  "User",
		EntityID:    user.UserID,
		PerformedBy: &callerID,
		Details:     "Password reset requested",
	})

	c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent"})
}
