package controllers

import (
	"net/http"
	"strconv"
	"time"

	"partner-management-api/config"
	"partner-management-api/models"
	"partner-management-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateSettingRequest struct {
	Value       string  `json:"value" binding:"required"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

// GetSettings lists every setting.
func GetSettings(c *gin.Context) {
	var settings []models.Setting
	if err := config.DB.Order("setting_key ASC").Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// GetSetting returns one setting by key; the view is audited.
func GetSetting(c *gin.Context) {
	key := c.Param("key")

	var setting models.Setting
	if err := config.DB.Where("setting_key = ?", key).First(&setting).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Setting not found"})
		return
	}

	userID := c.GetString("userID")
	services.RecordAudit(c, services.AuditEntry{
		Action:      models.AuditActionSettingsView,
		EntityType:  "Settings",
		EntityID:    strconv.Itoa(setting.SettingID),
		PerformedBy: &userID,
	})

	c.JSON(http.StatusOK, setting)
}

// UpdateSetting upserts a setting by key.
func UpdateSetting(c *gin.Context) {
	key := c.Param("key")

	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()

	var setting models.Setting
	err := config.DB.Where("setting_key = ?", key).First(&setting).Error
	switch {
	case err == nil:
		setting.Value = req.Value
		if req.Description != nil {
			setting.Description = req.Description
		}
		if req.Category != nil {
			setting.Category = req.Category
		}
		setting.UpdateAt = &now
		if err := config.DB.Save(&setting).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update setting"})
			return
		}
	case err == gorm.ErrRecordNotFound:
		setting = models.Setting{
			Key:         key,
			Value:       req.Value,
			Description: req.Description,
			Category:    req.Category,
			CreateAt:    &now,
			UpdateAt:    &now,
		}
		if err := config.DB.Create(&setting).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create setting"})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch setting"})
		return
	}

	userID := c.GetString("userID")
	services.RecordAudit(c, services.AuditEntry{
		Action:      models.AuditActionSettingsUpdate,
		EntityType:  "Settings",
		EntityID:    strconv.Itoa(setting.SettingID),
		PerformedBy: &userID,
		Details:     "Setting " + key + " updated",
	})

	c.JSON(http.StatusOK, setting)
}

// DeleteSetting removes a setting by key. Restricted to super admins; the
// delete is audited with the removed value.
func DeleteSetting(c *gin.Context) {
	key := c.Param("key")

	if c.GetString("role") != models.RoleSuperAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only a super admin can delete settings"})
		return
	}

	var setting models.Setting
	if err := config.DB.Where("setting_key = ?", key).First(&setting).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Setting not found"})
		return
	}

	if err := config.DB.Delete(&setting).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete setting"})
		return
	}

	userID := c.GetString("userID")
	services.RecordAudit(c, services.AuditEntry{
		Action:      models.AuditActionSettingsDelete,
		EntityType:  "Settings",
		EntityID:    strconv.Itoa(setting.SettingID),
		PerformedBy: &userID,
		Details:     "Setting " + key + " deleted (was " + setting.Value + ")",
	})

	c.JSON(http.StatusOK, gin.H{"message": "Setting deleted successfully"})
}
