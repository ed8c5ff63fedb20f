package services

import (
	"log"

	"partner-management-api/config"
	"partner-management-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditEntry describes a sensitive operation to record.
type AuditEntry struct {
	Action      string
	EntityType  string
	EntityID    string
	PerformedBy *string
	Details     string
}

// RecordAudit writes an audit row on a background goroutine. The write is
// best-effort: failures are logged and never reach the caller. Request
// metadata is captured before the handler returns, since the gin context is
// not safe to touch afterwards.
func RecordAudit(c *gin.Context, entry AuditEntry) {
	row := buildAuditLog(c, entry)
	db := config.DB
	go func() {
		if err := writeAudit(db, row); err != nil {
			log.Printf("audit write failed (%s %s/%s): %v", row.Action, row.EntityType, row.EntityID, err)
		}
	}()
}

func buildAuditLog(c *gin.Context, entry AuditEntry) models.AuditLog {
	row := models.AuditLog{
		Action:      entry.Action,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		PerformedBy: entry.PerformedBy,
	}
	if entry.Details != "" {
		details := entry.Details
		row.Details = &details
	}
	if c != nil {
		row.IPAddress = c.ClientIP()
		row.UserAgent = c.GetHeader("User-Agent")
	}
	return row
}

func writeAudit(db *gorm.DB, row models.AuditLog) error {
	return db.Create(&row).Error
}
