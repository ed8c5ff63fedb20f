package models

import "time"

// Audit actions recorded by the API. Kept as constants so log queries and
// writers cannot drift apart.
const (
	AuditActionLogin          = "auth.login"
	AuditActionLogout         = "auth.logout"
	AuditActionPasswordReset  = "auth.password_reset"
	AuditActionUserCreate     = "user.create"
	AuditActionUserUpdate     = "user.update"
	AuditActionSettingsView   = "settings.view"
	AuditActionSettingsUpdate = "settings.update"
	AuditActionSettingsDelete = "settings.delete"
)

// AuditLog is an append-only record of sensitive operations. Writes are
// best-effort and never block the primary request.
type AuditLog struct {
	LogID       int       `gorm:"primaryKey;autoIncrement;column:log_id" json:"log_id"`
	Action      string    `gorm:"column:action;index" json:"action"`
	EntityType  string    `gorm:"column:entity_type;index" json:"entity_type"`
	EntityID    string    `gorm:"column:entity_id" json:"entity_id"`
	PerformedBy *string   `gorm:"column:performed_by;size:36;index" json:"performed_by,omitempty"`
	Details     *string   `gorm:"column:details" json:"details,omitempty"`
	IPAddress   string    `gorm:"column:ip_address" json:"ip_address"`
	UserAgent   string    `gorm:"column:user_agent" json:"user_agent"`
	CreatedAt   time.Time `gorm:"column:created_at;index" json:"created_at"`

	Performer *User `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
