package models

import (
	"time"

	"gorm.io/datatypes"
)

// PartnershipStatus is the status enumeration for partnership applications.
// It is deliberately a separate type from RegistrationStatus: the two
// workflows share no transition logic.
type PartnershipStatus string

const (
	PartnershipStatusNew         PartnershipStatus = "NEW"
	PartnershipStatusUnderReview PartnershipStatus = "UNDER_REVIEW"
	PartnershipStatusApproved    PartnershipStatus = "APPROVED"
	PartnershipStatusRejected    PartnershipStatus = "REJECTED"
	PartnershipStatusOnboarding  PartnershipStatus = "ONBOARDING"
)

func (s PartnershipStatus) Valid() bool {
	switch s {
	case PartnershipStatusNew, PartnershipStatusUnderReview, PartnershipStatusApproved,
		PartnershipStatusRejected, PartnershipStatusOnboarding:
		return true
	}
	return false
}

type PartnershipApplication struct {
	ApplicationID string            `gorm:"primaryKey;column:application_id;size:36" json:"application_id"`
	FullName      string            `gorm:"column:full_name" json:"full_name"`
	Email         string            `gorm:"column:email;index" json:"email"`
	Company       string            `gorm:"column:company" json:"company"`
	Phone         string            `gorm:"column:phone" json:"phone"`
	Country       string            `gorm:"column:country" json:"country"`
	Expertise     datatypes.JSON    `gorm:"column:expertise" json:"expertise"`
	BusinessType  string            `gorm:"column:business_type" json:"business_type"`
	Message       string            `gorm:"column:message" json:"message"`
	TermsAccepted bool              `gorm:"column:terms_accepted" json:"terms_accepted"`
	Status        PartnershipStatus `gorm:"column:status;index" json:"status"`
	CreateAt      *time.Time        `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time        `gorm:"column:update_at" json:"update_at"`

	// Relations
	StatusHistory []PartnershipStatusHistory `gorm:"foreignKey:ApplicationID" json:"status_history,omitempty"`
	Notes         []Note                     `gorm:"foreignKey:ApplicationID" json:"notes,omitempty"`
	Attachments   []Attachment               `gorm:"foreignKey:ApplicationID" json:"attachments,omitempty"`
}

// PartnershipStatusHistory is an append-only record of partnership status
// transitions. Rows are created exactly once per transition and never
// mutated.
type PartnershipStatusHistory struct {
	HistoryID      int               `gorm:"primaryKey;autoIncrement;column:history_id" json:"history_id"`
	ApplicationID  string            `gorm:"column:application_id;size:36;index" json:"application_id"`
	PreviousStatus PartnershipStatus `gorm:"column:previous_status" json:"previous_status"`
	NewStatus      PartnershipStatus `gorm:"column:new_status" json:"new_status"`
	Note           *string           `gorm:"column:note" json:"note,omitempty"`
	ChangedBy      string            `gorm:"column:changed_by;size:36" json:"changed_by"`
	ChangedAt      time.Time         `gorm:"column:changed_at" json:"changed_at"`

	ChangedByUser User `gorm:"foreignKey:ChangedBy" json:"changed_by_user,omitempty"`
}

// Note is a free-text annotation on a partnership application, append-only.
type Note struct {
	NoteID        int       `gorm:"primaryKey;autoIncrement;column:note_id" json:"note_id"`
	ApplicationID string    `gorm:"column:application_id;size:36;index" json:"application_id"`
	Content       string    `gorm:"column:content" json:"content"`
	CreatedBy     string    `gorm:"column:created_by;size:36" json:"created_by"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`

	Author User `gorm:"foreignKey:CreatedBy" json:"author,omitempty"`
}

// Attachment is file metadata for an upload tied to either a partnership
// application or a registration. Created on upload, never mutated.
type Attachment struct {
	AttachmentID   int       `gorm:"primaryKey;autoIncrement;column:attachment_id" json:"attachment_id"`
	ApplicationID  *string   `gorm:"column:application_id;size:36;index" json:"application_id,omitempty"`
	RegistrationID *string   `gorm:"column:registration_id;size:36;index" json:"registration_id,omitempty"`
	FileName       string    `gorm:"column:file_name" json:"file_name"`
	MimeType       string    `gorm:"column:mime_type" json:"mime_type"`
	FileSize       int64     `gorm:"column:file_size" json:"file_size"`
	FileURL        string    `gorm:"column:file_url" json:"file_url"`
	UploadedBy     *string   `gorm:"column:uploaded_by;size:36" json:"uploaded_by,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}

func (PartnershipApplication) TableName() string {
	return "partnership_applications"
}

func (PartnershipStatusHistory) TableName() string {
	return "partnership_status_history"
}

func (Note) TableName() string {
	return "notes"
}

func (Attachment) TableName() string {
	return "attachments"
}
