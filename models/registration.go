package models

import (
	"time"

	"gorm.io/datatypes"
)

// RegistrationStatus is the status enumeration for professional
// registrations. Kept separate from PartnershipStatus on purpose.
type RegistrationStatus string

const (
	RegistrationStatusDraft          RegistrationStatus = "DRAFT"
	RegistrationStatusSubmitted      RegistrationStatus = "SUBMITTED"
	RegistrationStatusUnderReview    RegistrationStatus = "UNDER_REVIEW"
	RegistrationStatusApproved       RegistrationStatus = "APPROVED"
	RegistrationStatusRejected       RegistrationStatus = "REJECTED"
	RegistrationStatusMoreInfoNeeded RegistrationStatus = "MORE_INFO_NEEDED"
)

func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationStatusDraft, RegistrationStatusSubmitted, RegistrationStatusUnderReview,
		RegistrationStatusApproved, RegistrationStatusRejected, RegistrationStatusMoreInfoNeeded:
		return true
	}
	return false
}

type Registration struct {
	RegistrationID string `gorm:"primaryKey;column:registration_id;size:36" json:"registration_id"`
	UserID         string `gorm:"column:user_id;size:36;index" json:"user_id"`

	// Personal information
	FirstName     string     `gorm:"column:first_name" json:"first_name"`
	MiddleName    *string    `gorm:"column:middle_name" json:"middle_name,omitempty"`
	LastName      string     `gorm:"column:last_name" json:"last_name"`
	DateOfBirth   *time.Time `gorm:"column:date_of_birth" json:"date_of_birth,omitempty"`
	Gender        string     `gorm:"column:gender" json:"gender"`
	MaritalStatus string     `gorm:"column:marital_status" json:"marital_status"`

	// Contact information
	Email           string `gorm:"column:email;index" json:"email"`
	PhoneNumber     string `gorm:"column:phone_number" json:"phone_number"`
	CurrentLocation string `gorm:"column:current_location" json:"current_location"`

	// Professional information
	Profession        string  `gorm:"column:profession" json:"profession"`
	Specialization    *string `gorm:"column:specialization" json:"specialization,omitempty"`
	YearsOfExperience string  `gorm:"column:years_of_experience" json:"years_of_experience"`
	CurrentEmployer   *string `gorm:"column:current_employer" json:"current_employer,omitempty"`
	JobTitle          string  `gorm:"column:job_title" json:"job_title"`

	// Work preferences
	PreferredLocations datatypes.JSON `gorm:"column:preferred_locations" json:"preferred_locations"`
	WillingToRelocate  bool           `gorm:"column:willing_to_relocate" json:"willing_to_relocate"`
	ExpectedSalary     float64        `gorm:"column:expected_salary" json:"expected_salary"`

	// Visa information
	VisaType          *string `gorm:"column:visa_type" json:"visa_type,omitempty"`
	ProcessingUrgency *string `gorm:"column:processing_urgency" json:"processing_urgency,omitempty"`

	// Education
	EducationLevel   string `gorm:"column:education_level" json:"education_level"`
	Institution      string `gorm:"column:institution" json:"institution"`
	FieldOfStudy     string `gorm:"column:field_of_study" json:"field_of_study"`
	GraduationYear   *int   `gorm:"column:graduation_year" json:"graduation_year,omitempty"`
	EducationStatus  string `gorm:"column:education_status" json:"education_status"`
	EducationCountry string `gorm:"column:education_country" json:"education_country"`
	EducationCity    string `gorm:"column:education_city" json:"education_city"`

	// Declarations
	TermsAccepted          bool `gorm:"column:terms_accepted" json:"terms_accepted"`
	BackgroundCheckConsent bool `gorm:"column:background_check_consent" json:"background_check_consent"`

	Status   RegistrationStatus `gorm:"column:status;index" json:"status"`
	CreateAt *time.Time         `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time         `gorm:"column:update_at" json:"update_at"`

	// Relations
	User          User                        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	StatusHistory []RegistrationStatusHistory `gorm:"foreignKey:RegistrationID" json:"status_history,omitempty"`
	Documents     []Attachment                `gorm:"foreignKey:RegistrationID" json:"documents,omitempty"`
}

// RegistrationStatusHistory mirrors PartnershipStatusHistory for the
// registration workflow. Append-only.
type RegistrationStatusHistory struct {
	HistoryID      int                `gorm:"primaryKey;autoIncrement;column:history_id" json:"history_id"`
	RegistrationID string             `gorm:"column:registration_id;size:36;index" json:"registration_id"`
	PreviousStatus RegistrationStatus `gorm:"column:previous_status" json:"previous_status"`
	NewStatus      RegistrationStatus `gorm:"column:new_status" json:"new_status"`
	Note           *string            `gorm:"column:note" json:"note,omitempty"`
	ChangedBy      string             `gorm:"column:changed_by;size:36" json:"changed_by"`
	ChangedAt      time.Time          `gorm:"column:changed_at" json:"changed_at"`

	ChangedByUser User `gorm:"foreignKey:ChangedBy" json:"changed_by_user,omitempty"`
}

func (Registration) TableName() string {
	return "registrations"
}

func (RegistrationStatusHistory) TableName() string {
	return "registration_status_history"
}
