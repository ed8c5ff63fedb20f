package services

import (
	"errors"
	"time"

	"partner-management-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recentHistoryLimit bounds the history slice returned with a transition.
const recentHistoryLimit = 5

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrActingUserNotFound   = errors.New("acting user not found")
	ErrInvalidStatus        = errors.New("invalid status value")
)

// PartnershipTransition is the result of a partnership status change: the
// updated application plus its most recent history, newest first.
type PartnershipTransition struct {
	Application models.PartnershipApplication     `json:"application"`
	History     []models.PartnershipStatusHistory `json:"status_history"`
}

// RegistrationTransition mirrors PartnershipTransition for registrations.
type RegistrationTransition struct {
	Registration models.Registration                `json:"registration"`
	History      []models.RegistrationStatusHistory `json:"status_history"`
}

// lockForUpdate row-locks the current record for the read-modify-write.
// SQLite rejects FOR UPDATE and serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func actingUserExists(tx *gorm.DB, userID string) error {
	var count int64
	if err := tx.Model(&models.User{}).
		Where("user_id = ? AND delete_at IS NULL", userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrActingUserNotFound
	}
	return nil
}

// TransitionPartnershipStatus moves a partnership application to newStatus,
// appending a status history row in the same transaction. Any status may
// move to any other status; the same transition issued twice appends two
// history rows.
func TransitionPartnershipStatus(db *gorm.DB, applicationID string, newStatus models.PartnershipStatus, note *string, actingUserID string) (*PartnershipTransition, error) {
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	var result PartnershipTransition

	err := db.Transaction(func(tx *gorm.DB) error {
		var application models.PartnershipApplication
		if err := lockForUpdate(tx).
			Where("application_id = ?", applicationID).
			First(&application).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}

		if err := actingUserExists(tx, actingUserID); err != nil {
			return err
		}

		now := time.Now()
		history := models.PartnershipStatusHistory{
			ApplicationID:  application.ApplicationID,
			PreviousStatus: application.Status,
			NewStatus:      newStatus,
			Note:           note,
			ChangedBy:      actingUserID,
			ChangedAt:      now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		application.Status = newStatus
		application.UpdateAt = &now
		if err := tx.Model(&models.PartnershipApplication{}).
			Where("application_id = ?", application.ApplicationID).
			Updates(map[string]interface{}{
				"status":    newStatus,
				"update_at": now,
			}).Error; err != nil {
			return err
		}

		result.Application = application
		return tx.Preload("ChangedByUser").
			Where("application_id = ?", application.ApplicationID).
			Order("changed_at DESC, history_id DESC").
			Limit(recentHistoryLimit).
			Find(&result.History).Error
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// TransitionRegistrationStatus is the registration counterpart. The two
// workflows intentionally share no transition logic beyond shape.
func TransitionRegistrationStatus(db *gorm.DB, registrationID string, newStatus models.RegistrationStatus, note *string, actingUserID string) (*RegistrationTransition, error) {
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	var result RegistrationTransition

	err := db.Transaction(func(tx *gorm.DB) error {
		var registration models.Registration
		if err := lockForUpdate(tx).
			Where("registration_id = ?", registrationID).
			First(&registration).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}

		if err := actingUserExists(tx, actingUserID); err != nil {
			return err
		}

		now := time.Now()
		history := models.RegistrationStatusHistory{
			RegistrationID: registration.RegistrationID,
			PreviousStatus: registration.Status,
			NewStatus:      newStatus,
			Note:           note,
			ChangedBy:      actingUserID,
			ChangedAt:      now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		registration.Status = newStatus
		registration.UpdateAt = &now
		if err := tx.Model(&models.Registration{}).
			Where("registration_id = ?", registration.RegistrationID).
			Updates(map[string]interface{}{
				"status":    newStatus,
				"update_at": now,
			}).Error; err != nil {
			return err
		}

		result.Registration = registration
		return tx.Preload("ChangedByUser").
			Where("registration_id = ?", registration.RegistrationID).
			Order("changed_at DESC, history_id DESC").
			Limit(recentHistoryLimit).
			Find(&result.History).Error
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}
