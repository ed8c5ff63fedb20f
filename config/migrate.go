package config

import (
	"log"

	"partner-management-api/models"
)

// MigrateDB creates or updates the schema for every persisted model.
func MigrateDB() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.UserToken{},
		&models.PartnershipApplication{},
		&models.PartnershipStatusHistory{},
		&models.Note{},
		&models.Attachment{},
		&models.Registration{},
		&models.RegistrationStatusHistory{},
		&models.AuditLog{},
		&models.Setting{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database schema:", err)
	}
}
