package services

import (
	"fmt"
	"testing"
	"time"

	"partner-management-api/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.PartnershipApplication{},
		&models.PartnershipStatusHistory{},
		&models.Registration{},
		&models.RegistrationStatusHistory{},
		&models.AuditLog{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string) models.User {
	t.Helper()
	user := models.User{
		UserID:   uuid.NewString(),
		Name:     "Test " + role,
		Email:    uuid.NewString() + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
		Active:   true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedPartnership(t *testing.T, db *gorm.DB, status models.PartnershipStatus) models.PartnershipApplication {
	t.Helper()
	app := models.PartnershipApplication{
		ApplicationID: uuid.NewString(),
		FullName:      "Jordan Example",
		Email:         "jordan@example.com",
		Company:       "Example Co",
		Country:       "GB",
		BusinessType:  "CONSULTANCY",
		TermsAccepted: true,
		Status:        status,
	}
	require.NoError(t, db.Create(&app).Error)
	return app
}

func seedRegistration(t *testing.T, db *gorm.DB, status models.RegistrationStatus) models.Registration {
	t.Helper()
	reg := models.Registration{
		RegistrationID: uuid.NewString(),
		FirstName:      "Sam",
		LastName:       "Applicant",
		Email:          uuid.NewString() + "@example.com",
		Status:         status,
	}
	require.NoError(t, db.Create(&reg).Error)
	return reg
}
