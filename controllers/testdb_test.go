package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"partner-management-api/config"
	"partner-management-api/models"

	"github.com/gin-gonic/gin"
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
		&models.UserToken{},
		&models.PartnershipApplication{},
		&models.PartnershipStatusHistory{},
		&models.Note{},
		&models.Attachment{},
		&models.Registration{},
		&models.RegistrationStatusHistory{},
		&models.AuditLog{},
		&models.Setting{},
	))

	previous := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = previous })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string, password string) models.User {
	t.Helper()
	hashed, err := HashPassword(password)
	require.NoError(t, err)
	user := models.User{
		UserID:   uuid.NewString(),
		Name:     "Test " + role,
		Email:    uuid.NewString() + "@example.com",
		Password: hashed,
		Role:     role,
		Active:   true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// asUser simulates an authenticated request by setting the identity keys
// the auth middleware would have set.
func asUser(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", user.UserID)
		c.Set("email", user.Email)
		c.Set("role", user.Role)
		c.Next()
	}
}

func jsonBody(t *testing.T, payload interface{}) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
