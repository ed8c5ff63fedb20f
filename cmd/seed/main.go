// Seed script for the initial admin account and default settings.
// cmd/seed/main.go
package main

import (
	"log"
	"os"

	"partner-management-api/config"
	"partner-management-api/controllers"
	"partner-management-api/models"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()
	config.MigrateDB()

	seedAdmin()
	seedSettings()

	log.Println("Seeding completed!")
}

func seedAdmin() {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	var count int64
	if err := config.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		log.Fatal("Failed to check for existing admin:", err)
	}
	if count > 0 {
		log.Printf("Admin user %s already exists, skipping\n", email)
		return
	}

	hashed, err := controllers.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}

	admin := models.User{
		UserID:   uuid.NewString(),
		Name:     "Admin User",
		Email:    email,
		Password: hashed,
		Role:     models.RoleSuperAdmin,
		Active:   true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}
	log.Printf("Admin user %s created successfully\n", email)
}

func seedSettings() {
	defaults := map[string]string{
		"site_name":           "Meridian Partners",
		"support_email":       "support@meridianpartners.com",
		"registrations_open":  "true",
		"maintenance_message": "",
	}

	for key, value := range defaults {
		var existing models.Setting
		err := config.DB.Where("setting_key = ?", key).First(&existing).Error
		if err == nil {
			continue
		}

		setting := models.Setting{
			Key:   key,
			Value: value,
		}
		if err := config.DB.Create(&setting).Error; err != nil {
			log.Printf("Failed to seed setting %s: %v\n", key, err)
			continue
		}
		log.Printf("Seeded setting %s\n", key)
	}
}
