package controllers

import (
	"net/http"

	"partner-management-api/services"
	"partner-management-api/utils"

	"github.com/gin-gonic/gin"
)

// sendContactEmail is swappable in tests.
var sendContactEmail = services.SendContactEmail

type ContactRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=100"`
	Email           string `json:"email" binding:"required,email,max=100"`
	Phone           string `json:"phone" binding:"max=20"`
	Company         string `json:"company" binding:"max=100"`
	ServiceInterest string `json:"service_interest" binding:"max=100"`
	Subject         string `json:"subject" binding:"required,min=2,max=200"`
	Message         string `json:"message" binding:"required,min=2,max=5000"`
}

// SubmitContact relays a public contact-form message to the support inbox.
func SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := services.ContactMessage{
		Name:            utils.SanitizeInput(req.Name),
		Email:           utils.SanitizeInput(req.Email),
		Phone:           utils.SanitizeInput(req.Phone),
		Company:         utils.SanitizeInput(req.Company),
		ServiceInterest: utils.SanitizeInput(req.ServiceInterest),
		Subject:         utils.SanitizeInput(req.Subject),
		Message:         utils.SanitizeInput(req.Message),
	}

	if err := sendContactEmail(msg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message sent successfully",
	})
}
