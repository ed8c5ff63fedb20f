package services

import (
	"fmt"
	"html/template"
	"log"
	"net/url"
	"os"
	"strings"

	"partner-management-api/config"
	"partner-management-api/models"
)

// sendMail is swappable in tests.
var sendMail = config.SendMail

func appBaseURL() string {
	baseURL := strings.TrimSpace(os.Getenv("APP_BASE_URL"))
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	return baseURL
}

// DispatchWelcomeEmail sends the welcome mail on a background goroutine.
// Failures are logged and never surfaced to the caller; user creation must
// not depend on SMTP.
func DispatchWelcomeEmail(user models.User) {
	go func() {
		if err := sendWelcomeEmail(user); err != nil {
			log.Printf("welcome email to %s failed: %v", user.Email, err)
		}
	}()
}

func sendWelcomeEmail(user models.User) error {
	loginURL := appBaseURL() + "/login"

	subject := "Welcome to the Partner Portal"
	paragraphs := []string{
		fmt.Sprintf("Dear %s,", displayName(user)),
		"Your account has been created successfully. You can now sign in using the button below.",
		"If you did not expect this account, please contact support immediately.",
	}

	html := buildEmailTemplate(subject, paragraphs, nil, "Sign in", loginURL, "")
	return sendMail([]string{user.Email}, subject, html)
}

// SendPasswordResetEmail mails a reset link carrying the raw token. Unlike
// the welcome mail this is sent synchronously: the reset endpoint reports
// failure when the link cannot be delivered.
func SendPasswordResetEmail(user models.User, rawToken string) error {
	resetURL, err := buildResetURL(appBaseURL(), rawToken)
	if err != nil {
		return err
	}

	subject := "Password reset instructions"
	paragraphs := []string{
		fmt.Sprintf("Dear %s,", displayName(user)),
		"We received a request to reset the password for your Partner Portal account.",
		"Click the button below to choose a new password. The link expires in 10 minutes.",
		"If you did not request this, you can safely ignore this email.",
	}

	meta := []emailMetaItem{{Label: "Link expires in", Value: "10 minutes"}}

	escapedResetURL := template.HTMLEscapeString(resetURL)
	footerHTML := fmt.Sprintf(
		"If the button does not work, copy this link into your browser:<br /><a href=\"%s\" style=\"color:#2563eb;\">%s</a>",
		escapedResetURL,
		escapedResetURL,
	)

	html := buildEmailTemplate(subject, paragraphs, meta, "Reset password", resetURL, footerHTML)
	return sendMail([]string{user.Email}, subject, html)
}

func displayName(user models.User) string {
	name := strings.TrimSpace(user.Name)
	if name == "" {
		name = user.Email
	}
	return name
}

func buildResetURL(baseURL, token string) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}

	parsed.Path = strings.TrimRight(parsed.Path, "/") + "/reset-password"
	query := parsed.Query()
	query.Set("token", token)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// ContactMessage is a visitor enquiry submitted through the public
// contact form, relayed to the support inbox.
type ContactMessage struct {
	Name            string
	Email           string
	Phone           string
	Company         string
	ServiceInterest string
	Subject         string
	Message         string
}

func contactInbox() string {
	inbox := strings.TrimSpace(os.Getenv("CONTACT_EMAIL"))
	if inbox == "" {
		inbox = DefaultKnowledgeBase().ContactEmail
	}
	return inbox
}

// SendContactEmail relays a contact-form submission to the support inbox.
// Sent synchronously: the endpoint reports failure when the relay fails.
func SendContactEmail(msg ContactMessage) error {
	subject := "New contact form: " + msg.Subject

	meta := []emailMetaItem{
		{Label: "Name", Value: msg.Name},
		{Label: "Email", Value: msg.Email},
	}
	if msg.Phone != "" {
		meta = append(meta, emailMetaItem{Label: "Phone", Value: msg.Phone})
	}
	if msg.Company != "" {
		meta = append(meta, emailMetaItem{Label: "Company", Value: msg.Company})
	}
	if msg.ServiceInterest != "" {
		meta = append(meta, emailMetaItem{Label: "Service of interest", Value: msg.ServiceInterest})
	}
	meta = append(meta, emailMetaItem{Label: "Subject", Value: msg.Subject})

	paragraphs := []string{
		"A visitor sent a message through the website contact form.",
		msg.Message,
	}

	html := buildEmailTemplate(subject, paragraphs, meta, "", "", "")
	return sendMail([]string{contactInbox()}, subject, html)
}
