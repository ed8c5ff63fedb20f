package services

import (
	"fmt"
	"os"
	"strings"
)

// KnowledgeBase is the static document the chat assistant draws on when the
// generative API is unavailable or needs grounding context.
type KnowledgeBase struct {
	CompanyName        string
	CompanyDescription string
	Services           []KnowledgeBaseService
	ContactEmail       string
	ContactPhone       string
	ContactAddress     string
	WorkingHours       string
	FAQs               []KnowledgeBaseFAQ
}

type KnowledgeBaseService struct {
	Name        string
	Description string
	Benefits    []string
}

type KnowledgeBaseFAQ struct {
	Question string
	Answer   string
}

// DefaultKnowledgeBase returns the built-in knowledge base. The support
// email can be overridden per deployment via SUPPORT_EMAIL.
func DefaultKnowledgeBase() *KnowledgeBase {
	supportEmail := os.Getenv("SUPPORT_EMAIL")
	if supportEmail == "" {
		supportEmail = "support@meridianpartners.com"
	}

	return &KnowledgeBase{
		CompanyName:        "Meridian Partners",
		CompanyDescription: "Meridian Partners is a verification and compliance company helping organisations onboard partners and professionals across international markets.",
		Services: []KnowledgeBaseService{
			{
				Name:        "Credential Verification",
				Description: "End-to-end verification of professional licenses, degrees and work history.",
				Benefits: []string{
					"Primary-source checks with issuing bodies",
					"Turnaround tracking for every case",
					"Tamper-evident verification reports",
				},
			},
			{
				Name:        "Partner Onboarding",
				Description: "Structured intake and review of partner applications with full status history.",
				Benefits: []string{
					"Single intake form for new partners",
					"Reviewer workflow with audit trail",
					"Email notifications at every stage",
				},
			},
			{
				Name:        "Visa Processing Support",
				Description: "Document collection and case preparation for employment and family visas.",
				Benefits: []string{
					"Checklist-driven document collection",
					"Standard, urgent and emergency processing tiers",
				},
			},
		},
		ContactEmail:   supportEmail,
		ContactPhone:   "+44 20 7946 0857",
		ContactAddress: "14 Riverside House, London, United Kingdom",
		WorkingHours:   "Monday to Friday, 9:00-18:00 GMT",
		FAQs: []KnowledgeBaseFAQ{
			{
				Question: "How long does verification take",
				Answer:   "Most verifications complete within 5 to 10 business days depending on the issuing institution.",
			},
			{
				Question: "How do I become a partner",
				Answer:   "Submit the partner application form on our website; our review team responds within three business days.",
			},
			{
				Question: "What documents do I need",
				Answer:   "A valid passport or national ID, your resume, and copies of any professional certificates.",
			},
		},
	}
}

// RelevantContext scans the knowledge base for fragments matching the query
// (case-insensitive substring containment) and concatenates them in a fixed
// category order: company, services, contact, FAQs. When nothing matches it
// returns a general company blurb.
func (kb *KnowledgeBase) RelevantContext(query string) string {
	queryLower := strings.ToLower(query)
	var b strings.Builder

	if containsAny(queryLower, "about", "company", "who are you") {
		fmt.Fprintf(&b, "Company: %s\n%s\n\n", kb.CompanyName, kb.CompanyDescription)
	}

	if containsAny(queryLower, "service", "what do you do", "offer", "provide", "solution") {
		b.WriteString("Services we offer:\n")
		for _, service := range kb.Services {
			fmt.Fprintf(&b, "- %s: %s\n", service.Name, service.Description)
		}
		b.WriteString("\n")
	}

	for _, service := range kb.Services {
		if strings.Contains(queryLower, strings.ToLower(service.Name)) {
			fmt.Fprintf(&b, "%s: %s\nBenefits:\n", service.Name, service.Description)
			for _, benefit := range service.Benefits {
				fmt.Fprintf(&b, "- %s\n", benefit)
			}
			b.WriteString("\n")
		}
	}

	if containsAny(queryLower, "contact", "email", "phone", "address", "reach", "where are you") {
		b.WriteString("Contact Information:\n")
		fmt.Fprintf(&b, "Email: %s\n", kb.ContactEmail)
		fmt.Fprintf(&b, "Phone: %s\n", kb.ContactPhone)
		fmt.Fprintf(&b, "Address: %s\n", kb.ContactAddress)
		fmt.Fprintf(&b, "Working Hours: %s\n\n", kb.WorkingHours)
	}

	for _, faq := range kb.FAQs {
		words := strings.Fields(strings.ToLower(faq.Question))
		if len(words) > 3 {
			words = words[:3]
		}
		prefix := strings.Join(words, " ")
		if prefix != "" && strings.Contains(queryLower, prefix) {
			fmt.Fprintf(&b, "Q: %s?\nA: %s\n\n", faq.Question, faq.Answer)
		}
	}

	if b.Len() == 0 {
		names := make([]string, 0, len(kb.Services))
		for _, service := range kb.Services {
			names = append(names, service.Name)
		}
		return fmt.Sprintf("%s %s We offer services including %s. For more specific information, please ask about our services, company information, or contact details.",
			kb.CompanyName, kb.CompanyDescription, strings.Join(names, ", "))
	}

	return b.String()
}

// FallbackResponse is the answer used when the generative API is
// unreachable: a greeting, the matched context, or a hardcoded apology.
func (kb *KnowledgeBase) FallbackResponse(query string) string {
	queryLower := strings.ToLower(query)

	if containsAny(queryLower, "hello", "hi", "hey", "greeting") {
		return fmt.Sprintf("Hello! I'm the %s assistant. How can I help you today?", kb.CompanyName)
	}

	context := kb.RelevantContext(queryLower)
	if !strings.HasPrefix(context, kb.CompanyName+" ") {
		return context
	}

	return fmt.Sprintf("I'm sorry, I can't process your request at the moment. Please try again later or contact us directly at %s.", kb.ContactEmail)
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
