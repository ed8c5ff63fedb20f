package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRelevantContext_CategoryMatches(t *testing.T) {
	kb := DefaultKnowledgeBase()

	about := kb.RelevantContext("tell me about your company")
	require.Contains(t, about, kb.CompanyName)
	require.Contains(t, about, kb.CompanyDescription)

	services := kb.RelevantContext("what services do you offer")
	for _, service := range kb.Services {
		require.Contains(t, services, service.Name)
	}

	specific := kb.RelevantContext("tell me more about credential verification")
	require.Contains(t, specific, "Credential Verification")
	require.Contains(t, specific, "Primary-source checks with issuing bodies")

	contact := kb.RelevantContext("how can I contact you")
	require.Contains(t, contact, kb.ContactEmail)
	require.Contains(t, contact, kb.ContactPhone)
	require.Contains(t, contact, kb.WorkingHours)

	faq := kb.RelevantContext("how long does verification usually take")
	require.Contains(t, faq, "5 to 10 business days")
}

func TestRelevantContext_NoMatchReturnsGeneralBlurb(t *testing.T) {
	kb := DefaultKnowledgeBase()

	blurb := kb.RelevantContext("do you sell rockets")
	require.True(t, strings.HasPrefix(blurb, kb.CompanyName+" "))
	require.Contains(t, blurb, "Credential Verification")
}

func TestFallbackResponse_Greeting(t *testing.T) {
	kb := DefaultKnowledgeBase()

	reply := kb.FallbackResponse("hello there")
	require.Contains(t, reply, "Hello! I'm the Meridian Partners assistant")
}

func TestFallbackResponse_ContactQueryIncludesSupportEmail(t *testing.T) {
	kb := DefaultKnowledgeBase()

	reply := kb.FallbackResponse("contact")
	require.Contains(t, reply, kb.ContactEmail)
	require.Contains(t, reply, kb.ContactPhone)
}

func TestFallbackResponse_UnmatchedQueryApologises(t *testing.T) {
	kb := DefaultKnowledgeBase()

	reply := kb.FallbackResponse("do you sell rockets")
	require.Contains(t, reply, "I'm sorry")
	require.Contains(t, reply, kb.ContactEmail)
}

func TestDefaultKnowledgeBase_SupportEmailOverride(t *testing.T) {
	t.Setenv("SUPPORT_EMAIL", "help@example.org")

	kb := DefaultKnowledgeBase()
	require.Equal(t, "help@example.org", kb.ContactEmail)
}
