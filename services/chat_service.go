package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

const defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

// ChatService answers free-text questions about the company. It grounds a
// generative-text call on the static knowledge base and falls back to the
// knowledge base alone when the call fails. The external call is made once,
// never retried.
type ChatService struct {
	client   *http.Client
	kb       *KnowledgeBase
	apiKey   string
	model    string
	endpoint string
}

func NewChatService(client *http.Client) *ChatService {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-1.5-pro-latest"
	}

	return &ChatService{
		client:   client,
		kb:       DefaultKnowledgeBase(),
		apiKey:   os.Getenv("GEMINI_API_KEY"),
		model:    model,
		endpoint: fmt.Sprintf(defaultGeminiEndpoint, model),
	}
}

// ChatReply is the assistant's answer. IsFallback marks answers produced
// from the static knowledge base rather than the generative API.
type ChatReply struct {
	Text       string `json:"text"`
	IsFallback bool   `json:"is_fallback"`
}

// Reply answers message synchronously. Any failure of the generative call is
// treated as "no answer" and degrades to the knowledge-base fallback.
func (s *ChatService) Reply(ctx context.Context, message string) ChatReply {
	reqContext := s.kb.RelevantContext(message)

	text, err := s.generate(ctx, message, reqContext)
	if err != nil {
		return ChatReply{Text: s.kb.FallbackResponse(message), IsFallback: true}
	}

	return ChatReply{Text: text}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (s *ChatService) generate(ctx context.Context, message, kbContext string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("generative API key not configured")
	}

	prompt := fmt.Sprintf(`You are the assistant for %s.

Context about %s:
%s

User question: %s

Please provide a helpful, accurate and concise response based on the context above.
If you don't know the answer, politely say you don't have that information and suggest they contact %s.
Keep responses professional but friendly.`,
		s.kb.CompanyName, s.kb.CompanyName, kbContext, message, s.kb.ContactEmail)

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generative API returned status %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generative API returned no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
