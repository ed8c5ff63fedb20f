package controllers

import (
	"net/http"
	"sync"

	"partner-management-api/services"

	"github.com/gin-gonic/gin"
)

var (
	chatMu      sync.Mutex
	chatService *services.ChatService
)

// activeChatService builds the chat service on first use rather than at
// package init, so it sees GEMINI_API_KEY/GEMINI_MODEL after main has
// loaded .env.
func activeChatService() *services.ChatService {
	chatMu.Lock()
	defer chatMu.Unlock()
	if chatService == nil {
		chatService = services.NewChatService(nil)
	}
	return chatService
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Chat answers a free-text visitor question. The endpoint always returns
// 200: failures of the generative API degrade to the knowledge-base
// fallback instead of an error status, so the widget never shows an error.
func Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"text":        "Please type a message and I'll do my best to help.",
			"is_fallback": true,
		})
		return
	}

	reply := activeChatService().Reply(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, reply)
}
