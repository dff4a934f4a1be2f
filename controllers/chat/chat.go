package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"career-pathways-backend/config"
	"career-pathways-backend/services"
)

type Handler struct {
	chat *services.ChatService
}

func NewHandler(chat *services.ChatService) *Handler {
	return &Handler{chat: chat}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/chat", h.Ask)
}

type askInput struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message" binding:"required"`
}

// Ask relays one message to the advising assistant. A missing conversation
// ID starts a new conversation.
func (h *Handler) Ask(c *gin.Context) {
	var input askInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if input.ConversationID == "" {
		input.ConversationID = uuid.NewString()
	}

	reply, err := h.chat.Ask(c.Request.Context(), input.ConversationID, input.Message)
	if err != nil {
		config.Logger.Warn("chat completion failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "The assistant is unavailable right now"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversationId": input.ConversationID,
		"reply":          reply,
	})
}
