package handlers

import (
	"net/http"

	"infinitewash/models"
	"infinitewash/services/chat"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatHandler struct {
	Logger *zap.Logger
}

func NewChatHandler(logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Logger: logger}
}

// Reply handles POST /api/chat.
func (h *ChatHandler) Reply(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	reply, err := chat.Reply(req.Message)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// QuickReplies handles GET /api/chat/quick-replies.
func (h *ChatHandler) QuickReplies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"greeting": chat.Greeting, "quickReplies": chat.QuickReplies()})
}
