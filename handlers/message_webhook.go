package handlers

import (
	"net/http"

	"turnobot/models"
	"turnobot/services/conversation"
	"turnobot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessageHandler receives the messaging provider's webhook traffic and feeds
// text messages into the conversation engine.
type MessageHandler struct {
	Engine      *conversation.Engine
	VerifyToken string
	Logger      *zap.Logger
}

func NewMessageHandler(engine *conversation.Engine, verifyToken string, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{Engine: engine, VerifyToken: verifyToken, Logger: logger}
}

// Verify answers the provider's webhook subscription handshake.
func (h *MessageHandler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == h.VerifyToken {
		c.String(http.StatusOK, challenge)
		return
	}
	utils.JSONError(c, http.StatusForbidden, "webhook verification failed", "verify token mismatch")
}

// Receive handles inbound message notifications. Each text message advances
// its sender's conversation by at most one step; processing is synchronous
// so the step's external calls finish before the next prompt is issued.
func (h *MessageHandler) Receive(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid webhook payload", err.Error())
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if msg.Type != "text" || msg.Text == nil {
					continue
				}
				if err := h.Engine.HandleMessage(c.Request.Context(), msg.From, msg.Text.Body); err != nil {
					h.Logger.Error("message handling failed",
						zap.String("from", msg.From), zap.Error(err))
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
