package routes

import (
	"turnobot/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all endpoints.
func RegisterRoutes(r *gin.Engine, msg *handlers.MessageHandler, pay *handlers.PaymentWebhookHandler) {
	r.Use(cors.Default())

	r.GET("/health", handlers.Health)

	// Messaging provider webhook.
	r.GET("/webhook", msg.Verify)
	r.POST("/webhook", msg.Receive)

	// Payment gateway notifications.
	api := r.Group("/api")
	{
		api.POST("/payments/webhook", pay.Receive)
	}
}
