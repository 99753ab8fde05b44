package routes

import (
	"facilitybot/handlers"
	"facilitybot/middleware"
	"facilitybot/utils"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires the HTTP surface: the Telegram webhook sink and a health
// endpoint. Everything else the bot does happens over the Telegram API, not
// inbound HTTP.
func SetupRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware())

	r.POST("/webhook/:token", hb.TelegramWebhookHandler)
	r.GET("/health", handlers.HealthHandler)
}
