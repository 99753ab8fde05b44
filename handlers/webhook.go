package handlers

import (
	"context"
	"net/http"

	"facilitybot/bot"
	"facilitybot/config"
	"facilitybot/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandlerBundle groups the HTTP handlers with their dependencies.
type HandlerBundle struct {
	Bot *bot.Bot
}

// TelegramWebhookHandler receives update pushes from Telegram. The route is
// registered under the bot token, so a matching :token is the authenticity
// check; anything else is dropped without a body read.
func (hb *HandlerBundle) TelegramWebhookHandler(c *gin.Context) {
	if c.Param("token") != config.AppConfig.BotToken {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.GetLogger().Warn("Malformed webhook update", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed update"})
		return
	}

	// Telegram retries on non-200, so the update is acknowledged up front
	// and processed off the request goroutine. The request context dies
	// with this handler, so the update gets a fresh one.
	go hb.Bot.HandleUpdate(context.Background(), update)
	c.Status(http.StatusOK)
}

// HealthHandler returns the latest dependency health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"health": utils.GetHealthStatus(),
	})
}
