package notification

import (
	"context"
	"fmt"

	"facilitybot/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// ChannelNotificationService posts booking updates to a Telegram channel.
// A blank channel username disables announcements entirely.
type ChannelNotificationService struct {
	API             *tgbotapi.BotAPI
	ChannelUsername string
	Muted           bool
}

func (s *ChannelNotificationService) AnnounceBookingChange(ctx context.Context, text string) error {
	if s.ChannelUsername == "" {
		return nil
	}

	msg := tgbotapi.NewMessageToChannel("@"+s.ChannelUsername, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	msg.DisableNotification = s.Muted

	if _, err := s.API.Send(msg); err != nil {
		utils.GetLogger().Error("channel update failed",
			zap.String("channel", s.ChannelUsername), zap.Error(err))
		return fmt.Errorf("announce to @%s: %w", s.ChannelUsername, err)
	}
	return nil
}
