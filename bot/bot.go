package bot

import (
	"context"
	"time"

	"facilitybot/config"
	"facilitybot/models"
	booking "facilitybot/services/booking"
	"facilitybot/services/tasks"
	"facilitybot/services/user"
	"facilitybot/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// updateTimeout bounds one update's store and calendar calls.
const updateTimeout = 30 * time.Second

// Bot routes Telegram updates into the booking wizards. All booking state
// lives in the session store and the calendar; Bot itself is safe for
// concurrent updates.
type Bot struct {
	api      *tgbotapi.BotAPI
	sessions *SessionStore
	users    user.UserService
	engine   *booking.DefaultBookingEngine
	queue    *asynq.Client
	logger   *zap.Logger

	loc         *time.Location
	facilities  []string
	companies   []string
	calendarURL string
}

func New(
	api *tgbotapi.BotAPI,
	sessions *SessionStore,
	users user.UserService,
	engine *booking.DefaultBookingEngine,
	queue *asynq.Client,
) *Bot {
	return &Bot{
		api:         api,
		sessions:    sessions,
		users:       users,
		engine:      engine,
		queue:       queue,
		logger:      utils.GetLogger(),
		loc:         config.Location(),
		facilities:  config.AppConfig.Facilities,
		companies:   config.AppConfig.Companies,
		calendarURL: config.AppConfig.CalendarEmbedURL,
	}
}

// incoming is the flattened view of one update the stage handlers work with.
type incoming struct {
	chatID     int64
	userID     int64
	username   string
	messageID  int
	text       string // message text; empty for callbacks
	data       string // callback data; empty for messages
	callbackID string
}

func flatten(update tgbotapi.Update) (incoming, bool) {
	if q := update.CallbackQuery; q != nil && q.Message != nil {
		return incoming{
			chatID:     q.Message.Chat.ID,
			userID:     q.From.ID,
			username:   q.From.UserName,
			messageID:  q.Message.MessageID,
			data:       q.Data,
			callbackID: q.ID,
		}, true
	}
	if m := update.Message; m != nil && m.From != nil {
		return incoming{
			chatID:    m.Chat.ID,
			userID:    m.From.ID,
			username:  m.From.UserName,
			messageID: m.MessageID,
			text:      m.Text,
		}, true
	}
	return incoming{}, false
}

// HandleUpdate processes one update end to end. Called concurrently from the
// webhook handler and the polling loop.
func (b *Bot) HandleUpdate(parent context.Context, update tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(parent, updateTimeout)
	defer cancel()

	in, ok := flatten(update)
	if !ok {
		return
	}

	// Callback queries need to be answered even when no notification is
	// shown to the user.
	if in.callbackID != "" {
		defer b.answer(in.callbackID)
	}

	if update.Message != nil && update.Message.IsCommand() {
		b.handleCommand(ctx, in, update.Message.Command())
		return
	}

	session, err := b.sessions.Get(ctx, in.chatID)
	if err != nil {
		b.logger.Error("session load failed", zap.Int64("chatID", in.chatID), zap.Error(err))
		b.send(in.chatID, "Sorry, something went wrong on my end. Please try again.")
		return
	}
	if session == nil {
		b.send(in.chatID, "Send /help to see what I can do.")
		return
	}

	b.dispatchStage(ctx, in, *session)
}

func (b *Bot) handleCommand(ctx context.Context, in incoming, command string) {
	switch command {
	case "start":
		b.cmdStart(ctx, in)
	case "profile":
		b.cmdProfile(ctx, in)
	case "book":
		b.cmdBook(ctx, in)
	case "change":
		b.cmdChange(ctx, in)
	case "check":
		b.cmdCheck(ctx, in)
	case "mybookings":
		b.cmdMyBookings(ctx, in)
	case "admin":
		b.cmdAdmin(ctx, in)
	case "help":
		b.cmdHelp(ctx, in)
	case "cancel":
		b.cmdCancel(ctx, in)
	default:
		b.send(in.chatID, "I don't know that command. Send /help to see what I can do.")
	}
}

func (b *Bot) dispatchStage(ctx context.Context, in incoming, s models.Session) {
	switch s.Wizard {
	case models.WizardBook:
		b.bookStage(ctx, in, s)
	case models.WizardChange:
		b.changeStage(ctx, in, s)
	case models.WizardCheck:
		b.checkStage(ctx, in, s)
	case models.WizardProfile:
		b.profileStage(ctx, in, s)
	case models.WizardAdmin:
		b.adminStage(ctx, in, s)
	default:
		b.logger.Warn("unknown wizard in session", zap.String("wizard", s.Wizard))
		_ = b.sessions.Clear(ctx, in.chatID)
	}
}

// RunPolling consumes updates over long polling until ctx is cancelled.
// Used when no webhook URL is configured.
func (b *Bot) RunPolling(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			go b.HandleUpdate(ctx, update)
		}
	}
}

// RegisterCommands publishes the command menu, with the admin command scoped
// to admin chats only.
func (b *Bot) RegisterCommands() {
	defaults := []tgbotapi.BotCommand{
		{Command: "book", Description: "Book a facility"},
		{Command: "change", Description: "Change or cancel a booking"},
		{Command: "check", Description: "Check facility availability"},
		{Command: "mybookings", Description: "List your upcoming bookings"},
		{Command: "profile", Description: "Update your user profile"},
		{Command: "help", Description: "Show this list of commands"},
	}
	if _, err := b.api.Request(tgbotapi.NewSetMyCommands(defaults...)); err != nil {
		b.logger.Warn("failed to set bot commands", zap.Error(err))
	}

	admins, err := b.users.ListAdmins()
	if err != nil {
		b.logger.Warn("failed to list admins for command scoping", zap.Error(err))
		return
	}
	adminCommands := append([]tgbotapi.BotCommand{
		{Command: "admin", Description: "Enter a booking without conflict checks"},
	}, defaults...)
	for _, admin := range admins {
		scope := tgbotapi.NewBotCommandScopeChat(admin.UserID)
		cfg := tgbotapi.SetMyCommandsConfig{Commands: adminCommands, Scope: &scope}
		if _, err := b.api.Request(cfg); err != nil {
			b.logger.Warn("failed to set admin commands",
				zap.Int64("userID", admin.UserID), zap.Error(err))
		}
	}
}

// --- send helpers ---

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

func (b *Bot) sendMarkdown(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

func (b *Bot) answer(callbackID string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		b.logger.Debug("callback answer failed", zap.Error(err))
	}
}

// typing shows the typing indicator while a store round-trip is in flight.
func (b *Bot) typing(chatID int64) {
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := b.api.Request(action); err != nil {
		b.logger.Debug("chat action failed", zap.Error(err))
	}
}

// announce queues a broadcast-channel mirror of a booking change.
func (b *Bot) announce(text string) {
	if b.queue == nil {
		return
	}
	task, err := tasks.NewChannelUpdateTask(models.ChannelUpdatePayload{Text: text})
	if err != nil {
		b.logger.Error("failed to build channel update task", zap.Error(err))
		return
	}
	if _, err := b.queue.Enqueue(task); err != nil {
		b.logger.Error("failed to enqueue channel update", zap.Error(err))
	}
}

func (b *Bot) now() time.Time {
	return time.Now().In(b.loc)
}
