package bot

import (
	"context"

	"go.uber.org/zap"
)

const helpText = `Here's what I can do:

/book - book a facility
/change - change or cancel one of your bookings
/check - see a facility's bookings and free slots
/mybookings - list your upcoming bookings
/profile - update your rank, name or company
/cancel - abandon whatever we were doing

I'll tell you immediately if a requested slot clashes with an existing booking, and who to contact about it.`

func (b *Bot) cmdHelp(_ context.Context, in incoming) {
	b.send(in.chatID, helpText)
}

// cmdCancel abandons the running wizard, if any. Nothing in the store is
// touched; only the dialog state goes away.
func (b *Bot) cmdCancel(ctx context.Context, in incoming) {
	session, err := b.sessions.Get(ctx, in.chatID)
	if err != nil {
		b.logger.Error("session load failed", zap.Int64("chatID", in.chatID), zap.Error(err))
	}
	if session == nil {
		b.send(in.chatID, "Nothing to cancel. Send /help to see what I can do.")
		return
	}
	if err := b.sessions.Clear(ctx, in.chatID); err != nil {
		b.logger.Error("session clear failed", zap.Int64("chatID", in.chatID), zap.Error(err))
	}
	b.send(in.chatID, "Okay, cancelled. Nothing was saved.")
}
