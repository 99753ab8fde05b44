package bot

import (
	"context"

	"go.uber.org/zap"
)

// cmdMyBookings lists the caller's ongoing and upcoming bookings. No wizard;
// this is a single read.
func (b *Bot) cmdMyBookings(ctx context.Context, in incoming) {
	b.typing(in.chatID)
	upcoming, err := b.engine.UpcomingByOwner(ctx, in.userID, b.now())
	if err != nil {
		b.logger.Error("listing own bookings failed", zap.Int64("userID", in.userID), zap.Error(err))
		b.send(in.chatID, "I couldn't reach the calendar. Please try again in a moment.")
		return
	}
	if upcoming.Empty() {
		b.send(in.chatID, "You have no upcoming bookings. Use /book to make one.")
		return
	}
	b.sendMarkdown(in.chatID,
		"*Your bookings*\n"+upcomingList(upcoming, ownBookingLine),
		viewCalendarKeyboard(b.calendarURL))
}
