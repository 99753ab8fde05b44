package bot

import (
	"context"

	"facilitybot/models"

	"go.uber.org/zap"
)

// cmdCheck starts the availability wizard: pick a facility, get its upcoming
// bookings plus today's free slots.
func (b *Bot) cmdCheck(ctx context.Context, in incoming) {
	session := models.Session{Wizard: models.WizardCheck, Stage: models.StagePickFacility}
	if err := b.sessions.Put(ctx, in.chatID, session); err != nil {
		b.sessionError(in.chatID, err)
		return
	}
	kb := facilityKeyboard(b.facilities, "")
	b.sendMarkdown(in.chatID, "Which facility would you like to check?", &kb)
}

func (b *Bot) checkStage(ctx context.Context, in incoming, s models.Session) {
	if s.Stage != models.StagePickFacility {
		b.logger.Warn("unknown check stage", zap.String("stage", string(s.Stage)))
		_ = b.sessions.Clear(ctx, in.chatID)
		return
	}
	facility := in.data
	if facility == "" || !contains(b.facilities, facility) {
		b.send(in.chatID, "Please pick a facility from the buttons above.")
		return
	}

	b.typing(in.chatID)
	now := b.now()
	upcoming, err := b.engine.UpcomingByFacility(ctx, facility, now)
	if err != nil {
		b.logger.Error("facility listing failed", zap.String("facility", facility), zap.Error(err))
		b.send(in.chatID, "I couldn't reach the calendar. Please try again in a moment.")
		return
	}

	text := "*" + facility + "*\n"
	if upcoming.Empty() {
		text += "\nNo upcoming bookings."
	} else {
		text += upcomingList(upcoming, facilityBookingLine)
	}

	slots, free, err := b.engine.Resolver.ListAvailableSlots(ctx, facility, now.Format(models.DateLayout), now)
	switch {
	case err != nil:
		b.logger.Warn("slot listing failed", zap.String("facility", facility), zap.Error(err))
	case free:
		text += "\n*Free today*\nAll day from now."
	case len(slots) > 0:
		text += "\n*Free today*\n" + slotList(slots)
	}

	_ = b.sessions.Clear(ctx, in.chatID)
	b.sendMarkdown(in.chatID, text, viewCalendarKeyboard(b.calendarURL))
}
