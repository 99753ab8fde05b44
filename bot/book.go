package bot

import (
	"context"
	"errors"
	"strings"

	bookingRepo "facilitybot/database/repository/booking"
	"facilitybot/models"
	booking "facilitybot/services/booking"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// cmdBook starts the booking wizard. A profile is required: the booking's
// owner identity comes from it, not from the message.
func (b *Bot) cmdBook(ctx context.Context, in incoming) {
	profile, err := b.users.Get(in.userID)
	if err != nil {
		b.logger.Error("profile lookup failed", zap.Int64("userID", in.userID), zap.Error(err))
		b.send(in.chatID, "Sorry, something went wrong on my end. Please try again.")
		return
	}
	if profile == nil {
		b.send(in.chatID, "I don't know who you are yet. Please register with /start first.")
		return
	}

	session := models.Session{
		Wizard: models.WizardBook,
		Stage:  models.StageFacility,
		Draft:  models.BookingDraft{TxID: uuid.NewString()},
	}
	if err := b.sessions.Put(ctx, in.chatID, session); err != nil {
		b.logger.Error("session save failed", zap.Int64("chatID", in.chatID), zap.Error(err))
		b.send(in.chatID, "Sorry, something went wrong on my end. Please try again.")
		return
	}
	kb := facilityKeyboard(b.facilities, "")
	b.sendMarkdown(in.chatID, "Which facility would you like to book?", &kb)
}

func (b *Bot) bookStage(ctx context.Context, in incoming, s models.Session) {
	switch s.Stage {
	case models.StageFacility:
		b.bookFacility(ctx, in, s)
	case models.StageDate:
		b.bookDate(ctx, in, s)
	case models.StageTimeRange:
		b.bookTimeRange(ctx, in, s)
	case models.StagePatchOffer:
		b.bookPatchOffer(ctx, in, s)
	case models.StageDescription:
		b.bookDescription(ctx, in, s)
	case models.StageConfirm:
		b.bookConfirm(ctx, in, s)
	default:
		b.logger.Warn("unknown booking stage", zap.String("stage", string(s.Stage)))
		_ = b.sessions.Clear(ctx, in.chatID)
	}
}

func (b *Bot) bookFacility(ctx context.Context, in incoming, s models.Session) {
	if in.data == "" || !contains(b.facilities, in.data) {
		b.send(in.chatID, "Please pick a facility from the buttons above.")
		return
	}
	s.Draft.Facility = in.data
	if err := b.sessions.Put(ctx, in.chatID, s.Advance(models.StageDate)); err != nil {
		b.sessionError(in.chatID, err)
		return
	}
	kb := todayKeyboard()
	b.sendMarkdown(in.chatID,
		"What date? Send it as DDMMYY, e.g. *"+b.now().Format(models.InputDateLayout)+"* for today.",
		&kb)
}

func (b *Bot) bookDate(ctx context.Context, in incoming, s models.Session) {
	var date string
	if in.data == "today" {
		date = b.now().Format(models.DateLayout)
	} else {
		parsed, err := parseInputDate(in.text, b.now())
		if err != nil {
			if errors.Is(err, errPastDate) {
				b.send(in.chatID, "That date has already passed. Please send a date from today onwards.")
			} else {
				b.send(in.chatID, "I couldn't read that date. Please send it as DDMMYY, e.g. 250153 for 25 Jan 2053.")
			}
			return
		}
		date = parsed
	}
	s.Draft.Date = date
	if err := b.sessions.Put(ctx, in.chatID, s.Advance(models.StageTimeRange)); err != nil {
		b.sessionError(in.chatID, err)
		return
	}
	b.send(in.chatID, "What time? Send it as HHmm-HHmm, e.g. 0900-1030.")
}

func (b *Bot) bookTimeRange(ctx context.Context, in incoming, s models.Session) {
	// A blocked proposal leaves the wizard at this stage, so the alternate
	// facility button also lands here.
	if alt, ok := strings.CutPrefix(in.data, "alt:"); ok {
		if !contains(b.facilities, alt) || s.Draft.Time == nil {
			b.send(in.chatID, "That offer has expired. Please send a time range.")
			return
		}
		s.Draft.Facility = alt
		b.proposeDraft(ctx, in, s)
		return
	}

	tr, err := models.ParseInputTimeRange(s.Draft.Date, in.text)
	if err != nil {
		b.send(in.chatID, "I couldn't read that time range. Please send it as HHmm-HHmm with the start before the end, e.g. 0900-1030.")
		return
	}
	s.Draft.Time = &tr
	b.proposeDraft(ctx, in, s)
}

// proposeDraft runs the conflict check for the current draft and routes the
// wizard by outcome. Nothing is written to the store here.
func (b *Bot) proposeDraft(ctx context.Context, in incoming, s models.Session) {
	b.typing(in.chatID)
	var excludeID string
	if s.Original != nil {
		excludeID = s.Original.ID
	}
	outcome, err := b.engine.Propose(ctx, booking.ProposeRequest{
		OwnerID:   in.userID,
		Facility:  s.Draft.Facility,
		Time:      *s.Draft.Time,
		ExcludeID: excludeID,
	})
	if err != nil {
		b.logger.Error("proposal failed", zap.Int64("chatID", in.chatID), zap.Error(err))
		b.send(in.chatID, "I couldn't reach the calendar. Please send the time range again in a moment.")
		return
	}

	switch outcome.Kind {
	case booking.OutcomeClear:
		if err := b.sessions.Put(ctx, in.chatID, s.Advance(models.StageDescription)); err != nil {
			b.sessionError(in.chatID, err)
			return
		}
		b.send(in.chatID, "What is the booking for? Send a short description.")

	case booking.OutcomeDuplicate:
		_ = b.sessions.Clear(ctx, in.chatID)
		b.sendMarkdown(in.chatID,
			"You already have this exact booking:\n\n"+bookingSummary(*outcome.Existing), nil)

	case booking.OutcomeSelfConflict:
		s.Original = outcome.Existing
		if err := b.sessions.Put(ctx, in.chatID, s.Advance(models.StagePatchOffer)); err != nil {
			b.sessionError(in.chatID, err)
			return
		}
		kb := updateKeyboard()
		b.sendMarkdown(in.chatID,
			"This overlaps your own booking:\n\n"+bookingSummary(*outcome.Existing)+
				"\n\nTap Update to move it to the new time, or send a different time range.",
			&kb)

	case booking.OutcomeBlocked:
		// Stay at the time-range stage so the user can just send another
		// range; the draft facility may have changed via the alternate
		// button, so store the session again.
		if err := b.sessions.Put(ctx, in.chatID, s.Advance(models.StageTimeRange)); err != nil {
			b.sessionError(in.chatID, err)
			return
		}
		b.sendMarkdown(in.chatID,
			blockedMessage(s.Draft.Facility, *s.Draft.Time, outcome.Conflicts, outcome.Alternate),
			conflictKeyboard(outcome.Conflicts, outcome.Alternate))
	}
}

func (b *Bot) bookPatchOffer(ctx context.Context, in incoming, s models.Session) {
	if in.data != "update" {
		// Anything else is treated as a fresh time range.
		s.Original = nil
		b.bookTimeRange(ctx, in, s.Advance(models.StageTimeRange))
		return
	}
	s.PendingPatch = true
	s.Draft.Description = s.Original.Description
	if err := b.sessions.Put(ctx, in.chatID, s.Advance(models.StageConfirm)); err != nil {
		b.sessionError(in.chatID, err)
		return
	}
	kb := confirmCancelKeyboard()
	b.sendMarkdown(in.chatID,
		"Move your booking to:\n\n"+draftSummary(s.Draft), &kb)
}

func (b *Bot) bookDescription(ctx context.Context, in incoming, s models.Session) {
	desc := strings.TrimSpace(in.text)
	if desc == "" {
		b.send(in.chatID, "Please send a short description for the booking.")
		return
	}
	s.Draft.Description = desc
	if err := b.sessions.Put(ctx, in.chatID, s.Advance(models.StageConfirm)); err != nil {
		b.sessionError(in.chatID, err)
		return
	}
	kb := confirmCancelKeyboard()
	b.sendMarkdown(in.chatID, "Please confirm your booking:\n\n"+draftSummary(s.Draft), &kb)
}

func (b *Bot) bookConfirm(ctx context.Context, in incoming, s models.Session) {
	switch in.data {
	case "cancel":
		_ = b.sessions.Clear(ctx, in.chatID)
		b.send(in.chatID, "Booking discarded. Nothing was saved.")
	case "confirm":
		if s.PendingPatch {
			b.commitMove(ctx, in, s)
		} else {
			b.commitInsert(ctx, in, s)
		}
	default:
		b.send(in.chatID, "Please tap Confirm or Cancel.")
	}
}

// commitInsert persists the drafted booking. The draft is kept in the session
// on failure so Confirm can be tapped again without re-entering anything.
func (b *Bot) commitInsert(ctx context.Context, in incoming, s models.Session) {
	profile, err := b.users.Get(in.userID)
	if err != nil || profile == nil {
		b.logger.Error("profile lookup failed at commit", zap.Int64("userID", in.userID), zap.Error(err))
		b.send(in.chatID, "I couldn't load your profile. Please tap Confirm again in a moment.")
		return
	}

	b.typing(in.chatID)
	draft := &models.Booking{
		Facility:     s.Draft.Facility,
		Time:         *s.Draft.Time,
		Description:  s.Draft.Description,
		OwnerID:      profile.UserID,
		OwnerName:    profile.RankAndName,
		OwnerContact: profile.Username,
		Company:      profile.Company,
	}
	persisted, err := b.engine.CommitInsert(ctx, draft)
	if err != nil {
		b.logger.Error("booking insert failed",
			zap.Int64("chatID", in.chatID), zap.String("txID", s.Draft.TxID), zap.Error(err))
		kb := confirmCancelKeyboard()
		b.sendMarkdown(in.chatID,
			"I couldn't save the booking just now. Your details are kept; tap Confirm to try again.", &kb)
		return
	}

	_ = b.sessions.Clear(ctx, in.chatID)
	kb := showInCalendarKeyboard(persisted.HTMLLink)
	b.sendMarkdown(in.chatID, "Booked!\n\n"+bookingSummary(*persisted), &kb)
	b.announce(channelAnnouncement("New Booking", *persisted))
}

// commitMove patches the user's own overlapping booking onto the drafted
// range. A lost etag race means the booking changed underneath us; the user
// must start over so they see the current state.
func (b *Bot) commitMove(ctx context.Context, in incoming, s models.Session) {
	b.typing(in.chatID)
	patched := *s.Original
	patched.Facility = s.Draft.Facility
	patched.Time = *s.Draft.Time
	persisted, err := b.engine.CommitPatch(ctx, &patched)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrVersionConflict) {
			_ = b.sessions.Clear(ctx, in.chatID)
			b.send(in.chatID, "That booking was changed elsewhere while we talked. Please run /book again.")
			return
		}
		b.logger.Error("booking move failed",
			zap.Int64("chatID", in.chatID), zap.String("bookingID", s.Original.ID), zap.Error(err))
		kb := confirmCancelKeyboard()
		b.sendMarkdown(in.chatID,
			"I couldn't update the booking just now. Your details are kept; tap Confirm to try again.", &kb)
		return
	}

	_ = b.sessions.Clear(ctx, in.chatID)
	kb := showInCalendarKeyboard(persisted.HTMLLink)
	b.sendMarkdown(in.chatID, "Updated!\n\n"+bookingSummary(*persisted), &kb)
	b.announce(channelAnnouncement("Booking Updated", *persisted))
}

func (b *Bot) sessionError(chatID int64, err error) {
	b.logger.Error("session save failed", zap.Int64("chatID", chatID), zap.Error(err))
	b.send(chatID, "Sorry, something went wrong on my end. Please try again.")
}
