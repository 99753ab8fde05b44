package bot

import (
	"context"
	"errors"
	"strings"

	bookingRepo "facilitybot/database/repository/booking"
	"facilitybot/models"
	booking "facilitybot/services/booking"

	"go.uber.org/zap"
)

// cmdChange starts the edit/delete wizard over the caller's own upcoming
// bookings. Only bookings the caller owns are offered; nobody edits someone
// else's reservation through this path.
func (b *Bot) cmdChange(ctx context.Context, in incoming) {
	b.typing(in.chatID)
	upcoming, err := b.engine.UpcomingByOwner(ctx, in.userID, b.now())
	if err != nil {
		b.logger.Error("listing own bookings failed", zap.Int64("userID", in.userID), zap.Error(err))
		b.send(in.chatID, "I couldn't reach the calendar. Please try again in a moment.")
		return
	}
	if upcoming.Empty() {
		b.send(in.chatID, "You have no upcoming bookings to change. Use /book to make one.")
		return
	}

	session := models.Session{Wizard: models.WizardChange, Stage: models.StagePickBooking}
	if err := b.sessions.Put(ctx, in.chatID, session); err != nil {
		b.sessionError(in.chatID, err)
		return
	}
	kb := userBookingsKeyboard(upcoming.All())
	b.sendMarkdown(in.chatID, "Which booking would you like to change?", &kb)
}

func (b *Bot) changeStage(ctx context.Context, in incoming, s models.Session) {
	switch s.Stage {
	case models.StagePickBooking:
		b.changePickBooking(ctx, in, s)
	case models.StagePickAction:
		b.changePickAction(ctx, in, s)
	case models.StagePickField:
		b.changePickField(ctx, in, s)
	case models.StageNewFacility:
		b.changeNewFacility(ctx, in, s)
	case models.StageNewDate:
		b.changeNewDate(ctx, in, s)
	case models.StageNewTimeRange:
		b.changeNewTimeRange(ctx, in, s)
	case models.StageNewDesc:
		b.changeNewDescription(ctx, in, s)
	case models.StageConfirmChange:
		b.changeConfirm(ctx, in, s)
	case models.StageConfirmDelete:
		b.changeConfirmDelete(ctx, in, s)
	default:
		b.logger.Warn("unknown change stage", zap.String("stage", string(s.Stage)))
		_ = b.sessions.Clear(ctx, in.chatID)
	}
}

func (b *Bot) changePickBooking(ctx context.Context, in incoming, s models.Session) {
	if in.data == "" {
		b.send(in.chatID, "Please pick a booking from the buttons above.")
		return
	}
	b.typing(in.chatID)
	picked, err := b.engine.Repo.Get(ctx, in.data)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			_ = b.sessions.Clear(ctx, in.chatID)
			b.send(in.chatID, "That booking no longer exists. Run /change again for a fresh list.")
			return
		}
		b.logger.Error("booking lookup failed", zap.String("bookingID", in.data), zap.Error(err))
		b.send(in.chatID, "I couldn't reach the calendar. Please try again in a moment.")
		return
	}
	if picked.OwnerID != in.userID {
		_ = b.sessions.Clear(ctx, in.chatID)
		b.send(in.chatID, "That booking no longer exists. Run /change again for a fresh list.")
		return
	}
	s.Original = picked
	if err := b.sessions.Put(ctx, in.chatID, s.Advance(models.StagePickAction)); err != nil {
		b.sessionError(in.chatID, err)
		return
	}
	kb := changeDeleteKeyboard()
	b.sendMarkdown(in.chatID, bookingSummary(*picked)+"\n\nWhat would you like to do?", &kb)
}

func (b *Bot) changePickAction(ctx context.Context, in incoming, s models.Session) {
	switch in.data {
	case "change":
		if err := b.sessions.Put(ctx, in.chatID, s.Advance(models.StagePickField)); err != nil {
			b.sessionError(in.chatID, err)
			return
		}
		kb := editMenuKeyboard()
		b.sendMarkdown(in.chatID, "Which part would you like to change?", &kb)
	case "delete":
		if err := b.sessions.Put(ctx, in.chatID, s.Advance(models.StageConfirmDelete)); err != nil {
			b.sessionError(in.chatID, err)
			return
		}
		kb := confirmCancelKeyboard()
		b.sendMarkdown(in.chatID, "Delete this booking?\n\n"+bookingSummary(*s.Original), &kb)
	default:
		b.send(in.chatID, "Please tap Change or Delete.")
	}
}

func (b *Bot) changePickField(ctx context.Context, in incoming, s models.Session) {
	s.ChangedField = in.data
	switch in.data {
	case "facility":
		if err := b.sessions.Put(ctx, in.chatID, s.Advance(models.StageNewFacility)); err != nil {
			b.sessionError(in.chatID, err)
			return
		}
		kb := facilityKeyboard(b.facilities, s.Original.Facility)
		b.sendMarkdown(in.chatID, "Which facility instead?", &kb)
	case "date":
		if err := b.sessions.Put(ctx, in.chatID, s.Advance(models.StageNewDate)); err != nil {
			b.sessionError(in.chatID, err)
			return
		}
		b.send(in.chatID, "What date instead? Send it as DDMMYY.")
	case "time":
		if err := b.sessions.Put(ctx, in.chatID, s.Advance(models.StageNewTimeRange)); err != nil {
			b.sessionError(in.chatID, err)
			return
		}
		b.send(in.chatID, "What time instead? Send it as HHmm-HHmm.")
	case "description":
		if err := b.sessions.Put(ctx, in.chatID, s.Advance(models.StageNewDesc)); err != nil {
			b.sessionError(in.chatID, err)
			return
		}
		b.send(in.chatID, "What should the description say instead?")
	default:
		b.send(in.chatID, "Please pick a field from the buttons above.")
	}
}

func (b *Bot) changeNewFacility(ctx context.Context, in incoming, s models.Session) {
	if in.data == "" || !contains(b.facilities, in.data) {
		b.send(in.chatID, "Please pick a facility from the buttons above.")
		return
	}
	if in.data == s.Original.Facility {
		b.send(in.chatID, "The booking is already in "+in.data+". Pick a different facility.")
		return
	}
	s.Draft.Facility = in.data
	b.checkChange(ctx, in, s)
}

func (b *Bot) changeNewDate(ctx context.Context, in incoming, s models.Session) {
	date, err := parseInputDate(in.text, b.now())
	if err != nil {
		if errors.Is(err, errPastDate) {
			b.send(in.chatID, "That date has already passed. Please send a date from today onwards.")
		} else {
			b.send(in.chatID, "I couldn't read that date. Please send it as DDMMYY.")
		}
		return
	}
	if date == s.Original.Time.Date {
		b.send(in.chatID, "The booking is already on that date. Send a different one.")
		return
	}
	s.Draft.Date = date
	b.checkChange(ctx, in, s)
}

func (b *Bot) changeNewTimeRange(ctx context.Context, in incoming, s models.Session) {
	tr, err := models.ParseInputTimeRange(s.Original.Time.Date, in.text)
	if err != nil {
		b.send(in.chatID, "I couldn't read that time range. Please send it as HHmm-HHmm with the start before the end.")
		return
	}
	if tr.Equal(s.Original.Time) {
		b.send(in.chatID, "The booking already covers that time. Send a different range.")
		return
	}
	s.Draft.Time = &tr
	b.checkChange(ctx, in, s)
}

func (b *Bot) changeNewDescription(ctx context.Context, in incoming, s models.Session) {
	desc := strings.TrimSpace(in.text)
	if desc == "" {
		b.send(in.chatID, "Please send a non-empty description.")
		return
	}
	if desc == s.Original.Description {
		b.send(in.chatID, "The description already says that. Send a different one.")
		return
	}
	s.Draft.Description = desc
	// Description edits cannot conflict; skip straight to confirmation.
	b.offerChangeConfirm(ctx, in, s)
}

// patchedBooking is the original with the drafted field overrides applied.
func patchedBooking(s models.Session) models.Booking {
	patched := *s.Original
	if s.Draft.Facility != "" {
		patched.Facility = s.Draft.Facility
	}
	if s.Draft.Date != "" {
		patched.Time.Date = s.Draft.Date
	}
	if s.Draft.Time != nil {
		patched.Time = *s.Draft.Time
	}
	if s.Draft.Description != "" {
		patched.Description = s.Draft.Description
	}
	return patched
}

// checkChange re-runs conflict resolution for the edited booking, excluding
// the booking itself; a move never conflicts with the reservation it vacates.
func (b *Bot) checkChange(ctx context.Context, in incoming, s models.Session) {
	b.typing(in.chatID)
	patched := patchedBooking(s)
	outcome, err := b.engine.Propose(ctx, booking.ProposeRequest{
		OwnerID:   in.userID,
		Facility:  patched.Facility,
		Time:      patched.Time,
		ExcludeID: s.Original.ID,
	})
	if err != nil {
		b.logger.Error("change proposal failed", zap.Int64("chatID", in.chatID), zap.Error(err))
		b.send(in.chatID, "I couldn't reach the calendar. Please send that again in a moment.")
		return
	}

	switch outcome.Kind {
	case booking.OutcomeClear:
		b.offerChangeConfirm(ctx, in, s)
	case booking.OutcomeDuplicate, booking.OutcomeSelfConflict:
		b.sendMarkdown(in.chatID,
			"That clashes with another booking of yours:\n\n"+
				bookingSummary(*outcome.Existing)+"\n\nSend a different value.", nil)
	case booking.OutcomeBlocked:
		b.sendMarkdown(in.chatID,
			blockedMessage(patched.Facility, patched.Time, outcome.Conflicts, outcome.Alternate)+
				"\n\nSend a different value.",
			conflictKeyboard(outcome.Conflicts, ""))
	}
}

func (b *Bot) offerChangeConfirm(ctx context.Context, in incoming, s models.Session) {
	if err := b.sessions.Put(ctx, in.chatID, s.Advance(models.StageConfirmChange)); err != nil {
		b.sessionError(in.chatID, err)
		return
	}
	patched := patchedBooking(s)
	kb := confirmCancelKeyboard()
	b.sendMarkdown(in.chatID, "Apply this change?\n\n"+bookingSummary(patched), &kb)
}

func (b *Bot) changeConfirm(ctx context.Context, in incoming, s models.Session) {
	switch in.data {
	case "cancel":
		_ = b.sessions.Clear(ctx, in.chatID)
		b.send(in.chatID, "Change discarded. The booking is unchanged.")
	case "confirm":
		b.typing(in.chatID)
		patched := patchedBooking(s)
		persisted, err := b.engine.CommitPatch(ctx, &patched)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrVersionConflict) {
				_ = b.sessions.Clear(ctx, in.chatID)
				b.send(in.chatID, "That booking was changed elsewhere while we talked. Please run /change again.")
				return
			}
			b.logger.Error("booking patch failed",
				zap.String("bookingID", s.Original.ID), zap.Error(err))
			kb := confirmCancelKeyboard()
			b.sendMarkdown(in.chatID,
				"I couldn't apply the change just now. Your edit is kept; tap Confirm to try again.", &kb)
			return
		}
		_ = b.sessions.Clear(ctx, in.chatID)
		kb := showInCalendarKeyboard(persisted.HTMLLink)
		b.sendMarkdown(in.chatID, "Updated!\n\n"+bookingSummary(*persisted), &kb)
		b.announce(channelAnnouncement("Booking Updated", *persisted))
	default:
		b.send(in.chatID, "Please tap Confirm or Cancel.")
	}
}

func (b *Bot) changeConfirmDelete(ctx context.Context, in incoming, s models.Session) {
	switch in.data {
	case "cancel":
		_ = b.sessions.Clear(ctx, in.chatID)
		b.send(in.chatID, "Deletion discarded. The booking stands.")
	case "confirm":
		b.typing(in.chatID)
		if err := b.engine.Cancel(ctx, s.Original.ID); err != nil {
			b.logger.Error("booking delete failed",
				zap.String("bookingID", s.Original.ID), zap.Error(err))
			kb := confirmCancelKeyboard()
			b.sendMarkdown(in.chatID,
				"I couldn't delete the booking just now. Tap Confirm to try again.", &kb)
			return
		}
		_ = b.sessions.Clear(ctx, in.chatID)
		b.send(in.chatID, "Deleted. The slot is free again.")
		b.announce(channelAnnouncement("Booking Cancelled", *s.Original))
	default:
		b.send(in.chatID, "Please tap Confirm or Cancel.")
	}
}
