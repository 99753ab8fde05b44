package bot

import (
	"context"

	"facilitybot/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const adminFormPrompt = "Send the booking as six lines:\n\n" +
	"FACILITY\nDDMMYY\nHHmm-HHmm\nDescription\nRANK AND NAME\nCOMPANY"

// cmdAdmin starts the direct-entry wizard. Admin bookings skip conflict
// checks entirely: the admin is trusted to have deconflicted out of band,
// typically when transcribing a booking made outside the bot.
func (b *Bot) cmdAdmin(ctx context.Context, in incoming) {
	if !b.users.IsAdmin(in.userID) {
		b.send(in.chatID, "I don't know that command. Send /help to see what I can do.")
		return
	}
	session := models.Session{
		Wizard: models.WizardAdmin,
		Stage:  models.StageAdminDetails,
		Draft:  models.BookingDraft{TxID: uuid.NewString()},
	}
	if err := b.sessions.Put(ctx, in.chatID, session); err != nil {
		b.sessionError(in.chatID, err)
		return
	}
	b.send(in.chatID, adminFormPrompt)
}

func (b *Bot) adminStage(ctx context.Context, in incoming, s models.Session) {
	if s.Stage != models.StageAdminDetails {
		b.logger.Warn("unknown admin stage", zap.String("stage", string(s.Stage)))
		_ = b.sessions.Clear(ctx, in.chatID)
		return
	}

	form, err := parseAdminBookingForm(in.text, b.facilities, b.companies, b.now())
	if err != nil {
		b.send(in.chatID, "I couldn't read that form ("+err.Error()+").\n\n"+adminFormPrompt)
		return
	}

	// The booking belongs to the named user when they are registered;
	// otherwise it is stored against the unregistered sentinel so listings
	// and self-conflict checks never misattribute it.
	ownerID := models.UnregisteredOwner
	ownerContact := ""
	if owner, err := b.users.GetByRankNameCompany(form.RankAndName, form.Company); err != nil {
		b.logger.Warn("owner lookup failed",
			zap.String("rankAndName", form.RankAndName), zap.Error(err))
	} else if owner != nil {
		ownerID = owner.UserID
		ownerContact = owner.Username
	}

	b.typing(in.chatID)
	draft := &models.Booking{
		Facility:     form.Facility,
		Time:         form.Time,
		Description:  form.Description,
		OwnerID:      ownerID,
		OwnerName:    form.RankAndName,
		OwnerContact: ownerContact,
		Company:      form.Company,
	}
	persisted, err := b.engine.CommitInsert(ctx, draft)
	if err != nil {
		b.logger.Error("admin insert failed",
			zap.Int64("chatID", in.chatID), zap.String("txID", s.Draft.TxID), zap.Error(err))
		b.send(in.chatID, "I couldn't save the booking just now. Send the form again to retry.")
		return
	}

	_ = b.sessions.Clear(ctx, in.chatID)
	kb := showInCalendarKeyboard(persisted.HTMLLink)
	b.sendMarkdown(in.chatID,
		"Entered for "+persisted.POC()+":\n\n"+bookingSummary(*persisted), &kb)
	b.announce(channelAnnouncement("New Booking", *persisted))
}
