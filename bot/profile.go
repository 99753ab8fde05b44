package bot

import (
	"context"
	"strings"
	"time"

	"facilitybot/models"

	"go.uber.org/zap"
)

// cmdStart greets the user. New users are pushed straight into the profile
// wizard; returning users get their stored username refreshed so POC contact
// buttons keep working after a handle change.
func (b *Bot) cmdStart(ctx context.Context, in incoming) {
	profile, err := b.users.Get(in.userID)
	if err != nil {
		b.logger.Error("profile lookup failed", zap.Int64("userID", in.userID), zap.Error(err))
		b.send(in.chatID, "Sorry, something went wrong on my end. Please try again.")
		return
	}
	if profile != nil {
		if in.username != "" && in.username != profile.Username {
			if err := b.users.SyncUsername(in.userID, in.username); err != nil {
				b.logger.Warn("username sync failed", zap.Int64("userID", in.userID), zap.Error(err))
			}
		}
		b.send(in.chatID, "Welcome back, "+profile.RankAndName+"! Send /help to see what I can do.")
		return
	}
	b.send(in.chatID, "Hello! I manage facility bookings. Let's set up your profile first.")
	b.cmdProfile(ctx, in)
}

// cmdProfile starts (or restarts) the registration wizard.
func (b *Bot) cmdProfile(ctx context.Context, in incoming) {
	session := models.Session{
		Wizard: models.WizardProfile,
		Stage:  models.StageRankName,
		Profile: &models.UserProfile{
			UserID:   in.userID,
			Username: in.username,
		},
	}
	if err := b.sessions.Put(ctx, in.chatID, session); err != nil {
		b.sessionError(in.chatID, err)
		return
	}
	b.send(in.chatID, "What is your rank and name? E.g. CPT TAN AH KOW.")
}

func (b *Bot) profileStage(ctx context.Context, in incoming, s models.Session) {
	switch s.Stage {
	case models.StageRankName:
		b.profileRankName(ctx, in, s)
	case models.StageCompany:
		b.profileCompany(ctx, in, s)
	default:
		b.logger.Warn("unknown profile stage", zap.String("stage", string(s.Stage)))
		_ = b.sessions.Clear(ctx, in.chatID)
	}
}

func (b *Bot) profileRankName(ctx context.Context, in incoming, s models.Session) {
	rankAndName := strings.ToUpper(strings.TrimSpace(in.text))
	if rankAndName == "" {
		b.send(in.chatID, "Please send your rank and name, e.g. CPT TAN AH KOW.")
		return
	}
	s.Profile.RankAndName = rankAndName
	if err := b.sessions.Put(ctx, in.chatID, s.Advance(models.StageCompany)); err != nil {
		b.sessionError(in.chatID, err)
		return
	}
	kb := companyKeyboard(b.companies)
	b.sendMarkdown(in.chatID, "Which company are you from?", &kb)
}

func (b *Bot) profileCompany(ctx context.Context, in incoming, s models.Session) {
	company := in.data
	if company == "" || !contains(b.companies, company) {
		b.send(in.chatID, "Please pick your company from the buttons above.")
		return
	}
	s.Profile.Company = company

	// Preserve admin status and creation time across re-registration.
	existing, err := b.users.Get(in.userID)
	if err == nil && existing != nil {
		s.Profile.Admin = existing.Admin
		s.Profile.CreatedAt = existing.CreatedAt
	}
	if s.Profile.CreatedAt.IsZero() {
		s.Profile.CreatedAt = time.Now()
	}
	s.Profile.UpdatedAt = time.Now()

	if err := b.users.Register(s.Profile); err != nil {
		b.logger.Error("profile registration failed", zap.Int64("userID", in.userID), zap.Error(err))
		b.send(in.chatID, "I couldn't save your profile. Please pick your company again.")
		return
	}

	_ = b.sessions.Clear(ctx, in.chatID)
	b.send(in.chatID,
		"All set, "+s.Profile.DisplayName()+"! Use /book to book a facility or /help to see everything I can do.")
}
