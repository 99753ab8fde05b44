package bot

import (
	"facilitybot/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// facilityKeyboard lists bookable facilities, one per row. minus, when
// non-empty, hides the facility a booking is being moved away from.
func facilityKeyboard(facilities []string, minus string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, f := range facilities {
		if f == minus {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(f, f),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func todayKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Today", "today"),
		),
	)
}

func confirmCancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Confirm", "confirm"),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", "cancel"),
		),
	)
}

func updateKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Update", "update"),
		),
	)
}

func changeDeleteKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Change", "change"),
			tgbotapi.NewInlineKeyboardButtonData("Delete", "delete"),
		),
	)
}

func editMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Facility", "facility"),
			tgbotapi.NewInlineKeyboardButtonData("Date", "date"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Time", "time"),
			tgbotapi.NewInlineKeyboardButtonData("Description", "description"),
		),
	)
}

func companyKeyboard(companies []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range companies {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c, c),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// conflictKeyboard offers contact buttons for the POCs of blocking bookings
// and, when the engine found a free alternate facility, a substitution
// button carrying "alt:<facility>".
func conflictKeyboard(conflicts []models.Conflict, alternate string) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	seen := map[string]bool{}
	for _, c := range conflicts {
		username := c.Booking.OwnerContact
		if c.IsSelf || username == "" || seen[username] {
			continue
		}
		seen[username] = true
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Message "+c.Booking.POC(), "https://t.me/"+username),
		))
	}
	if alternate != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Book "+alternate+" instead", "alt:"+alternate),
		))
	}
	if len(rows) == 0 {
		return nil
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

func showInCalendarKeyboard(eventURL string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Show in Calendar", eventURL),
		),
	)
}

func viewCalendarKeyboard(embedURL string) *tgbotapi.InlineKeyboardMarkup {
	if embedURL == "" {
		return nil
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("View Calendar", embedURL),
		),
	)
	return &kb
}

// userBookingsKeyboard lists the caller's bookings; callback data is the
// booking ID.
func userBookingsKeyboard(bookings []models.Booking) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, b := range bookings {
		label := b.Time.Date + " " + b.Time.Start + "-" + b.Time.End + " " + b.Facility
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, b.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
