package bot

import (
	"fmt"
	"strings"
	"time"

	"facilitybot/models"
	booking "facilitybot/services/booking"
)

func bookingSummary(b models.Booking) string {
	summary := fmt.Sprintf(
		"*Facility:* %s\n*Date:* %s\n*Time:* %s - %s\n*Description:* %s",
		b.Facility, b.Time.Date, b.Time.Start, b.Time.End, b.Description,
	)
	if b.HTMLLink != "" {
		summary += fmt.Sprintf("\n[Event Link](%s)", b.HTMLLink)
	}
	return summary
}

func draftSummary(draft models.BookingDraft) string {
	return fmt.Sprintf(
		"*Facility:* %s\n*Date:* %s\n*Time:* %s - %s\n*Description:* %s",
		draft.Facility, draft.Date, draft.Time.Start, draft.Time.End, draft.Description,
	)
}

// conflictLines renders each blocking booking with its POC and event link.
func conflictLines(conflicts []models.Conflict) string {
	var sb strings.Builder
	for _, c := range conflicts {
		fmt.Fprintf(&sb, "*Time:* %s - %s\n*Description:* %s\n*POC:* %s\n[Event Link](%s)\n\n",
			c.Booking.Time.Start, c.Booking.Time.End,
			c.Booking.Description, c.Booking.POC(), c.Booking.HTMLLink)
	}
	return sb.String()
}

func blockedMessage(facility string, tr models.TimeRange, conflicts []models.Conflict, alternate string) string {
	var sb strings.Builder
	if len(conflicts) > 1 {
		fmt.Fprintf(&sb, "%s is unavailable at %s-%s on %s due to conflicts with these bookings:\n\n",
			facility, tr.Start, tr.End, tr.Date)
	} else {
		fmt.Fprintf(&sb, "%s is unavailable at %s-%s on %s due to a conflict with this booking:\n\n",
			facility, tr.Start, tr.End, tr.Date)
	}
	sb.WriteString(conflictLines(conflicts))
	sb.WriteString("Please send me another time range, or contact the POC to deconflict.")
	if alternate != "" {
		fmt.Fprintf(&sb, "\n\n%s is free at this time, if that works for you.", alternate)
	}
	return sb.String()
}

// upcomingList renders the ongoing / later today / per-date buckets.
func upcomingList(u *booking.UpcomingBookings, line func(models.Booking) string) string {
	var sb strings.Builder

	if len(u.Ongoing) > 0 {
		sb.WriteString("\n*Ongoing*\n")
		for _, b := range u.Ongoing {
			sb.WriteString(line(b) + "\n")
		}
	}
	if len(u.LaterToday) > 0 {
		sb.WriteString("\n*Later Today*\n")
		for _, b := range u.LaterToday {
			sb.WriteString(line(b) + "\n")
		}
	}
	date := ""
	for _, b := range u.AfterToday {
		if b.Time.Date != date {
			date = b.Time.Date
			heading := date
			if parsed, err := time.Parse(models.DateLayout, date); err == nil {
				heading = parsed.Format("02 Jan 2006")
			}
			sb.WriteString("\n*" + heading + "*\n")
		}
		sb.WriteString(line(b) + "\n")
	}
	return sb.String()
}

func facilityBookingLine(b models.Booking) string {
	return fmt.Sprintf("[%s-%s](%s) %s", b.Time.Start, b.Time.End, b.HTMLLink, b.POC())
}

func ownBookingLine(b models.Booking) string {
	return fmt.Sprintf("%s-%s %s ([Link](%s))", b.Time.Start, b.Time.End, b.Facility, b.HTMLLink)
}

func slotList(slots []models.TimeSlot) string {
	var sb strings.Builder
	for _, s := range slots {
		fmt.Fprintf(&sb, "%s-%s\n", s.Start, s.End)
	}
	return sb.String()
}

// channelAnnouncement is the HTML text mirrored to the broadcast channel.
func channelAnnouncement(action string, b models.Booking) string {
	return fmt.Sprintf(
		"<b>%s</b>\n%s on %s, %s to %s\n%s",
		action, b.Facility, b.Time.Date, b.Time.Start, b.Time.End, b.POC(),
	)
}
