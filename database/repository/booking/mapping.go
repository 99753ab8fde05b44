package bookingRepo

import (
	"fmt"
	"strconv"
	"strings"

	"facilitybot/models"

	"google.golang.org/api/calendar/v3"
)

// Shared extended-property keys. This side channel is the only place
// conflict-relevant fields are read from; the free-text summary and
// description are for human eyes only.
const (
	propFacility  = "facility"
	propDate      = "date"
	propStartTime = "start_time"
	propEndTime   = "end_time"
	propDesc      = "description"
	propUserID    = "user_id"
	propUsername  = "username"
	propPOCName   = "name_and_company"
	propCompany   = "company"
)

const editedPrefix = "Edited: "

// unregisteredUserID is stored for bookings made on behalf of users without
// a profile; it parses to models.UnregisteredOwner on the way back out.
const unregisteredUserID = "unregistered"

// eventToBooking maps a calendar event onto a typed Booking. Raw event
// shapes never leave this package.
func eventToBooking(ev *calendar.Event) (models.Booking, error) {
	shared := map[string]string{}
	if ev.ExtendedProperties != nil && ev.ExtendedProperties.Shared != nil {
		shared = ev.ExtendedProperties.Shared
	}

	date := shared[propDate]
	start := shared[propStartTime]
	end := shared[propEndTime]
	// Events created before the side channel carried times fall back to
	// the RFC3339 start/end fields.
	if date == "" && ev.Start != nil && len(ev.Start.DateTime) >= 10 {
		date = ev.Start.DateTime[:10]
	}
	if start == "" && ev.Start != nil && len(ev.Start.DateTime) >= 16 {
		start = ev.Start.DateTime[11:16]
	}
	if end == "" && ev.End != nil && len(ev.End.DateTime) >= 16 {
		end = ev.End.DateTime[11:16]
	}

	tr, err := models.NewTimeRange(date, start, end)
	if err != nil {
		return models.Booking{}, fmt.Errorf("event %s: %w", ev.Id, err)
	}

	ownerID := models.UnregisteredOwner
	if raw := shared[propUserID]; raw != "" && raw != unregisteredUserID {
		if parsed, perr := strconv.ParseInt(raw, 10, 64); perr == nil {
			ownerID = parsed
		}
	}

	return models.Booking{
		ID:           ev.Id,
		Facility:     shared[propFacility],
		Time:         tr,
		Description:  shared[propDesc],
		OwnerID:      ownerID,
		OwnerName:    shared[propPOCName],
		OwnerContact: shared[propUsername],
		Company:      shared[propCompany],
		HTMLLink:     ev.HtmlLink,
		Etag:         ev.Etag,
		EditLog:      parseEditLog(ev.Description),
	}, nil
}

// bookingToEvent builds the event body for an insert or patch. extraEdit,
// when non-empty, is appended to the embedded audit trail.
func (r *GCalBookingRepo) bookingToEvent(b *models.Booking, extraEdit string) *calendar.Event {
	ownerID := unregisteredUserID
	if b.OwnerID != models.UnregisteredOwner {
		ownerID = strconv.FormatInt(b.OwnerID, 10)
	}

	description := fmt.Sprintf("Activity: %s\nPOC: %s", b.Description, b.POC())
	editLog := b.EditLog
	if extraEdit != "" {
		editLog = append(append([]string{}, editLog...), extraEdit)
	}
	for _, stamp := range editLog {
		description += "\n" + editedPrefix + stamp
	}

	return &calendar.Event{
		Summary:     fmt.Sprintf("%s (%s)", b.Facility, b.Company),
		Description: description,
		ColorId:     r.colours[b.Facility],
		Start: &calendar.EventDateTime{
			DateTime: r.rfc3339(b.Time.Date, b.Time.Start),
			TimeZone: r.tzName,
		},
		End: &calendar.EventDateTime{
			DateTime: r.rfc3339(b.Time.Date, b.Time.End),
			TimeZone: r.tzName,
		},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Shared: map[string]string{
				propFacility:  b.Facility,
				propDate:      b.Time.Date,
				propStartTime: b.Time.Start,
				propEndTime:   b.Time.End,
				propDesc:      b.Description,
				propUserID:    ownerID,
				propUsername:  b.OwnerContact,
				propPOCName:   b.OwnerName,
				propCompany:   b.Company,
			},
		},
	}
}

// rfc3339 renders "date T time :00 offset" in the configured fixed zone.
func (r *GCalBookingRepo) rfc3339(date, clock string) string {
	return fmt.Sprintf("%sT%s:00%s", date, clock, r.utcOffset)
}

// parseEditLog extracts the audit-trail timestamps from a stored description.
func parseEditLog(description string) []string {
	var log []string
	for _, line := range strings.Split(description, "\n") {
		if strings.HasPrefix(line, editedPrefix) {
			log = append(log, strings.TrimPrefix(line, editedPrefix))
		}
	}
	return log
}
