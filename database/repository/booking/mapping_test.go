package bookingRepo

import (
	"reflect"
	"testing"

	"facilitybot/models"

	"google.golang.org/api/calendar/v3"
)

func testRepo() *GCalBookingRepo {
	return &GCalBookingRepo{
		calendarID: "primary",
		tzName:     "Asia/Singapore",
		utcOffset:  "+08:00",
		colours:    map[string]string{"LT 1": "1"},
	}
}

func sampleBooking() models.Booking {
	return models.Booking{
		ID:       "ev1",
		Facility: "LT 1",
		Time: models.TimeRange{
			Date: "2053-01-25", Start: "09:00", End: "10:30",
		},
		Description:  "Range briefing",
		OwnerID:      42,
		OwnerName:    "CPT TAN AH KOW",
		OwnerContact: "tanahkow",
		Company:      "ALPHA",
	}
}

func TestBookingEventRoundTrip(t *testing.T) {
	r := testRepo()
	b := sampleBooking()

	ev := r.bookingToEvent(&b, "")
	ev.Id = b.ID
	ev.Etag = `"etag1"`
	ev.HtmlLink = "https://calendar.example/ev1"

	got, err := eventToBooking(ev)
	if err != nil {
		t.Fatalf("eventToBooking: %v", err)
	}

	want := b
	want.Etag = `"etag1"`
	want.HTMLLink = "https://calendar.example/ev1"
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestBookingToEventBody(t *testing.T) {
	r := testRepo()
	b := sampleBooking()

	ev := r.bookingToEvent(&b, "")
	if ev.Summary != "LT 1 (ALPHA)" {
		t.Errorf("Summary = %q", ev.Summary)
	}
	if ev.ColorId != "1" {
		t.Errorf("ColorId = %q", ev.ColorId)
	}
	if ev.Start.DateTime != "2053-01-25T09:00:00+08:00" {
		t.Errorf("Start = %q", ev.Start.DateTime)
	}
	if ev.End.DateTime != "2053-01-25T10:30:00+08:00" {
		t.Errorf("End = %q", ev.End.DateTime)
	}
	if ev.Description != "Activity: Range briefing\nPOC: CPT TAN AH KOW (ALPHA)" {
		t.Errorf("Description = %q", ev.Description)
	}
}

func TestBookingToEventAppendsEditStamp(t *testing.T) {
	r := testRepo()
	b := sampleBooking()
	b.EditLog = []string{"2053-01-20 08:00"}

	ev := r.bookingToEvent(&b, "2053-01-21 09:30")
	wantDesc := "Activity: Range briefing\nPOC: CPT TAN AH KOW (ALPHA)\n" +
		"Edited: 2053-01-20 08:00\nEdited: 2053-01-21 09:30"
	if ev.Description != wantDesc {
		t.Errorf("Description = %q, want %q", ev.Description, wantDesc)
	}
	// The input booking's log must not be mutated.
	if len(b.EditLog) != 1 {
		t.Errorf("EditLog mutated: %v", b.EditLog)
	}

	got, err := eventToBooking(ev)
	if err != nil {
		t.Fatalf("eventToBooking: %v", err)
	}
	if !reflect.DeepEqual(got.EditLog, []string{"2053-01-20 08:00", "2053-01-21 09:30"}) {
		t.Errorf("EditLog = %v", got.EditLog)
	}
}

func TestEventToBookingUnregisteredOwner(t *testing.T) {
	r := testRepo()
	b := sampleBooking()
	b.OwnerID = models.UnregisteredOwner
	b.OwnerContact = ""

	ev := r.bookingToEvent(&b, "")
	if ev.ExtendedProperties.Shared["user_id"] != "unregistered" {
		t.Errorf("user_id = %q, want unregistered sentinel",
			ev.ExtendedProperties.Shared["user_id"])
	}

	got, err := eventToBooking(ev)
	if err != nil {
		t.Fatalf("eventToBooking: %v", err)
	}
	if got.OwnerID != models.UnregisteredOwner {
		t.Errorf("OwnerID = %d, want unregistered", got.OwnerID)
	}
}

func TestEventToBookingFallsBackToEventTimes(t *testing.T) {
	ev := &calendar.Event{
		Id:    "legacy",
		Start: &calendar.EventDateTime{DateTime: "2053-01-25T09:00:00+08:00"},
		End:   &calendar.EventDateTime{DateTime: "2053-01-25T10:30:00+08:00"},
	}
	got, err := eventToBooking(ev)
	if err != nil {
		t.Fatalf("eventToBooking: %v", err)
	}
	want := models.TimeRange{Date: "2053-01-25", Start: "09:00", End: "10:30"}
	if got.Time != want {
		t.Errorf("Time = %+v, want %+v", got.Time, want)
	}
}

func TestEventToBookingRejectsUnmappable(t *testing.T) {
	if _, err := eventToBooking(&calendar.Event{Id: "junk"}); err == nil {
		t.Error("event without any times was accepted")
	}
}
