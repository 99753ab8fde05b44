package booking

import (
	"context"
	"reflect"
	"testing"
	"time"

	"facilitybot/models"
)

func tr(start, end string) models.TimeRange {
	return models.TimeRange{Date: "2053-01-25", Start: start, End: end}
}

func stored(id string, ownerID int64, start, end string) models.Booking {
	return models.Booking{ID: id, Facility: "LT 1", Time: tr(start, end), OwnerID: ownerID}
}

func TestFindConflictsFiltersAndPreservesOrder(t *testing.T) {
	repo := &mockBookingRepo{
		listByFacilityDate: staticBookings(
			stored("a", 1, "08:00", "09:00"),
			stored("b", 2, "09:30", "10:30"),
			stored("c", 3, "10:00", "11:00"),
			stored("d", 4, "12:00", "13:00"),
		),
	}
	r := &ConflictResolver{Repo: repo}

	conflicts, err := r.FindConflicts(context.Background(), "LT 1", tr("10:00", "12:00"), "")
	if err != nil {
		t.Fatalf("FindConflicts: %v", err)
	}
	var ids []string
	for _, c := range conflicts {
		ids = append(ids, c.ID)
	}
	if !reflect.DeepEqual(ids, []string{"b", "c"}) {
		t.Errorf("conflict ids = %v, want [b c]", ids)
	}
}

func TestFindConflictsExcludesMovedBooking(t *testing.T) {
	repo := &mockBookingRepo{
		listByFacilityDate: staticBookings(
			stored("moving", 1, "10:00", "11:00"),
		),
	}
	r := &ConflictResolver{Repo: repo}

	conflicts, err := r.FindConflicts(context.Background(), "LT 1", tr("10:00", "11:00"), "moving")
	if err != nil {
		t.Fatalf("FindConflicts: %v", err)
	}
	if len(conflicts) != 0 {
		t.Errorf("a move conflicted with itself: %v", conflicts)
	}
}

func TestListAvailableSlotsEmptyDayIsFullyFree(t *testing.T) {
	repo := &mockBookingRepo{listByFacilityDate: staticBookings()}
	r := &ConflictResolver{Repo: repo}

	now := time.Date(2053, 1, 20, 9, 0, 0, 0, time.UTC)
	slots, free, err := r.ListAvailableSlots(context.Background(), "LT 1", "2053-01-25", now)
	if err != nil {
		t.Fatalf("ListAvailableSlots: %v", err)
	}
	if !free || slots != nil {
		t.Errorf("got (%v, %v), want fully free", slots, free)
	}
}

func TestListAvailableSlotsFutureDateGaps(t *testing.T) {
	repo := &mockBookingRepo{
		listByFacilityDate: staticBookings(
			stored("a", 1, "09:00", "10:00"),
			stored("b", 2, "10:00", "11:00"),
			stored("c", 3, "14:00", "15:00"),
		),
	}
	r := &ConflictResolver{Repo: repo}

	now := time.Date(2053, 1, 20, 9, 0, 0, 0, time.UTC)
	slots, free, err := r.ListAvailableSlots(context.Background(), "LT 1", "2053-01-25", now)
	if err != nil {
		t.Fatalf("ListAvailableSlots: %v", err)
	}
	if free {
		t.Fatal("day with bookings reported fully free")
	}
	want := []models.TimeSlot{
		{Start: "00:00", End: "09:00"},
		{Start: "11:00", End: "14:00"},
		{Start: "15:00", End: "23:59"},
	}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("slots = %v, want %v", slots, want)
	}
}

func TestListAvailableSlotsTodayStartsFromNow(t *testing.T) {
	repo := &mockBookingRepo{
		listByFacilityDate: staticBookings(
			stored("past", 1, "08:00", "09:00"),
			stored("ongoing", 2, "09:30", "10:30"),
			stored("later", 3, "14:00", "15:00"),
		),
	}
	r := &ConflictResolver{Repo: repo}

	now := time.Date(2053, 1, 25, 10, 0, 0, 0, time.UTC)
	slots, free, err := r.ListAvailableSlots(context.Background(), "LT 1", "2053-01-25", now)
	if err != nil {
		t.Fatalf("ListAvailableSlots: %v", err)
	}
	if free {
		t.Fatal("busy day reported fully free")
	}
	want := []models.TimeSlot{
		{Start: "10:30", End: "14:00"},
		{Start: "15:00", End: "23:59"},
	}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("slots = %v, want %v", slots, want)
	}
}

func TestListAvailableSlotsTodayAllOver(t *testing.T) {
	repo := &mockBookingRepo{
		listByFacilityDate: staticBookings(
			stored("past", 1, "08:00", "09:00"),
		),
	}
	r := &ConflictResolver{Repo: repo}

	now := time.Date(2053, 1, 25, 12, 0, 0, 0, time.UTC)
	slots, free, err := r.ListAvailableSlots(context.Background(), "LT 1", "2053-01-25", now)
	if err != nil {
		t.Fatalf("ListAvailableSlots: %v", err)
	}
	if !free || slots != nil {
		t.Errorf("got (%v, %v), want fully free once all bookings ended", slots, free)
	}
}
