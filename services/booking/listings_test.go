package booking

import (
	"context"
	"testing"
	"time"

	"facilitybot/models"
)

func TestUpcomingByFacilityGroups(t *testing.T) {
	repo := &mockBookingRepo{
		listByFacility: func(string) ([]models.Booking, error) {
			return []models.Booking{
				{ID: "ongoing", Time: models.TimeRange{Date: "2053-01-25", Start: "09:30", End: "10:30"}},
				{ID: "later", Time: models.TimeRange{Date: "2053-01-25", Start: "14:00", End: "15:00"}},
				{ID: "tomorrow", Time: models.TimeRange{Date: "2053-01-26", Start: "09:00", End: "10:00"}},
			}, nil
		},
	}
	e := newEngine(repo)

	now := time.Date(2053, 1, 25, 10, 0, 0, 0, time.UTC)
	got, err := e.UpcomingByFacility(context.Background(), "LT 1", now)
	if err != nil {
		t.Fatalf("UpcomingByFacility: %v", err)
	}
	if len(got.Ongoing) != 1 || got.Ongoing[0].ID != "ongoing" {
		t.Errorf("Ongoing = %+v", got.Ongoing)
	}
	if len(got.LaterToday) != 1 || got.LaterToday[0].ID != "later" {
		t.Errorf("LaterToday = %+v", got.LaterToday)
	}
	if len(got.AfterToday) != 1 || got.AfterToday[0].ID != "tomorrow" {
		t.Errorf("AfterToday = %+v", got.AfterToday)
	}
	if got.Empty() {
		t.Error("Empty() on a populated listing")
	}
	if all := got.All(); len(all) != 3 || all[0].ID != "ongoing" || all[2].ID != "tomorrow" {
		t.Errorf("All() = %+v", all)
	}
}

func TestUpcomingDropsEndedAndStale(t *testing.T) {
	repo := &mockBookingRepo{
		listByOwner: func(int64) ([]models.Booking, error) {
			return []models.Booking{
				{ID: "stale", Time: models.TimeRange{Date: "2053-01-24", Start: "09:00", End: "10:00"}},
				{ID: "ended", Time: models.TimeRange{Date: "2053-01-25", Start: "08:00", End: "09:00"}},
			}, nil
		},
	}
	e := newEngine(repo)

	now := time.Date(2053, 1, 25, 10, 0, 0, 0, time.UTC)
	got, err := e.UpcomingByOwner(context.Background(), 1, now)
	if err != nil {
		t.Fatalf("UpcomingByOwner: %v", err)
	}
	if !got.Empty() {
		t.Errorf("stale or ended bookings surfaced: %+v", got)
	}
}
