package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "facilitybot/database/repository/booking"
	"facilitybot/models"
)

// ConflictResolver computes overlap sets for candidate bookings. Read-only:
// every call re-reads the store, no booking state is cached across calls.
type ConflictResolver struct {
	Repo bookingRepo.BookingRepository
}

// FindConflicts returns the stored bookings for (facility, date) whose time
// ranges overlap the candidate, in store order (start time ascending).
// excludeID, when non-empty, drops the booking being moved from the result;
// a move must not conflict with itself. Classification is the caller's job.
func (r *ConflictResolver) FindConflicts(ctx context.Context, facility string, tr models.TimeRange, excludeID string) ([]models.Booking, error) {
	existing, err := r.Repo.ListByFacilityDate(ctx, facility, tr.Date)
	if err != nil {
		return nil, fmt.Errorf("find conflicts for %s on %s: %w", facility, tr.Date, err)
	}

	var conflicts []models.Booking
	for _, b := range existing {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if tr.Overlaps(b.Time) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts, nil
}

// ListAvailableSlots derives the free windows for a facility on a date by
// walking its bookings in start-time order: the gap before the first booking
// (from now when the date is today, else from midnight), the gap between each
// consecutive pair, and the trailing gap to end of day. Zero and negative
// gaps are omitted. The boolean result is true when the facility is fully
// available and no slot list applies.
func (r *ConflictResolver) ListAvailableSlots(ctx context.Context, facility, date string, now time.Time) ([]models.TimeSlot, bool, error) {
	bookings, err := r.Repo.ListByFacilityDate(ctx, facility, date)
	if err != nil {
		return nil, false, fmt.Errorf("list slots for %s on %s: %w", facility, date, err)
	}
	if len(bookings) == 0 {
		return nil, true, nil
	}

	var slots []models.TimeSlot
	var slotStart string
	idx := 0

	if date == now.Format(models.DateLayout) {
		cur := now.Format(models.TimeLayout)
		found := false
		for i, b := range bookings {
			if b.Time.Start < cur && !b.Time.EndsBy(cur) {
				// Ongoing: next slot starts when it ends.
				slotStart = b.Time.End
				idx = i + 1
				found = true
				break
			}
			if b.Time.Start > cur {
				// Upcoming: the remainder of the day opens now.
				slots = append(slots, models.TimeSlot{Start: cur, End: b.Time.Start})
				slotStart = b.Time.End
				idx = i + 1
				found = true
				break
			}
		}
		if !found {
			// Every booking has already ended; rest of today is free.
			return nil, true, nil
		}
	} else {
		first := bookings[0]
		if first.Time.Start == "00:00" {
			slotStart = first.Time.End
		} else {
			slots = append(slots, models.TimeSlot{Start: "00:00", End: first.Time.Start})
			slotStart = first.Time.End
		}
		idx = 1
	}

	for _, b := range bookings[idx:] {
		if slotStart < b.Time.Start {
			slots = append(slots, models.TimeSlot{Start: slotStart, End: b.Time.Start})
		}
		if b.Time.End > slotStart {
			slotStart = b.Time.End
		}
	}
	if slotStart < "23:59" {
		slots = append(slots, models.TimeSlot{Start: slotStart, End: "23:59"})
	}
	return slots, false, nil
}
