package booking

import (
	"context"
	"time"

	"facilitybot/models"
)

// UpcomingBookings buckets a listing the way the chat surface presents it.
type UpcomingBookings struct {
	Ongoing    []models.Booking
	LaterToday []models.Booking
	AfterToday []models.Booking
}

// Empty reports whether no ongoing or upcoming bookings exist.
func (u *UpcomingBookings) Empty() bool {
	return len(u.Ongoing) == 0 && len(u.LaterToday) == 0 && len(u.AfterToday) == 0
}

// All returns the buckets flattened, preserving chronological order.
func (u *UpcomingBookings) All() []models.Booking {
	all := make([]models.Booking, 0, len(u.Ongoing)+len(u.LaterToday)+len(u.AfterToday))
	all = append(all, u.Ongoing...)
	all = append(all, u.LaterToday...)
	all = append(all, u.AfterToday...)
	return all
}

// UpcomingByOwner lists the caller's ongoing and future bookings, grouped.
func (e *DefaultBookingEngine) UpcomingByOwner(ctx context.Context, ownerID int64, now time.Time) (*UpcomingBookings, error) {
	bookings, err := e.Repo.ListUpcomingByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return groupUpcoming(bookings, now), nil
}

// UpcomingByFacility lists a facility's ongoing and future bookings, grouped.
func (e *DefaultBookingEngine) UpcomingByFacility(ctx context.Context, facility string, now time.Time) (*UpcomingBookings, error) {
	bookings, err := e.Repo.ListUpcomingByFacility(ctx, facility)
	if err != nil {
		return nil, err
	}
	return groupUpcoming(bookings, now), nil
}

func groupUpcoming(bookings []models.Booking, now time.Time) *UpcomingBookings {
	today := now.Format(models.DateLayout)
	cur := now.Format(models.TimeLayout)

	grouped := &UpcomingBookings{}
	for _, b := range bookings {
		switch {
		case b.Time.Date < today:
			// Stale store entry; the upcoming queries should not
			// return these, but don't present them if they do.
		case b.Time.Date > today:
			grouped.AfterToday = append(grouped.AfterToday, b)
		case b.Time.EndsBy(cur):
			// Already over.
		case b.Time.StartsBy(cur):
			grouped.Ongoing = append(grouped.Ongoing, b)
		default:
			grouped.LaterToday = append(grouped.LaterToday, b)
		}
	}
	return grouped
}
