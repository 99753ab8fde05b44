package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"facilitybot/models"
)

// ErrVersionConflict reports that a conditional patch lost to a concurrent
// write (the stored event's etag no longer matches).
var ErrVersionConflict = errors.New("booking version conflict")

// ErrNotFound reports that the requested booking no longer exists in the
// store, typically because it was deleted after being listed.
var ErrNotFound = errors.New("booking not found")

// AdapterError wraps any transport, auth or quota failure from the calendar
// store. The engine treats all causes identically and never retries.
type AdapterError struct {
	Op  string
	Err error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("calendar %s: %v", e.Op, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }

// BookingRepository is the narrow contract the conflict engine depends on.
// The remote calendar is the single source of truth; implementations hold no
// booking state of their own. Every call may block on network I/O and honours
// ctx cancellation.
type BookingRepository interface {
	// ListByFacilityDate returns all bookings for one facility on one
	// date, ordered by start time ascending.
	ListByFacilityDate(ctx context.Context, facility, date string) ([]models.Booking, error)
	// ListUpcomingByFacility returns ongoing and future bookings for a
	// facility, ordered by start time ascending.
	ListUpcomingByFacility(ctx context.Context, facility string) ([]models.Booking, error)
	// ListUpcomingByOwner returns ongoing and future bookings made by the
	// given user, ordered by start time ascending.
	ListUpcomingByOwner(ctx context.Context, ownerID int64) ([]models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	// Insert persists a draft and returns it with ID, HTMLLink and Etag set.
	Insert(ctx context.Context, b *models.Booking) (*models.Booking, error)
	// Patch rewrites a persisted booking's facility, time range and
	// description, preserving ID and owner identity. When the booking
	// carries an Etag the write is conditional and a lost race surfaces
	// as ErrVersionConflict.
	Patch(ctx context.Context, b *models.Booking) (*models.Booking, error)
	Delete(ctx context.Context, id string) error
}
