package booking

import (
	"context"

	"facilitybot/models"
)

// mockBookingRepo implements the repository contract with per-test func
// fields and records mutation calls.
type mockBookingRepo struct {
	listByFacilityDate func(facility, date string) ([]models.Booking, error)
	listByOwner        func(ownerID int64) ([]models.Booking, error)
	listByFacility     func(facility string) ([]models.Booking, error)
	get                func(id string) (*models.Booking, error)

	inserted []models.Booking
	patched  []models.Booking
	deleted  []string

	insertErr error
	patchErr  error
	deleteErr error
}

func (m *mockBookingRepo) ListByFacilityDate(_ context.Context, facility, date string) ([]models.Booking, error) {
	return m.listByFacilityDate(facility, date)
}

func (m *mockBookingRepo) ListUpcomingByFacility(_ context.Context, facility string) ([]models.Booking, error) {
	return m.listByFacility(facility)
}

func (m *mockBookingRepo) ListUpcomingByOwner(_ context.Context, ownerID int64) ([]models.Booking, error) {
	return m.listByOwner(ownerID)
}

func (m *mockBookingRepo) Get(_ context.Context, id string) (*models.Booking, error) {
	return m.get(id)
}

func (m *mockBookingRepo) Insert(_ context.Context, b *models.Booking) (*models.Booking, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	m.inserted = append(m.inserted, *b)
	persisted := *b
	persisted.ID = "inserted-1"
	persisted.HTMLLink = "https://calendar.example/inserted-1"
	persisted.Etag = `"1"`
	return &persisted, nil
}

func (m *mockBookingRepo) Patch(_ context.Context, b *models.Booking) (*models.Booking, error) {
	if m.patchErr != nil {
		return nil, m.patchErr
	}
	m.patched = append(m.patched, *b)
	persisted := *b
	persisted.Etag = `"2"`
	return &persisted, nil
}

func (m *mockBookingRepo) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func staticBookings(bookings ...models.Booking) func(string, string) ([]models.Booking, error) {
	return func(string, string) ([]models.Booking, error) {
		return bookings, nil
	}
}
