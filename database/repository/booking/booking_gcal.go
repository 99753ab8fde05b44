package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"facilitybot/config"
	"facilitybot/models"
	"facilitybot/utils"

	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

// GCalBookingRepo implements BookingRepository against a shared Google
// Calendar. The calendar owns booking identity; this type keeps no state
// between calls.
type GCalBookingRepo struct {
	svc        *calendar.Service
	calendarID string
	tzName     string
	utcOffset  string
	loc        *time.Location
	colours    map[string]string
}

// NewGCalBookingRepo creates a BookingRepository over the given Calendar API
// client, configured from AppConfig.
func NewGCalBookingRepo(svc *calendar.Service) BookingRepository {
	return &GCalBookingRepo{
		svc:        svc,
		calendarID: config.AppConfig.CalendarID,
		tzName:     config.AppConfig.CalendarTimeZone,
		utcOffset:  fmt.Sprintf("%+03d:00", config.AppConfig.UTCOffsetHours),
		loc:        config.Location(),
		colours:    config.AppConfig.FacilityColours,
	}
}

func (r *GCalBookingRepo) wrap(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 412:
			err = fmt.Errorf("%w: %v", ErrVersionConflict, gerr)
		case 404, 410:
			err = fmt.Errorf("%w: %v", ErrNotFound, gerr)
		}
	}
	return &AdapterError{Op: op, Err: err}
}

// collect maps a list response, skipping events this bot did not create.
func collect(items []*calendar.Event) []models.Booking {
	logger := utils.GetLogger()
	bookings := make([]models.Booking, 0, len(items))
	for _, ev := range items {
		b, err := eventToBooking(ev)
		if err != nil {
			logger.Warn("skipping unmappable calendar event",
				zap.String("eventID", ev.Id), zap.Error(err))
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings
}

func (r *GCalBookingRepo) ListByFacilityDate(ctx context.Context, facility, date string) ([]models.Booking, error) {
	// singleEvents is required for orderBy=startTime; the resolver and the
	// slot walk both assume that ordering.
	resp, err := r.svc.Events.List(r.calendarID).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(r.rfc3339(date, "00:00")).
		TimeMax(fmt.Sprintf("%sT23:59:59%s", date, r.utcOffset)).
		SharedExtendedProperty(propFacility + "=" + facility).
		Context(ctx).Do()
	if err != nil {
		return nil, r.wrap("list", err)
	}
	return collect(resp.Items), nil
}

func (r *GCalBookingRepo) ListUpcomingByFacility(ctx context.Context, facility string) ([]models.Booking, error) {
	resp, err := r.svc.Events.List(r.calendarID).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(time.Now().In(r.loc).Format(time.RFC3339)).
		SharedExtendedProperty(propFacility + "=" + facility).
		Context(ctx).Do()
	if err != nil {
		return nil, r.wrap("list", err)
	}
	return collect(resp.Items), nil
}

func (r *GCalBookingRepo) ListUpcomingByOwner(ctx context.Context, ownerID int64) ([]models.Booking, error) {
	resp, err := r.svc.Events.List(r.calendarID).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(time.Now().In(r.loc).Format(time.RFC3339)).
		SharedExtendedProperty(propUserID + "=" + strconv.FormatInt(ownerID, 10)).
		Context(ctx).Do()
	if err != nil {
		return nil, r.wrap("list", err)
	}
	return collect(resp.Items), nil
}

func (r *GCalBookingRepo) Get(ctx context.Context, id string) (*models.Booking, error) {
	ev, err := r.svc.Events.Get(r.calendarID, id).Context(ctx).Do()
	if err != nil {
		return nil, r.wrap("get", err)
	}
	b, err := eventToBooking(ev)
	if err != nil {
		return nil, r.wrap("get", err)
	}
	return &b, nil
}

func (r *GCalBookingRepo) Insert(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	created, err := r.svc.Events.Insert(r.calendarID, r.bookingToEvent(b, "")).Context(ctx).Do()
	if err != nil {
		return nil, r.wrap("insert", err)
	}
	persisted := *b
	persisted.ID = created.Id
	persisted.HTMLLink = created.HtmlLink
	persisted.Etag = created.Etag
	return &persisted, nil
}

func (r *GCalBookingRepo) Patch(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	stamp := time.Now().In(r.loc).Format("2006-01-02 15:04")
	call := r.svc.Events.Patch(r.calendarID, b.ID, r.bookingToEvent(b, stamp))
	if b.Etag != "" {
		// Conditional write: a concurrent edit to the same event turns
		// into ErrVersionConflict instead of a silent lost update.
		call.Header().Set("If-Match", b.Etag)
	}
	patched, err := call.Context(ctx).Do()
	if err != nil {
		return nil, r.wrap("patch", err)
	}
	persisted := *b
	persisted.EditLog = append(append([]string{}, b.EditLog...), stamp)
	persisted.HTMLLink = patched.HtmlLink
	persisted.Etag = patched.Etag
	return &persisted, nil
}

func (r *GCalBookingRepo) Delete(ctx context.Context, id string) error {
	if err := r.svc.Events.Delete(r.calendarID, id).Context(ctx).Do(); err != nil {
		return r.wrap("delete", err)
	}
	return nil
}
