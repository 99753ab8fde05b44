package booking

import (
	"context"
	"fmt"

	bookingRepo "facilitybot/database/repository/booking"
	"facilitybot/models"

	"go.uber.org/zap"
)

// DefaultBookingEngine is the production conflict/mutation engine. It holds
// no mutable state; concurrent transactions share only the remote store.
//
// There is a deliberate read-then-write window between Propose and the
// Commit* calls: two concurrent proposals for overlapping ranges can both
// see Clear and both commit. The calendar offers no compare-and-swap on
// insert, so the engine does not pretend otherwise; the etag condition on
// patch is the only guard the store supports.
type DefaultBookingEngine struct {
	Resolver *ConflictResolver
	Repo     bookingRepo.BookingRepository
	// Facilities is the configured facility set; proposals outside it are
	// rejected before touching the store.
	Facilities []string
	// Alternates maps a facility to the one suggested when it is blocked.
	Alternates map[string]string
	Logger     *zap.Logger
}

func (e *DefaultBookingEngine) knownFacility(name string) bool {
	for _, f := range e.Facilities {
		if f == name {
			return true
		}
	}
	return false
}

// Propose checks a candidate booking against the store and classifies the
// result. Read-only: no mutation happens here regardless of outcome.
//
// The duplicate check runs before general blocked classification, so an
// identical resubmission is always reported as Duplicate rather than as a
// conflict with a third party.
func (e *DefaultBookingEngine) Propose(ctx context.Context, req ProposeRequest) (*Outcome, error) {
	if !e.knownFacility(req.Facility) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFacility, req.Facility)
	}

	conflicts, err := e.Resolver.FindConflicts(ctx, req.Facility, req.Time, req.ExcludeID)
	if err != nil {
		return nil, err
	}

	if len(conflicts) == 0 {
		return &Outcome{Kind: OutcomeClear}, nil
	}

	if len(conflicts) == 1 && conflicts[0].OwnerID == req.OwnerID {
		own := conflicts[0]
		if own.Time.Equal(req.Time) {
			return &Outcome{
				Kind:      OutcomeDuplicate,
				Conflicts: []models.Conflict{{Booking: own, IsSelf: true}},
				Existing:  &own,
			}, nil
		}
		return &Outcome{
			Kind:      OutcomeSelfConflict,
			Conflicts: []models.Conflict{{Booking: own, IsSelf: true}},
			Existing:  &own,
		}, nil
	}

	outcome := &Outcome{Kind: OutcomeBlocked}
	for _, b := range conflicts {
		outcome.Conflicts = append(outcome.Conflicts, models.Conflict{
			Booking: b,
			IsSelf:  b.OwnerID == req.OwnerID,
		})
	}
	outcome.Alternate = e.suggestAlternate(ctx, req)
	return outcome, nil
}

// suggestAlternate checks whether the configured substitute facility is free
// for the same date and range. A lookup failure only suppresses the
// suggestion; the Blocked outcome stands either way.
func (e *DefaultBookingEngine) suggestAlternate(ctx context.Context, req ProposeRequest) string {
	alt := e.Alternates[req.Facility]
	if alt == "" {
		return ""
	}
	altConflicts, err := e.Resolver.FindConflicts(ctx, alt, req.Time, "")
	if err != nil {
		if e.Logger != nil {
			e.Logger.Warn("alternate facility check failed",
				zap.String("facility", alt), zap.Error(err))
		}
		return ""
	}
	if len(altConflicts) == 0 {
		return alt
	}
	return ""
}

// CommitInsert persists a Clear candidate. Any adapter failure, including
// cancellation, surfaces as *CommitError; the caller may resubmit the same
// draft, which recomputes conflicts fresh rather than trusting prior state.
func (e *DefaultBookingEngine) CommitInsert(ctx context.Context, draft *models.Booking) (*models.Booking, error) {
	persisted, err := e.Repo.Insert(ctx, draft)
	if err != nil {
		return nil, &CommitError{Op: "insert", Err: err}
	}
	if e.Logger != nil {
		e.Logger.Info("booking committed",
			zap.String("bookingID", persisted.ID),
			zap.String("facility", persisted.Facility),
			zap.String("range", persisted.Time.String()),
			zap.Int64("ownerID", persisted.OwnerID))
	}
	return persisted, nil
}

// CommitPatch moves or edits an existing booking, preserving its ID and
// owner. A version conflict from the store's etag check comes back as a
// *CommitError wrapping bookingRepo.ErrVersionConflict; the caller should
// re-propose rather than retry blindly.
func (e *DefaultBookingEngine) CommitPatch(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	persisted, err := e.Repo.Patch(ctx, b)
	if err != nil {
		return nil, &CommitError{Op: "patch", Err: err}
	}
	if e.Logger != nil {
		e.Logger.Info("booking updated",
			zap.String("bookingID", persisted.ID),
			zap.String("facility", persisted.Facility),
			zap.String("range", persisted.Time.String()))
	}
	return persisted, nil
}

// Cancel deletes a booking. Ownership is the caller's responsibility; the
// engine only performs the mutation.
func (e *DefaultBookingEngine) Cancel(ctx context.Context, bookingID string) error {
	if err := e.Repo.Delete(ctx, bookingID); err != nil {
		return &CommitError{Op: "delete", Err: err}
	}
	if e.Logger != nil {
		e.Logger.Info("booking deleted", zap.String("bookingID", bookingID))
	}
	return nil
}
