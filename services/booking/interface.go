package booking

import (
	"context"

	"facilitybot/models"
)

// OutcomeKind classifies a proposed booking.
type OutcomeKind string

const (
	// OutcomeClear means no conflicts; the candidate may be inserted.
	OutcomeClear OutcomeKind = "clear"
	// OutcomeDuplicate means the caller already holds an identical
	// booking; the resubmission is reported, not repeated.
	OutcomeDuplicate OutcomeKind = "duplicate"
	// OutcomeSelfConflict means the only conflict is the caller's own
	// booking at a different range; it may be moved instead.
	OutcomeSelfConflict OutcomeKind = "self_conflict"
	// OutcomeBlocked means at least one conflict belongs to someone else;
	// the candidate must be rejected.
	OutcomeBlocked OutcomeKind = "blocked"
)

// Outcome is the orchestrator's answer to a proposed booking.
type Outcome struct {
	Kind      OutcomeKind
	Conflicts []models.Conflict
	// Existing is the caller's own booking behind a Duplicate or
	// SelfConflict outcome.
	Existing *models.Booking
	// Alternate names a substitutable facility free at the same
	// date/range; only ever set alongside OutcomeBlocked.
	Alternate string
}

// ProposeRequest carries one candidate booking transaction.
type ProposeRequest struct {
	OwnerID  int64
	Facility string
	Time     models.TimeRange
	// ExcludeID is the ID of a booking being moved; it never conflicts
	// with itself.
	ExcludeID string
}

// BookingEngine sequences conflict resolution with store mutations. All
// methods are safe for concurrent use; state lives in per-call parameters
// and the remote store only.
type BookingEngine interface {
	Propose(ctx context.Context, req ProposeRequest) (*Outcome, error)
	CommitInsert(ctx context.Context, draft *models.Booking) (*models.Booking, error)
	CommitPatch(ctx context.Context, b *models.Booking) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID string) error
}
