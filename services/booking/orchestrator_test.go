package booking

import (
	"context"
	"errors"
	"testing"

	bookingRepo "facilitybot/database/repository/booking"
	"facilitybot/models"
)

func newEngine(repo *mockBookingRepo) *DefaultBookingEngine {
	return &DefaultBookingEngine{
		Resolver:   &ConflictResolver{Repo: repo},
		Repo:       repo,
		Facilities: []string{"LT 1", "LT 2"},
		Alternates: map[string]string{"LT 1": "LT 2", "LT 2": "LT 1"},
	}
}

func propose(t *testing.T, e *DefaultBookingEngine, ownerID int64, start, end string) *Outcome {
	t.Helper()
	outcome, err := e.Propose(context.Background(), ProposeRequest{
		OwnerID:  ownerID,
		Facility: "LT 1",
		Time:     tr(start, end),
	})
	if err != nil {
		t.Fatalf("Propose: %v", err)
	}
	return outcome
}

func TestProposeUnknownFacility(t *testing.T) {
	e := newEngine(&mockBookingRepo{listByFacilityDate: staticBookings()})
	_, err := e.Propose(context.Background(), ProposeRequest{
		OwnerID: 1, Facility: "BROOM CUPBOARD", Time: tr("09:00", "10:00"),
	})
	if !errors.Is(err, ErrUnknownFacility) {
		t.Errorf("err = %v, want ErrUnknownFacility", err)
	}
}

func TestProposeBackToBackIsClear(t *testing.T) {
	repo := &mockBookingRepo{listByFacilityDate: staticBookings(
		stored("a", 2, "10:00", "12:00"),
	)}
	e := newEngine(repo)

	outcome := propose(t, e, 1, "12:00", "13:00")
	if outcome.Kind != OutcomeClear {
		t.Errorf("back-to-back proposal = %s, want clear", outcome.Kind)
	}
}

func TestProposeExactGapIsClear(t *testing.T) {
	repo := &mockBookingRepo{listByFacilityDate: staticBookings(
		stored("a", 2, "09:00", "10:00"),
		stored("b", 3, "11:00", "12:00"),
	)}
	e := newEngine(repo)

	outcome := propose(t, e, 1, "10:00", "11:00")
	if outcome.Kind != OutcomeClear {
		t.Errorf("exact-gap proposal = %s, want clear", outcome.Kind)
	}
}

func TestProposeInsideOtherOwnersBookingIsBlocked(t *testing.T) {
	repo := &mockBookingRepo{listByFacilityDate: staticBookings(
		stored("a", 2, "09:00", "12:00"),
	)}
	e := newEngine(repo)

	outcome := propose(t, e, 1, "10:00", "11:00")
	if outcome.Kind != OutcomeBlocked {
		t.Fatalf("contained proposal = %s, want blocked", outcome.Kind)
	}
	if len(outcome.Conflicts) != 1 || outcome.Conflicts[0].IsSelf {
		t.Errorf("conflicts = %+v, want one non-self conflict", outcome.Conflicts)
	}
}

func TestProposeIdenticalOwnBookingIsDuplicate(t *testing.T) {
	repo := &mockBookingRepo{listByFacilityDate: staticBookings(
		stored("mine", 1, "10:00", "11:00"),
	)}
	e := newEngine(repo)

	outcome := propose(t, e, 1, "10:00", "11:00")
	if outcome.Kind != OutcomeDuplicate {
		t.Fatalf("identical resubmission = %s, want duplicate", outcome.Kind)
	}
	if outcome.Existing == nil || outcome.Existing.ID != "mine" {
		t.Errorf("Existing = %+v, want the stored booking", outcome.Existing)
	}
}

func TestProposePartialOwnOverlapIsSelfConflict(t *testing.T) {
	repo := &mockBookingRepo{listByFacilityDate: staticBookings(
		stored("mine", 1, "10:00", "11:00"),
	)}
	e := newEngine(repo)

	outcome := propose(t, e, 1, "10:30", "11:30")
	if outcome.Kind != OutcomeSelfConflict {
		t.Fatalf("partial self overlap = %s, want self_conflict", outcome.Kind)
	}
	if outcome.Existing == nil || outcome.Existing.ID != "mine" {
		t.Errorf("Existing = %+v, want the stored booking", outcome.Existing)
	}
	if len(outcome.Conflicts) != 1 || !outcome.Conflicts[0].IsSelf {
		t.Errorf("conflicts = %+v, want one self conflict", outcome.Conflicts)
	}
}

func TestProposeMixedConflictsAreBlocked(t *testing.T) {
	// Even when one of the overlapping bookings is the caller's own, a
	// second party in the set blocks the whole proposal.
	repo := &mockBookingRepo{listByFacilityDate: staticBookings(
		stored("mine", 1, "10:00", "11:00"),
		stored("theirs", 2, "11:00", "13:00"),
	)}
	e := newEngine(repo)

	outcome := propose(t, e, 1, "10:30", "12:00")
	if outcome.Kind != OutcomeBlocked {
		t.Fatalf("mixed conflicts = %s, want blocked", outcome.Kind)
	}
	if len(outcome.Conflicts) != 2 {
		t.Fatalf("conflicts = %+v, want both bookings", outcome.Conflicts)
	}
	if !outcome.Conflicts[0].IsSelf || outcome.Conflicts[1].IsSelf {
		t.Errorf("ownership flags = %+v", outcome.Conflicts)
	}
}

func TestProposeNeverMutates(t *testing.T) {
	repo := &mockBookingRepo{listByFacilityDate: staticBookings(
		stored("a", 2, "09:00", "12:00"),
	)}
	e := newEngine(repo)

	propose(t, e, 1, "10:00", "11:00")
	if len(repo.inserted)+len(repo.patched)+len(repo.deleted) != 0 {
		t.Error("Propose touched the store")
	}
}

func TestProposeSuggestsFreeAlternate(t *testing.T) {
	repo := &mockBookingRepo{
		listByFacilityDate: func(facility, date string) ([]models.Booking, error) {
			if facility == "LT 1" {
				return []models.Booking{stored("a", 2, "09:00", "12:00")}, nil
			}
			return nil, nil
		},
	}
	e := newEngine(repo)

	outcome := propose(t, e, 1, "10:00", "11:00")
	if outcome.Kind != OutcomeBlocked {
		t.Fatalf("outcome = %s, want blocked", outcome.Kind)
	}
	if outcome.Alternate != "LT 2" {
		t.Errorf("Alternate = %q, want LT 2", outcome.Alternate)
	}
}

func TestProposeNoAlternateWhenBusy(t *testing.T) {
	repo := &mockBookingRepo{
		listByFacilityDate: staticBookings(stored("a", 2, "09:00", "12:00")),
	}
	e := newEngine(repo)

	outcome := propose(t, e, 1, "10:00", "11:00")
	if outcome.Alternate != "" {
		t.Errorf("Alternate = %q, want none when both facilities are busy", outcome.Alternate)
	}
}

func TestCommitInsertWrapsAdapterFailure(t *testing.T) {
	repo := &mockBookingRepo{insertErr: errors.New("quota exhausted")}
	e := newEngine(repo)

	_, err := e.CommitInsert(context.Background(), &models.Booking{
		Facility: "LT 1", Time: tr("09:00", "10:00"), OwnerID: 1,
	})
	var commitErr *CommitError
	if !errors.As(err, &commitErr) {
		t.Fatalf("err = %v, want *CommitError", err)
	}
	if commitErr.Op != "insert" {
		t.Errorf("Op = %q, want insert", commitErr.Op)
	}
}

func TestCommitPatchSurfacesVersionConflict(t *testing.T) {
	repo := &mockBookingRepo{patchErr: &bookingRepo.AdapterError{
		Op: "patch", Err: bookingRepo.ErrVersionConflict,
	}}
	e := newEngine(repo)

	_, err := e.CommitPatch(context.Background(), &models.Booking{ID: "mine"})
	if !errors.Is(err, bookingRepo.ErrVersionConflict) {
		t.Errorf("err = %v, want wrapped ErrVersionConflict", err)
	}
	var commitErr *CommitError
	if !errors.As(err, &commitErr) {
		t.Errorf("err = %v, want *CommitError", err)
	}
}

func TestCommitPatchPreservesIdentity(t *testing.T) {
	repo := &mockBookingRepo{}
	e := newEngine(repo)

	moved := models.Booking{
		ID:       "mine",
		Facility: "LT 1",
		Time:     tr("14:00", "15:00"),
		OwnerID:  1,
	}
	persisted, err := e.CommitPatch(context.Background(), &moved)
	if err != nil {
		t.Fatalf("CommitPatch: %v", err)
	}
	if persisted.ID != "mine" || persisted.OwnerID != 1 {
		t.Errorf("identity changed: %+v", persisted)
	}
	if len(repo.patched) != 1 || repo.patched[0].ID != "mine" {
		t.Errorf("patched = %+v", repo.patched)
	}
}

func TestCancelDeletes(t *testing.T) {
	repo := &mockBookingRepo{}
	e := newEngine(repo)

	if err := e.Cancel(context.Background(), "mine"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "mine" {
		t.Errorf("deleted = %v, want [mine]", repo.deleted)
	}
}
