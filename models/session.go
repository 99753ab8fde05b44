package models

// Wizard commands. A chat runs at most one wizard at a time.
const (
	WizardBook    = "book"
	WizardChange  = "change"
	WizardCheck   = "check"
	WizardProfile = "profile"
	WizardAdmin   = "admin"
)

// WizardStage identifies the single prompt a wizard is waiting on.
type WizardStage string

const (
	// /book stages.
	StageFacility    WizardStage = "facility"
	StageDate        WizardStage = "date"
	StageTimeRange   WizardStage = "time_range"
	StageDescription WizardStage = "description"
	StagePatchOffer  WizardStage = "patch_offer"
	StageConfirm     WizardStage = "confirm"

	// /change stages.
	StagePickBooking   WizardStage = "pick_booking"
	StagePickAction    WizardStage = "pick_action"
	StagePickField     WizardStage = "pick_field"
	StageNewFacility   WizardStage = "new_facility"
	StageNewDate       WizardStage = "new_date"
	StageNewTimeRange  WizardStage = "new_time_range"
	StageNewDesc       WizardStage = "new_description"
	StageConfirmChange WizardStage = "confirm_change"
	StageConfirmDelete WizardStage = "confirm_delete"

	// /check stage.
	StagePickFacility WizardStage = "pick_facility"

	// /profile stages.
	StageRankName WizardStage = "rank_name"
	StageCompany  WizardStage = "company"

	// /admin stage.
	StageAdminDetails WizardStage = "admin_details"
)

// BookingDraft carries the candidate parameters collected so far. The draft
// survives commit failures so the identical transaction can be resubmitted
// without re-entering anything.
type BookingDraft struct {
	TxID        string     `json:"tx_id"`
	Facility    string     `json:"facility,omitempty"`
	Date        string     `json:"date,omitempty"`
	Time        *TimeRange `json:"time,omitempty"`
	Description string     `json:"description,omitempty"`

	// Set when the draft books on behalf of someone else (/admin).
	OnBehalfName    string `json:"on_behalf_name,omitempty"`
	OnBehalfCompany string `json:"on_behalf_company,omitempty"`
}

// Session is the explicit dialog state for one chat. Each transition builds
// a fresh value and stores it wholesale; only the fields meaningful for the
// current stage are populated.
type Session struct {
	Wizard string       `json:"wizard"`
	Stage  WizardStage  `json:"stage"`
	Draft  BookingDraft `json:"draft"`

	// Original is the persisted booking being moved or deleted; nil for a
	// plain create. Its ID doubles as the resolver's self-exclusion key.
	Original *Booking `json:"original,omitempty"`

	// PendingPatch marks that confirmation commits a patch, not an insert.
	PendingPatch bool `json:"pending_patch,omitempty"`

	// ChangedField names the field the /change wizard is editing.
	ChangedField string `json:"changed_field,omitempty"`

	// Profile is the in-progress registration for the /profile wizard.
	Profile *UserProfile `json:"profile,omitempty"`
}

// Advance returns a copy of the session moved to the given stage. Session
// values are immutable from the handlers' point of view; every transition
// goes through Advance or a fresh literal.
func (s Session) Advance(stage WizardStage) Session {
	s.Stage = stage
	return s
}
