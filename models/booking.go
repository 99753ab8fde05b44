package models

// UnregisteredOwner is the sentinel owner ID for bookings entered by an admin
// on behalf of a user who has no profile.
const UnregisteredOwner int64 = 0

// Booking represents one facility reservation held in the calendar store.
// ID, HTMLLink and Etag are assigned by the store; a draft booking carries
// empty values for all three until it is persisted.
type Booking struct {
	ID           string    `json:"id"`
	Facility     string    `json:"facility"`
	Time         TimeRange `json:"time"`
	Description  string    `json:"description"`
	OwnerID      int64     `json:"owner_id"`
	OwnerName    string    `json:"owner_name"`
	OwnerContact string    `json:"owner_contact,omitempty"`
	Company      string    `json:"company"`
	HTMLLink     string    `json:"html_link,omitempty"`
	Etag         string    `json:"etag,omitempty"`

	// EditLog holds the audit trail of edit timestamps embedded in the
	// stored description. The store adapter maintains it on patch.
	EditLog []string `json:"edit_log,omitempty"`
}

// POC renders the point-of-contact line shown alongside a booking.
func (b Booking) POC() string {
	if b.Company == "" {
		return b.OwnerName
	}
	return b.OwnerName + " (" + b.Company + ")"
}

// Conflict pairs an overlapping booking with its ownership classification.
// Transient: recomputed on every mutation attempt, never persisted.
type Conflict struct {
	Booking Booking `json:"booking"`
	IsSelf  bool    `json:"is_self"`
}

// TimeSlot is one free window derived from a day's bookings.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
