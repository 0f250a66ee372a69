package models

// TimeSlot is a bookable window offered by the scheduling provider. Slots are
// fetched fresh on every availability request and never persisted.
type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	// InviteesRemaining is a capacity hint. Providers that do not expose
	// capacity get a backfilled value of 1.
	InviteesRemaining int `json:"invitees_remaining"`
}

// Booking is the provider's confirmation, normalized to one field set. The
// adapters rename provider fields into this shape but do not reshape the
// content otherwise.
type Booking struct {
	URI          string `json:"uri"`
	Status       string `json:"status"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	InviteeName  string `json:"invitee_name"`
	InviteeEmail string `json:"invitee_email,omitempty"`
}
