package model

import "time"

// CompletionEvent records one completion of a chore or one logged purchase.
// Rows are immutable once written, except that ParticipantID is nulled if
// the participant is later hard-deleted. Deleting the parent task cascades
// to its events; deleting a participant never does.
type CompletionEvent struct {
	ID            string    `json:"id"`
	TaskID        string    `json:"task_id"`
	ParticipantID *string   `json:"participant_id"`
	CompletedAt   time.Time `json:"completed_at"`
	WasLate       bool      `json:"was_late"`
	Backdated     bool      `json:"backdated"`

	// Chore metadata.
	DurationMinutes int `json:"duration_minutes"`

	// Purchase metadata. Price is kept in cents to avoid float drift.
	Quantity        int `json:"quantity"`
	TotalPriceCents int `json:"total_price_cents"`

	Comments string `json:"comments"`
}
