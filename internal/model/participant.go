package model

import "time"

// Participant is a household member who takes part in chore and purchase
// rotations. Inactive participants keep their history but are skipped when
// the next assignee is computed.
type Participant struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	AvatarPath *string   `json:"avatar_path"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
