package model

import "time"

// TaskKind distinguishes recurring chores from recurring purchases. The two
// share a schema and scheduling rules; only the completion metadata differs.
type TaskKind string

const (
	KindChore    TaskKind = "chore"
	KindPurchase TaskKind = "purchase"
)

// ValidKind reports whether k is one of the known task kinds.
func ValidKind(k TaskKind) bool {
	return k == KindChore || k == KindPurchase
}

// Task is a recurring household task: a chore to do or an item to restock.
// NextAssigneeID is the rotation pointer; nil means unassigned. NextDueDate
// is nil until the task has been scheduled.
type Task struct {
	ID             string     `json:"id"`
	Kind           TaskKind   `json:"kind"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	FrequencyDays  int        `json:"frequency_days"`
	NextDueDate    *time.Time `json:"next_due_date"`
	NextAssigneeID *string    `json:"next_assignee_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
