package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mfenwick/rota/internal/model"
	"github.com/mfenwick/rota/internal/rotation"
	"github.com/mfenwick/rota/internal/schedule"
)

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

const taskCols = `id, kind, name, description, frequency_days, next_due_date, next_assignee_id, created_at, updated_at`

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	var due sql.NullTime
	var assignee sql.NullString
	err := scanner.Scan(
		&t.ID, &t.Kind, &t.Name, &t.Description, &t.FrequencyDays,
		&due, &assignee, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if due.Valid {
		t.NextDueDate = &due.Time
	}
	if assignee.Valid {
		t.NextAssigneeID = &assignee.String
	}
	return &t, nil
}

// Create persists a new recurring task. When assigneeID is nil the first
// active participant by name gets the initial pointer (the task starts
// unassigned if nobody is active). The first due date is one full interval
// after creation, never "due immediately".
func (s *TaskStore) Create(kind model.TaskKind, name, description string, frequencyDays int, assigneeID *string) (*model.Task, error) {
	if !model.ValidKind(kind) {
		return nil, fmt.Errorf("task kind %q: %w", kind, ErrInvalidInput)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("task name is required: %w", ErrInvalidInput)
	}
	if frequencyDays < 1 {
		frequencyDays = 1
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if assigneeID == nil {
		participants, err := listParticipants(tx)
		if err != nil {
			return nil, err
		}
		if first := rotation.Advance("", participants); first != "" {
			assigneeID = &first
		}
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	due := schedule.InitialDue(now, frequencyDays)

	if _, err := tx.Exec(
		`INSERT INTO tasks (id, kind, name, description, frequency_days, next_due_date, next_assignee_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, kind, name, description, frequencyDays, due, nullString(assigneeID), now, now,
	); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

// List returns tasks of the given kind (all kinds when kind is empty).
// With byDue set, tasks order by due date with unscheduled tasks last, the
// way the boards present them; otherwise alphabetically.
func (s *TaskStore) List(kind model.TaskKind, byDue bool) ([]model.Task, error) {
	query := `SELECT ` + taskCols + ` FROM tasks`
	var args []any
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	if byDue {
		query += ` ORDER BY next_due_date IS NULL, next_due_date ASC, name ASC`
	} else {
		query += ` ORDER BY name ASC`
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *TaskStore) GetByID(id string) (*model.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskCols+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// TaskUpdate is a partial update. Unset fields are left unchanged; for the
// nullable fields a set nil value explicitly clears the column, so "clear"
// and "don't touch" can't collide.
type TaskUpdate struct {
	Name          model.Patch[string]
	Description   model.Patch[string]
	FrequencyDays model.Patch[int]
	NextDueDate   model.Patch[*time.Time]
	AssigneeID    model.Patch[*string]
}

// Update applies a partial update to a task.
func (s *TaskStore) Update(id string, upd TaskUpdate) (*model.Task, error) {
	t, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}

	if name, ok := upd.Name.Get(); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("task name is required: %w", ErrInvalidInput)
		}
		t.Name = name
	}
	if desc, ok := upd.Description.Get(); ok {
		t.Description = desc
	}
	if freq, ok := upd.FrequencyDays.Get(); ok {
		if freq < 1 {
			freq = 1
		}
		t.FrequencyDays = freq
	}
	if due, ok := upd.NextDueDate.Get(); ok {
		t.NextDueDate = due
	}
	if assignee, ok := upd.AssigneeID.Get(); ok {
		t.NextAssigneeID = assignee
	}

	if _, err := s.db.Exec(
		`UPDATE tasks SET name = ?, description = ?, frequency_days = ?, next_due_date = ?, next_assignee_id = ?, updated_at = ? WHERE id = ?`,
		t.Name, t.Description, t.FrequencyDays, nullTime(t.NextDueDate), nullString(t.NextAssigneeID), time.Now().UTC(), id,
	); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes a task and, in the same transaction, its completion
// history. Participant rows are untouched.
func (s *TaskStore) Delete(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM completion_events WHERE task_id = ?`, id); err != nil {
		return fmt.Errorf("delete task events: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}

	return tx.Commit()
}

// CompletionMeta carries the free-form metadata logged with a completion.
// Chores use DurationMinutes, purchases use Quantity and TotalPriceCents;
// negative values are normalized rather than rejected.
type CompletionMeta struct {
	DurationMinutes int
	Quantity        int
	TotalPriceCents int
	Comments        string
}

// Complete records that a participant finished a task. In one transaction
// it classifies the event against the task's current due date, writes the
// immutable event row, advances the rotation pointer from its value before
// the event, and bumps the due date one interval past the event time. A nil
// `when` means "now" and the event is not backdated; a caller-supplied
// timestamp marks it backdated regardless of lateness.
func (s *TaskStore) Complete(taskID, participantID string, when *time.Time, meta CompletionMeta) (*model.CompletionEvent, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+taskCols+` FROM tasks WHERE id = ?`, taskID)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	var exists int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM participants WHERE id = ?`, participantID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check participant: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("participant %s: %w", participantID, ErrNotFound)
	}

	eventTime := time.Now().UTC()
	if when != nil {
		eventTime = *when
	}
	wasLate, backdated := schedule.Classify(eventTime, t.NextDueDate, when != nil)

	if meta.DurationMinutes < 0 {
		meta.DurationMinutes = 0
	}
	if meta.Quantity < 1 {
		meta.Quantity = 1
	}
	if meta.TotalPriceCents < 0 {
		meta.TotalPriceCents = 0
	}

	eventID := uuid.NewString()
	if _, err := tx.Exec(
		`INSERT INTO completion_events (id, task_id, participant_id, completed_at, was_late, backdated, duration_minutes, quantity, total_price_cents, comments)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		eventID, taskID, participantID, eventTime, wasLate, backdated,
		meta.DurationMinutes, meta.Quantity, meta.TotalPriceCents, meta.Comments,
	); err != nil {
		return nil, fmt.Errorf("insert completion event: %w", err)
	}

	// The pointer advances from its value before this event, against the
	// participant set as it stands right now.
	participants, err := listParticipants(tx)
	if err != nil {
		return nil, err
	}
	current := ""
	if t.NextAssigneeID != nil {
		current = *t.NextAssigneeID
	}
	next := rotation.Advance(current, participants)
	newDue := schedule.BumpDue(eventTime, t.FrequencyDays)

	if _, err := tx.Exec(
		`UPDATE tasks SET next_assignee_id = ?, next_due_date = ?, updated_at = ? WHERE id = ?`,
		nullIfEmpty(next), newDue, time.Now().UTC(), taskID,
	); err != nil {
		return nil, fmt.Errorf("advance task: %w", err)
	}

	eventRow := tx.QueryRow(`SELECT `+completionCols+` FROM completion_events WHERE id = ?`, eventID)
	event, err := scanCompletion(eventRow)
	if err != nil {
		return nil, fmt.Errorf("read back completion event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return event, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
