package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mfenwick/rota/internal/model"
)

type CompletionStore struct {
	db *sql.DB
}

func NewCompletionStore(db *sql.DB) *CompletionStore {
	return &CompletionStore{db: db}
}

const completionCols = `id, task_id, participant_id, completed_at, was_late, backdated, duration_minutes, quantity, total_price_cents, comments`

func scanCompletion(scanner interface{ Scan(...any) error }) (*model.CompletionEvent, error) {
	var e model.CompletionEvent
	var participant sql.NullString
	err := scanner.Scan(
		&e.ID, &e.TaskID, &participant, &e.CompletedAt, &e.WasLate, &e.Backdated,
		&e.DurationMinutes, &e.Quantity, &e.TotalPriceCents, &e.Comments,
	)
	if err != nil {
		return nil, err
	}
	if participant.Valid {
		e.ParticipantID = &participant.String
	}
	return &e, nil
}

// CompletionFilter narrows a history query. Zero fields are ignored.
type CompletionFilter struct {
	TaskID        string
	ParticipantID string
	From          *time.Time
	To            *time.Time
}

// List returns completion events matching the filter, newest first.
func (s *CompletionStore) List(filter CompletionFilter) ([]model.CompletionEvent, error) {
	query := `SELECT ` + completionCols + ` FROM completion_events`
	var clauses []string
	var args []any

	if filter.TaskID != "" {
		clauses = append(clauses, `task_id = ?`)
		args = append(args, filter.TaskID)
	}
	if filter.ParticipantID != "" {
		clauses = append(clauses, `participant_id = ?`)
		args = append(args, filter.ParticipantID)
	}
	if filter.From != nil {
		clauses = append(clauses, `completed_at >= ?`)
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		clauses = append(clauses, `completed_at <= ?`)
		args = append(args, *filter.To)
	}

	for i, c := range clauses {
		if i == 0 {
			query += ` WHERE ` + c
		} else {
			query += ` AND ` + c
		}
	}
	query += ` ORDER BY completed_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list completion events: %w", err)
	}
	defer rows.Close()

	var events []model.CompletionEvent
	for rows.Next() {
		e, err := scanCompletion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan completion event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (s *CompletionStore) GetByID(id string) (*model.CompletionEvent, error) {
	row := s.db.QueryRow(`SELECT `+completionCols+` FROM completion_events WHERE id = ?`, id)
	e, err := scanCompletion(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get completion event: %w", err)
	}
	return e, nil
}
