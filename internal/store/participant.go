package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mfenwick/rota/internal/model"
	"github.com/mfenwick/rota/internal/rotation"
)

type ParticipantStore struct {
	db *sql.DB
}

func NewParticipantStore(db *sql.DB) *ParticipantStore {
	return &ParticipantStore{db: db}
}

const participantCols = `id, name, avatar_path, active, created_at, updated_at`

func scanParticipant(scanner interface{ Scan(...any) error }) (*model.Participant, error) {
	var p model.Participant
	var avatar sql.NullString
	err := scanner.Scan(&p.ID, &p.Name, &avatar, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if avatar.Valid {
		p.AvatarPath = &avatar.String
	}
	return &p, nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx, so list helpers can run
// inside the transactions that need a fresh view of the participant set.
type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

func listParticipants(q queryer) ([]model.Participant, error) {
	rows, err := q.Query(`SELECT ` + participantCols + ` FROM participants ORDER BY name ASC, created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query participants: %w", err)
	}
	defer rows.Close()

	var participants []model.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		participants = append(participants, *p)
	}
	return participants, rows.Err()
}

// List returns all participants, active and inactive, ordered by name.
func (s *ParticipantStore) List() ([]model.Participant, error) {
	return listParticipants(s.db)
}

func (s *ParticipantStore) GetByID(id string) (*model.Participant, error) {
	row := s.db.QueryRow(`SELECT `+participantCols+` FROM participants WHERE id = ?`, id)
	p, err := scanParticipant(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get participant: %w", err)
	}
	return p, nil
}

// Create persists a new active participant.
func (s *ParticipantStore) Create(name string, avatarPath *string) (*model.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("participant name is required: %w", ErrInvalidInput)
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`INSERT INTO participants (id, name, avatar_path, active, created_at, updated_at) VALUES (?, ?, ?, 1, ?, ?)`,
		id, name, nullString(avatarPath), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert participant: %w", err)
	}
	return s.GetByID(id)
}

// Update replaces the participant's name and avatar reference.
func (s *ParticipantStore) Update(id, name string, avatarPath *string) (*model.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("participant name is required: %w", ErrInvalidInput)
	}

	res, err := s.db.Exec(
		`UPDATE participants SET name = ?, avatar_path = ?, updated_at = ? WHERE id = ?`,
		name, nullString(avatarPath), time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update participant: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("participant %s: %w", id, ErrNotFound)
	}
	return s.GetByID(id)
}

// SetActive flips the participant's rotation eligibility. Deactivation is
// the normal removal path; the participant keeps their history and any
// rotation pointer referencing them resets on the next advance.
func (s *ParticipantStore) SetActive(id string, active bool) error {
	res, err := s.db.Exec(
		`UPDATE participants SET active = ?, updated_at = ? WHERE id = ?`,
		active, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("set participant active: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("participant %s: %w", id, ErrNotFound)
	}
	return nil
}

// Delete hard-deletes a participant. In one transaction it reassigns every
// task pointing at them to the first remaining active participant by name
// (or clears the pointer if nobody is left), nulls their reference on past
// completion events, and removes the row. History rows are never deleted.
func (s *ParticipantStore) Delete(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM participants WHERE id = ?`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check participant: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("participant %s: %w", id, ErrNotFound)
	}

	participants, err := listParticipants(tx)
	if err != nil {
		return err
	}
	replacement := rotation.Reassign(id, participants)

	now := time.Now().UTC()
	if _, err := tx.Exec(
		`UPDATE tasks SET next_assignee_id = ?, updated_at = ? WHERE next_assignee_id = ?`,
		nullIfEmpty(replacement), now, id,
	); err != nil {
		return fmt.Errorf("reassign tasks: %w", err)
	}

	if _, err := tx.Exec(
		`UPDATE completion_events SET participant_id = NULL WHERE participant_id = ?`, id,
	); err != nil {
		return fmt.Errorf("null event references: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM participants WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}

	return tx.Commit()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
