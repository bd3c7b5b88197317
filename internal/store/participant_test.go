package store

import (
	"errors"
	"testing"

	"github.com/mfenwick/rota/internal/database"
	"github.com/mfenwick/rota/internal/model"
)

func setupTestDB(t *testing.T) (*ParticipantStore, *TaskStore, *CompletionStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewParticipantStore(db), NewTaskStore(db), NewCompletionStore(db)
}

func mustCreateParticipant(t *testing.T, ps *ParticipantStore, name string) *model.Participant {
	t.Helper()
	p, err := ps.Create(name, nil)
	if err != nil {
		t.Fatalf("create participant %s: %v", name, err)
	}
	return p
}

func TestParticipantCRUD(t *testing.T) {
	ps, _, _ := setupTestDB(t)

	avatar := "avatars/dana.png"
	p, err := ps.Create("  Dana  ", &avatar)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Name != "Dana" {
		t.Errorf("name = %q, want trimmed %q", p.Name, "Dana")
	}
	if !p.Active {
		t.Error("new participant should be active")
	}
	if p.AvatarPath == nil || *p.AvatarPath != avatar {
		t.Errorf("avatar_path = %v, want %q", p.AvatarPath, avatar)
	}

	got, err := ps.GetByID(p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Name != "Dana" {
		t.Fatalf("got %+v, want Dana", got)
	}

	updated, err := ps.Update(p.ID, "Dana R", nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Dana R" {
		t.Errorf("updated name = %q, want %q", updated.Name, "Dana R")
	}
	if updated.AvatarPath != nil {
		t.Errorf("avatar_path = %v, want cleared", updated.AvatarPath)
	}
}

func TestParticipantListOrderedByName(t *testing.T) {
	ps, _, _ := setupTestDB(t)

	mustCreateParticipant(t, ps, "Carol")
	mustCreateParticipant(t, ps, "Alice")
	mustCreateParticipant(t, ps, "Bob")

	participants, err := ps.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Alice", "Bob", "Carol"}
	if len(participants) != len(want) {
		t.Fatalf("count = %d, want %d", len(participants), len(want))
	}
	for i, name := range want {
		if participants[i].Name != name {
			t.Errorf("participant[%d] = %q, want %q", i, participants[i].Name, name)
		}
	}
}

func TestParticipantCreateEmptyName(t *testing.T) {
	ps, _, _ := setupTestDB(t)

	if _, err := ps.Create("   ", nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("create with blank name: err = %v, want ErrInvalidInput", err)
	}
}

func TestParticipantSetActive(t *testing.T) {
	ps, _, _ := setupTestDB(t)
	p := mustCreateParticipant(t, ps, "Alice")

	if err := ps.SetActive(p.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	got, _ := ps.GetByID(p.ID)
	if got.Active {
		t.Error("participant should be inactive")
	}

	if err := ps.SetActive("no-such-id", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("set active on missing id: err = %v, want ErrNotFound", err)
	}
}

// Deleting the current pointer must reassign affected tasks to the first
// remaining active participant by name and null the deleted participant on
// past events without deleting the rows.
func TestParticipantDeleteReassignsAndPreservesHistory(t *testing.T) {
	ps, ts, cs := setupTestDB(t)

	alice := mustCreateParticipant(t, ps, "Alice")
	bob := mustCreateParticipant(t, ps, "Bob")
	mustCreateParticipant(t, ps, "Carol")

	task, err := ts.Create(model.KindChore, "Vacuum", "", 7, &bob.ID)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	// Bob completes once so there is history referencing him. The pointer
	// moves to Carol (successor of Bob).
	if _, err := ts.Complete(task.ID, bob.ID, nil, CompletionMeta{}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	// Point the task back at Bob so his deletion has a pointer to fix up.
	if _, err := ts.Update(task.ID, TaskUpdate{AssigneeID: model.Set(&bob.ID)}); err != nil {
		t.Fatalf("update assignee: %v", err)
	}

	if err := ps.Delete(bob.ID); err != nil {
		t.Fatalf("delete participant: %v", err)
	}

	got, err := ts.GetByID(task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.NextAssigneeID == nil || *got.NextAssigneeID != alice.ID {
		t.Errorf("pointer = %v, want Alice (%s)", got.NextAssigneeID, alice.ID)
	}

	events, err := cs.List(CompletionFilter{TaskID: task.ID})
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("history rows = %d, want 1 (never deleted)", len(events))
	}
	if events[0].ParticipantID != nil {
		t.Errorf("event participant = %v, want nulled", events[0].ParticipantID)
	}
}

func TestParticipantDeleteLastActiveClearsPointer(t *testing.T) {
	ps, ts, _ := setupTestDB(t)

	alice := mustCreateParticipant(t, ps, "Alice")
	task, err := ts.Create(model.KindPurchase, "Milk", "", 4, nil)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.NextAssigneeID == nil || *task.NextAssigneeID != alice.ID {
		t.Fatalf("initial pointer = %v, want Alice", task.NextAssigneeID)
	}

	if err := ps.Delete(alice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, _ := ts.GetByID(task.ID)
	if got.NextAssigneeID != nil {
		t.Errorf("pointer = %v, want nil after last participant removed", got.NextAssigneeID)
	}
}

func TestParticipantDeleteNotFound(t *testing.T) {
	ps, _, _ := setupTestDB(t)

	if err := ps.Delete("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete missing id: err = %v, want ErrNotFound", err)
	}
}
