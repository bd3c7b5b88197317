package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mfenwick/rota/internal/model"
	"github.com/mfenwick/rota/internal/schedule"
	"github.com/mfenwick/rota/internal/store"
	"github.com/mfenwick/rota/internal/websocket"
)

type TaskHandler struct {
	taskStore        *store.TaskStore
	participantStore *store.ParticipantStore
	hub              *websocket.Hub
	logger           *slog.Logger
}

func NewTaskHandler(ts *store.TaskStore, ps *store.ParticipantStore, hub *websocket.Hub, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{taskStore: ts, participantStore: ps, hub: hub, logger: logger}
}

func (h *TaskHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

// taskResponse decorates a task with the human-readable due label the
// boards show ("Today", "in 3d", "Overdue by 2d").
type taskResponse struct {
	model.Task
	DueLabel string `json:"due_label"`
}

func toTaskResponse(t model.Task, now time.Time) taskResponse {
	return taskResponse{Task: t, DueLabel: schedule.HumanizeDue(t.NextDueDate, now)}
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	kind := model.TaskKind(r.URL.Query().Get("kind"))
	if kind != "" && !model.ValidKind(kind) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "kind must be chore or purchase"})
		return
	}
	byDue := r.URL.Query().Get("order") != "name"

	tasks, err := h.taskStore.List(kind, byDue)
	if err != nil {
		writeStoreError(w, h.logger, err, "list tasks")
		return
	}

	now := time.Now()
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t, now))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind          model.TaskKind `json:"kind"`
		Name          string         `json:"name"`
		Description   string         `json:"description"`
		FrequencyDays int            `json:"frequency_days"`
		AssigneeID    *string        `json:"assignee_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if req.AssigneeID != nil {
		participant, err := h.participantStore.GetByID(*req.AssigneeID)
		if err != nil {
			writeStoreError(w, h.logger, err, "check participant")
			return
		}
		if participant == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "participant not found"})
			return
		}
	}

	task, err := h.taskStore.Create(req.Kind, req.Name, req.Description, req.FrequencyDays, req.AssigneeID)
	if err != nil {
		writeStoreError(w, h.logger, err, "create task")
		return
	}

	h.broadcast(websocket.NewMessage("task", "created", task.ID, nil))

	writeJSON(w, http.StatusCreated, toTaskResponse(*task, time.Now()))
}

// Update applies a partial update. A field absent from the body is left
// unchanged; assignee_id and next_due_date sent as explicit JSON null clear
// the column.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	var upd store.TaskUpdate
	if msg, ok := raw["name"]; ok {
		var name string
		if err := json.Unmarshal(msg, &name); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name must be a string"})
			return
		}
		upd.Name = model.Set(name)
	}
	if msg, ok := raw["description"]; ok {
		var desc string
		if err := json.Unmarshal(msg, &desc); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "description must be a string"})
			return
		}
		upd.Description = model.Set(desc)
	}
	if msg, ok := raw["frequency_days"]; ok {
		var freq int
		if err := json.Unmarshal(msg, &freq); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "frequency_days must be a number"})
			return
		}
		upd.FrequencyDays = model.Set(freq)
	}
	if msg, ok := raw["next_due_date"]; ok {
		var due *time.Time
		if err := json.Unmarshal(msg, &due); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "next_due_date must be a timestamp or null"})
			return
		}
		upd.NextDueDate = model.Set(due)
	}
	if msg, ok := raw["assignee_id"]; ok {
		var assignee *string
		if err := json.Unmarshal(msg, &assignee); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "assignee_id must be a string or null"})
			return
		}
		if assignee != nil {
			participant, err := h.participantStore.GetByID(*assignee)
			if err != nil {
				writeStoreError(w, h.logger, err, "check participant")
				return
			}
			if participant == nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "participant not found"})
				return
			}
		}
		upd.AssigneeID = model.Set(assignee)
	}

	task, err := h.taskStore.Update(id, upd)
	if err != nil {
		writeStoreError(w, h.logger, err, "update task")
		return
	}

	h.broadcast(websocket.NewMessage("task", "updated", id, nil))

	writeJSON(w, http.StatusOK, toTaskResponse(*task, time.Now()))
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.taskStore.Delete(id); err != nil {
		writeStoreError(w, h.logger, err, "delete task")
		return
	}

	h.broadcast(websocket.NewMessage("task", "deleted", id, nil))

	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		ParticipantID   string     `json:"participant_id"`
		CompletedAt     *time.Time `json:"completed_at"`
		DurationMinutes int        `json:"duration_minutes"`
		Quantity        int        `json:"quantity"`
		TotalPriceCents int        `json:"total_price_cents"`
		Comments        string     `json:"comments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.ParticipantID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "participant_id is required"})
		return
	}

	event, err := h.taskStore.Complete(id, req.ParticipantID, req.CompletedAt, store.CompletionMeta{
		DurationMinutes: req.DurationMinutes,
		Quantity:        req.Quantity,
		TotalPriceCents: req.TotalPriceCents,
		Comments:        req.Comments,
	})
	if err != nil {
		writeStoreError(w, h.logger, err, "complete task")
		return
	}

	h.broadcast(websocket.NewMessage("task", "completed", id, map[string]any{"event_id": event.ID}))

	writeJSON(w, http.StatusCreated, event)
}
