package handler

import (
	"log/slog"
	"net/http"

	"github.com/mfenwick/rota/internal/model"
	"github.com/mfenwick/rota/internal/store"
)

type CompletionHandler struct {
	store  *store.CompletionStore
	logger *slog.Logger
}

func NewCompletionHandler(s *store.CompletionStore, logger *slog.Logger) *CompletionHandler {
	return &CompletionHandler{store: s, logger: logger}
}

// List returns completion history, newest first, optionally narrowed by
// task, participant, and date range.
func (h *CompletionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.CompletionFilter{
		TaskID:        q.Get("task_id"),
		ParticipantID: q.Get("participant_id"),
	}

	if v := q.Get("from"); v != "" {
		t, err := parseTimeParam(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid from date"})
			return
		}
		filter.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := parseTimeParam(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid to date"})
			return
		}
		filter.To = &t
	}

	events, err := h.store.List(filter)
	if err != nil {
		writeStoreError(w, h.logger, err, "list completion events")
		return
	}
	if events == nil {
		events = []model.CompletionEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}
