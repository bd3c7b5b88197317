package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mfenwick/rota/internal/model"
	"github.com/mfenwick/rota/internal/store"
	"github.com/mfenwick/rota/internal/websocket"
)

type ParticipantHandler struct {
	store  *store.ParticipantStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewParticipantHandler(s *store.ParticipantStore, hub *websocket.Hub, logger *slog.Logger) *ParticipantHandler {
	return &ParticipantHandler{store: s, hub: hub, logger: logger}
}

func (h *ParticipantHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type participantRequest struct {
	Name       string  `json:"name"`
	AvatarPath *string `json:"avatar_path"`
}

func (h *ParticipantHandler) List(w http.ResponseWriter, r *http.Request) {
	participants, err := h.store.List()
	if err != nil {
		writeStoreError(w, h.logger, err, "list participants")
		return
	}
	if participants == nil {
		participants = []model.Participant{}
	}
	writeJSON(w, http.StatusOK, participants)
}

func (h *ParticipantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req participantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	participant, err := h.store.Create(req.Name, req.AvatarPath)
	if err != nil {
		writeStoreError(w, h.logger, err, "create participant")
		return
	}

	h.broadcast(websocket.NewMessage("participant", "created", participant.ID, nil))

	writeJSON(w, http.StatusCreated, participant)
}

func (h *ParticipantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req participantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	participant, err := h.store.Update(id, req.Name, req.AvatarPath)
	if err != nil {
		writeStoreError(w, h.logger, err, "update participant")
		return
	}

	h.broadcast(websocket.NewMessage("participant", "updated", id, nil))

	writeJSON(w, http.StatusOK, participant)
}

func (h *ParticipantHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.store.SetActive(id, req.Active); err != nil {
		writeStoreError(w, h.logger, err, "set participant active")
		return
	}

	h.broadcast(websocket.NewMessage("participant", "updated", id, map[string]any{"active": req.Active}))

	participant, err := h.store.GetByID(id)
	if err != nil {
		writeStoreError(w, h.logger, err, "get participant")
		return
	}
	writeJSON(w, http.StatusOK, participant)
}

func (h *ParticipantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.store.Delete(id); err != nil {
		writeStoreError(w, h.logger, err, "delete participant")
		return
	}

	h.broadcast(websocket.NewMessage("participant", "deleted", id, nil))

	w.WriteHeader(http.StatusNoContent)
}
