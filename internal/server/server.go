package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mfenwick/rota/internal/handler"
	"github.com/mfenwick/rota/internal/middleware"
	"github.com/mfenwick/rota/internal/store"
	ws "github.com/mfenwick/rota/internal/websocket"
)

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	participantH *handler.ParticipantHandler
	taskH        *handler.TaskHandler
	completionH  *handler.CompletionHandler
	logger       *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	participantStore := store.NewParticipantStore(db)
	taskStore := store.NewTaskStore(db)
	completionStore := store.NewCompletionStore(db)

	return &Server{
		db:           db,
		hub:          hub,
		participantH: handler.NewParticipantHandler(participantStore, hub, logger.With("component", "participant")),
		taskH:        handler.NewTaskHandler(taskStore, participantStore, hub, logger.With("component", "task")),
		completionH:  handler.NewCompletionHandler(completionStore, logger.With("component", "completion")),
		logger:       logger,
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	// Participant API routes
	mux.HandleFunc("GET /api/participants", s.participantH.List)
	mux.HandleFunc("POST /api/participants", s.participantH.Create)
	mux.HandleFunc("PUT /api/participants/{id}", s.participantH.Update)
	mux.HandleFunc("PUT /api/participants/{id}/active", s.participantH.SetActive)
	mux.HandleFunc("DELETE /api/participants/{id}", s.participantH.Delete)

	// Task API routes (chores and recurring purchases)
	mux.HandleFunc("GET /api/tasks", s.taskH.List)
	mux.HandleFunc("POST /api/tasks", s.taskH.Create)
	mux.HandleFunc("PUT /api/tasks/{id}", s.taskH.Update)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Delete)
	mux.HandleFunc("POST /api/tasks/{id}/complete", s.taskH.Complete)

	// Completion history
	mux.HandleFunc("GET /api/completions", s.completionH.List)

	// WebSocket refresh hub
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
