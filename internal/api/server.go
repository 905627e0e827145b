// Package api exposes the Loom core over a local HTTP service. The browser
// extension posts captured notes, clips, tab snapshots, and session events
// here, and the sidebar reads tasks and notes back.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/runnerr0/loom/internal/workspace"
)

// Server handles HTTP requests for the Loom workspace API.
type Server struct {
	ws   *workspace.Workspace
	addr string

	// Default count for /tasks/top when no n parameter is given.
	topTasksCount int
}

// New creates a new API server.
func New(ws *workspace.Workspace, addr string, topTasksCount int) *Server {
	if topTasksCount <= 0 {
		topTasksCount = 4
	}
	return &Server{ws: ws, addr: addr, topTasksCount: topTasksCount}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Notes
	mux.HandleFunc("POST /notes", s.createNote)
	mux.HandleFunc("GET /notes", s.notesForPage)
	mux.HandleFunc("POST /clips", s.createClip)

	// Tasks
	mux.HandleFunc("GET /tasks", s.listTasks)
	mux.HandleFunc("POST /tasks", s.createTask)
	mux.HandleFunc("GET /tasks/top", s.topTasks)

	// Session plumbing
	mux.HandleFunc("POST /events", s.logEvent)
	mux.HandleFunc("POST /tabs", s.trackTab)

	// Workspace view
	mux.HandleFunc("GET /workspace", s.workspaceState)
	mux.HandleFunc("GET /settings", s.getSettings)
	mux.HandleFunc("PUT /settings", s.putSettings)

	// Health check
	mux.HandleFunc("GET /health", s.health)

	return withCORS(mux)
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	return http.ListenAndServe(s.addr, s.Handler())
}

// withCORS adds CORS headers so the extension's pages can call the API.
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) createNote(w http.ResponseWriter, r *http.Request) {
	var payload workspace.NotePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.PageURL) == "" {
		writeError(w, http.StatusBadRequest, "pageUrl is required")
		return
	}

	note, err := s.ws.CreateNote(r.Context(), payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"note": note})
}

func (s *Server) createClip(w http.ResponseWriter, r *http.Request) {
	var payload workspace.ClipPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Excerpt == "" {
		writeError(w, http.StatusBadRequest, "excerpt is required")
		return
	}

	note, err := s.ws.CreateClip(r.Context(), payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"note": note})
}

func (s *Server) notesForPage(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, "url query parameter is required")
		return
	}

	notes, err := s.ws.NotesForPage(r.Context(), url)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.ws.AllTasksWithDetails(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var payload workspace.TaskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	task, err := s.ws.CreateTask(r.Context(), payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"task": task})
}

func (s *Server) topTasks(w http.ResponseWriter, r *http.Request) {
	n := s.topTasksCount
	if v := r.URL.Query().Get("n"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			n = parsed
		}
	}

	tasks, err := s.ws.TopTasks(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"topTasks": tasks})
}

func (s *Server) logEvent(w http.ResponseWriter, r *http.Request) {
	var payload workspace.EventPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.EventType == "" {
		writeError(w, http.StatusBadRequest, "eventType is required")
		return
	}

	event, err := s.ws.LogEvent(r.Context(), payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"event": event})
}

func (s *Server) trackTab(w http.ResponseWriter, r *http.Request) {
	var payload workspace.TabPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	tab, err := s.ws.TrackTab(r.Context(), payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"tab": tab})
}

func (s *Server) workspaceState(w http.ResponseWriter, r *http.Request) {
	state, err := s.ws.WorkspaceState(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, state)
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.ws.Settings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	var settings workspace.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.ws.SaveSettings(r.Context(), settings); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
