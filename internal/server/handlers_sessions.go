package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/calebtran/interview-agent/internal/db"
)

var updateValidator = validator.New()

// handleCreateSession creates a session with defaults and its four steps.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.store.CreateSession(r.Context(), authedUserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.ListSessionsByUser(r.Context(), authedUserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if sessions == nil {
		sessions = []db.Session{}
	}
	s.jsonResponse(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	session, err := s.store.GetSession(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	if session == nil {
		s.errorResponse(w, http.StatusNotFound, "session not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, session)
}

// handleUpdateSession patches the mutable planning fields.
func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	var update db.SessionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := updateValidator.Struct(update); err != nil {
		writeError(w, validationError(err))
		return
	}

	session, err := s.store.UpdateSessionFields(r.Context(), sessionID, update)
	if err != nil {
		writeError(w, err)
		return
	}
	if session == nil {
		s.errorResponse(w, http.StatusNotFound, "session not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, session)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := s.engine.Start(r.Context(), sessionID); err != nil {
		writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "started"})
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := s.engine.Close(r.Context(), sessionID); err != nil {
		writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "closed"})
}

func (s *Server) handleRequestResearch(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := s.engine.RequestResearch(r.Context(), sessionID); err != nil {
		writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusAccepted, map[string]string{"status": "research_queued"})
}

// handleResearchStatus reports the research lifecycle and, once completed,
// the structured plan.
func (s *Server) handleResearchStatus(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	session, err := s.store.GetSession(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	if session == nil {
		s.errorResponse(w, http.StatusNotFound, "session not found")
		return
	}

	response := map[string]any{"research_status": session.ResearchStatus}
	if session.ResearchData != nil {
		response["research_data"] = session.ResearchData
	}
	s.jsonResponse(w, http.StatusOK, response)
}
