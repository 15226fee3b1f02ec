package server

import (
	"encoding/json"
	"net/http"
	"strings"
)

// InteractRequest is the conversation turn request body.
type InteractRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleListSteps(w http.ResponseWriter, r *http.Request) {
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

	steps, err := s.store.ListSteps(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, steps)
}

func (s *Server) handleGetStep(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.pathUUID(w, r, "id"); !ok {
		return
	}
	stepID, ok := s.pathUUID(w, r, "step_id")
	if !ok {
		return
	}

	step, err := s.store.GetStep(r.Context(), stepID)
	if err != nil {
		writeError(w, err)
		return
	}
	if step == nil {
		s.errorResponse(w, http.StatusNotFound, "step not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, step)
}

// handleInteract runs one conversation turn.
func (s *Server) handleInteract(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}
	stepID, ok := s.pathUUID(w, r, "step_id")
	if !ok {
		return
	}

	var req InteractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, &ErrValidation{Field: "message", Message: "required"})
		return
	}

	reply, err := s.engine.Interact(r.Context(), sessionID, stepID, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"response": reply})
}

// handleCompleteStep runs the evaluation pipeline and returns the critique.
func (s *Server) handleCompleteStep(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}
	stepID, ok := s.pathUUID(w, r, "step_id")
	if !ok {
		return
	}

	feedback, err := s.engine.Complete(r.Context(), sessionID, stepID)
	if err != nil {
		writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "success", "feedback": feedback})
}
