package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// AddURLRequest points at a page to scrape into the session's context.
type AddURLRequest struct {
	URL string `json:"url"`
}

// AddRedditRequest names a discussion search to digest into the context.
type AddRedditRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleListContext(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	entries, err := s.store.ListContext(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, entries)
}

func (s *Server) handleAddURLContext(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req AddURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if parsed, err := url.Parse(req.URL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		writeError(w, &ErrValidation{Field: "url", Message: "must be an absolute URL"})
		return
	}

	entry, err := s.engine.AddURLContext(r.Context(), sessionID, req.URL)
	if err != nil {
		writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, entry)
}

func (s *Server) handleAddRedditContext(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req AddRedditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, &ErrValidation{Field: "query", Message: "required"})
		return
	}

	entry, err := s.engine.AddRedditContext(r.Context(), sessionID, req.Query)
	if err != nil {
		writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, entry)
}
