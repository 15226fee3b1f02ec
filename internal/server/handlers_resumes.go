package server

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

// maxResumeUploadBytes bounds the uploaded file size.
const maxResumeUploadBytes = 2 << 20

// TextExtractor turns an uploaded resume file into plain text for prompts.
type TextExtractor interface {
	Extract(filename string, data []byte) (string, error)
}

// PlainTextExtractor passes .txt and .md files through unchanged. Binary
// formats are rejected rather than mangled.
type PlainTextExtractor struct{}

func (PlainTextExtractor) Extract(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md", "":
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported resume format %q, upload plain text", filepath.Ext(filename))
	}
}

// handleUploadResume accepts a multipart "file" field, extracts its text,
// and stores it as the caller's latest resume.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.pathUUID(w, r, "id"); !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxResumeUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, &ErrValidation{Field: "file", Message: "multipart file field required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	parsed, err := s.extractor.Extract(header.Filename, data)
	if err != nil {
		writeError(w, &ErrValidation{Field: "file", Message: err.Error()})
		return
	}

	resume, err := s.store.SaveResume(r.Context(), authedUserID(r), header.Filename, parsed)
	if err != nil {
		writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, resume)
}
