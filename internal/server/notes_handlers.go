package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"nts/internal/store"
)

type saveNoteRequest struct {
	ID       string   `json:"id"`
	UserID   string   `json:"userId"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	Starred  bool     `json:"starred"`
	Archived bool     `json:"archived"`
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	// A userId query parameter is accepted for compatibility but must
	// match the session; notes are never served across users.
	if requested := r.URL.Query().Get("userId"); requested != "" && requested != userID {
		writeError(w, http.StatusForbidden, "cannot list another user's notes")
		return
	}
	notes, err := s.notes.ListByUser(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("list notes")
		writeError(w, http.StatusInternalServerError, "failed to list notes")
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleSaveNote(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	var req saveNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID != "" && req.UserID != userID {
		writeError(w, http.StatusForbidden, "cannot write another user's notes")
		return
	}
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "note is empty")
		return
	}

	note, created, err := s.notes.Upsert(r.Context(), userID, store.NoteInput{
		ID:       strings.TrimSpace(req.ID),
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		Starred:  req.Starred,
		Archived: req.Archived,
	})
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			writeError(w, http.StatusNotFound, "note not found")
			return
		}
		s.logger.Error().Err(err).Msg("save note")
		writeError(w, http.StatusInternalServerError, "failed to save note")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	noteID := strings.TrimSpace(r.URL.Query().Get("noteId"))
	if noteID == "" {
		writeError(w, http.StatusBadRequest, "noteId is required")
		return
	}
	if err := s.notes.Delete(r.Context(), userID, noteID); err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			writeError(w, http.StatusNotFound, "note not found")
			return
		}
		s.logger.Error().Err(err).Msg("delete note")
		writeError(w, http.StatusInternalServerError, "failed to delete note")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
