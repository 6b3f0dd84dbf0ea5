package routehandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lakonic/noted/auth"
	"github.com/lakonic/noted/datastore"
	"github.com/lakonic/noted/models"
	"github.com/lakonic/noted/webutil"
)

type NoteHandler struct {
	Notes datastore.NoteStore
}

func NewNoteHandler(notes datastore.NoteStore) *NoteHandler {
	return &NoteHandler{Notes: notes}
}

func (h *NoteHandler) HandleListNotes(w http.ResponseWriter, r *http.Request) error {
	userID := auth.UserID(r.Context())

	notes, err := h.Notes.ListNotes(r.Context(), userID, parseTagFilter(r.URL.Query().Get("tags")))
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}
	if notes == nil {
		notes = []models.Note{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, notes)
	return nil
}

func (h *NoteHandler) HandleCreateNote(w http.ResponseWriter, r *http.Request) error {
	var requestData struct {
		Title    string   `json:"title"`
		Content  string   `json:"content"`
		Tags     []string `json:"tags"`
		Favorite bool     `json:"favorite"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestData); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	if strings.TrimSpace(requestData.Title) == "" || strings.TrimSpace(requestData.Content) == "" {
		return webutil.ErrBadRequest("Title and content are required")
	}
	if requestData.Tags == nil {
		requestData.Tags = []string{}
	}

	now := time.Now().UTC()
	newNote := models.Note{
		ID:        uuid.NewString(),
		UserID:    auth.UserID(r.Context()),
		Title:     requestData.Title,
		Content:   requestData.Content,
		Tags:      requestData.Tags,
		Favorite:  requestData.Favorite,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.Notes.CreateNote(r.Context(), &newNote); err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, newNote)
	return nil
}

func (h *NoteHandler) HandleUpdateNote(w http.ResponseWriter, r *http.Request) error {
	noteID := chi.URLParam(r, "id")

	var update models.NoteUpdate
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&update); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	note, err := h.Notes.UpdateNote(r.Context(), auth.UserID(r.Context()), noteID, update)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return webutil.ErrNotFound("Note not found")
		}
		return fmt.Errorf("failed to update note %s: %w", noteID, err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, note)
	return nil
}

func (h *NoteHandler) HandleDeleteNote(w http.ResponseWriter, r *http.Request) error {
	noteID := chi.URLParam(r, "id")

	err := h.Notes.DeleteNote(r.Context(), auth.UserID(r.Context()), noteID)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return webutil.ErrNotFound("Note not found")
		}
		return fmt.Errorf("failed to delete note %s: %w", noteID, err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
	return nil
}

// parseTagFilter splits a comma-separated tag list, dropping empty entries.
func parseTagFilter(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
