package projects

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	projectsdomain "movein-app-go/internal/domain/projects"
)

type createNoteRequest struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	ProjectID *int64 `json:"project_id"`
}

type updateNoteRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

type noteResponse struct {
	ID        int64     `json:"id"`
	ProjectID *int64    `json:"project_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type noteListResponse struct {
	Items []noteResponse `json:"items"`
	Total int            `json:"total"`
}

func (h *Handlers) ListNotes(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseOptionalIDParam(r.URL.Query().Get("project_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid project_id")
		return
	}

	items, err := h.Projects.ListNotes(r.Context(), projectID)
	if err != nil {
		h.log.InternalError("notes.list: list notes failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]noteResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toNoteResponse(item))
	}
	writeJSON(w, http.StatusOK, noteListResponse{Items: response, Total: len(response)})
}

func (h *Handlers) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	note, err := h.Projects.CreateNote(r.Context(), projectsdomain.CreateNoteInput{
		Title:     req.Title,
		Body:      req.Body,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		if errors.Is(err, projectsdomain.ErrTitleRequired) {
			writeError(w, http.StatusBadRequest, "invalid_request", "title is required")
			return
		}
		h.log.InternalError("notes.create: create note failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toNoteResponse(*note))
}

func (h *Handlers) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var req updateNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	note, err := h.Projects.UpdateNote(r.Context(), projectsdomain.UpdateNoteInput{
		ID:    id,
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		switch {
		case errors.Is(err, projectsdomain.ErrNoteNotFound):
			writeError(w, http.StatusNotFound, "note_not_found", "note not found")
		case errors.Is(err, projectsdomain.ErrTitleRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "title must not be empty")
		default:
			h.log.InternalError("notes.update: update note failed", err, "note_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(*note))
}

func (h *Handlers) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Projects.DeleteNote(r.Context(), id); err != nil {
		h.log.InternalError("notes.delete: delete note failed", err, "note_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toNoteResponse(note projectsdomain.Note) noteResponse {
	return noteResponse{
		ID:        note.ID,
		ProjectID: note.ProjectID,
		Title:     note.Title,
		Body:      note.Body,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
