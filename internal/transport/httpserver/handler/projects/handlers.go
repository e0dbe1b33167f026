package projects

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	projectsdomain "movein-app-go/internal/domain/projects"
	"movein-app-go/internal/transport/httpserver/middleware"
	"movein-app-go/pkg/logger"
)

type Handlers struct {
	Projects *projectsdomain.Service
	log      logger.Logger
}

func New(projects *projectsdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Projects: projects,
		log:      log,
	}
}

type createProjectRequest struct {
	Name string `json:"name"`
}

type updateProjectRequest struct {
	Name *string `json:"name"`
}

type addMemberRequest struct {
	UserID int64 `json:"user_id"`
}

type projectResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type projectListResponse struct {
	Items []projectResponse `json:"items"`
	Total int               `json:"total"`
}

type memberResponse struct {
	ProjectID int64  `json:"project_id"`
	UserID    int64  `json:"user_id"`
	Role      string `json:"role"`
}

type memberListResponse struct {
	Items []memberResponse `json:"items"`
	Total int              `json:"total"`
}

func (h *Handlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	items, err := h.Projects.ListProjects(r.Context(), userID)
	if err != nil {
		h.log.InternalError("projects.list: list projects failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]projectResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toProjectResponse(item))
	}
	writeJSON(w, http.StatusOK, projectListResponse{Items: response, Total: len(response)})
}

func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	project, err := h.Projects.CreateProject(r.Context(), projectsdomain.CreateProjectInput{
		Name:    req.Name,
		OwnerID: userID,
	})
	if err != nil {
		if errors.Is(err, projectsdomain.ErrNameRequired) {
			writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
			return
		}
		h.log.InternalError("projects.create: create project failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toProjectResponse(*project))
}

func (h *Handlers) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var req updateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	project, err := h.Projects.UpdateProject(r.Context(), projectsdomain.UpdateProjectInput{
		ID:   id,
		Name: req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, projectsdomain.ErrProjectNotFound):
			writeError(w, http.StatusNotFound, "project_not_found", "project not found")
		case errors.Is(err, projectsdomain.ErrNameRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "name must not be empty")
		default:
			h.log.InternalError("projects.update: update project failed", err, "project_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(*project))
}

// DeleteProject removes the project and everything scoped to it. Owner only.
func (h *Handlers) DeleteProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Projects.DeleteProject(r.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, projectsdomain.ErrProjectNotFound):
			writeError(w, http.StatusNotFound, "project_not_found", "project not found")
		case errors.Is(err, projectsdomain.ErrNotOwner):
			h.log.BusinessError("projects.delete: not owner", err, "project_id", id, "user_id", userID)
			writeError(w, http.StatusForbidden, "not_owner", "only the project owner may delete it")
		default:
			h.log.InternalError("projects.delete: delete project failed", err, "project_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	items, err := h.Projects.ListMembers(r.Context(), id)
	if err != nil {
		if errors.Is(err, projectsdomain.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "project_not_found", "project not found")
			return
		}
		h.log.InternalError("projects.members.list: list members failed", err, "project_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]memberResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toMemberResponse(item))
	}
	writeJSON(w, http.StatusOK, memberListResponse{Items: response, Total: len(response)})
}

func (h *Handlers) AddMember(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "user_id is required")
		return
	}

	member, err := h.Projects.AddMember(r.Context(), actorID, id, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, projectsdomain.ErrProjectNotFound):
			writeError(w, http.StatusNotFound, "project_not_found", "project not found")
		case errors.Is(err, projectsdomain.ErrNotOwner):
			writeError(w, http.StatusForbidden, "not_owner", "only the project owner may add members")
		case errors.Is(err, projectsdomain.ErrAlreadyMember):
			writeError(w, http.StatusConflict, "already_member", "user is already a member")
		default:
			h.log.InternalError("projects.members.add: add member failed", err, "project_id", id, "user_id", req.UserID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toMemberResponse(*member))
}

func (h *Handlers) RemoveMember(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}
	userID, err := parseIDParam(chi.URLParam(r, "user_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid user_id")
		return
	}

	if err := h.Projects.RemoveMember(r.Context(), actorID, id, userID); err != nil {
		switch {
		case errors.Is(err, projectsdomain.ErrProjectNotFound):
			writeError(w, http.StatusNotFound, "project_not_found", "project not found")
		case errors.Is(err, projectsdomain.ErrNotOwner):
			writeError(w, http.StatusForbidden, "not_owner", "only the project owner may remove members")
		case errors.Is(err, projectsdomain.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		default:
			h.log.InternalError("projects.members.remove: remove member failed", err, "project_id", id, "user_id", userID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toProjectResponse(project projectsdomain.Project) projectResponse {
	return projectResponse{
		ID:        project.ID,
		Name:      project.Name,
		OwnerID:   project.OwnerID,
		CreatedAt: project.CreatedAt,
	}
}

func toMemberResponse(member projectsdomain.Member) memberResponse {
	return memberResponse{
		ProjectID: member.ProjectID,
		UserID:    member.UserID,
		Role:      member.Role,
	}
}
