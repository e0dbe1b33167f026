package expenses

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	categoriesdomain "movein-app-go/internal/domain/categories"
)

type createCategoryRequest struct {
	Name      string `json:"name"`
	ProjectID *int64 `json:"project_id"`
}

type reassignCategoryRequest struct {
	NewCategory string `json:"newCategory"`
}

type categoryResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ProjectID *int64 `json:"project_id"`
}

type categoryListResponse struct {
	Names  []string           `json:"names"`
	Custom []categoryResponse `json:"custom"`
}

type reassignResponse struct {
	TodosMoved    int64 `json:"todos_moved"`
	ExpensesMoved int64 `json:"expenses_moved"`
}

// ListCategories returns the merged selectable names alongside the custom
// records, so clients can both populate pickers and address deletions by id.
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseOptionalIDParam(r.URL.Query().Get("project_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid project_id")
		return
	}

	names, err := h.Categories.ListCategoryNames(r.Context(), projectID)
	if err != nil {
		h.log.InternalError("categories.list: list names failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	custom, err := h.Categories.ListCategories(r.Context(), projectID)
	if err != nil {
		h.log.InternalError("categories.list: list custom failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]categoryResponse, 0, len(custom))
	for _, category := range custom {
		response = append(response, toCategoryResponse(category))
	}
	writeJSON(w, http.StatusOK, categoryListResponse{Names: names, Custom: response})
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	category, err := h.Categories.CreateCategory(r.Context(), categoriesdomain.CreateCategoryInput{
		Name:      req.Name,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		switch {
		case errors.Is(err, categoriesdomain.ErrNameRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		case errors.Is(err, categoriesdomain.ErrCategoryExists):
			h.log.BusinessError("categories.create: duplicate name", err, "name", req.Name)
			writeError(w, http.StatusConflict, "category_exists", "category name already exists")
		default:
			h.log.InternalError("categories.create: create category failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(*category))
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Categories.DeleteCategory(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, categoriesdomain.ErrCategoryNotFound):
			writeError(w, http.StatusNotFound, "category_not_found", "category not found")
		case errors.Is(err, categoriesdomain.ErrCategoryProtected):
			h.log.BusinessError("categories.delete: protected category", err, "category_id", id)
			writeError(w, http.StatusBadRequest, "category_protected", "fallback categories cannot be deleted")
		default:
			h.log.InternalError("categories.delete: delete category failed", err, "category_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ReassignCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var req reassignCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	category, err := h.Categories.GetCategory(r.Context(), id)
	if err != nil {
		if errors.Is(err, categoriesdomain.ErrCategoryNotFound) {
			writeError(w, http.StatusNotFound, "category_not_found", "category not found")
			return
		}
		h.log.InternalError("categories.reassign: get category failed", err, "category_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	todosMoved, expensesMoved, err := h.Categories.Reassign(r.Context(), categoriesdomain.ReassignInput{
		ProjectID: category.ProjectID,
		OldName:   category.Name,
		NewName:   req.NewCategory,
	})
	if err != nil {
		if errors.Is(err, categoriesdomain.ErrNameRequired) {
			writeError(w, http.StatusBadRequest, "invalid_request", "newCategory is required")
			return
		}
		h.log.InternalError("categories.reassign: reassign failed", err, "category_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, reassignResponse{TodosMoved: todosMoved, ExpensesMoved: expensesMoved})
}

func toCategoryResponse(category categoriesdomain.Category) categoryResponse {
	return categoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		ProjectID: category.ProjectID,
	}
}
