package todos

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	expensesdomain "movein-app-go/internal/domain/expenses"
	todosdomain "movein-app-go/internal/domain/todos"
	"movein-app-go/internal/transport/httpserver/middleware"
	"movein-app-go/pkg/logger"
)

type Handlers struct {
	Todos    *todosdomain.Service
	Expenses *expensesdomain.Service
	log      logger.Logger
}

func New(todos *todosdomain.Service, expenses *expensesdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Todos:    todos,
		Expenses: expenses,
		log:      log,
	}
}

type createTodoRequest struct {
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Category             string   `json:"category"`
	DueDate              *string  `json:"due_date"`
	Priority             bool     `json:"priority"`
	HasAssociatedExpense bool     `json:"has_associated_expense"`
	EstimatedAmount      *float64 `json:"estimated_amount"`
	ProjectID            *int64   `json:"project_id"`
}

type updateTodoRequest struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	Category        *string  `json:"category"`
	Completed       *bool    `json:"completed"`
	DueDate         *string  `json:"due_date"`
	Priority        *bool    `json:"priority"`
	EstimatedAmount *float64 `json:"estimated_amount"`
}

type todoResponse struct {
	ID                   int64      `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Category             string     `json:"category"`
	Completed            bool       `json:"completed"`
	DueDate              *time.Time `json:"due_date"`
	Priority             bool       `json:"priority"`
	HasAssociatedExpense bool       `json:"has_associated_expense"`
	EstimatedAmount      *float64   `json:"estimated_amount"`
	ProjectID            *int64     `json:"project_id"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

type todoListResponse struct {
	Items []todoResponse `json:"items"`
	Total int            `json:"total"`
}

func (h *Handlers) ListTodos(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	projectID, err := parseOptionalIDParam(query.Get("project_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid project_id")
		return
	}
	completed, err := parseBoolParam(query.Get("completed"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid completed")
		return
	}

	items, err := h.Todos.ListTodos(r.Context(), todosdomain.ListFilter{
		ProjectID: projectID,
		Completed: completed,
	})
	if err != nil {
		h.log.InternalError("todos.list: list todos failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]todoResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toTodoResponse(item))
	}
	writeJSON(w, http.StatusOK, todoListResponse{Items: response, Total: len(response)})
}

// CreateTodo also derives a linked budget expense when the client marks the
// todo as carrying an estimated cost. The two writes are sequential, not
// transactional; a failed expense write logs and still returns the todo.
func (h *Handlers) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	dueDate, err := parseDatePtr(req.DueDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid due_date")
		return
	}

	todo, err := h.Todos.CreateTodo(r.Context(), todosdomain.CreateTodoInput{
		UserID:               userID,
		Title:                req.Title,
		Description:          req.Description,
		Category:             req.Category,
		DueDate:              dueDate,
		Priority:             req.Priority,
		HasAssociatedExpense: req.HasAssociatedExpense,
		EstimatedAmount:      req.EstimatedAmount,
		ProjectID:            req.ProjectID,
	})
	if err != nil {
		switch {
		case errors.Is(err, todosdomain.ErrTitleRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "title is required")
		case errors.Is(err, todosdomain.ErrInvalidAmount):
			writeError(w, http.StatusBadRequest, "invalid_request", "estimated_amount must be non-negative")
		default:
			h.log.InternalError("todos.create: create todo failed", err, "user_id", userID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	if todo.HasAssociatedExpense && todo.EstimatedAmount != nil && *todo.EstimatedAmount > 0 {
		if _, err := h.Expenses.CreateBudgetForTodo(r.Context(), expensesdomain.BudgetSource{
			TodoID:    todo.ID,
			Title:     todo.Title,
			Category:  todo.Category,
			Amount:    *todo.EstimatedAmount,
			DueDate:   todo.DueDate,
			ProjectID: todo.ProjectID,
		}); err != nil {
			h.log.InternalError("todos.create: create budget expense failed", err, "todo_id", todo.ID)
		}
	}

	writeJSON(w, http.StatusCreated, toTodoResponse(*todo))
}

func (h *Handlers) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var req updateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "title must not be empty")
		return
	}

	input := todosdomain.UpdateTodoInput{
		ID:              id,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Completed:       req.Completed,
		Priority:        req.Priority,
		EstimatedAmount: req.EstimatedAmount,
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			input.DueDate = todosdomain.OptionalNullableTime{Set: true, Value: nil}
		} else {
			parsed, err := parseDatePtr(req.DueDate)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_request", "invalid due_date")
				return
			}
			input.DueDate = todosdomain.OptionalNullableTime{Set: true, Value: parsed}
		}
	}

	todo, err := h.Todos.UpdateTodo(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, todosdomain.ErrTodoNotFound):
			writeError(w, http.StatusNotFound, "todo_not_found", "todo not found")
		case errors.Is(err, todosdomain.ErrInvalidAmount):
			writeError(w, http.StatusBadRequest, "invalid_request", "estimated_amount must be non-negative")
		default:
			h.log.InternalError("todos.update: update todo failed", err, "todo_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponse(*todo))
}

func (h *Handlers) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Todos.DeleteTodo(r.Context(), id); err != nil {
		h.log.InternalError("todos.delete: delete todo failed", err, "todo_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toTodoResponse(todo todosdomain.Todo) todoResponse {
	return todoResponse{
		ID:                   todo.ID,
		Title:                todo.Title,
		Description:          todo.Description,
		Category:             todo.Category,
		Completed:            todo.Completed,
		DueDate:              todo.DueDate,
		Priority:             todo.Priority,
		HasAssociatedExpense: todo.HasAssociatedExpense,
		EstimatedAmount:      todo.EstimatedAmount,
		ProjectID:            todo.ProjectID,
		CreatedAt:            todo.CreatedAt,
		UpdatedAt:            todo.UpdatedAt,
	}
}
