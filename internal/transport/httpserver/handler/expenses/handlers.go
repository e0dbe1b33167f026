package expenses

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	categoriesdomain "movein-app-go/internal/domain/categories"
	expensesdomain "movein-app-go/internal/domain/expenses"
	todosdomain "movein-app-go/internal/domain/todos"
	"movein-app-go/pkg/logger"
)

type Handlers struct {
	Expenses   *expensesdomain.Service
	Categories *categoriesdomain.Service
	Todos      *todosdomain.Service
	log        logger.Logger
}

func New(expenses *expensesdomain.Service, categories *categoriesdomain.Service, todos *todosdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Expenses:   expenses,
		Categories: categories,
		Todos:      todos,
		log:        log,
	}
}

type createExpenseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        *string `json:"date"`
	TodoID      *int64  `json:"todo_id"`
	IsBudget    bool    `json:"is_budget"`
	ProjectID   *int64  `json:"project_id"`
}

type updateExpenseRequest struct {
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Date        *string  `json:"date"`
	IsBudget    *bool    `json:"is_budget"`
}

type expenseResponse struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Category    string     `json:"category"`
	Date        time.Time  `json:"date"`
	TodoID      *int64     `json:"todo_id"`
	IsBudget    bool       `json:"is_budget"`
	CompletedAt *time.Time `json:"completed_at"`
	ProjectID   *int64     `json:"project_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type expenseListResponse struct {
	Items []expenseResponse `json:"items"`
	Total int               `json:"total"`
}

func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	projectID, err := parseOptionalIDParam(query.Get("project_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid project_id")
		return
	}
	isBudget, err := parseBoolParam(query.Get("is_budget"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid is_budget")
		return
	}
	todoID, err := parseOptionalIDParam(query.Get("todo_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid todo_id")
		return
	}

	items, err := h.Expenses.ListExpenses(r.Context(), expensesdomain.ListFilter{
		ProjectID: projectID,
		IsBudget:  isBudget,
		TodoID:    todoID,
	})
	if err != nil {
		h.log.InternalError("expenses.list: list expenses failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]expenseResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toExpenseResponse(item))
	}
	writeJSON(w, http.StatusOK, expenseListResponse{Items: response, Total: len(response)})
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	date, err := parseDatePtr(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}
	input := expensesdomain.CreateExpenseInput{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		TodoID:      req.TodoID,
		IsBudget:    req.IsBudget,
		ProjectID:   req.ProjectID,
	}
	if date != nil {
		input.Date = *date
	}

	expense, err := h.Expenses.CreateExpense(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, expensesdomain.ErrDescriptionRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "description is required")
		case errors.Is(err, expensesdomain.ErrInvalidAmount):
			writeError(w, http.StatusBadRequest, "invalid_request", "amount must be non-negative")
		default:
			h.log.InternalError("expenses.create: create expense failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseResponse(*expense))
}

// UpdateExpense pays a budget item when is_budget flips to false. When the
// paid item is linked to a todo, the todo is marked completed in the same
// request; the second write is best-effort.
func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var req updateExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	date, err := parseDatePtr(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}

	previous, err := h.Expenses.GetExpense(r.Context(), id)
	if err != nil {
		if errors.Is(err, expensesdomain.ErrExpenseNotFound) {
			writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
			return
		}
		h.log.InternalError("expenses.update: get expense failed", err, "expense_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	expense, err := h.Expenses.UpdateExpense(r.Context(), expensesdomain.UpdateExpenseInput{
		ID:          id,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        date,
		IsBudget:    req.IsBudget,
	})
	if err != nil {
		switch {
		case errors.Is(err, expensesdomain.ErrExpenseNotFound):
			writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
		case errors.Is(err, expensesdomain.ErrInvalidAmount):
			writeError(w, http.StatusBadRequest, "invalid_request", "amount must be non-negative")
		default:
			h.log.InternalError("expenses.update: update expense failed", err, "expense_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	if previous.IsBudget && !expense.IsBudget && expense.TodoID != nil {
		completed := true
		if _, err := h.Todos.UpdateTodo(r.Context(), todosdomain.UpdateTodoInput{
			ID:        *expense.TodoID,
			Completed: &completed,
		}); err != nil && !errors.Is(err, todosdomain.ErrTodoNotFound) {
			h.log.InternalError("expenses.update: complete linked todo failed", err, "expense_id", id, "todo_id", *expense.TodoID)
		}
	}

	writeJSON(w, http.StatusOK, toExpenseResponse(*expense))
}

func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Expenses.DeleteExpense(r.Context(), id); err != nil {
		h.log.InternalError("expenses.delete: delete expense failed", err, "expense_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toExpenseResponse(expense expensesdomain.Expense) expenseResponse {
	return expenseResponse{
		ID:          expense.ID,
		Description: expense.Description,
		Amount:      expense.Amount,
		Category:    expense.Category,
		Date:        expense.Date,
		TodoID:      expense.TodoID,
		IsBudget:    expense.IsBudget,
		CompletedAt: expense.CompletedAt,
		ProjectID:   expense.ProjectID,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}
