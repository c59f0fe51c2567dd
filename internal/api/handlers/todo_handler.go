package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/avelar-dev/taskcast-be/internal/api/httpx"
	"github.com/avelar-dev/taskcast-be/internal/api/validate"
	"github.com/avelar-dev/taskcast-be/internal/auth"
	"github.com/avelar-dev/taskcast-be/internal/models"
	"github.com/avelar-dev/taskcast-be/internal/services"
)

// TodoHandler handles HTTP requests for the caller's own todos.
type TodoHandler struct {
	service services.TodoServiceProvider
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(service services.TodoServiceProvider) *TodoHandler {
	return &TodoHandler{service: service}
}

// TodoPayload defines the structure for create and update requests.
type TodoPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
}

func (p TodoPayload) validate() error {
	var errs validate.Errs
	errs.Add(validate.MinLen("title", p.Title, 3))
	errs.Add(validate.MinLen("description", p.Description, 3))
	errs.Add(validate.MaxLen("description", p.Description, 100))
	errs.Add(validate.IntRange("priority", p.Priority, 1, 9))
	return errs.OrNil()
}

func (p TodoPayload) toInput() services.TodoInput {
	return services.TodoInput{
		Title:       p.Title,
		Description: p.Description,
		Priority:    p.Priority,
		Complete:    p.Complete,
	}
}

// List returns every todo owned by the caller.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "could not validate user")
		return
	}

	todos, err := h.service.ListByOwner(claims.UserID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", claims.UserID).Msg("Failed to list todos")
		httpx.WriteError(w, http.StatusInternalServerError, "failed to list todos")
		return
	}
	if todos == nil {
		todos = []models.Todo{}
	}
	httpx.WriteJSON(w, http.StatusOK, todos)
}

// Get returns a single todo owned by the caller. A todo owned by
// someone else answers 404, same as one that does not exist.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "could not validate user")
		return
	}
	id, err := todoID(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	todo, err := h.service.Get(id, claims.UserID)
	if err != nil {
		if err == services.ErrNotFound {
			httpx.WriteError(w, http.StatusNotFound, "todo not found")
			return
		}
		log.Error().Err(err).Int64("todo_id", id).Msg("Failed to get todo")
		httpx.WriteError(w, http.StatusInternalServerError, "failed to get todo")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, todo)
}

// Create adds a new todo owned by the caller.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "could not validate user")
		return
	}

	var payload TodoPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := payload.validate(); err != nil {
		httpx.WriteFieldErrors(w, http.StatusUnprocessableEntity, err.(validate.Errs))
		return
	}

	todo, err := h.service.Create(payload.toInput(), claims.UserID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", claims.UserID).Msg("Failed to create todo")
		httpx.WriteError(w, http.StatusInternalServerError, "failed to create todo")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, todo)
}

// Update replaces the mutable fields of a todo owned by the caller.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "could not validate user")
		return
	}
	id, err := todoID(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	var payload TodoPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := payload.validate(); err != nil {
		httpx.WriteFieldErrors(w, http.StatusUnprocessableEntity, err.(validate.Errs))
		return
	}

	if err := h.service.Update(id, claims.UserID, payload.toInput()); err != nil {
		if err == services.ErrNotFound {
			httpx.WriteError(w, http.StatusNotFound, "todo not found")
			return
		}
		log.Error().Err(err).Int64("todo_id", id).Msg("Failed to update todo")
		httpx.WriteError(w, http.StatusInternalServerError, "failed to update todo")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a todo owned by the caller.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "could not validate user")
		return
	}
	id, err := todoID(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	if err := h.service.Delete(id, claims.UserID); err != nil {
		if err == services.ErrNotFound {
			httpx.WriteError(w, http.StatusNotFound, "todo not found")
			return
		}
		log.Error().Err(err).Int64("todo_id", id).Msg("Failed to delete todo")
		httpx.WriteError(w, http.StatusInternalServerError, "failed to delete todo")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func todoID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}
