package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/avelar-dev/taskcast-be/internal/api/httpx"
	"github.com/avelar-dev/taskcast-be/internal/models"
	"github.com/avelar-dev/taskcast-be/internal/services"
)

// AdminHandler handles the admin-only todo operations. Routes using
// it must sit behind auth.RequireAdmin.
type AdminHandler struct {
	service services.TodoServiceProvider
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service services.TodoServiceProvider) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListAll returns every todo regardless of owner.
func (h *AdminHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	todos, err := h.service.ListAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list all todos")
		httpx.WriteError(w, http.StatusInternalServerError, "failed to list todos")
		return
	}
	if todos == nil {
		todos = []models.Todo{}
	}
	httpx.WriteJSON(w, http.StatusOK, todos)
}

// DeleteAny removes a todo no matter who owns it.
func (h *AdminHandler) DeleteAny(w http.ResponseWriter, r *http.Request) {
	id, err := todoID(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	if err := h.service.DeleteAny(id); err != nil {
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
