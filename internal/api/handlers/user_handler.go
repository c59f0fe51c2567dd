package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/avelar-dev/taskcast-be/internal/api/httpx"
	"github.com/avelar-dev/taskcast-be/internal/api/validate"
	"github.com/avelar-dev/taskcast-be/internal/auth"
	"github.com/avelar-dev/taskcast-be/internal/services"
)

// UserHandler handles requests about the authenticated user.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// GetMe retrieves the currently authenticated user.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "could not validate user")
		return
	}

	user, err := h.service.GetByID(claims.UserID)
	if err != nil {
		if err == services.ErrNotFound {
			httpx.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Error().Err(err).Int64("user_id", claims.UserID).Msg("Failed to get user")
		httpx.WriteError(w, http.StatusInternalServerError, "failed to get user")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user)
}

// ChangePassword verifies the current password and sets a new one.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "could not validate user")
		return
	}

	var payload struct {
		Password    string `json:"password"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var errs validate.Errs
	errs.Add(validate.Required("password", payload.Password))
	errs.Add(validate.MinLen("new_password", payload.NewPassword, 6))
	if err := errs.OrNil(); err != nil {
		httpx.WriteFieldErrors(w, http.StatusUnprocessableEntity, errs)
		return
	}

	if err := h.service.ChangePassword(claims.UserID, payload.Password, payload.NewPassword); err != nil {
		if err == services.ErrInvalidCredentials || err == services.ErrNotFound {
			httpx.WriteError(w, http.StatusUnauthorized, "could not validate user")
			return
		}
		log.Error().Err(err).Int64("user_id", claims.UserID).Msg("Failed to change password")
		httpx.WriteError(w, http.StatusInternalServerError, "failed to change password")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
