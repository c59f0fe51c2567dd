package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/avelar-dev/taskcast-be/internal/api/httpx"
	"github.com/avelar-dev/taskcast-be/internal/api/validate"
	"github.com/avelar-dev/taskcast-be/internal/auth"
	"github.com/avelar-dev/taskcast-be/internal/models"
	"github.com/avelar-dev/taskcast-be/internal/services"
)

// AuthHandler handles registration and token issuance.
type AuthHandler struct {
	service  services.UserServiceProvider
	tokens   *auth.Manager
	tokenTTL time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserServiceProvider, tokens *auth.Manager, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{service: service, tokens: tokens, tokenTTL: tokenTTL}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

func (p RegisterPayload) validate() error {
	var errs validate.Errs
	errs.Add(validate.Required("username", p.Username))
	errs.Add(validate.Required("email", p.Email))
	errs.Add(validate.Required("password", p.Password))
	if p.Password != "" {
		errs.Add(validate.MinLen("password", p.Password, 6))
	}
	return errs.OrNil()
}

// Register handles new user registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := payload.validate(); err != nil {
		httpx.WriteFieldErrors(w, http.StatusUnprocessableEntity, err.(validate.Errs))
		return
	}

	user, err := h.service.Register(payload.Email, payload.Username, payload.FirstName, payload.LastName, payload.Password, models.ParseRole(payload.Role))
	if err != nil {
		if err == services.ErrUserExists {
			httpx.WriteError(w, http.StatusConflict, err.Error())
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		httpx.WriteError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, user)
}

// TokenResponse is the login response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Token handles login. Credentials arrive form-encoded; the answer is
// a bearer token valid for the configured TTL.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.service.Authenticate(username, password)
	if err != nil {
		log.Warn().Str("username", username).Msg("Failed authentication attempt")
		httpx.WriteError(w, http.StatusUnauthorized, "could not validate user")
		return
	}

	token, err := h.tokens.GenerateToken(user, h.tokenTTL)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to generate token")
		httpx.WriteError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}
